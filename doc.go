// Package scriptruntime provides an embedded JavaScript scripting layer for
// entity-component worlds.
//
// Game logic lives in JavaScript classes loaded from disk; the host keeps
// ownership of entities, components, and events. Scripts see the same
// component storage the host sees: a Position mutated from a script is the
// mutation the host observes, with no copy at the boundary.
//
// # Architecture Overview
//
// The library is organized into a small set of packages:
//
//	scriptruntime/       Root package documentation
//	├── runtime/         Script slots, hook dispatch, event proxies
//	├── engine/          Low-level goja integration and module imports
//	├── ecs/             Entity store, component pools, typed event bus
//	├── errors/          Structured error types for debugging
//	└── cmd/run/         CLI driver with an interactive stepper
//
// # Quick Start
//
// Attach a script class to an entity and drive it:
//
//	world := ecs.NewWorld(64)
//	bus := ecs.NewEventBus()
//
//	rt, err := runtime.New(world, bus, runtime.Config{SearchPaths: []string{"scripts"}})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer rt.Close()
//
//	e := world.Create()
//	if _, err := rt.Attach(e, "actor", "Actor", 1.0, 2.0); err != nil {
//	    log.Fatal(err)
//	}
//
//	rt.Update(1.0 / 60.0) // calls actor.update(dt)
//
// Scripts receive their entity handle as the first constructor argument and
// talk back to the world through the native "ecs" module:
//
//	const { Position } = require("ecs");
//
//	exports.Actor = class Actor {
//	    constructor(entity, x, y) {
//	        this.entity = entity;
//	        new Position(x, y).assign_to(entity);
//	    }
//	    update(dt) {
//	        Position.get_component(this.entity).x += dt;
//	    }
//	};
//
// # Events
//
// Typed events published on the ecs.EventBus are forwarded to interested
// script objects by event proxies. The built-in collision proxy calls
// on_collision(event) on both participants of an ecs.Collision; hosts add
// proxies for their own event types with runtime.AddProxy.
//
// # Thread Safety
//
// Engine serializes its entry points internally. Runtime is not safe for
// concurrent use: hook invocations run to completion on the calling
// goroutine, and hosts driving it from several goroutines must serialize
// externally.
package scriptruntime
