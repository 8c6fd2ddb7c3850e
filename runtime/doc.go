// Package runtime provides the high-level API for driving entities with
// script objects hosted in an embedded JavaScript runtime.
//
// # Quick Start
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
//	if _, err := rt.Attach(e, "enemy_ai", "Chaser", 4.0, 5.0); err != nil {
//	    log.Fatal(err)
//	}
//
//	// once per frame
//	if err := rt.Update(dt); err != nil {
//	    log.Fatal(err)
//	}
//
//	// events reach on_collision hooks of the named participants
//	ecs.Publish(bus, ecs.Collision{A: e, B: other})
//
// # Script Conventions
//
// A script module is a CommonJS file resolved by name against the
// configured search paths, exporting classes:
//
//	const { Position } = require("ecs");
//
//	exports.Chaser = class Chaser {
//	    constructor(entity, x, y) {
//	        this.entity = entity;
//	        new Position(x, y).assign_to(entity);
//	    }
//	    update(dt) { /* optional */ }
//	    on_collision(event) { /* optional; event.a / event.b */ }
//	};
//
// The constructor receives the owning entity handle followed by the
// arguments given to Attach, in order and unmodified. update and event
// hooks are optional: a missing hook is silently skipped, a present hook
// that raises propagates a structured error to the Update or Publish
// caller and aborts the remaining delivery loop for that call.
//
// # Shared Components
//
// Position instances are shared, never copied, across the boundary. A
// component constructed in script and assigned with assign_to is the same
// instance later fetched natively with ecs.Get; a component assigned
// natively is the same instance scripts fetch with Position.get_component.
//
// # Shutdown
//
// Close destroys every remaining script slot, unsubscribes all event
// proxies and tears down the VM. Invoking a script object afterwards fails
// with a stale_reference error. Close never fails due to prior script
// errors.
package runtime
