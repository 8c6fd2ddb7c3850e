package runtime

import (
	"go.uber.org/zap"

	"github.com/riftbound/script-runtime/ecs"
	"github.com/riftbound/script-runtime/engine"
)

// Runtime binds an entity store and event bus to one embedded JavaScript
// engine. It owns the engine's lifecycle: the native "ecs" module is
// registered before any script import, and Close releases every script
// object reference before the VM is torn down.
//
// Runtime is not safe for concurrent use. Hook invocations run to completion
// on the calling goroutine; a host calling in from multiple goroutines must
// serialize externally.
type Runtime struct {
	engine  *engine.Engine
	world   *ecs.World
	bus     *ecs.EventBus
	log     *zap.Logger
	slots   map[ecs.Entity]*Slot
	order   []*Slot
	proxies []*Proxy
	closed  bool
}

// CollisionHook is the hook method name the built-in collision proxy
// invokes on participant script objects.
const CollisionHook = "on_collision"

// New creates a runtime over the given world and bus. The collision event
// proxy is registered immediately: publishing an ecs.Collision on the bus
// delivers it to the participants' on_collision hooks.
func New(world *ecs.World, bus *ecs.EventBus, cfg Config) (*Runtime, error) {
	eng, err := engine.New(engine.Config{SearchPaths: cfg.SearchPaths})
	if err != nil {
		return nil, err
	}

	r := &Runtime{
		engine: eng,
		world:  world,
		bus:    bus,
		log:    engine.Logger(),
		slots:  make(map[ecs.Entity]*Slot),
	}

	// native surface must exist before the first script import
	if err := eng.RegisterModule("ecs", r.moduleLoader()); err != nil {
		eng.Close()
		return nil, err
	}

	AddProxy(r, CollisionHook, func(ev ecs.Collision, e ecs.Entity) bool {
		return e == ev.A || e == ev.B
	})

	return r, nil
}

// World returns the entity store the runtime operates on.
func (r *Runtime) World() *ecs.World {
	return r.world
}

// Bus returns the event bus the runtime's proxies are subscribed to.
func (r *Runtime) Bus() *ecs.EventBus {
	return r.bus
}

// Close destroys every remaining script slot in attach order, unsubscribes
// all event proxies and tears down the VM. It never fails due to prior
// script errors and is safe to call more than once.
func (r *Runtime) Close() {
	if r.closed {
		return
	}
	r.closed = true

	for _, s := range append([]*Slot(nil), r.order...) {
		r.release(s)
	}
	r.order = nil

	for _, p := range r.proxies {
		p.Close()
	}
	r.proxies = nil

	r.engine.Close()
	r.log.Debug("runtime closed")
}
