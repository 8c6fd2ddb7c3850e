package runtime

import (
	"go.uber.org/zap"

	"github.com/riftbound/script-runtime/ecs"
	"github.com/riftbound/script-runtime/errors"
)

// Proxy delivers one native event type to the hooks of relevant scripted
// entities. It is subscribed from construction until Close (or runtime
// shutdown).
type Proxy struct {
	Hook string
	sub  *ecs.Subscription
}

// AddProxy subscribes a proxy for events of type E. On each event the
// runtime's script slots are walked in attach order; for every slot whose
// entity the relevance policy accepts and whose object exposes a truthy
// hook attribute, the hook is invoked with the event as sole argument.
//
// Entities without a slot, or without the hook, are skipped silently;
// slots of destroyed entities are released instead of invoked.
// The first raising hook aborts delivery and its error propagates to the
// ecs.Publish caller; the engine's pending state is cleared, so later
// events are unaffected.
func AddProxy[E any](r *Runtime, hook string, relevant func(E, ecs.Entity) bool) *Proxy {
	p := &Proxy{Hook: hook}
	p.sub = ecs.Subscribe(r.bus, func(ev E) error {
		return r.deliver(hook, ev, func(e ecs.Entity) bool { return relevant(ev, e) })
	})
	r.proxies = append(r.proxies, p)
	return p
}

// Close unsubscribes the proxy from the bus. Runtime.Close does this for
// every registered proxy.
func (p *Proxy) Close() {
	p.sub.Close()
}

// deliver walks a snapshot of the slot table so hooks may attach or destroy
// slots without invalidating the iteration.
func (r *Runtime) deliver(hook string, event any, relevant func(ecs.Entity) bool) error {
	if r.closed {
		return errors.StaleReference("deliver " + hook)
	}

	snap := append([]*Slot(nil), r.order...)
	for _, s := range snap {
		if !s.live() || r.reapDead(s) || !relevant(s.Entity) || !s.hook(hook) {
			continue
		}
		if _, err := s.Invoke(hook, event); err != nil {
			r.log.Debug("event hook failed",
				zap.String("hook", hook),
				zap.String("entity", s.Entity.String()),
				zap.Error(err))
			return err
		}
	}
	return nil
}
