package runtime

import (
	"go.uber.org/zap"

	"github.com/riftbound/script-runtime/errors"
)

// UpdateHook is the per-tick hook method name.
const UpdateHook = "update"

// Update invokes the update hook once on every live scripted entity that
// exposes it, passing dt (seconds) through unmodified. No clamping, no
// accumulation, no sub-stepping: one Update call is at most one hook
// invocation per eligible entity. Slots of destroyed entities are released
// instead of invoked.
//
// The first raising hook aborts the tick and its error is returned; the
// engine's pending state is cleared so the next tick starts clean.
func (r *Runtime) Update(dt float64) error {
	if r.closed {
		return errors.StaleReference("update")
	}

	snap := append([]*Slot(nil), r.order...)
	for _, s := range snap {
		if !s.live() || r.reapDead(s) || !s.hook(UpdateHook) {
			continue
		}
		if _, err := s.Invoke(UpdateHook, dt); err != nil {
			r.log.Debug("update hook failed",
				zap.String("entity", s.Entity.String()),
				zap.Error(err))
			return err
		}
	}
	return nil
}
