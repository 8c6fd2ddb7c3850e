package runtime

import (
	"github.com/dop251/goja"
	"go.uber.org/zap"

	"github.com/riftbound/script-runtime/ecs"
	"github.com/riftbound/script-runtime/errors"
)

// Slot is the per-entity script record: the module/class it was built from,
// the constructor arguments, and the live object reference inside the VM.
type Slot struct {
	Entity ecs.Entity
	Module string
	Class  string
	Args   []any

	rt     *Runtime
	object *goja.Object
}

// Attach imports the module, resolves the class and instantiates it with
// the entity handle prepended to args. The resulting object is held in the
// entity's script slot until Destroy or Close.
//
// At most one slot exists per entity. On any failure no slot is attached
// and the entity can be retried.
func (r *Runtime) Attach(e ecs.Entity, module, class string, args ...any) (*Slot, error) {
	if r.closed {
		return nil, errors.StaleReference("attach script")
	}
	if !r.world.Alive(e) {
		return nil, errors.DeadEntity(e.String())
	}
	if _, exists := r.slots[e]; exists {
		return nil, errors.DuplicateSlot(e.String())
	}

	ctorArgs := make([]goja.Value, 0, len(args)+1)
	ctorArgs = append(ctorArgs, r.engine.ToValue(e))
	for _, a := range args {
		ctorArgs = append(ctorArgs, r.engine.ToValue(a))
	}

	obj, err := r.engine.Instantiate(module, class, ctorArgs...)
	if err != nil {
		return nil, err
	}

	s := &Slot{
		Entity: e,
		Module: module,
		Class:  class,
		Args:   args,
		rt:     r,
		object: obj,
	}
	r.slots[e] = s
	r.order = append(r.order, s)

	r.log.Debug("script attached",
		zap.String("entity", e.String()),
		zap.String("module", module),
		zap.String("class", class))
	return s, nil
}

// SlotOf returns the entity's script slot, if any.
func (r *Runtime) SlotOf(e ecs.Entity) (*Slot, bool) {
	s, ok := r.slots[e]
	return s, ok
}

// Destroy drops the entity's script slot and releases the object
// reference. Destroying an entity without a slot is a no-op.
func (r *Runtime) Destroy(e ecs.Entity) {
	s, ok := r.slots[e]
	if !ok {
		return
	}
	r.release(s)
	for i, o := range r.order {
		if o == s {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
}

func (r *Runtime) release(s *Slot) {
	delete(r.slots, s.Entity)
	s.object = nil
}

// Attr reads a named attribute off the script object. Absence, a released
// slot and a closed runtime all report false.
func (s *Slot) Attr(name string) (goja.Value, bool) {
	if s.object == nil {
		return nil, false
	}
	return s.rt.engine.Attr(s.object, name)
}

// Invoke calls a named method on the script object with positional
// arguments. Invoking a released slot fails with a stale_reference error.
func (s *Slot) Invoke(name string, args ...any) (goja.Value, error) {
	if s.object == nil {
		return nil, errors.StaleReference("invoke " + name)
	}
	vals := make([]goja.Value, len(args))
	for i, a := range args {
		vals[i] = s.rt.engine.ToValue(a)
	}
	return s.rt.engine.Call(s.object, name, vals...)
}

// hook returns true when the named attribute exists and is truthy on the
// script object. Checked immediately before every hook invocation; presence
// is never assumed.
func (s *Slot) hook(name string) bool {
	v, ok := s.Attr(name)
	return ok && s.rt.engine.Truthy(v)
}

// live reports whether the slot is still registered with its runtime.
// A hook may destroy slots while a delivery loop iterates a snapshot.
func (s *Slot) live() bool {
	cur, ok := s.rt.slots[s.Entity]
	return ok && cur == s
}

// reapDead releases the slot when its entity is no longer alive. Slot
// lifetime is bounded by entity lifetime; entity destruction is detected
// lazily on the next update or delivery pass.
func (r *Runtime) reapDead(s *Slot) bool {
	if r.world.Alive(s.Entity) {
		return false
	}
	r.Destroy(s.Entity)
	return true
}
