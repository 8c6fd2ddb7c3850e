package ecs

import "reflect"

// Position is the canonical shared component: a 2D coordinate whose storage
// is referenced identically from native code and script wrappers. It is
// always stored as *Position so mutation through either side is visible
// through the other.
type Position struct {
	X float64 `js:"x"`
	Y float64 `js:"y"`
}

// Set assigns the component of type T to the entity, adding it if not
// present. Assignment on a dead handle is a no-op.
func Set[T any](w *World, e Entity, val T) {
	if !w.Alive(e) {
		return
	}
	t := reflect.TypeOf((*T)(nil)).Elem()
	pool, ok := w.pools[t]
	if !ok {
		pool = make(map[Entity]any)
		w.pools[t] = pool
	}
	pool[e] = val
}

// Get returns the component of type T for the entity, or false if the
// entity is dead or has no such component. It never creates a component.
func Get[T any](w *World, e Entity) (T, bool) {
	var zero T
	if !w.Alive(e) {
		return zero, false
	}
	pool, ok := w.pools[reflect.TypeOf((*T)(nil)).Elem()]
	if !ok {
		return zero, false
	}
	v, ok := pool[e]
	if !ok {
		return zero, false
	}
	return v.(T), true
}

// RemoveComponent removes the component of type T from the entity if present.
func RemoveComponent[T any](w *World, e Entity) {
	if !w.Alive(e) {
		return
	}
	if pool, ok := w.pools[reflect.TypeOf((*T)(nil)).Elem()]; ok {
		delete(pool, e)
	}
}
