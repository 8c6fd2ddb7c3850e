package ecs

import "reflect"

// entityMeta holds the internal state of an entity slot.
// version is 0 while the slot is dead.
type entityMeta struct {
	version uint32
}

// World owns entity handles and per-type component pools.
// It is not safe for concurrent use.
type World struct {
	metas   []entityMeta
	freeIDs []uint32
	order   []Entity
	pools   map[reflect.Type]map[Entity]any
	nextVer uint32
}

// NewWorld creates a world with capacity pre-allocated for cap entities.
func NewWorld(cap int) *World {
	w := &World{
		metas:   make([]entityMeta, 0, cap),
		order:   make([]Entity, 0, cap),
		pools:   make(map[reflect.Type]map[Entity]any),
		nextVer: 1,
	}
	return w
}

// Create allocates a new live entity, reusing a destroyed ID when one is free.
func (w *World) Create() Entity {
	var id uint32
	if n := len(w.freeIDs); n > 0 {
		id = w.freeIDs[n-1]
		w.freeIDs = w.freeIDs[:n-1]
	} else {
		id = uint32(len(w.metas))
		w.metas = append(w.metas, entityMeta{})
	}
	w.metas[id].version = w.nextVer
	w.nextVer++
	e := Entity{ID: id, Version: w.metas[id].version}
	w.order = append(w.order, e)
	return e
}

// Remove destroys the entity and drops all its components.
// Removing a dead or stale handle is a no-op.
func (w *World) Remove(e Entity) {
	if !w.Alive(e) {
		return
	}
	for _, pool := range w.pools {
		delete(pool, e)
	}
	w.metas[e.ID].version = 0
	w.freeIDs = append(w.freeIDs, e.ID)
	for i, o := range w.order {
		if o == e {
			w.order = append(w.order[:i], w.order[i+1:]...)
			break
		}
	}
}

// Alive reports whether the handle refers to a live entity.
func (w *World) Alive(e Entity) bool {
	return int(e.ID) < len(w.metas) && w.metas[e.ID].version != 0 && w.metas[e.ID].version == e.Version
}

// Len returns the number of live entities.
func (w *World) Len() int {
	return len(w.order)
}

// Entities returns the live entities in creation order. The returned slice
// is a copy; callers may create or destroy entities while ranging over it.
func (w *World) Entities() []Entity {
	out := make([]Entity, len(w.order))
	copy(out, w.order)
	return out
}
