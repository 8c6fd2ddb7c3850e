// Package ecs provides the entity store and event bus the scripting layer
// is built against.
//
// The store is deliberately narrow: create and destroy entities, assign and
// query components by type, iterate live entities in creation order. Entities
// are opaque {ID, Version} handles; the version guards against stale handles
// to recycled IDs.
//
// Component pools are keyed by Go type and hold values as-is, so a pointer
// component (such as *Position) is shared by everyone who reads it. That is
// the property the script bridge relies on: the native store and the script
// wrapper resolve to one instance.
//
//	w := ecs.NewWorld(64)
//	e := w.Create()
//	ecs.Set(w, e, &ecs.Position{X: 2, Y: 3})
//	pos, ok := ecs.Get[*ecs.Position](w, e)
//
// The EventBus delivers typed events synchronously in subscription order.
// Handlers return an error; Publish stops at the first failing handler and
// returns its error to the emitter.
package ecs
