package ecs

import "fmt"

// Entity represents a unique entity in the world.
type Entity struct {
	ID      uint32 `js:"id"`      // unique, recyclable identifier
	Version uint32 `js:"version"` // generation counter, protects against stale handles
}

// String renders the handle as id'v'version, e.g. "3v1".
func (e Entity) String() string {
	return fmt.Sprintf("%dv%d", e.ID, e.Version)
}
