package ecs

import "testing"

func TestWorld_CreateRemove(t *testing.T) {
	w := NewWorld(4)

	a := w.Create()
	b := w.Create()
	if !w.Alive(a) || !w.Alive(b) {
		t.Fatal("freshly created entities should be alive")
	}
	if w.Len() != 2 {
		t.Fatalf("Len = %d, want 2", w.Len())
	}

	w.Remove(a)
	if w.Alive(a) {
		t.Error("removed entity still alive")
	}
	if !w.Alive(b) {
		t.Error("unrelated entity died")
	}

	// ID reuse must bump the version so the old handle stays dead
	c := w.Create()
	if c.ID != a.ID {
		t.Fatalf("expected ID %d to be recycled, got %d", a.ID, c.ID)
	}
	if c.Version == a.Version {
		t.Error("recycled ID kept the old version")
	}
	if w.Alive(a) {
		t.Error("stale handle became alive after ID reuse")
	}
}

func TestWorld_EntitiesOrder(t *testing.T) {
	w := NewWorld(4)
	a := w.Create()
	b := w.Create()
	c := w.Create()
	w.Remove(b)

	got := w.Entities()
	want := []Entity{a, c}
	if len(got) != len(want) {
		t.Fatalf("Entities = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Entities[%d] = %v, want %v", i, got[i], want[i])
		}
	}
}

func TestComponent_SharedPointer(t *testing.T) {
	w := NewWorld(4)
	e := w.Create()

	if _, ok := Get[*Position](w, e); ok {
		t.Fatal("Get on unassigned slot should report absent")
	}

	pos := &Position{X: 2, Y: 3}
	Set(w, e, pos)

	got, ok := Get[*Position](w, e)
	if !ok {
		t.Fatal("component missing after Set")
	}
	if got != pos {
		t.Error("Get returned a different instance than was assigned")
	}

	got.X = 9
	if pos.X != 9 {
		t.Error("mutation through the fetched pointer not visible on the original")
	}
}

func TestComponent_DeadEntity(t *testing.T) {
	w := NewWorld(4)
	e := w.Create()
	Set(w, e, &Position{X: 1})
	w.Remove(e)

	if _, ok := Get[*Position](w, e); ok {
		t.Error("component survived entity removal")
	}
	Set(w, e, &Position{X: 2}) // no-op on dead handle
	if _, ok := Get[*Position](w, e); ok {
		t.Error("Set on dead handle stored a component")
	}
}
