package runtime

import (
	stderrors "errors"
	"testing"

	"github.com/riftbound/script-runtime/ecs"
	"github.com/riftbound/script-runtime/errors"
)

func newTestRuntime(t *testing.T) (*Runtime, *ecs.World, *ecs.EventBus) {
	t.Helper()
	world := ecs.NewWorld(16)
	bus := ecs.NewEventBus()
	rt, err := New(world, bus, Config{SearchPaths: []string{"testdata"}})
	if err != nil {
		t.Fatalf("create runtime: %v", err)
	}
	t.Cleanup(rt.Close)
	return rt, world, bus
}

func attrBool(t *testing.T, s *Slot, name string) bool {
	t.Helper()
	v, ok := s.Attr(name)
	return ok && v.ToBoolean()
}

func TestUpdateCallsEntityUpdate(t *testing.T) {
	rt, world, _ := newTestRuntime(t)

	e := world.Create()
	script, err := rt.Attach(e, "update_test", "UpdateTest")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}
	if attrBool(t, script, "updated") {
		t.Fatal("updated should start false")
	}

	if err := rt.Update(0.1); err != nil {
		t.Fatalf("update: %v", err)
	}

	if !attrBool(t, script, "updated") {
		t.Error("update hook did not run")
	}
	if dt, _ := script.Attr("dt"); dt.ToFloat() != 0.1 {
		t.Errorf("dt = %v, want 0.1 passed through unmodified", dt)
	}
}

func TestUpdateSkipsEntitiesWithoutHook(t *testing.T) {
	rt, world, _ := newTestRuntime(t)

	withHook := world.Create()
	withoutHook := world.Create()
	world.Create() // entity with no script slot at all

	script, err := rt.Attach(withHook, "update_test", "UpdateTest")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := rt.Attach(withoutHook, "update_test", "NoUpdate"); err != nil {
		t.Fatal(err)
	}

	if err := rt.Update(0.05); err != nil {
		t.Fatalf("update with hookless entities: %v", err)
	}
	if !attrBool(t, script, "updated") {
		t.Error("eligible entity was skipped")
	}
}

func TestComponentAssignmentCreationInScript(t *testing.T) {
	rt, world, _ := newTestRuntime(t)

	e := world.Create()
	script, err := rt.Attach(e, "assign_test", "AssignTest")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}

	if _, ok := ecs.Get[*ecs.Position](world, e); ok {
		t.Fatal("position exists before the script assigned one")
	}

	if _, err := script.Invoke("test_assign_create"); err != nil {
		t.Fatalf("test_assign_create: %v", err)
	}

	pos, ok := ecs.Get[*ecs.Position](world, e)
	if !ok {
		t.Fatal("script-assigned position not visible natively")
	}
	if pos.X != 1.0 || pos.Y != 2.0 {
		t.Errorf("position = (%v, %v), want (1, 2)", pos.X, pos.Y)
	}
}

func TestComponentAssignmentCreationInNative(t *testing.T) {
	rt, world, _ := newTestRuntime(t)

	e := world.Create()
	ecs.Set(world, e, &ecs.Position{X: 2, Y: 3})

	script, err := rt.Attach(e, "assign_test", "AssignTest")
	if err != nil {
		t.Fatalf("attach: %v", err)
	}

	if _, err := script.Invoke("test_assign_existing"); err != nil {
		t.Fatalf("test_assign_existing: %v", err)
	}

	pos, ok := ecs.Get[*ecs.Position](world, e)
	if !ok {
		t.Fatal("position lost after script mutation")
	}
	if pos.X != 3.0 || pos.Y != 4.0 {
		t.Errorf("position = (%v, %v), want (3, 4)", pos.X, pos.Y)
	}
}

func TestSharedComponentNoCopyDivergence(t *testing.T) {
	rt, world, _ := newTestRuntime(t)

	e := world.Create()
	pos := &ecs.Position{X: 2, Y: 3}
	ecs.Set(world, e, pos)

	script, err := rt.Attach(e, "assign_test", "AssignTest")
	if err != nil {
		t.Fatal(err)
	}

	// native mutation after attach is visible from script without refetching natively
	pos.X = 7
	x, err := script.Invoke("read_x")
	if err != nil {
		t.Fatalf("read_x: %v", err)
	}
	if x.ToFloat() != 7 {
		t.Errorf("script sees x = %v, want 7 (same instance, not a copy)", x.ToFloat())
	}
}

func TestEntityConstructorArgs(t *testing.T) {
	rt, world, _ := newTestRuntime(t)

	e := world.Create()
	if _, err := rt.Attach(e, "constructor_test", "ConstructorTest", 4.0, 5.0); err != nil {
		t.Fatalf("attach: %v", err)
	}

	// a mutation performed inside the constructor is observable immediately
	pos, ok := ecs.Get[*ecs.Position](world, e)
	if !ok {
		t.Fatal("constructor-assigned position missing")
	}
	if pos.X != 4.0 || pos.Y != 5.0 {
		t.Errorf("position = (%v, %v), want args (4, 5) in supplied order", pos.X, pos.Y)
	}
}

func TestEventDelivery(t *testing.T) {
	rt, world, bus := newTestRuntime(t)

	f := world.Create()
	e := world.Create()
	g := world.Create() // no script slot

	scripte, err := rt.Attach(e, "event_test", "EventTest")
	if err != nil {
		t.Fatal(err)
	}
	scriptf, err := rt.Attach(f, "event_test", "EventTest")
	if err != nil {
		t.Fatal(err)
	}

	if attrBool(t, scripte, "collided") || attrBool(t, scriptf, "collided") {
		t.Fatal("collided should start false")
	}

	if err := ecs.Publish(bus, ecs.Collision{A: f, B: g}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !attrBool(t, scriptf, "collided") {
		t.Error("participant f did not receive the event")
	}
	if attrBool(t, scripte, "collided") {
		t.Error("non-participant e received the event")
	}

	if err := ecs.Publish(bus, ecs.Collision{A: e, B: f}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if !attrBool(t, scripte, "collided") {
		t.Error("participant e did not receive the second event")
	}
	if !attrBool(t, scriptf, "collided") {
		t.Error("f lost its state after the second event")
	}
	if n, _ := scriptf.Attr("collisions"); n.ToInteger() != 2 {
		t.Errorf("f received %v collisions, want 2 (proxies keep no reset state)", n.ToInteger())
	}
}

func TestEventCarriesParticipants(t *testing.T) {
	rt, world, bus := newTestRuntime(t)

	a := world.Create()
	b := world.Create()
	script, err := rt.Attach(a, "event_test", "EventTest")
	if err != nil {
		t.Fatal(err)
	}

	if err := ecs.Publish(bus, ecs.Collision{A: a, B: b}); err != nil {
		t.Fatal(err)
	}
	if lastA, _ := script.Attr("last_a"); uint32(lastA.ToInteger()) != a.ID {
		t.Errorf("event.a.id = %v, want %d", lastA, a.ID)
	}
	if lastB, _ := script.Attr("last_b"); uint32(lastB.ToInteger()) != b.ID {
		t.Errorf("event.b.id = %v, want %d", lastB, b.ID)
	}
}

func TestAttachFailuresLeaveNoSlot(t *testing.T) {
	rt, world, _ := newTestRuntime(t)
	e := world.Create()

	if _, err := rt.Attach(e, "no_such_module", "Whatever"); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseImport, Kind: errors.KindImportFailure}) {
		t.Errorf("missing module error = %v", err)
	}
	if _, err := rt.Attach(e, "update_test", "Missing"); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseResolve, Kind: errors.KindClassNotFound}) {
		t.Errorf("missing class error = %v", err)
	}
	if _, err := rt.Attach(e, "faulty", "Broken"); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConstruct, Kind: errors.KindConstructionFailure}) {
		t.Errorf("raising constructor error = %v", err)
	}

	if _, ok := rt.SlotOf(e); ok {
		t.Fatal("failed attach left partial state in the script slot")
	}

	// the entity is retryable and the VM unaffected
	if _, err := rt.Attach(e, "update_test", "UpdateTest"); err != nil {
		t.Fatalf("attach after failures: %v", err)
	}
}

func TestAttachDuplicateSlot(t *testing.T) {
	rt, world, _ := newTestRuntime(t)
	e := world.Create()

	if _, err := rt.Attach(e, "update_test", "UpdateTest"); err != nil {
		t.Fatal(err)
	}
	_, err := rt.Attach(e, "update_test", "UpdateTest")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConstruct, Kind: errors.KindDuplicateSlot}) {
		t.Errorf("error = %v, want duplicate_slot", err)
	}
}

func TestAttachDeadEntity(t *testing.T) {
	rt, world, _ := newTestRuntime(t)
	e := world.Create()
	world.Remove(e)

	_, err := rt.Attach(e, "update_test", "UpdateTest")
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseConstruct, Kind: errors.KindDeadEntity}) {
		t.Errorf("error = %v, want dead_entity", err)
	}
}

func TestUpdateHookFailurePropagates(t *testing.T) {
	rt, world, _ := newTestRuntime(t)

	bad := world.Create()
	if _, err := rt.Attach(bad, "faulty", "Faulty"); err != nil {
		t.Fatal(err)
	}

	err := rt.Update(0.1)
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseInvoke, Kind: errors.KindInvocationFailure}) {
		t.Fatalf("error = %v, want invocation_failure", err)
	}

	// one failure must not corrupt the next tick's delivery
	rt.Destroy(bad)
	good := world.Create()
	script, err := rt.Attach(good, "update_test", "UpdateTest")
	if err != nil {
		t.Fatal(err)
	}
	if err := rt.Update(0.1); err != nil {
		t.Fatalf("update after failure: %v", err)
	}
	if !attrBool(t, script, "updated") {
		t.Error("delivery corrupted by earlier failure")
	}
}

func TestEventHookFailurePropagatesToEmitter(t *testing.T) {
	rt, world, bus := newTestRuntime(t)

	bad := world.Create()
	if _, err := rt.Attach(bad, "faulty", "Faulty"); err != nil {
		t.Fatal(err)
	}

	err := ecs.Publish(bus, ecs.Collision{A: bad, B: world.Create()})
	if !stderrors.Is(err, &errors.Error{Phase: errors.PhaseInvoke, Kind: errors.KindInvocationFailure}) {
		t.Errorf("publish error = %v, want invocation_failure", err)
	}
}

func TestDestroyStopsDelivery(t *testing.T) {
	rt, world, bus := newTestRuntime(t)

	e := world.Create()
	script, err := rt.Attach(e, "event_test", "EventTest")
	if err != nil {
		t.Fatal(err)
	}

	rt.Destroy(e)
	if _, ok := rt.SlotOf(e); ok {
		t.Fatal("slot survived Destroy")
	}

	if err := ecs.Publish(bus, ecs.Collision{A: e, B: e}); err != nil {
		t.Fatalf("publish: %v", err)
	}
	if _, err := script.Invoke("on_collision"); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindStaleReference}) {
		t.Errorf("invoke on destroyed slot = %v, want stale_reference", err)
	}
}

func TestEntityRemovalReleasesSlotOnUpdate(t *testing.T) {
	rt, world, _ := newTestRuntime(t)

	dead := world.Create()
	live := world.Create()
	deadScript, err := rt.Attach(dead, "update_test", "UpdateTest")
	if err != nil {
		t.Fatal(err)
	}
	liveScript, err := rt.Attach(live, "update_test", "UpdateTest")
	if err != nil {
		t.Fatal(err)
	}

	world.Remove(dead)

	if err := rt.Update(0.1); err != nil {
		t.Fatalf("update after entity removal: %v", err)
	}
	if !attrBool(t, liveScript, "updated") {
		t.Error("live entity skipped alongside the dead one")
	}

	// the dead entity's slot is released, not invoked
	if _, ok := rt.SlotOf(dead); ok {
		t.Fatal("slot outlived its entity")
	}
	if _, err := deadScript.Invoke("update", 0.1); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindStaleReference}) {
		t.Errorf("invoke on dead entity's slot = %v, want stale_reference", err)
	}
}

func TestEntityRemovalStopsEventDelivery(t *testing.T) {
	rt, world, bus := newTestRuntime(t)

	gone := world.Create()
	stays := world.Create()
	if _, err := rt.Attach(gone, "event_test", "EventTest"); err != nil {
		t.Fatal(err)
	}
	script, err := rt.Attach(stays, "event_test", "EventTest")
	if err != nil {
		t.Fatal(err)
	}

	world.Remove(gone)

	if err := ecs.Publish(bus, ecs.Collision{A: gone, B: stays}); err != nil {
		t.Fatalf("publish with a destroyed participant: %v", err)
	}
	if !attrBool(t, script, "collided") {
		t.Error("surviving participant did not receive the event")
	}
	if _, ok := rt.SlotOf(gone); ok {
		t.Error("destroyed participant kept its slot through delivery")
	}
}

func TestShutdownReleasesScriptObjects(t *testing.T) {
	world := ecs.NewWorld(16)
	bus := ecs.NewEventBus()
	rt, err := New(world, bus, Config{SearchPaths: []string{"testdata"}})
	if err != nil {
		t.Fatal(err)
	}

	e := world.Create()
	script, err := rt.Attach(e, "update_test", "UpdateTest")
	if err != nil {
		t.Fatal(err)
	}

	rt.Close()
	rt.Close() // idempotent

	if _, err := script.Invoke("update", 0.1); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindStaleReference}) {
		t.Errorf("invoke after shutdown = %v, want stale_reference", err)
	}
	if err := rt.Update(0.1); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindStaleReference}) {
		t.Errorf("Update after shutdown = %v, want stale_reference", err)
	}
	if _, err := rt.Attach(world.Create(), "update_test", "UpdateTest"); !stderrors.Is(err, &errors.Error{Phase: errors.PhaseRuntime, Kind: errors.KindStaleReference}) {
		t.Errorf("Attach after shutdown = %v, want stale_reference", err)
	}

	// proxies are unsubscribed; publishing is harmless after shutdown
	if err := ecs.Publish(bus, ecs.Collision{A: e, B: e}); err != nil {
		t.Errorf("publish after shutdown: %v", err)
	}
}

func TestProxyCloseUnsubscribes(t *testing.T) {
	rt, world, bus := newTestRuntime(t)

	type nudge struct{ Target ecs.Entity }

	e := world.Create()
	script, err := rt.Attach(e, "event_test", "EventTest")
	if err != nil {
		t.Fatal(err)
	}

	proxy := AddProxy(rt, "on_collision", func(ev nudge, ent ecs.Entity) bool {
		return ent == ev.Target
	})

	if err := ecs.Publish(bus, nudge{Target: e}); err != nil {
		t.Fatal(err)
	}
	if n, _ := script.Attr("collisions"); n.ToInteger() != 1 {
		t.Fatalf("collisions = %v, want 1", n.ToInteger())
	}

	proxy.Close()
	if err := ecs.Publish(bus, nudge{Target: e}); err != nil {
		t.Fatal(err)
	}
	if n, _ := script.Attr("collisions"); n.ToInteger() != 1 {
		t.Error("closed proxy still delivered an event")
	}
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig("testdata/config.yaml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if len(cfg.SearchPaths) != 2 || cfg.SearchPaths[0] != "testdata" {
		t.Errorf("search paths = %v", cfg.SearchPaths)
	}

	if _, err := LoadConfig("testdata/nope.yaml"); err == nil {
		t.Error("expected error for missing config file")
	}
}
