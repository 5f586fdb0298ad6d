package ecscore

import "testing"

// TestSeedQueryMembership is scenario S1: required-only membership and a
// disqualify on component removal.
func TestSeedQueryMembership(t *testing.T) {
	w := Factory.NewWorld(8)
	a, err := NewComponentBuilder("a").Field("x", Int16Field(0)).Build()
	if err != nil {
		t.Fatalf("building a: %v", err)
	}
	b, err := NewComponentBuilder("b").Field("flag", BoolField(false)).Build()
	if err != nil {
		t.Fatalf("building b: %v", err)
	}
	if err := w.RegisterComponent(a); err != nil {
		t.Fatalf("registering a: %v", err)
	}
	if err := w.RegisterComponent(b); err != nil {
		t.Fatalf("registering b: %v", err)
	}

	q, err := w.RegisterQuery(QueryPredicate{Required: []*ComponentDefinition{a}})
	if err != nil {
		t.Fatalf("registering query: %v", err)
	}
	var disqualified []Entity
	q.OnDisqualify(func(e Entity) { disqualified = append(disqualified, e) })

	e1 := spawn(t, w, a)
	e2 := spawn(t, w, a)
	e3 := spawn(t, w, a, b)

	assertSameSet(t, q.Entities(), []Entity{e1, e2, e3})

	if err := e2.RemoveComponent(a); err != nil {
		t.Fatalf("removing a from e2: %v", err)
	}
	assertSameSet(t, q.Entities(), []Entity{e1, e3})
	if len(disqualified) != 1 || disqualified[0].Index != e2.Index {
		t.Fatalf("expected exactly one disqualify(e2), got %v", disqualified)
	}
}

// TestSeedQueryExcluded is scenario S2.
func TestSeedQueryExcluded(t *testing.T) {
	w := Factory.NewWorld(8)
	a, _ := NewComponentBuilder("a").Field("x", Int16Field(0)).Build()
	b, _ := NewComponentBuilder("b").Field("flag", BoolField(false)).Build()
	if err := w.RegisterComponent(a); err != nil {
		t.Fatalf("registering a: %v", err)
	}
	if err := w.RegisterComponent(b); err != nil {
		t.Fatalf("registering b: %v", err)
	}

	q, err := w.RegisterQuery(QueryPredicate{
		Required: []*ComponentDefinition{a},
		Excluded: []*ComponentDefinition{b},
	})
	if err != nil {
		t.Fatalf("registering query: %v", err)
	}

	e1 := spawn(t, w, a)
	e2 := spawn(t, w, a)
	spawn(t, w, a, b)

	assertSameSet(t, q.Entities(), []Entity{e1, e2})

	if err := e2.AddComponent(b, nil); err != nil {
		t.Fatalf("adding b to e2: %v", err)
	}
	assertSameSet(t, q.Entities(), []Entity{e1})
}

// TestSeedValuePredicate is scenario S3.
func TestSeedValuePredicate(t *testing.T) {
	w := Factory.NewWorld(8)
	a, _ := NewComponentBuilder("a").Field("x", Int16Field(0)).Build()
	if err := w.RegisterComponent(a); err != nil {
		t.Fatalf("registering a: %v", err)
	}

	q, err := w.RegisterQuery(QueryPredicate{
		Required: []*ComponentDefinition{a},
		Where: []ValuePredicate{
			{Component: a, Field: "x", Operator: OpGt, Expected: int16(10)},
		},
	})
	if err != nil {
		t.Fatalf("registering query: %v", err)
	}

	values := []int16{5, 10, 11, 50}
	entities := make([]Entity, len(values))
	for i, v := range values {
		e, err := w.CreateEntity()
		if err != nil {
			t.Fatalf("creating entity %d: %v", i, err)
		}
		if err := e.AddComponent(a, map[string]any{"x": v}); err != nil {
			t.Fatalf("adding a to entity %d: %v", i, err)
		}
		entities[i] = e
	}

	assertSameSet(t, q.Entities(), []Entity{entities[2], entities[3]})

	if err := entities[0].SetValue(a, "x", int16(100)); err != nil {
		t.Fatalf("setValue: %v", err)
	}
	assertSameSet(t, q.Entities(), []Entity{entities[2], entities[3]})

	if err := entities[0].RemoveComponent(a); err != nil {
		t.Fatalf("removing a: %v", err)
	}
	if err := entities[0].AddComponent(a, map[string]any{"x": int16(100)}); err != nil {
		t.Fatalf("re-adding a: %v", err)
	}
	assertSameSet(t, q.Entities(), []Entity{entities[0], entities[2], entities[3]})
}

// TestSeedVectorView is scenario S4.
func TestSeedVectorView(t *testing.T) {
	w := Factory.NewWorld(4)
	p, err := NewComponentBuilder("p").
		Field("pos", Vec3Field([3]float32{0, 0, 0})).
		Build()
	if err != nil {
		t.Fatalf("building p: %v", err)
	}
	if err := w.RegisterComponent(p); err != nil {
		t.Fatalf("registering p: %v", err)
	}

	e := spawn(t, w, p)
	view, err := e.GetVectorView(p, "pos")
	if err != nil {
		t.Fatalf("getVectorView: %v", err)
	}
	if view.Len() != 3 {
		t.Fatalf("view length = %d, want 3", view.Len())
	}
	if err := view.SetAll([]float32{1, 2, 3}); err != nil {
		t.Fatalf("SetAll: %v", err)
	}

	got, err := e.GetValue(p, "pos")
	if err != nil {
		t.Fatalf("getValue: %v", err)
	}
	if got.([3]float32) != [3]float32{1, 2, 3} {
		t.Fatalf("pos = %v, want [1 2 3]", got)
	}

	if err := e.RemoveComponent(p); err != nil {
		t.Fatalf("removeComponent: %v", err)
	}
	if _, err := view.At(0); err == nil {
		t.Fatalf("expected dropped view to error on access")
	}
}

type traceSystem struct {
	name     string
	priority int
}

func (s *traceSystem) Name() string                      { return s.name }
func (s *traceSystem) Priority() int                      { return s.priority }
func (s *traceSystem) Schema() []SchemaField              { return nil }
func (s *traceSystem) Queries() map[string]QueryPredicate { return nil }
func (s *traceSystem) Init(ctx *SystemContext) error      { return nil }
func (s *traceSystem) Destroy(ctx *SystemContext) error   { return nil }

func (s *traceSystem) Update(ctx *SystemContext, delta, time float64) error {
	trace, _ := ctx.World.Globals()["trace"].([]string)
	ctx.World.Globals()["trace"] = append(trace, s.name)
	return nil
}

// TestSeedScheduling is scenario S5.
func TestSeedScheduling(t *testing.T) {
	w := Factory.NewWorld(1)
	if err := w.RegisterSystem(&traceSystem{name: "S_hi"}, 0); err != nil {
		t.Fatalf("registering S_hi: %v", err)
	}
	if err := w.RegisterSystem(&traceSystem{name: "S_lo"}, 10); err != nil {
		t.Fatalf("registering S_lo: %v", err)
	}

	if err := w.Update(0, 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	trace := w.Globals()["trace"].([]string)
	assertStringSlice(t, trace, []string{"S_hi", "S_lo"})

	w.Stop("S_hi")
	if err := w.Update(0, 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	trace = w.Globals()["trace"].([]string)
	assertStringSlice(t, trace, []string{"S_hi", "S_lo", "S_lo"})
}

// TestRegisterSystemInheritsPriority verifies that omitting an explicit
// priority falls back to the system's own Priority().
func TestRegisterSystemInheritsPriority(t *testing.T) {
	w := Factory.NewWorld(1)
	if err := w.RegisterSystem(&traceSystem{name: "S_lo", priority: 10}); err != nil {
		t.Fatalf("registering S_lo: %v", err)
	}
	if err := w.RegisterSystem(&traceSystem{name: "S_hi", priority: 0}); err != nil {
		t.Fatalf("registering S_hi: %v", err)
	}

	if err := w.Update(0, 0); err != nil {
		t.Fatalf("update: %v", err)
	}
	trace := w.Globals()["trace"].([]string)
	assertStringSlice(t, trace, []string{"S_hi", "S_lo"})
}

// TestSeedSlotRecycling is scenario S6.
func TestSeedSlotRecycling(t *testing.T) {
	w := Factory.NewWorld(2)
	e1, err := w.CreateEntity()
	if err != nil {
		t.Fatalf("creating e1: %v", err)
	}
	if err := e1.Destroy(); err != nil {
		t.Fatalf("destroying e1: %v", err)
	}
	e2, err := w.CreateEntity()
	if err != nil {
		t.Fatalf("creating e2: %v", err)
	}

	if e2.Index != e1.Index {
		t.Fatalf("e2.Index = %d, want %d", e2.Index, e1.Index)
	}
	if e2.Generation != e1.Generation+1 {
		t.Fatalf("e2.Generation = %d, want %d", e2.Generation, e1.Generation+1)
	}
	if !maskEmpty(e2.Bitmask()) {
		t.Fatalf("expected e2's bitmask to be empty")
	}

	slot := w.entities.slots.slot(e1.Index)
	if slot.generation != e2.Generation {
		t.Fatalf("slot table index %d resolves to generation %d, want %d", e1.Index, slot.generation, e2.Generation)
	}
}

func assertSameSet(t *testing.T, got, want []Entity) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d entities %v, want %d %v", len(got), got, len(want), want)
	}
	index := make(map[int]bool, len(want))
	for _, e := range want {
		index[e.Index] = true
	}
	for _, e := range got {
		if !index[e.Index] {
			t.Fatalf("unexpected entity %v in result, want %v", got, want)
		}
	}
}

func assertStringSlice(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %v, want %v", got, want)
	}
	for i := range got {
		if got[i] != want[i] {
			t.Fatalf("got %v, want %v", got, want)
		}
	}
}
