package ecscore

import "testing"

func buildWorldWithComponents(t *testing.T) (*World, *ComponentDefinition, *ComponentDefinition, *ComponentDefinition) {
	t.Helper()
	w := Factory.NewWorld(64)

	position, err := NewComponentBuilder("position").
		Field("x", Float64Field(0)).
		Field("y", Float64Field(0)).
		Build()
	if err != nil {
		t.Fatalf("building position: %v", err)
	}
	velocity, err := NewComponentBuilder("velocity").
		Field("x", Float64Field(0)).
		Field("y", Float64Field(0)).
		Build()
	if err != nil {
		t.Fatalf("building velocity: %v", err)
	}
	health, err := NewComponentBuilder("health").
		Field("current", Int16Field(100)).
		Build()
	if err != nil {
		t.Fatalf("building health: %v", err)
	}

	for _, def := range []*ComponentDefinition{position, velocity, health} {
		if err := w.RegisterComponent(def); err != nil {
			t.Fatalf("registering %s: %v", def.ID, err)
		}
	}
	return w, position, velocity, health
}

func spawn(t *testing.T, w *World, defs ...*ComponentDefinition) Entity {
	t.Helper()
	e, err := w.CreateEntity()
	if err != nil {
		t.Fatalf("creating entity: %v", err)
	}
	for _, def := range defs {
		if err := e.AddComponent(def, nil); err != nil {
			t.Fatalf("adding %s: %v", def.ID, err)
		}
	}
	return e
}

// TestQueryMatching exercises required/excluded mask matching and
// where-clause value predicate filtering across several predicate shapes.
func TestQueryMatching(t *testing.T) {
	tests := []struct {
		name      string
		predicate func(position, velocity, health *ComponentDefinition) QueryPredicate
		setup     func(t *testing.T, w *World, position, velocity, health *ComponentDefinition) []Entity
	}{
		{
			name: "required only matches every superset",
			predicate: func(position, velocity, health *ComponentDefinition) QueryPredicate {
				return QueryPredicate{Required: []*ComponentDefinition{position}}
			},
			setup: func(t *testing.T, w *World, position, velocity, health *ComponentDefinition) []Entity {
				both := spawn(t, w, position, velocity)
				posOnly := spawn(t, w, position)
				spawn(t, w, velocity)
				spawn(t, w, health)
				return []Entity{both, posOnly}
			},
		},
		{
			name: "excluded narrows the required match",
			predicate: func(position, velocity, health *ComponentDefinition) QueryPredicate {
				return QueryPredicate{
					Required: []*ComponentDefinition{position},
					Excluded: []*ComponentDefinition{velocity},
				}
			},
			setup: func(t *testing.T, w *World, position, velocity, health *ComponentDefinition) []Entity {
				spawn(t, w, position, velocity)
				posOnly := spawn(t, w, position)
				spawn(t, w, velocity)
				return []Entity{posOnly}
			},
		},
		{
			name: "where clause filters by field value",
			predicate: func(position, velocity, health *ComponentDefinition) QueryPredicate {
				return QueryPredicate{
					Required: []*ComponentDefinition{health},
					Where: []ValuePredicate{
						{Component: health, Field: "current", Operator: OpGt, Expected: int16(0)},
					},
				}
			},
			setup: func(t *testing.T, w *World, position, velocity, health *ComponentDefinition) []Entity {
				alive := spawn(t, w, health)
				dead, err := w.CreateEntity()
				if err != nil {
					t.Fatalf("creating entity: %v", err)
				}
				if err := dead.AddComponent(health, map[string]any{"current": int16(0)}); err != nil {
					t.Fatalf("adding health: %v", err)
				}
				return []Entity{alive}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, position, velocity, health := buildWorldWithComponents(t)
			want := tt.setup(t, w, position, velocity, health)

			q, err := w.RegisterQuery(tt.predicate(position, velocity, health))
			if err != nil {
				t.Fatalf("registering query: %v", err)
			}

			got := q.Entities()
			if len(got) != len(want) {
				t.Fatalf("matched %d entities, want %d", len(got), len(want))
			}
			gotSet := make(map[int]bool, len(got))
			for _, e := range got {
				gotSet[e.Index] = true
			}
			for _, e := range want {
				if !gotSet[e.Index] {
					t.Errorf("expected entity %d to match, got %v", e.Index, got)
				}
			}
		})
	}
}

// TestQueryDeduplication verifies that two predicates that canonicalize
// identically share a single Query instance.
func TestQueryDeduplication(t *testing.T) {
	w, position, velocity, _ := buildWorldWithComponents(t)

	q1, err := w.RegisterQuery(QueryPredicate{Required: []*ComponentDefinition{position, velocity}})
	if err != nil {
		t.Fatalf("registering q1: %v", err)
	}
	q2, err := w.RegisterQuery(QueryPredicate{Required: []*ComponentDefinition{velocity, position}})
	if err != nil {
		t.Fatalf("registering q2: %v", err)
	}
	if q1 != q2 {
		t.Errorf("expected identical Query pointer for reordered required set")
	}
}

// TestQueryQualifyOnAdd verifies qualify fires once an entity satisfies a
// query's required set.
func TestQueryQualifyOnAdd(t *testing.T) {
	w, position, velocity, _ := buildWorldWithComponents(t)

	q, err := w.RegisterQuery(QueryPredicate{Required: []*ComponentDefinition{position, velocity}})
	if err != nil {
		t.Fatalf("registering query: %v", err)
	}

	var qualified []Entity
	q.OnQualify(func(e Entity) { qualified = append(qualified, e) })

	e := spawn(t, w, position)
	if len(q.Entities()) != 0 {
		t.Fatalf("entity with only position should not match yet")
	}

	if err := e.AddComponent(velocity, nil); err != nil {
		t.Fatalf("adding velocity: %v", err)
	}
	if len(qualified) != 1 || qualified[0].Index != e.Index {
		t.Fatalf("expected qualify callback after satisfying required set, got %v", qualified)
	}
	if len(q.Entities()) != 1 {
		t.Fatalf("expected entity in result set after qualifying")
	}
}

// TestQueryDisqualification verifies disqualify fires and the entity is
// dropped from the result set, across the mutations that can take an
// entity out of a query's required set.
func TestQueryDisqualification(t *testing.T) {
	tests := []struct {
		name    string
		trigger func(t *testing.T, e Entity, velocity *ComponentDefinition)
	}{
		{
			name: "removing the required component",
			trigger: func(t *testing.T, e Entity, velocity *ComponentDefinition) {
				if err := e.RemoveComponent(velocity); err != nil {
					t.Fatalf("removing velocity: %v", err)
				}
			},
		},
		{
			name: "destroying the entity",
			trigger: func(t *testing.T, e Entity, velocity *ComponentDefinition) {
				if err := e.Destroy(); err != nil {
					t.Fatalf("destroying entity: %v", err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, position, velocity, _ := buildWorldWithComponents(t)

			q, err := w.RegisterQuery(QueryPredicate{Required: []*ComponentDefinition{position, velocity}})
			if err != nil {
				t.Fatalf("registering query: %v", err)
			}

			var disqualified []Entity
			q.OnDisqualify(func(e Entity) { disqualified = append(disqualified, e) })

			e := spawn(t, w, position, velocity)
			if len(q.Entities()) != 1 {
				t.Fatalf("expected entity to qualify on spawn")
			}

			tt.trigger(t, e, velocity)

			if len(q.Entities()) != 0 {
				t.Fatalf("expected entity removed from result set")
			}
			if len(disqualified) != 1 || disqualified[0].Index != e.Index {
				t.Fatalf("expected disqualify callback, got %v", disqualified)
			}
		})
	}
}

// TestQueryEmptyBitmaskSweep verifies that an entity whose bitmask becomes
// empty is swept from every query's result set, including a predicate with
// an empty required/excluded set that was never indexed under any specific
// component.
func TestQueryEmptyBitmaskSweep(t *testing.T) {
	w, position, _, _ := buildWorldWithComponents(t)

	e := spawn(t, w, position)
	bare, err := w.CreateEntity()
	if err != nil {
		t.Fatalf("creating bare entity: %v", err)
	}

	everything, err := w.RegisterQuery(QueryPredicate{})
	if err != nil {
		t.Fatalf("registering unfiltered query: %v", err)
	}
	if len(everything.Entities()) != 2 {
		t.Fatalf("expected both live entities to seed the unfiltered query, got %d", len(everything.Entities()))
	}

	if err := e.RemoveComponent(position); err != nil {
		t.Fatalf("removing position: %v", err)
	}
	if len(everything.Entities()) != 1 {
		t.Fatalf("expected the emptied entity swept from the unfiltered query")
	}

	if err := bare.Destroy(); err != nil {
		t.Fatalf("destroying bare entity: %v", err)
	}
	if len(everything.Entities()) != 0 {
		t.Fatalf("expected the destroyed bare entity swept from the unfiltered query")
	}
}
