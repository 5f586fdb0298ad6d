/*
Package ecscore provides the data-oriented core of an Entity-Component-System
runtime for games and simulations.

Component data lives in columnar per-field storage indexed by entity slot.
Entities are opaque (index, generation) handles carrying a component
bitmask. Queries are registered structural predicates maintained as live
result sets via incremental bitmask matching, with synchronous
qualify/disqualify subscriptions. Systems are priority-ordered update units
driven once per tick by an externally supplied (delta, time) pair.

Core Concepts:

  - Entity: an opaque handle representing a game object.
  - Component: a named field schema plus columnar storage, identified at
    runtime by a dense typeId.
  - Query: a registered predicate over required/excluded components and
    optional value filters, maintained as a live entity set.
  - System: a priority-ordered per-tick behavior unit with its own reactive
    configuration.

Basic Usage:

	world := ecscore.Factory.NewWorld(1024)

	position, _ := ecscore.NewComponentBuilder("position").
		Field("x", ecscore.Float64Field(0)).
		Field("y", ecscore.Float64Field(0)).
		Build()
	world.RegisterComponent(position)

	e, _ := world.CreateEntity()
	e.AddComponent(position, nil)

	q, _ := world.RegisterQuery(ecscore.QueryPredicate{
		Required: []*ecscore.ComponentDefinition{position},
	})

	world.RegisterSystem(&moveSystem{}, 0)
	world.Update(1.0/60.0, 0)

ecscore is the engine underneath a larger simulation framework but also
works as a standalone library.
*/
package ecscore
