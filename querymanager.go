package ecscore

import "github.com/TheBitDrifter/bark"

// Query is a live, incrementally-maintained membership set over a
// QueryPredicate. Handles returned by RegisterQuery are shared
// by every caller that registers an equivalent predicate.
type Query struct {
	id            string
	requiredMask  ComponentMask
	excludedMask  ComponentMask
	predicates    []ValuePredicate
	entities      []Entity
	position      map[int]int
	qualifySubs   []func(Entity)
	disqualifySub []func(Entity)
	world         *World
}

// ID returns the query's canonical identity, stable across equivalent
// registrations regardless of required/excluded/where ordering.
func (q *Query) ID() string { return q.id }

// Entities returns the current membership set. The returned slice is a
// copy; mutating it does not affect the query.
func (q *Query) Entities() []Entity {
	out := make([]Entity, len(q.entities))
	copy(out, q.entities)
	return out
}

func (q *Query) contains(index int) bool {
	_, ok := q.position[index]
	return ok
}

func (q *Query) insert(e Entity) {
	if q.contains(e.Index) {
		return
	}
	q.position[e.Index] = len(q.entities)
	q.entities = append(q.entities, e)
}

func (q *Query) remove(index int) {
	pos, ok := q.position[index]
	if !ok {
		return
	}
	last := len(q.entities) - 1
	for i := pos; i < last; i++ {
		q.entities[i] = q.entities[i+1]
		q.position[q.entities[i].Index] = i
	}
	q.entities = q.entities[:last]
	delete(q.position, index)
}

// OnQualify registers a callback fired when an entity enters the query's
// membership set, returning an unsubscribe function.
func (q *Query) OnQualify(fn func(Entity)) func() {
	q.qualifySubs = append(q.qualifySubs, fn)
	idx := len(q.qualifySubs) - 1
	return func() { q.qualifySubs[idx] = nil }
}

// OnDisqualify registers a callback fired when an entity leaves the
// query's membership set, returning an unsubscribe function.
func (q *Query) OnDisqualify(fn func(Entity)) func() {
	q.disqualifySub = append(q.disqualifySub, fn)
	idx := len(q.disqualifySub) - 1
	return func() { q.disqualifySub[idx] = nil }
}

func (q *Query) fireQualify(e Entity) {
	for _, fn := range q.qualifySubs {
		if fn != nil {
			fn(e)
		}
	}
}

func (q *Query) fireDisqualify(e Entity) {
	for _, fn := range q.disqualifySub {
		if fn != nil {
			fn(e)
		}
	}
}

// matches evaluates the query's mask and value predicates against e's
// current live state. A destroyed or stale-generation entity never
// matches.
func (q *Query) matches(e Entity) bool {
	slot := q.world.entities.slots.slot(e.Index)
	if slot == nil || !slot.active || slot.generation != e.Generation {
		return false
	}
	if !maskContains(slot.bitmask, q.requiredMask) {
		return false
	}
	if !maskEmpty(q.excludedMask) && maskIntersects(slot.bitmask, q.excludedMask) {
		return false
	}
	for _, p := range q.predicates {
		if p.Component == nil || !maskContains(slot.bitmask, p.Component.bitmask) {
			return false
		}
		actual, err := p.Component.storage.getRaw(e.Index, p.Field)
		if err != nil {
			return false
		}
		if !evaluate(p.Operator, actual, p.Expected) {
			return false
		}
	}
	return true
}

// queryManager deduplicates query registrations by canonical id and keeps
// a reverse index from component typeId to the queries that reference it,
// so updateEntity only re-evaluates queries that could plausibly change.
type queryManager struct {
	cache       Cache[*Query]
	byComponent map[int][]*Query
	all         []*Query
	world       *World
}

func newQueryManager(world *World) *queryManager {
	return &queryManager{
		cache:       FactoryNewCache[*Query](4096),
		byComponent: make(map[int][]*Query),
		world:       world,
	}
}

// registerQuery returns the existing Query for an equivalent predicate, or
// builds and seeds a new one against every currently live entity.
func (m *queryManager) registerQuery(pred QueryPredicate) (*Query, error) {
	id, reqMask, excMask, err := canonicalize(pred)
	if err != nil {
		return nil, bark.AddTrace(err)
	}
	if idx, ok := m.cache.GetIndex(id); ok {
		return *m.cache.GetItem(idx), nil
	}

	q := &Query{
		id:           id,
		requiredMask: reqMask,
		excludedMask: excMask,
		predicates:   pred.Where,
		position:     make(map[int]int),
		world:        m.world,
	}

	slots := m.world.entities.slots
	for i := 0; i < slots.count; i++ {
		slot := &slots.slots[i]
		if !slot.active {
			continue
		}
		e := Entity{Index: slot.index, Generation: slot.generation, world: m.world}
		if q.matches(e) {
			q.insert(e)
		}
	}

	if _, err := m.cache.Register(id, q); err != nil {
		return nil, bark.AddTrace(err)
	}
	m.all = append(m.all, q)

	seen := map[int]bool{}
	for _, c := range pred.Required {
		if !seen[c.typeID] {
			seen[c.typeID] = true
			m.byComponent[c.typeID] = append(m.byComponent[c.typeID], q)
		}
	}
	for _, c := range pred.Excluded {
		if !seen[c.typeID] {
			seen[c.typeID] = true
			m.byComponent[c.typeID] = append(m.byComponent[c.typeID], q)
		}
	}
	for _, p := range pred.Where {
		if p.Component != nil && !seen[p.Component.typeID] {
			seen[p.Component.typeID] = true
			m.byComponent[p.Component.typeID] = append(m.byComponent[p.Component.typeID], q)
		}
	}

	return q, nil
}

// updateEntity re-evaluates every query indexed against changed (or every
// registered query when changed is nil) for e, firing qualify/disqualify
// transitions.
func (m *queryManager) updateEntity(e Entity, changed *ComponentDefinition) {
	slot := m.world.entities.slots.slot(e.Index)
	if slot != nil && maskEmpty(slot.bitmask) {
		for _, q := range m.all {
			if q.contains(e.Index) {
				q.remove(e.Index)
				q.fireDisqualify(e)
			}
		}
		return
	}

	var affected []*Query
	if changed != nil {
		affected = m.byComponent[changed.typeID]
	} else {
		affected = m.all
	}
	for _, q := range affected {
		m.reconcile(q, e)
	}
}

func (m *queryManager) reconcile(q *Query, e Entity) {
	should := q.matches(e)
	is := q.contains(e.Index)
	switch {
	case should && !is:
		q.insert(e)
		q.fireQualify(e)
	case !should && is:
		q.remove(e.Index)
		q.fireDisqualify(e)
	}
}

// resetEntity removes e from every query it currently belongs to, used by
// entityManager.destroy before the slot is released.
func (m *queryManager) resetEntity(e Entity) {
	slot := m.world.entities.slots.slot(e.Index)
	if slot == nil {
		return
	}
	if maskEmpty(slot.bitmask) {
		for _, q := range m.all {
			if q.contains(e.Index) {
				q.remove(e.Index)
				q.fireDisqualify(e)
			}
		}
		return
	}
	processed := map[string]bool{}
	eachSetBit(slot.bitmask, func(typeID int) {
		for _, q := range m.byComponent[typeID] {
			if processed[q.id] {
				continue
			}
			processed[q.id] = true
			if q.contains(e.Index) {
				q.remove(e.Index)
				q.fireDisqualify(e)
			}
		}
	})
	// A query with no required component is not reachable through e's
	// bits alone (it may be indexed under nothing, or only under an
	// excluded component e lacks), so check those directly.
	for _, q := range m.all {
		if processed[q.id] || !maskEmpty(q.requiredMask) {
			continue
		}
		if q.contains(e.Index) {
			q.remove(e.Index)
			q.fireDisqualify(e)
		}
	}
}

func (m *queryManager) byID(id string) (*Query, bool) {
	idx, ok := m.cache.GetIndex(id)
	if !ok {
		return nil, false
	}
	return *m.cache.GetItem(idx), true
}
