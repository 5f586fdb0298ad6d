package ecscore

import "github.com/TheBitDrifter/bark"

// World is the aggregate root owning a single entity/component/query
// universe: the slot table, the component registry, the query manager,
// and the system scheduler. All mutation must happen on the
// goroutine that created the World.
type World struct {
	entities   *entityManager
	components *componentManager
	queries    *queryManager
	scheduler  *systemScheduler
	globals    map[string]any
	capacity   int
}

func newWorld(capacity int) *World {
	w := &World{
		globals:  make(map[string]any),
		capacity: capacity,
	}
	w.entities = newEntityManager(w, capacity)
	w.components = newComponentManager(w, capacity)
	w.queries = newQueryManager(w)
	w.scheduler = newSystemScheduler(w)
	return w
}

// RegisterComponent assigns def a typeId and allocates its column
// storage. Fails with ComponentAlreadyRegistered on a duplicate id.
func (w *World) RegisterComponent(def *ComponentDefinition) error {
	return w.components.register(def)
}

// Component looks up a registered component by id.
func (w *World) Component(id string) (*ComponentDefinition, bool) {
	return w.components.byID(id)
}

// RegisterQuery materializes predicate into a live Query, seeded against
// every currently live entity and shared with any prior registration that
// canonicalizes identically.
func (w *World) RegisterQuery(predicate QueryPredicate) (*Query, error) {
	return w.queries.registerQuery(predicate)
}

// RegisterSystem instantiates sys's declared queries and reactive config,
// calls Init once, and inserts it into the ordered system list. priority is
// optional: pass an explicit value to override execution order, or omit it
// to inherit sys.Priority().
func (w *World) RegisterSystem(sys System, priority ...int) error {
	p := sys.Priority()
	if len(priority) > 0 {
		p = priority[0]
	}
	_, err := w.scheduler.registerSystem(sys, p)
	return err
}

// UnregisterSystem calls Destroy on the named system and removes it from
// the ordered list.
func (w *World) UnregisterSystem(name string) error {
	return w.scheduler.unregisterSystem(name)
}

// GetSystems returns the registered systems in current execution order.
func (w *World) GetSystems() []System {
	ordered := w.scheduler.ordered()
	out := make([]System, len(ordered))
	for i, e := range ordered {
		out[i] = e.system
	}
	return out
}

// Play clears the named system's paused flag.
func (w *World) Play(name string) {
	if e, ok := w.scheduler.get(name); ok {
		e.Play()
	}
}

// Stop sets the named system's paused flag, skipping it on future ticks.
func (w *World) Stop(name string) {
	if e, ok := w.scheduler.get(name); ok {
		e.Stop()
	}
}

// CreateEntity allocates a fresh Entity handle.
func (w *World) CreateEntity() (Entity, error) {
	return w.entities.requestEntity()
}

// Update runs one tick: every unpaused system's Update, in ascending
// priority order. A system error aborts the remainder of the tick and
// propagates to the caller.
func (w *World) Update(delta, time float64) error {
	return w.scheduler.tick(delta, time)
}

// Globals exposes the open string->value map shared by every system for
// cross-system state.
func (w *World) Globals() map[string]any {
	return w.globals
}

func (w *World) getValue(e Entity, c *ComponentDefinition, field string) (any, error) {
	if err := w.entities.checkLive(e); err != nil {
		return nil, err
	}
	if err := w.entities.checkRegistered(c); err != nil {
		return nil, err
	}
	raw, err := c.storage.getRaw(e.Index, field)
	if err != nil {
		return nil, bark.AddTrace(err)
	}
	if _, _, isEntity := fieldKind(c, field); isEntity {
		return w.resolveEntityRef(raw.(int)), nil
	}
	return raw, nil
}

func (w *World) setValue(e Entity, c *ComponentDefinition, field string, value any) error {
	if err := w.entities.checkLive(e); err != nil {
		return err
	}
	if err := w.entities.checkRegistered(c); err != nil {
		return err
	}
	if err := c.storage.setRaw(e.Index, field, value); err != nil {
		return bark.AddTrace(err)
	}
	return nil
}

func (w *World) getVectorView(e Entity, c *ComponentDefinition, field string) (*VectorView, error) {
	if err := w.entities.checkLive(e); err != nil {
		return nil, err
	}
	if err := w.entities.checkRegistered(c); err != nil {
		return nil, err
	}
	v, err := c.storage.vectorView(e.Index, field)
	if err != nil {
		return nil, bark.AddTrace(err)
	}
	return v, nil
}

// resolveEntityRef converts a stored slot index back into an Entity
// handle, returning an inactive Entity with Index -1 for "none" or for a
// slot that is no longer active. Only the index is stored, so once a
// released slot has been reused the reference resolves to its new occupant.
func (w *World) resolveEntityRef(index int) Entity {
	if index < 0 {
		return Entity{Index: -1, world: w}
	}
	slot := w.entities.slots.slot(index)
	if slot == nil || !slot.active {
		return Entity{Index: -1, world: w}
	}
	return Entity{Index: slot.index, Generation: slot.generation, world: w}
}

func fieldKind(c *ComponentDefinition, field string) (SchemaField, int, bool) {
	f, idx, ok := c.fieldByName(field)
	if !ok {
		return SchemaField{}, 0, false
	}
	return f, idx, f.Type == FieldEntity
}

// debug accessors: internal handles sufficient for observational
// tooling, with no other coupling to a debugger required.

// DebugEntitySlot reports the raw slot state at index, for inspection
// tools only.
func (w *World) DebugEntitySlot(index int) (active bool, generation int, bitmask ComponentMask, ok bool) {
	slot := w.entities.slots.slot(index)
	if slot == nil {
		return false, 0, ComponentMask{}, false
	}
	return slot.active, slot.generation, slot.bitmask, true
}

// DebugComponents returns every registered component, in typeId order.
func (w *World) DebugComponents() []*ComponentDefinition {
	return w.components.byTypeIDSlice()
}

// DebugQuery looks up a registered query by its canonical id.
func (w *World) DebugQuery(id string) (*Query, bool) {
	return w.queries.byID(id)
}
