package ecscore

import "github.com/TheBitDrifter/bark"

// entityManager owns the slot table and implements entity lifecycle
// operations. It borrows its sibling managers (components, queries) from
// the owning World rather than holding them directly.
type entityManager struct {
	slots *entitySlotTable
	world *World
}

func newEntityManager(world *World, capacity int) *entityManager {
	return &entityManager{
		slots: newEntitySlotTable(capacity),
		world: world,
	}
}

// requestEntity allocates a slot (reusing a released one when available)
// and returns a fresh Entity handle.
func (m *entityManager) requestEntity() (Entity, error) {
	idx, gen, err := m.slots.allocate()
	if err != nil {
		return Entity{}, bark.AddTrace(err)
	}
	return Entity{Index: idx, Generation: gen, world: m.world}, nil
}

// destroy releases e's slot, invalidating cached vector views and
// notifying the query manager before the slot returns to the free list.
func (m *entityManager) destroy(e Entity) error {
	slot := m.slots.slot(e.Index)
	if Config.checksEnabled {
		if slot == nil || !slot.active || slot.generation != e.Generation {
			return bark.AddTrace(ModifyDestroyedEntityError{Index: e.Index, Generation: e.Generation})
		}
	}
	if slot == nil || !slot.active {
		return nil
	}
	for _, def := range m.world.components.byTypeIDSlice() {
		if def.registered && def.storage != nil {
			def.storage.clearViewsForSlot(e.Index)
		}
	}
	m.world.queries.resetEntity(e)
	m.slots.release(e.Index)
	return nil
}

// addComponent sets c's bit in e's mask, writes initial field values, and
// triggers incremental query reindexing for e.
func (m *entityManager) addComponent(e Entity, c *ComponentDefinition, overrides map[string]any) error {
	if err := m.checkLive(e); err != nil {
		return err
	}
	if err := m.checkRegistered(c); err != nil {
		return err
	}
	slot := m.slots.slot(e.Index)
	if err := c.storage.attach(e.Index, overrides); err != nil {
		return bark.AddTrace(err)
	}
	slot.bitmask = maskUnion(slot.bitmask, c.bitmask)
	m.world.queries.updateEntity(e, c)
	return nil
}

// removeComponent clears c's bit in e's mask, drops cached vector views
// for that component, and triggers query reindexing. Column cells are
// left untouched.
func (m *entityManager) removeComponent(e Entity, c *ComponentDefinition) error {
	if err := m.checkLive(e); err != nil {
		return err
	}
	if err := m.checkRegistered(c); err != nil {
		return err
	}
	slot := m.slots.slot(e.Index)
	slot.bitmask = maskSubtract(slot.bitmask, c.bitmask)
	c.storage.clearViewsForSlot(e.Index)
	m.world.queries.updateEntity(e, c)
	return nil
}

// hasComponent reports whether c's bit is set in e's mask.
func (m *entityManager) hasComponent(e Entity, c *ComponentDefinition) bool {
	if c == nil || !c.registered {
		return false
	}
	slot := m.slots.slot(e.Index)
	if slot == nil || slot.generation != e.Generation {
		return false
	}
	return maskContains(slot.bitmask, c.bitmask)
}

// getComponents enumerates the components currently attached to e via
// the component manager's typeId registry.
func (m *entityManager) getComponents(e Entity) []*ComponentDefinition {
	slot := m.slots.slot(e.Index)
	if slot == nil || slot.generation != e.Generation {
		return nil
	}
	var out []*ComponentDefinition
	eachSetBit(slot.bitmask, func(typeID int) {
		if def := m.world.components.byTypeID(typeID); def != nil {
			out = append(out, def)
		}
	})
	return out
}

func (m *entityManager) checkLive(e Entity) error {
	if !Config.checksEnabled {
		return nil
	}
	slot := m.slots.slot(e.Index)
	if slot == nil || !slot.active || slot.generation != e.Generation {
		return bark.AddTrace(ModifyDestroyedEntityError{Index: e.Index, Generation: e.Generation})
	}
	return nil
}

func (m *entityManager) checkRegistered(c *ComponentDefinition) error {
	if !Config.checksEnabled {
		return nil
	}
	if c == nil || !c.registered {
		id := ""
		if c != nil {
			id = c.ID
		}
		return bark.AddTrace(ComponentNotRegisteredError{ComponentID: id})
	}
	return nil
}
