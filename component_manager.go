package ecscore

import "github.com/TheBitDrifter/bark"

// componentManager assigns dense typeIds at registration time and keeps
// the id->definition and typeId->definition lookups the rest of the core
// needs. It uses the generic Cache for the id-keyed registry rather than
// a bespoke map.
type componentManager struct {
	cache    Cache[*ComponentDefinition]
	byType   []*ComponentDefinition
	capacity int
	world    *World
}

func newComponentManager(world *World, capacity int) *componentManager {
	return &componentManager{
		cache:    FactoryNewCache[*ComponentDefinition](MaxComponentTypes),
		capacity: capacity,
		world:    world,
	}
}

// register assigns the next free typeId to def, allocates its column
// storage sized to the world's capacity, and indexes it by id and typeId.
func (m *componentManager) register(def *ComponentDefinition) error {
	if Config.checksEnabled {
		if def.registered {
			return bark.AddTrace(ComponentAlreadyRegisteredError{ComponentID: def.ID})
		}
		if _, ok := m.cache.GetIndex(def.ID); ok {
			return bark.AddTrace(ComponentAlreadyRegisteredError{ComponentID: def.ID})
		}
	}
	storage, err := newComponentStorage(def, m.capacity)
	if err != nil {
		return bark.AddTrace(err)
	}
	typeID := len(m.byType)
	if typeID >= MaxComponentTypes {
		return bark.AddTrace(TooManyComponentTypesError{Limit: MaxComponentTypes})
	}
	def.typeID = typeID
	def.bitmask = bitFor(typeID)
	def.storage = storage
	def.registered = true

	if _, err := m.cache.Register(def.ID, def); err != nil {
		return bark.AddTrace(err)
	}
	m.byType = append(m.byType, def)
	return nil
}

func (m *componentManager) byTypeID(typeID int) *ComponentDefinition {
	if typeID < 0 || typeID >= len(m.byType) {
		return nil
	}
	return m.byType[typeID]
}

func (m *componentManager) byID(id string) (*ComponentDefinition, bool) {
	idx, ok := m.cache.GetIndex(id)
	if !ok {
		return nil, false
	}
	return *m.cache.GetItem(idx), true
}

func (m *componentManager) byTypeIDSlice() []*ComponentDefinition {
	return m.byType
}
