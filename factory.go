package ecscore

// factory implements the factory pattern for ecscore's top-level
// constructors.
type factory struct{}

// Factory is the global factory instance for creating ecscore worlds.
var Factory factory

// NewWorld constructs a World with entity capacity fixed at capacity:
// every component's columns and the entity slot table are sized to it up
// front. Exceeding it without a released slot to
// reuse fails CreateEntity with CapacityExceeded.
func (f factory) NewWorld(capacity int) *World {
	return newWorld(capacity)
}

// FactoryNewCache creates a new Cache with the specified capacity.
func FactoryNewCache[T any](cap int) Cache[T] {
	return &SimpleCache[T]{
		itemIndices: make(map[string]int),
		maxCapacity: cap,
	}
}
