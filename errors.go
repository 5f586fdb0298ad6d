package ecscore

import "fmt"

// ComponentNotRegisteredError is raised when a ComponentDefinition lacking
// a typeId (never registered in this world) is used to add, remove, read or
// write a component, or in a query predicate. HasComponent does not raise
// it; it reports false for an unregistered component.
type ComponentNotRegisteredError struct {
	ComponentID string
}

func (e ComponentNotRegisteredError) Error() string {
	return fmt.Sprintf("component not registered: %s", e.ComponentID)
}

// ModifyDestroyedEntityError is raised by any mutation attempted against
// an entity whose slot is no longer active.
type ModifyDestroyedEntityError struct {
	Index      int
	Generation int
}

func (e ModifyDestroyedEntityError) Error() string {
	return fmt.Sprintf("modify destroyed entity: index=%d generation=%d", e.Index, e.Generation)
}

// ComponentAlreadyRegisteredError is raised by World.RegisterComponent for a
// component that is already registered or whose id is already taken.
type ComponentAlreadyRegisteredError struct {
	ComponentID string
}

func (e ComponentAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("component already registered: %s", e.ComponentID)
}

// SystemAlreadyRegisteredError is raised by registering a system whose
// Name() is already registered in the same world.
type SystemAlreadyRegisteredError struct {
	Name string
}

func (e SystemAlreadyRegisteredError) Error() string {
	return fmt.Sprintf("system already registered: %s", e.Name)
}

// QueryNotRegisteredError names the error kind for a Query handle not
// produced by this world. No API in this package returns it: Query handles
// can only be obtained from World.RegisterQuery.
type QueryNotRegisteredError struct {
	QueryID string
}

func (e QueryNotRegisteredError) Error() string {
	return fmt.Sprintf("query not registered: %s", e.QueryID)
}

// TypeNotSupportedError is raised when a schema references an unknown
// FieldType.
type TypeNotSupportedError struct {
	Field string
	Type  FieldType
}

func (e TypeNotSupportedError) Error() string {
	return fmt.Sprintf("unsupported field type for %q: %v", e.Field, e.Type)
}

// InvalidDefaultValueError is raised when a field's default, or a value
// written to the field, has the wrong Go type for the field's FieldType.
// Range and enum violations raise InvalidRangeValueError and
// InvalidEnumValueError instead.
type InvalidDefaultValueError struct {
	Field string
	Value any
}

func (e InvalidDefaultValueError) Error() string {
	return fmt.Sprintf("invalid default value for field %q: %v", e.Field, e.Value)
}

// InvalidEnumValueError is raised by a write outside an enum field's
// admitted value set.
type InvalidEnumValueError struct {
	Field string
	Value string
}

func (e InvalidEnumValueError) Error() string {
	return fmt.Sprintf("invalid enum value for field %q: %q", e.Field, e.Value)
}

// InvalidRangeValueError is raised when a numeric write violates a field's
// declared min/max.
type InvalidRangeValueError struct {
	Field string
	Value float64
	Min   float64
	Max   float64
}

func (e InvalidRangeValueError) Error() string {
	return fmt.Sprintf("value %v for field %q out of range [%v, %v]", e.Value, e.Field, e.Min, e.Max)
}

// CapacityExceededError is raised by CreateEntity once a world's fixed
// entity capacity (chosen at construction so columns can be pre-sized) is
// exhausted and no released slot is available for reuse.
type CapacityExceededError struct {
	Capacity int
}

func (e CapacityExceededError) Error() string {
	return fmt.Sprintf("entity capacity exceeded: %d", e.Capacity)
}

func errCapacityExceeded(capacity int) error {
	return CapacityExceededError{Capacity: capacity}
}

// TooManyComponentTypesError is raised when registering a component would
// exceed the world's ComponentMask bit width.
type TooManyComponentTypesError struct {
	Limit int
}

func (e TooManyComponentTypesError) Error() string {
	return fmt.Sprintf("too many registered component types, limit is %d", e.Limit)
}
