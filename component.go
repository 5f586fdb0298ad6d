package ecscore

import (
	"fmt"

	"github.com/TheBitDrifter/bark"
)

// ComponentDefinition is a registered component descriptor: a stable
// string id, an ordered field schema, and (once registered in a world)
// a dense typeId and the ComponentMask with exactly that bit set.
//
// Once registered, typeId/bitmask/column layout are immutable; attaching
// or detaching the component only mutates a target slot's fields and the
// owning entity's mask.
type ComponentDefinition struct {
	ID     string
	Fields []SchemaField

	fieldIndex map[string]int
	typeID     int
	bitmask    ComponentMask
	registered bool
	storage    *componentStorage
}

// TypeID returns the dense integer assigned at world registration, or -1
// if the component has not been registered in a world yet.
func (c *ComponentDefinition) TypeID() int {
	if !c.registered {
		return -1
	}
	return c.typeID
}

// Bitmask returns the ComponentMask with exactly this component's bit
// set. Zero-value (empty) until registered.
func (c *ComponentDefinition) Bitmask() ComponentMask {
	return c.bitmask
}

// Registered reports whether this component has been assigned a typeId.
func (c *ComponentDefinition) Registered() bool {
	return c.registered
}

func (c *ComponentDefinition) fieldByName(name string) (SchemaField, int, bool) {
	idx, ok := c.fieldIndex[name]
	if !ok {
		return SchemaField{}, 0, false
	}
	return c.Fields[idx], idx, true
}

// ComponentBuilder assembles a ComponentDefinition field by field using
// a fluent builder style.
type ComponentBuilder struct {
	id     string
	fields []SchemaField
	seen   map[string]bool
	err    error
}

// NewComponentBuilder starts a component schema under the given stable id.
func NewComponentBuilder(id string) *ComponentBuilder {
	return &ComponentBuilder{id: id, seen: make(map[string]bool)}
}

// Field appends a named field to the schema being built.
func (b *ComponentBuilder) Field(name string, field SchemaField) *ComponentBuilder {
	if b.err != nil {
		return b
	}
	if name == "" {
		b.err = fmt.Errorf("ecscore: field name must not be empty in component %q", b.id)
		return b
	}
	if b.seen[name] {
		b.err = fmt.Errorf("ecscore: duplicate field %q in component %q", name, b.id)
		return b
	}
	if !field.Type.supported() {
		b.err = TypeNotSupportedError{Field: name, Type: field.Type}
		return b
	}
	if err := validateFieldDefault(name, field); err != nil {
		b.err = err
		return b
	}
	field.Name = name
	b.seen[name] = true
	b.fields = append(b.fields, field)
	return b
}

// Build finalizes the schema into a ComponentDefinition, not yet
// registered in any world.
func (b *ComponentBuilder) Build() (*ComponentDefinition, error) {
	if b.err != nil {
		return nil, bark.AddTrace(b.err)
	}
	fieldIndex := make(map[string]int, len(b.fields))
	for i, f := range b.fields {
		fieldIndex[f.Name] = i
	}
	return &ComponentDefinition{
		ID:         b.id,
		Fields:     b.fields,
		fieldIndex: fieldIndex,
		typeID:     -1,
	}, nil
}

// MustBuild is Build but panics on error, for package-init-time schema
// declarations where a construction error is a programmer mistake.
func (b *ComponentBuilder) MustBuild() *ComponentDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}

// validateFieldDefault checks that a field's default value satisfies its
// declared type and constraints (InvalidDefaultValue / InvalidEnumValue /
// InvalidRangeValue).
func validateFieldDefault(name string, field SchemaField) error {
	switch field.Type {
	case FieldInt8:
		v, ok := field.Default.(int8)
		if !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
		return checkRange(name, field, float64(v))
	case FieldInt16:
		v, ok := field.Default.(int16)
		if !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
		return checkRange(name, field, float64(v))
	case FieldFloat32:
		v, ok := field.Default.(float32)
		if !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
		return checkRange(name, field, float64(v))
	case FieldFloat64:
		v, ok := field.Default.(float64)
		if !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
		return checkRange(name, field, v)
	case FieldBool:
		if _, ok := field.Default.(bool); !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
	case FieldString:
		if _, ok := field.Default.(string); !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
	case FieldEnum:
		v, ok := field.Default.(string)
		if !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
		if Config.checksEnabled && !enumContains(field.EnumValues, v) {
			return InvalidEnumValueError{Field: name, Value: v}
		}
	case FieldVec2:
		if _, ok := field.Default.([2]float32); !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
	case FieldVec3:
		if _, ok := field.Default.([3]float32); !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
	case FieldVec4:
		if _, ok := field.Default.([4]float32); !ok {
			return InvalidDefaultValueError{Field: name, Value: field.Default}
		}
	case FieldEntity:
		// Default is always "none"; no override type check needed.
	case FieldObject:
		// Opaque reference: any default is acceptable, including nil.
	default:
		return TypeNotSupportedError{Field: name, Type: field.Type}
	}
	return nil
}

func checkRange(name string, field SchemaField, v float64) error {
	if !Config.checksEnabled || field.Min == nil || field.Max == nil {
		return nil
	}
	if v < *field.Min || v > *field.Max {
		return InvalidRangeValueError{Field: name, Value: v, Min: *field.Min, Max: *field.Max}
	}
	return nil
}

func enumContains(values []string, v string) bool {
	for _, candidate := range values {
		if candidate == v {
			return true
		}
	}
	return false
}
