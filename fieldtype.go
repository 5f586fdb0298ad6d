package ecscore

import "fmt"

// FieldType tags the allowed schema field types.
type FieldType int

const (
	FieldInt8 FieldType = iota
	FieldInt16
	FieldFloat32
	FieldFloat64
	FieldBool
	FieldString
	FieldVec2
	FieldVec3
	FieldVec4
	FieldEntity
	FieldObject
	FieldEnum
)

func (t FieldType) String() string {
	switch t {
	case FieldInt8:
		return "Int8"
	case FieldInt16:
		return "Int16"
	case FieldFloat32:
		return "Float32"
	case FieldFloat64:
		return "Float64"
	case FieldBool:
		return "Bool"
	case FieldString:
		return "String"
	case FieldVec2:
		return "Vec2"
	case FieldVec3:
		return "Vec3"
	case FieldVec4:
		return "Vec4"
	case FieldEntity:
		return "Entity"
	case FieldObject:
		return "Object"
	case FieldEnum:
		return "Enum"
	default:
		return fmt.Sprintf("FieldType(%d)", int(t))
	}
}

// stride returns the element count for one entity's slot in this field's
// column (1 for scalars, 2/3/4 for Vec2/Vec3/Vec4).
func (t FieldType) stride() int {
	switch t {
	case FieldVec2:
		return 2
	case FieldVec3:
		return 3
	case FieldVec4:
		return 4
	default:
		return 1
	}
}

func (t FieldType) isNumericScalar() bool {
	switch t {
	case FieldInt8, FieldInt16, FieldFloat32, FieldFloat64:
		return true
	default:
		return false
	}
}

func (t FieldType) isVector() bool {
	switch t {
	case FieldVec2, FieldVec3, FieldVec4:
		return true
	default:
		return false
	}
}

func (t FieldType) supported() bool {
	return t >= FieldInt8 && t <= FieldEnum
}

// SchemaField describes one named field of a component schema: its type,
// default value, and optional range (numeric) or enum-value constraints.
type SchemaField struct {
	Name       string
	Type       FieldType
	Default    any
	Min        *float64
	Max        *float64
	EnumValues []string
}

// WithRange attaches an inclusive min/max constraint, valid only on
// numeric scalar fields.
func (f SchemaField) WithRange(min, max float64) SchemaField {
	f.Min = &min
	f.Max = &max
	return f
}

// WithEnumValues attaches the admitted value set for an Enum field.
func (f SchemaField) WithEnumValues(values ...string) SchemaField {
	f.EnumValues = values
	return f
}

func Int8Field(def int8) SchemaField    { return SchemaField{Type: FieldInt8, Default: def} }
func Int16Field(def int16) SchemaField  { return SchemaField{Type: FieldInt16, Default: def} }
func Float32Field(def float32) SchemaField {
	return SchemaField{Type: FieldFloat32, Default: def}
}
func Float64Field(def float64) SchemaField {
	return SchemaField{Type: FieldFloat64, Default: def}
}
func BoolField(def bool) SchemaField     { return SchemaField{Type: FieldBool, Default: def} }
func StringField(def string) SchemaField { return SchemaField{Type: FieldString, Default: def} }
func EntityField() SchemaField           { return SchemaField{Type: FieldEntity, Default: nil} }
func ObjectField(def any) SchemaField    { return SchemaField{Type: FieldObject, Default: def} }

func EnumField(def string, values ...string) SchemaField {
	return SchemaField{Type: FieldEnum, Default: def, EnumValues: values}
}

func Vec2Field(def [2]float32) SchemaField { return SchemaField{Type: FieldVec2, Default: def} }
func Vec3Field(def [3]float32) SchemaField { return SchemaField{Type: FieldVec3, Default: def} }
func Vec4Field(def [4]float32) SchemaField { return SchemaField{Type: FieldVec4, Default: def} }
