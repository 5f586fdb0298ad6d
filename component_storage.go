package ecscore

import "fmt"

// column is one field's contiguous per-entity-slot buffer. Exactly one of
// the typed slices below is populated, chosen by field.Type.
type column struct {
	field  SchemaField
	stride int

	f32 []float32 // Float32 scalar, and the flat backing for Vec2/Vec3/Vec4
	f64 []float64 // Float64 scalar
	i8  []int8
	i16 []int16
	b   []byte   // Bool, 0/1 encoding
	s   []string // String and Enum
	ent []int    // Entity: slot index, -1 = none
	obj []any    // Object: opaque reference
}

func newColumn(field SchemaField, capacity int) *column {
	stride := field.Type.stride()
	col := &column{field: field, stride: stride}
	switch field.Type {
	case FieldInt8:
		col.i8 = make([]int8, capacity)
	case FieldInt16:
		col.i16 = make([]int16, capacity)
	case FieldFloat32:
		col.f32 = make([]float32, capacity)
	case FieldFloat64:
		col.f64 = make([]float64, capacity)
	case FieldBool:
		col.b = make([]byte, capacity)
	case FieldString, FieldEnum:
		col.s = make([]string, capacity)
	case FieldVec2, FieldVec3, FieldVec4:
		col.f32 = make([]float32, capacity*stride)
	case FieldEntity:
		col.ent = make([]int, capacity)
	case FieldObject:
		col.obj = make([]any, capacity)
	}
	return col
}

// writeDefault writes field's default value into slot.
func (c *column) writeDefault(slot int) {
	switch c.field.Type {
	case FieldInt8:
		c.i8[slot] = c.field.Default.(int8)
	case FieldInt16:
		c.i16[slot] = c.field.Default.(int16)
	case FieldFloat32:
		c.f32[slot] = c.field.Default.(float32)
	case FieldFloat64:
		c.f64[slot] = c.field.Default.(float64)
	case FieldBool:
		c.b[slot] = boolByte(c.field.Default.(bool))
	case FieldString:
		c.s[slot] = c.field.Default.(string)
	case FieldEnum:
		c.s[slot] = c.field.Default.(string)
	case FieldVec2:
		writeVec(c.f32, slot, c.stride, vec2Slice(c.field.Default.([2]float32)))
	case FieldVec3:
		writeVec(c.f32, slot, c.stride, vec3Slice(c.field.Default.([3]float32)))
	case FieldVec4:
		writeVec(c.f32, slot, c.stride, vec4Slice(c.field.Default.([4]float32)))
	case FieldEntity:
		c.ent[slot] = -1
	case FieldObject:
		c.obj[slot] = c.field.Default
	}
}

// writeOverride writes an explicit attach-time override into slot,
// validating range/enum constraints. An Entity handle override is stored
// as its slot index; nil is stored as -1.
func (c *column) writeOverride(slot int, value any) error {
	switch c.field.Type {
	case FieldInt8:
		v, ok := value.(int8)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		if err := checkRange(c.field.Name, c.field, float64(v)); err != nil {
			return err
		}
		c.i8[slot] = v
	case FieldInt16:
		v, ok := value.(int16)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		if err := checkRange(c.field.Name, c.field, float64(v)); err != nil {
			return err
		}
		c.i16[slot] = v
	case FieldFloat32:
		v, ok := value.(float32)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		if err := checkRange(c.field.Name, c.field, float64(v)); err != nil {
			return err
		}
		c.f32[slot] = v
	case FieldFloat64:
		v, ok := value.(float64)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		if err := checkRange(c.field.Name, c.field, v); err != nil {
			return err
		}
		c.f64[slot] = v
	case FieldBool:
		v, ok := value.(bool)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		c.b[slot] = boolByte(v)
	case FieldString:
		v, ok := value.(string)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		c.s[slot] = v
	case FieldEnum:
		v, ok := value.(string)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		if Config.checksEnabled && !enumContains(c.field.EnumValues, v) {
			return InvalidEnumValueError{Field: c.field.Name, Value: v}
		}
		c.s[slot] = v
	case FieldVec2:
		v, ok := value.([2]float32)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		writeVec(c.f32, slot, c.stride, vec2Slice(v))
	case FieldVec3:
		v, ok := value.([3]float32)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		writeVec(c.f32, slot, c.stride, vec3Slice(v))
	case FieldVec4:
		v, ok := value.([4]float32)
		if Config.checksEnabled && !ok {
			return InvalidDefaultValueError{Field: c.field.Name, Value: value}
		}
		writeVec(c.f32, slot, c.stride, vec4Slice(v))
	case FieldEntity:
		switch v := value.(type) {
		case nil:
			c.ent[slot] = -1
		case Entity:
			c.ent[slot] = v.Index
		default:
			if Config.checksEnabled {
				return InvalidDefaultValueError{Field: c.field.Name, Value: value}
			}
			c.ent[slot] = -1
		}
	case FieldObject:
		c.obj[slot] = value
	}
	return nil
}

func (c *column) read(slot int) any {
	switch c.field.Type {
	case FieldInt8:
		return c.i8[slot]
	case FieldInt16:
		return c.i16[slot]
	case FieldFloat32:
		return c.f32[slot]
	case FieldFloat64:
		return c.f64[slot]
	case FieldBool:
		return c.b[slot] != 0
	case FieldString, FieldEnum:
		return c.s[slot]
	case FieldVec2:
		return [2]float32{c.f32[slot*c.stride], c.f32[slot*c.stride+1]}
	case FieldVec3:
		return [3]float32{c.f32[slot*c.stride], c.f32[slot*c.stride+1], c.f32[slot*c.stride+2]}
	case FieldVec4:
		return [4]float32{c.f32[slot*c.stride], c.f32[slot*c.stride+1], c.f32[slot*c.stride+2], c.f32[slot*c.stride+3]}
	case FieldEntity:
		return c.ent[slot]
	case FieldObject:
		return c.obj[slot]
	}
	return nil
}

func boolByte(b bool) byte {
	if b {
		return 1
	}
	return 0
}

func vec2Slice(v [2]float32) []float32 { return []float32{v[0], v[1]} }
func vec3Slice(v [3]float32) []float32 { return []float32{v[0], v[1], v[2]} }
func vec4Slice(v [4]float32) []float32 { return []float32{v[0], v[1], v[2], v[3]} }

func writeVec(buf []float32, slot, stride int, values []float32) {
	copy(buf[slot*stride:slot*stride+stride], values)
}

// componentStorage is the column-store half of a ComponentDefinition:
// one column per schema field, sized to the world's entity capacity, plus
// the cache of live vector views handed out for this component.
type componentStorage struct {
	def      *ComponentDefinition
	capacity int
	columns  []*column
	views    map[viewKey]*VectorView
}

type viewKey struct {
	slot  int
	field string
}

func newComponentStorage(def *ComponentDefinition, capacity int) (*componentStorage, error) {
	columns := make([]*column, len(def.Fields))
	for i, f := range def.Fields {
		if !f.Type.supported() {
			return nil, TypeNotSupportedError{Field: f.Name, Type: f.Type}
		}
		if err := validateFieldDefault(f.Name, f); err != nil {
			return nil, err
		}
		columns[i] = newColumn(f, capacity)
	}
	return &componentStorage{
		def:      def,
		capacity: capacity,
		columns:  columns,
		views:    make(map[viewKey]*VectorView),
	}, nil
}

// attach writes defaults (or overrides, when present) for every schema
// field into slot.
func (s *componentStorage) attach(slot int, overrides map[string]any) error {
	for i, f := range s.def.Fields {
		if overrides != nil {
			if v, ok := overrides[f.Name]; ok {
				if err := s.columns[i].writeOverride(slot, v); err != nil {
					return err
				}
				continue
			}
		}
		s.columns[i].writeDefault(slot)
	}
	return nil
}

func (s *componentStorage) columnFor(fieldName string) (*column, error) {
	idx, ok := s.def.fieldIndex[fieldName]
	if !ok {
		return nil, fmt.Errorf("ecscore: component %q has no field %q", s.def.ID, fieldName)
	}
	return s.columns[idx], nil
}

func (s *componentStorage) getRaw(slot int, fieldName string) (any, error) {
	col, err := s.columnFor(fieldName)
	if err != nil {
		return nil, err
	}
	return col.read(slot), nil
}

func (s *componentStorage) setRaw(slot int, fieldName string, value any) error {
	col, err := s.columnFor(fieldName)
	if err != nil {
		return err
	}
	return col.writeOverride(slot, value)
}

// vectorView returns the cached VectorView for (slot, fieldName), creating
// it on first access. Fails if the field is not a vector field.
func (s *componentStorage) vectorView(slot int, fieldName string) (*VectorView, error) {
	col, err := s.columnFor(fieldName)
	if err != nil {
		return nil, err
	}
	if !col.field.Type.isVector() {
		return nil, fmt.Errorf("ecscore: field %q is not a vector field", fieldName)
	}
	key := viewKey{slot: slot, field: fieldName}
	if v, ok := s.views[key]; ok {
		return v, nil
	}
	v := &VectorView{
		buf:    col.f32,
		offset: slot * col.stride,
		length: col.stride,
	}
	s.views[key] = v
	return v, nil
}

// clearViewsForSlot invalidates every cached vector view belonging to
// slot, called on removeComponent and destroy.
func (s *componentStorage) clearViewsForSlot(slot int) {
	for key, v := range s.views {
		if key.slot == slot {
			v.invalidate()
			delete(s.views, key)
		}
	}
}
