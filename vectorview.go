package ecscore

import "fmt"

// VectorView is a live sub-range of a Vec* column, aliasing the backing
// buffer for zero-copy read/write. Writes through the view are
// observable in subsequent getValue calls and vice versa. A view is
// invalidated when its component is removed from the owning entity, or
// the entity is destroyed; At, Set and SetAll return an error afterward.
// Len and Slice do not check invalidation: Slice still copies the range
// the view was created over.
type VectorView struct {
	buf     []float32
	offset  int
	length  int
	invalid bool
}

// Len returns the number of components in the view (2, 3, or 4).
func (v *VectorView) Len() int {
	return v.length
}

// At reads the i-th component of the view.
func (v *VectorView) At(i int) (float32, error) {
	if v.invalid {
		return 0, fmt.Errorf("ecscore: vector view used after invalidation")
	}
	if i < 0 || i >= v.length {
		return 0, fmt.Errorf("ecscore: vector view index %d out of range [0,%d)", i, v.length)
	}
	return v.buf[v.offset+i], nil
}

// Set writes the i-th component of the view.
func (v *VectorView) Set(i int, value float32) error {
	if v.invalid {
		return fmt.Errorf("ecscore: vector view used after invalidation")
	}
	if i < 0 || i >= v.length {
		return fmt.Errorf("ecscore: vector view index %d out of range [0,%d)", i, v.length)
	}
	v.buf[v.offset+i] = value
	return nil
}

// SetAll overwrites every component of the view from values.
func (v *VectorView) SetAll(values []float32) error {
	if v.invalid {
		return fmt.Errorf("ecscore: vector view used after invalidation")
	}
	if len(values) != v.length {
		return fmt.Errorf("ecscore: expected %d values, got %d", v.length, len(values))
	}
	copy(v.buf[v.offset:v.offset+v.length], values)
	return nil
}

// Slice copies the view's current contents out into a fresh slice.
func (v *VectorView) Slice() []float32 {
	out := make([]float32, v.length)
	copy(out, v.buf[v.offset:v.offset+v.length])
	return out
}

func (v *VectorView) invalidate() {
	v.invalid = true
}
