package ecscore

import "github.com/TheBitDrifter/mask"

// ComponentMask is the fixed-width bitfield carrying one bit per registered
// component type. mask.Mask256 already gives us a comparable
// value type (usable as a map key for query/archetype indexing) with
// Mark/Unmark/IsEmpty/ContainsAll/ContainsAny/ContainsNone — exactly the
// union/intersection/containment/intersects/empty operations the core
// needs, widened well past a 32-bit mask's component ceiling.
type ComponentMask = mask.Mask256

// MaxComponentTypes bounds the set of typeIds a single world can register,
// matching the bit width of ComponentMask.
const MaxComponentTypes = 256

// bitFor returns a mask with exactly the typeId-th bit set.
func bitFor(typeID int) ComponentMask {
	var m ComponentMask
	m.Mark(uint32(typeID))
	return m
}

// maskContains reports whether a contains every bit set in b (a & b == b).
func maskContains(a, b ComponentMask) bool {
	return a.ContainsAll(b)
}

// maskIntersects reports whether a and b share any set bit.
func maskIntersects(a, b ComponentMask) bool {
	return a.ContainsAny(b)
}

// maskEmpty reports whether m has no set bits.
func maskEmpty(m ComponentMask) bool {
	return m.IsEmpty()
}

// maskUnion returns a mask with every bit set in either a or b.
func maskUnion(a, b ComponentMask) ComponentMask {
	result := a
	eachSetBit(b, func(typeID int) {
		result.Mark(uint32(typeID))
	})
	return result
}

// maskSubtract returns a mask with every bit of a that is not set in b.
func maskSubtract(a, b ComponentMask) ComponentMask {
	result := a
	eachSetBit(b, func(typeID int) {
		result.Unmark(uint32(typeID))
	})
	return result
}

// eachSetBit calls fn once per set bit position in m, in ascending order.
// mask.Mask256 exposes only membership tests, not raw words, so the scan
// walks every candidate typeId; MaxComponentTypes keeps this bounded.
func eachSetBit(m ComponentMask, fn func(typeID int)) {
	for i := 0; i < MaxComponentTypes; i++ {
		if m.ContainsAny(bitFor(i)) {
			fn(i)
		}
	}
}
