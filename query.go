package ecscore

import (
	"fmt"
	"sort"
	"strings"
)

// Operator is a value-predicate comparator.
type Operator int

const (
	OpEq Operator = iota
	OpNe
	OpLt
	OpLe
	OpGt
	OpGe
)

func (o Operator) String() string {
	switch o {
	case OpEq:
		return "eq"
	case OpNe:
		return "ne"
	case OpLt:
		return "lt"
	case OpLe:
		return "le"
	case OpGt:
		return "gt"
	case OpGe:
		return "ge"
	default:
		return fmt.Sprintf("Operator(%d)", int(o))
	}
}

// ValuePredicate filters query membership on a stored field value
//. A predicate over a component absent from the
// entity evaluates to false.
type ValuePredicate struct {
	Component *ComponentDefinition
	Field     string
	Operator  Operator
	Expected  any
}

// QueryPredicate is the registration input for World.RegisterQuery.
type QueryPredicate struct {
	Required []*ComponentDefinition
	Excluded []*ComponentDefinition
	Where    []ValuePredicate
}

// canonicalize derives the deterministic queryId and the precomputed
// required/excluded masks for a predicate. Two predicates that differ
// only in required-set order, excluded-set order, or where-clause order
// canonicalize identically.
func canonicalize(p QueryPredicate) (id string, required, excluded ComponentMask, err error) {
	reqIDs, err := typeIDsOf(p.Required)
	if err != nil {
		return "", ComponentMask{}, ComponentMask{}, err
	}
	excIDs, err := typeIDsOf(p.Excluded)
	if err != nil {
		return "", ComponentMask{}, ComponentMask{}, err
	}
	sort.Ints(reqIDs)
	sort.Ints(excIDs)

	for _, c := range p.Required {
		required = maskUnion(required, c.bitmask)
	}
	for _, c := range p.Excluded {
		excluded = maskUnion(excluded, c.bitmask)
	}

	whereParts := make([]string, 0, len(p.Where))
	for _, wp := range p.Where {
		if Config.checksEnabled && (wp.Component == nil || !wp.Component.registered) {
			id := ""
			if wp.Component != nil {
				id = wp.Component.ID
			}
			return "", ComponentMask{}, ComponentMask{}, ComponentNotRegisteredError{ComponentID: id}
		}
		typeID := -1
		if wp.Component != nil {
			typeID = wp.Component.typeID
		}
		whereParts = append(whereParts, fmt.Sprintf("%d.%s.%s.%v", typeID, wp.Field, wp.Operator, wp.Expected))
	}
	sort.Strings(whereParts)

	id = fmt.Sprintf("req:%s|exc:%s|where:%s", joinInts(reqIDs), joinInts(excIDs), strings.Join(whereParts, ","))
	return id, required, excluded, nil
}

func typeIDsOf(defs []*ComponentDefinition) ([]int, error) {
	ids := make([]int, len(defs))
	for i, d := range defs {
		if Config.checksEnabled && (d == nil || !d.registered) {
			componentID := ""
			if d != nil {
				componentID = d.ID
			}
			return nil, ComponentNotRegisteredError{ComponentID: componentID}
		}
		if d != nil {
			ids[i] = d.typeID
		}
	}
	return ids, nil
}

func joinInts(ints []int) string {
	parts := make([]string, len(ints))
	for i, v := range ints {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ",")
}

// evaluate applies a value predicate's operator to a value read from
// storage against the predicate's expected value.
func evaluate(op Operator, actual, expected any) bool {
	if af, aok := toFloat(actual); aok {
		if ef, eok := toFloat(expected); eok {
			switch op {
			case OpEq:
				return af == ef
			case OpNe:
				return af != ef
			case OpLt:
				return af < ef
			case OpLe:
				return af <= ef
			case OpGt:
				return af > ef
			case OpGe:
				return af >= ef
			}
			return false
		}
	}
	switch op {
	case OpEq:
		return actual == expected
	case OpNe:
		return actual != expected
	default:
		return false
	}
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int8:
		return float64(n), true
	case int16:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}
