package gofilter

import "fmt"

// Operator defines a comparison operator for filtering by field.
type Operator string

const (
	OperatorEq  Operator = "="
	OperatorGTE Operator = ">="
	OperatorLTE Operator = "<="
	OperatorGT  Operator = ">"
	OperatorLT  Operator = "<"
	OperatorIn  Operator = "IN"
)

func (o Operator) Valid() bool {
	switch o {
	case OperatorEq, OperatorGTE, OperatorLTE, OperatorGT, OperatorLT, OperatorIn:
		return true
	default:
		return false
	}
}

// ValidForCursor reports whether the operator can express a keyset position.
// Only strict comparisons qualify: the last seen row must not be repeated.
func (o Operator) ValidForCursor() bool {
	return o == OperatorLT || o == OperatorGT
}

func (o Operator) ForOrdering() Direction {
	switch o {
	case OperatorGT:
		return DirectionASC
	case OperatorLT:
		return DirectionDESC
	default:
		panic(fmt.Errorf("cannot map operator '%s' to ordering", o))
	}
}

// holds reports whether the comparison result cmp (as returned by
// compareValues) satisfies the operator. OperatorIn is handled by the caller.
func (o Operator) holds(cmp int) bool {
	switch o {
	case OperatorEq:
		return cmp == 0
	case OperatorGTE:
		return cmp >= 0
	case OperatorLTE:
		return cmp <= 0
	case OperatorGT:
		return cmp > 0
	case OperatorLT:
		return cmp < 0
	default:
		return false
	}
}
