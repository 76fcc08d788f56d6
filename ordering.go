package gofilter

import (
	"fmt"
	"math"
	"strings"

	"github.com/samber/lo"
)

// Direction defines the sort direction for the requested dataset.
type Direction string

const (
	DirectionASC  Direction = "ASC"
	DirectionDESC Direction = "DESC"
)

func (o Direction) Valid() bool {
	return o == DirectionASC || o == DirectionDESC
}

func (o Direction) ForOperator() Operator {
	switch o {
	case DirectionASC:
		return OperatorGT
	case DirectionDESC:
		return OperatorLT
	default:
		panic(fmt.Errorf("cannot map direction '%s' to operator", o))
	}
}

type (
	Orderings []OrderBy
	OrderBy   struct {
		Field     Field
		Direction Direction
	}
)

// ByIDDesc is the stable ordering every search falls back to.
var ByIDDesc = OrderBy{Field: FieldID, Direction: DirectionDESC}

func (o OrderBy) validate() error {
	if !o.Direction.Valid() {
		return fmt.Errorf("invalid ordering direction '%s'", o.Direction)
	}

	if !o.Field.Valid() {
		return fmt.Errorf("unknown ordering field '%s'", o.Field)
	}

	return nil
}

// ToSQLSlice converts Orderings to a slice of strings in the form
// "<order_column> <order_direction>" suitable for SQL query builders.
//
// Example: for Orderings: [{"value", "ASC"}, {"id", "DESC"}] and columns
// {"value": "members.age", "id": "members.id"} returns
// ["members.age ASC", "members.id DESC"].
func (o Orderings) ToSQLSlice(columns ColumnMapping) ([]string, error) {
	ret := make([]string, 0, len(o))
	for _, ordering := range o {
		column, ok := columns[ordering.Field]
		if !ok || column == "" {
			return nil, fmt.Errorf("no column mapped for ordering field '%s'", ordering.Field)
		}
		ret = append(ret, fmt.Sprintf("%s %s", column, ordering.Direction))
	}

	return ret, nil
}

// Has returns true if the field is already part of the orderings.
func (o Orderings) Has(f Field) bool {
	return lo.ContainsBy(o, func(ordering OrderBy) bool {
		return ordering.Field == f
	})
}

func (o Orderings) validate() error {
	if len(o) == 0 {
		return fmt.Errorf("empty ordering list")
	}

	var err error
	for _, ordering := range o {
		err = ordering.validate()
		if err != nil {
			return err
		}
	}

	return nil
}

// ParseSort builds Orderings from a list of strings in the format
// "alias asc|desc". Aliases are resolved via FieldMapping.
// Returns an error wrapping ErrInvalidArgument if an alias is not found in
// the mapping.
func ParseSort(stringsOrderings []string, fieldMapping FieldMapping) (Orderings, error) {
	ret := make([]OrderBy, 0, len(stringsOrderings))
	aliases := lo.Keys(fieldMapping)

	for _, stringOrdering := range stringsOrderings {
		cutStringOrdering := strings.Fields(stringOrdering)
		if len(cutStringOrdering) != 2 {
			return nil, invalidArgument("invalid ordering string format '%s'", stringOrdering)
		}

		alias := cutStringOrdering[0]
		direction := Direction(strings.ToUpper(cutStringOrdering[1]))
		field, ok := fieldMapping[alias]
		if !ok {
			return nil, invalidArgument("invalid sort alias '%s'. closest: '%s'", alias, closestAlias(alias, aliases))
		}
		if !direction.Valid() {
			return nil, invalidArgument("invalid ordering direction '%s'", cutStringOrdering[1])
		}

		ret = append(ret, OrderBy{
			Field:     field,
			Direction: direction,
		})
	}

	return ret, nil
}

func closestAlias(input FieldAlias, dataSet []FieldAlias) FieldAlias {
	minDist := math.MaxInt
	closest := ""

	for _, dataSetAlias := range dataSet {
		dist := levenshtein([]rune(dataSetAlias), []rune(input))
		if dist < minDist || (dist == minDist && dataSetAlias < closest) {
			minDist = dist
			closest = dataSetAlias
		}
	}

	return closest
}
