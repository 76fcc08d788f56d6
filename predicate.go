package gofilter

import (
	"database/sql/driver"
	"fmt"
	"reflect"
	"strings"
)

type (
	// Predicate is a single filter condition of the form Operator(Field, Value).
	Predicate struct {
		Field    Field
		Operator Operator
		Value    any
	}

	// Predicates is a conjunction: every predicate must hold. An empty set
	// matches all records.
	//
	//	Predicates = P1 AND P2 ... AND Pn
	Predicates []Predicate
)

func Eq(f Field, v any) Predicate  { return Predicate{Field: f, Operator: OperatorEq, Value: v} }
func Gte(f Field, v any) Predicate { return Predicate{Field: f, Operator: OperatorGTE, Value: v} }
func Lte(f Field, v any) Predicate { return Predicate{Field: f, Operator: OperatorLTE, Value: v} }
func Gt(f Field, v any) Predicate  { return Predicate{Field: f, Operator: OperatorGT, Value: v} }
func Lt(f Field, v any) Predicate  { return Predicate{Field: f, Operator: OperatorLT, Value: v} }

// In builds a membership predicate. values must be a slice.
func In(f Field, values any) Predicate {
	return Predicate{Field: f, Operator: OperatorIn, Value: values}
}

// BuildPredicates translates criteria into predicates. Each present field
// yields exactly one predicate; absent fields yield nothing:
//
//   - Name     -> name = ?
//   - Group    -> group_name = ?
//   - MinValue -> value >= ?
//   - MaxValue -> value <= ?
//
// Blank strings count as absent.
func BuildPredicates(c Criteria) Predicates {
	ret := make(Predicates, 0, 4)

	if name, ok := c.name(); ok {
		ret = append(ret, Eq(FieldName, name))
	}
	if group, ok := c.group(); ok {
		ret = append(ret, Eq(FieldGroupName, group))
	}
	if c.MinValue != nil {
		ret = append(ret, Gte(FieldValue, *c.MinValue))
	}
	if c.MaxValue != nil {
		ret = append(ret, Lte(FieldValue, *c.MaxValue))
	}

	return ret
}

func (p Predicate) validate() error {
	if !p.Field.Valid() {
		return fmt.Errorf("unknown predicate field '%s'", p.Field)
	}
	if !p.Operator.Valid() {
		return fmt.Errorf("invalid predicate operator '%s'", p.Operator)
	}
	if p.Operator == OperatorIn {
		if p.Value == nil || reflect.TypeOf(p.Value).Kind() != reflect.Slice {
			return fmt.Errorf("operator IN on '%s' requires a slice value", p.Field)
		}
	}

	return nil
}

// Match evaluates the predicate against a record in memory.
func (p Predicate) Match(r Record) bool {
	actual := r.Get(p.Field)

	if p.Operator == OperatorIn {
		rv := reflect.ValueOf(p.Value)
		if rv.Kind() != reflect.Slice {
			return false
		}
		for i := 0; i < rv.Len(); i++ {
			if c, ok := compareValues(actual, rv.Index(i).Interface()); ok && c == 0 {
				return true
			}
		}
		return false
	}

	c, ok := compareValues(actual, p.Value)

	return ok && p.Operator.holds(c)
}

// ToSQLClause converts the predicate to an SQL condition of the form
// "Column Operator ?" with the corresponding placeholder value.
//
// IMPORTANT: The method uses the SQL placeholder "?".
//
// Example:
//
//	Predicate = {Field: "value", Operator: ">=", Value: 18}, columns = {"value": "members.age"}
//
// Result:
//
//	("members.age >= ?", 18)
func (p Predicate) ToSQLClause(columns ColumnMapping) (string, driver.Value, error) {
	if err := p.validate(); err != nil {
		return "", nil, err
	}

	column, ok := columns[p.Field]
	if !ok || column == "" {
		return "", nil, fmt.Errorf("no column mapped for field '%s'", p.Field)
	}

	return fmt.Sprintf("%s %s ?", column, p.Operator), p.Value, nil
}

// Match reports whether every predicate holds for the record.
func (ps Predicates) Match(r Record) bool {
	for _, p := range ps {
		if !p.Match(r) {
			return false
		}
	}

	return true
}

// With returns a copy extended by extra predicates. The receiver is never
// modified, so a shared base set can be reused by content and count queries.
func (ps Predicates) With(extra ...Predicate) Predicates {
	ret := make(Predicates, 0, len(ps)+len(extra))
	ret = append(ret, ps...)

	return append(ret, extra...)
}

// ToSQL converts the conjunction to "P1 AND P2 ... AND Pn" with the
// corresponding placeholder values.
//
// Example:
//
//	Predicates = {
//		{Field: "name", Operator: "=", Value: "a"},
//		{Field: "value", Operator: "<=", Value: 30},
//	}
//
// Result:
//
//	("members.username = ? AND members.age <= ?", ["a", 30])
//
// An empty set renders as "" and matches every record.
func (ps Predicates) ToSQL(columns ColumnMapping) (string, []driver.Value, error) {
	if len(ps) == 0 {
		return "", nil, nil
	}

	andClauses := make([]string, 0, len(ps))
	andValues := make([]driver.Value, 0, len(ps))

	for _, p := range ps {
		andClause, andValue, err := p.ToSQLClause(columns)
		if err != nil {
			return "", nil, err
		}
		andClauses = append(andClauses, andClause)
		andValues = append(andValues, andValue)
	}

	return strings.Join(andClauses, " AND "), andValues, nil
}

func (ps Predicates) validate() error {
	for _, p := range ps {
		if err := p.validate(); err != nil {
			return err
		}
	}

	return nil
}
