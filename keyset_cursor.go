package gofilter

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// KeysetCursor represents a position in a dataset ordered by id. Instead of
// skipping rows, the next page is selected with a strict comparison against
// the last seen id:
//
//	id < last  (DESC)
//	id > last  (ASC)
//
// An empty cursor means the beginning of the dataset.
//
// IMPORTANT:
// The cursor is only valid together with an ordering by id alone, otherwise
// rows could be skipped or repeated.
type KeysetCursor struct {
	element cursorElement
	set     bool
}

// cursorElement is the (f, v, o) triple stored in a token:
//
//   - "f" - record field.
//   - "v" - value the field is compared with.
//   - "o" - operator applied to the pair (f, v).
type cursorElement struct {
	Field    Field    `json:"f"`
	Value    int64    `json:"v"`
	Operator Operator `json:"o"`
}

// NewKeysetCursor builds a cursor positioned after lastSeenID for the given
// direction.
func NewKeysetCursor(lastSeenID int64, direction Direction) *KeysetCursor {
	return &KeysetCursor{
		element: cursorElement{
			Field:    FieldID,
			Value:    lastSeenID,
			Operator: direction.ForOperator(),
		},
		set: true,
	}
}

// DecodeKeysetCursor attempts to parse a base64-encoded string into *KeysetCursor.
func DecodeKeysetCursor(b64String string) (*KeysetCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	jsonData, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, invalidArgument("failed to decode base64 encoded cursor: %v", err)
	}

	var elem cursorElement
	if err = json.Unmarshal(jsonData, &elem); err != nil {
		return nil, invalidArgument("failed to unmarshal json encoded cursor: %v", err)
	}

	if elem.Field != FieldID || !elem.Operator.ValidForCursor() {
		return nil, invalidArgument("malformed cursor (%s %s)", elem.Field, elem.Operator)
	}

	return &KeysetCursor{element: elem, set: true}, nil
}

// String - implements fmt.Stringer.
func (c *KeysetCursor) String() string {
	if c.IsEmpty() {
		return ""
	}

	jTok, err := json.Marshal(c.element)
	if err != nil {
		panic(fmt.Errorf("cannot marshal cursor value: %w", err))
	}

	var buf bytes.Buffer
	if err = json.Compact(&buf, jTok); err != nil {
		panic(fmt.Errorf("cannot compact cursor value: %w", err))
	}

	return _encoder.EncodeToString(buf.Bytes())
}

// IsEmpty - implements Cursor.
func (c *KeysetCursor) IsEmpty() bool {
	return c == nil || !c.set
}

// LastSeenID returns the id the cursor continues after.
func (c *KeysetCursor) LastSeenID() (int64, bool) {
	if c.IsEmpty() {
		return 0, false
	}

	return c.element.Value, true
}

// Direction returns the ordering direction the cursor was built for.
func (c *KeysetCursor) Direction() Direction {
	if c.IsEmpty() {
		return DirectionDESC
	}

	return c.element.Operator.ForOrdering()
}

// apply - implements Cursor. Adds the keyset predicate to the query filter.
func (c *KeysetCursor) apply(q *Query) {
	if c.IsEmpty() {
		return
	}

	q.Filter = q.Filter.With(Predicate{
		Field:    c.element.Field,
		Operator: c.element.Operator,
		Value:    c.element.Value,
	})
}

// validate - implements Cursor.
func (c *KeysetCursor) validate(orderings Orderings) error {
	if c.IsEmpty() {
		return nil
	}

	if len(orderings) != 1 || orderings[0].Field != c.element.Field {
		return fmt.Errorf("keyset cursor requires ordering by '%s' only", c.element.Field)
	}

	if !c.element.Operator.ValidForCursor() {
		return fmt.Errorf("invalid cursor operator '%s'", c.element.Operator)
	} else if c.element.Operator.ForOrdering() != orderings[0].Direction {
		return fmt.Errorf("unexpected cursor operator '%s'", c.element.Operator)
	}

	return nil
}

var (
	_ Cursor       = (*KeysetCursor)(nil)
	_ fmt.Stringer = (*KeysetCursor)(nil)
)

// NextKeysetCursor builds the cursor for the next page of the dataset and
// returns the result set trimmed to the page size. The cursor is nil on the
// last page.
func NextKeysetCursor[T any](
	initialPager *Pager[*KeysetCursor],
	resultSet []T,
	idOf func(T) int64,
) ([]T, *KeysetCursor, error) {
	err := initialPager.validate()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build next page cursor: %w", err)
	}

	if IsLastPage(initialPager, resultSet) {
		return resultSet, nil, nil
	}
	resultSet = TrimResultSet(initialPager, resultSet)
	if len(resultSet) == 0 {
		return resultSet, nil, nil
	}

	last := resultSet[len(resultSet)-1]

	return resultSet, NewKeysetCursor(idOf(last), initialPager.sort[0].Direction), nil
}
