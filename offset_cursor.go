package gofilter

import (
	"fmt"
	"strconv"
)

// OffsetCursor implements Cursor on top of LIMIT/OFFSET. The token carries
// the number of rows already returned.
//
// IMPORTANT:
// Reading page N still scans every row of pages 0..N-1. Use KeysetCursor for
// deep pagination.
type OffsetCursor struct {
	offset int
}

func NewOffsetCursor(offset int) *OffsetCursor {
	return &OffsetCursor{
		offset: offset,
	}
}

// DecodeOffsetCursor attempts to parse a base64-encoded string into *OffsetCursor.
func DecodeOffsetCursor(b64String string) (*OffsetCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	offsetBytes, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, invalidArgument("failed to decode base64 encoded offset cursor: %v", err)
	}

	offset, err := strconv.Atoi(string(offsetBytes))
	if err != nil {
		return nil, invalidArgument("failed to decode offset cursor value: %v", err)
	}
	if offset < 0 {
		return nil, invalidArgument("negative offset cursor value %d", offset)
	}

	return &OffsetCursor{
		offset: offset,
	}, nil
}

// String - implements fmt.Stringer.
func (p *OffsetCursor) String() string {
	if p == nil || p.offset == 0 {
		return ""
	}

	return _encoder.EncodeToString([]byte(strconv.Itoa(p.offset)))
}

// IsEmpty - implements Cursor.
func (p *OffsetCursor) IsEmpty() bool {
	return p == nil || p.offset == 0
}

// apply - implements Cursor. Sets the query offset.
func (p *OffsetCursor) apply(q *Query) {
	q.Offset = p.GetOffset()
}

// GetOffset returns the numeric offset value.
func (p *OffsetCursor) GetOffset() int {
	if p != nil {
		return p.offset
	}

	return 0
}

// validate - implements Cursor.
func (p *OffsetCursor) validate(_ Orderings) error {
	if p.GetOffset() < 0 {
		return fmt.Errorf("negative offset %d", p.GetOffset())
	}

	return nil
}

var (
	_ Cursor       = (*OffsetCursor)(nil)
	_ fmt.Stringer = (*OffsetCursor)(nil)
)

// NextOffsetCursor builds the offset cursor for the next page of the dataset.
func NextOffsetCursor[T any](
	initialPager *Pager[*OffsetCursor],
	resultSet []T,
) ([]T, *OffsetCursor, error) {
	err := initialPager.validate()
	if err != nil {
		return nil, nil, fmt.Errorf("cannot build next page offset cursor: %w", err)
	}

	if IsLastPage(initialPager, resultSet) {
		return resultSet, nil, nil
	}
	resultSet = TrimResultSet(initialPager, resultSet)

	return resultSet,
		&OffsetCursor{
			offset: initialPager.cursor.GetOffset() + len(resultSet),
		},
		nil
}
