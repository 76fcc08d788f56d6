package gofilter

import (
	"fmt"
	"slices"

	"github.com/samber/lo"
)

// Pager applies sorting, a cursor and a limit to a Query.
type Pager[CursorType Cursor] struct {
	lookahead bool
	limit     int
	cursor    CursorType
	sort      Orderings
}

func NewPager[CursorType Cursor]() *Pager[CursorType] {
	return new(Pager[CursorType])
}

// WithLookahead enables lookahead pagination, which fetches one extra record
// to determine whether the current page is the last.
//
// IMPORTANT:
// Cannot be used together with WithUnlimited() or WithLimit(NoLimit).
func (c *Pager[CursorType]) WithLookahead() *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.lookahead = true

	return c
}

// WithUnlimited allows returning all records without a limit.
//
// IMPORTANT:
// Cannot be used together with WithLookahead.
func (c *Pager[CursorType]) WithUnlimited() *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.limit = NoLimit

	return c
}

// WithLimit sets the maximum number of returned records. The value is stored
// as-is; validation happens in Paginate.
func (c *Pager[CursorType]) WithLimit(limit int) *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.limit = limit

	return c
}

// WithCursor sets the cursor explicitly.
func (c *Pager[CursorType]) WithCursor(cursor CursorType) *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.cursor = cursor

	return c
}

// WithSubstitutedSort resets previous orderings and applies the provided ones.
func (c *Pager[CursorType]) WithSubstitutedSort(orderBy ...OrderBy) *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	c.sort = nil

	return c.WithSort(orderBy...)
}

// WithSort appends sort orderings without overwriting existing ones.
// Order is preserved as if calling:
//
//	OrderBy(o1).ThenBy(o2).ThenBy(o3)...
//
// A field that is already present moves to the end with the new direction.
func (c *Pager[CursorType]) WithSort(orderBy ...OrderBy) *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	for _, o := range orderBy {
		idx := slices.IndexFunc(c.sort, func(processed OrderBy) bool {
			return processed.Field == o.Field
		})

		// Remove previous occurrence (avoid duplication).
		if idx != -1 {
			c.sort = slices.Delete(c.sort, idx, idx+1)
		}

		c.sort = append(c.sort, o)
	}

	return c
}

// WithTiebreaker appends the ordering unless its field is already sorted on.
// Use it with a unique field to make the order deterministic.
func (c *Pager[CursorType]) WithTiebreaker(o OrderBy) *Pager[CursorType] {
	if c == nil {
		c = new(Pager[CursorType])
	}

	if !c.sort.Has(o.Field) {
		c.sort = append(c.sort, o)
	}

	return c
}

// Paginate applies pagination to the query. Returns an error if pagination
// cannot be applied.
func (c *Pager[CursorType]) Paginate(q Query) (Query, error) {
	err := c.validate()
	if err != nil {
		return Query{}, fmt.Errorf("cannot paginate: %w", err)
	}

	q.Filter = q.Filter.With()
	q.Sort = slices.Clone(c.sort)
	c.cursor.apply(&q)

	// When lookahead is enabled, fetch one extra record to determine if
	// there is a next page.
	if c.limit != NoLimit {
		q.Limit = c.GetDatasetLimit()
	} else {
		q.Limit = 0
	}

	return q, nil
}

// GetSort returns orderings that will be applied to the query.
func (c *Pager[CursorType]) GetSort() Orderings {
	if c == nil {
		return nil
	}

	return c.sort
}

// IsUnlimited returns true if the limit equals NoLimit (unbounded number of records).
func (c *Pager[CursorType]) IsUnlimited() bool {
	if c == nil {
		return false
	}

	return c.limit == NoLimit
}

// IsLookahead returns true if lookahead pagination is enabled.
func (c *Pager[CursorType]) IsLookahead() bool {
	if c == nil {
		return false
	}

	return c.lookahead
}

// GetLimit returns the limit as it is stored in Pager.
func (c *Pager[CursorType]) GetLimit() int {
	if c == nil {
		return 0
	}

	return c.limit
}

// GetCursor returns the cursor stored in Pager as-is.
func (c *Pager[CursorType]) GetCursor() CursorType {
	if c == nil {
		return lo.Empty[CursorType]()
	}

	return c.cursor
}

// GetDatasetLimit returns the limit adjusted for lookahead:
//   - if Lookahead = true → GetLimit() + 1
//   - if Lookahead = false → GetLimit()
func (c *Pager[CursorType]) GetDatasetLimit() int {
	limit := c.GetLimit()
	isLookahead := c.IsLookahead()

	return lo.Ternary(isLookahead, limit+1, limit)
}

func (c *Pager[_]) validate() error {
	if c == nil {
		return fmt.Errorf("pager is nil")
	}

	if c.limit == NoLimit && c.lookahead {
		return fmt.Errorf("cannot apply lookahead to unlimited paging")
	}

	if c.limit <= 0 && c.limit != NoLimit {
		return fmt.Errorf("invalid limit %d", c.limit)
	}

	err := c.sort.validate()
	if err != nil {
		return err
	}

	return c.cursor.validate(c.sort)
}

// IsLastPage returns true if the result set is the last page in the dataset.
//
// The last page is determined by one of two conditions:
//  1. The number of returned records is less than Limit.
//  2. Lookahead = true and the number of returned records is less than or equal to Limit.
//
// Unlimited paging always yields the last page.
func IsLastPage[CursorType Cursor, T any](initialPager *Pager[CursorType], resultSet []T) bool {
	if initialPager.limit == NoLimit {
		return true
	}

	return len(resultSet) < initialPager.limit ||
		(initialPager.lookahead && len(resultSet) <= initialPager.limit)
}

// TrimResultSet trims the result set to what should be returned to the client.
//
// If lookahead = true and the extra record was fetched, drop it. Suppose
// limit = 2 and resultSet = [a, b, c].
//
//   - With lookahead → resultSet becomes [a, b].
//   - Without lookahead → resultSet remains unchanged.
func TrimResultSet[CursorType Cursor, T any](initialPager *Pager[CursorType], resultSet []T) []T {
	if initialPager.lookahead && len(resultSet) > initialPager.limit {
		resultSet = resultSet[:initialPager.limit]
	}

	return resultSet
}
