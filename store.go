package gofilter

import (
	"context"
	"fmt"
)

// Query is a storage-agnostic read request.
type Query struct {
	// Filter conjunction of predicates. Empty matches everything.
	Filter Predicates
	// Sort orderings applied in sequence.
	Sort Orderings
	// Offset number of leading rows to skip.
	Offset int
	// Limit maximum number of rows. Values <= 0 mean no limit.
	Limit int
}

// Validate checks that every predicate and ordering is well formed.
func (q Query) Validate() error {
	if err := q.Filter.validate(); err != nil {
		return err
	}

	for _, o := range q.Sort {
		if err := o.validate(); err != nil {
			return err
		}
	}

	if q.Offset < 0 {
		return fmt.Errorf("negative offset %d", q.Offset)
	}

	return nil
}

// RecordStore executes read queries against persistent storage.
//
// Implementations must return their own errors as-is; Service passes them to
// the caller unchanged.
type RecordStore interface {
	// Find returns projected records matching the query.
	Find(ctx context.Context, q Query) ([]Record, error)
	// FindIDs is Find restricted to the id column.
	FindIDs(ctx context.Context, q Query) ([]int64, error)
	// Count returns the number of records matching the filter.
	Count(ctx context.Context, filter Predicates) (int64, error)
	// SumByGroup sums record values per group over records that belong to a
	// group and match the filter. Result order is unspecified.
	SumByGroup(ctx context.Context, filter Predicates) ([]GroupTotal, error)
}
