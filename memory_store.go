package gofilter

import (
	"cmp"
	"context"
	"slices"
	"sync"

	"github.com/samber/lo"
)

// MemoryStore is an in-memory RecordStore. It evaluates queries the same way
// a relational store would and serves as the reference implementation in
// tests. It is safe for concurrent use.
type MemoryStore struct {
	mu      sync.RWMutex
	records []Record
}

func NewMemoryStore(records ...Record) *MemoryStore {
	s := new(MemoryStore)
	s.Put(records...)

	return s
}

// Put inserts records, replacing any stored record with the same id.
func (s *MemoryStore) Put(records ...Record) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, r := range records {
		idx := slices.IndexFunc(s.records, func(stored Record) bool { return stored.ID == r.ID })
		if idx != -1 {
			s.records[idx] = r
			continue
		}
		s.records = append(s.records, r)
	}
}

// Find - implements RecordStore.
func (s *MemoryStore) Find(ctx context.Context, q Query) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	matched := lo.Filter(s.records, func(r Record, _ int) bool {
		return q.Filter.Match(r)
	})
	s.mu.RUnlock()

	slices.SortStableFunc(matched, func(a, b Record) int {
		return compareRecords(q.Sort, a, b)
	})

	return window(matched, q.Offset, q.Limit), nil
}

// FindIDs - implements RecordStore.
func (s *MemoryStore) FindIDs(ctx context.Context, q Query) ([]int64, error) {
	records, err := s.Find(ctx, q)
	if err != nil {
		return nil, err
	}

	return lo.Map(records, func(r Record, _ int) int64 { return r.ID }), nil
}

// Count - implements RecordStore.
func (s *MemoryStore) Count(ctx context.Context, filter Predicates) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if err := filter.validate(); err != nil {
		return 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	return int64(lo.CountBy(s.records, filter.Match)), nil
}

// SumByGroup - implements RecordStore. Results are ordered by group id.
func (s *MemoryStore) SumByGroup(ctx context.Context, filter Predicates) ([]GroupTotal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := filter.validate(); err != nil {
		return nil, err
	}

	s.mu.RLock()
	grouped := lo.GroupBy(
		lo.Filter(s.records, func(r Record, _ int) bool {
			return r.GroupID != nil && filter.Match(r)
		}),
		func(r Record) int64 { return *r.GroupID },
	)
	s.mu.RUnlock()

	ret := make([]GroupTotal, 0, len(grouped))
	for groupID, members := range grouped {
		ret = append(ret, GroupTotal{
			GroupID:   groupID,
			GroupName: lo.FromPtr(members[0].GroupName),
			Total:     lo.SumBy(members, func(r Record) int64 { return int64(r.Value) }),
		})
	}

	slices.SortFunc(ret, func(a, b GroupTotal) int { return cmp.Compare(a.GroupID, b.GroupID) })

	return ret, nil
}

var _ RecordStore = (*MemoryStore)(nil)

// compareRecords orders records by the given orderings. Absent values sort
// first in ascending order.
func compareRecords(orderings Orderings, a, b Record) int {
	for _, o := range orderings {
		va, vb := a.Get(o.Field), b.Get(o.Field)

		var c int
		switch {
		case va == nil && vb == nil:
			c = 0
		case va == nil:
			c = -1
		case vb == nil:
			c = 1
		default:
			c, _ = compareValues(va, vb)
		}

		if o.Direction == DirectionDESC {
			c = -c
		}
		if c != 0 {
			return c
		}
	}

	return 0
}

func window[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]

	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}

	return items
}
