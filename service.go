package gofilter

import (
	"context"
	"fmt"
	"math"

	"github.com/rs/zerolog"
	"github.com/samber/lo"
)

// Service composes predicates from criteria and runs paginated searches
// against a RecordStore. It holds no mutable state; concurrent calls are
// independent.
//
// Store errors are returned unchanged. Validation errors wrap
// ErrInvalidArgument and are reported before the store is queried.
type Service struct {
	store    RecordStore
	logger   zerolog.Logger
	maxLimit int
}

type Option func(*Service)

// WithLogger sets the logger. Searches are logged at debug level, store
// failures at error level.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Service) {
		s.logger = logger.With().Str("component", "gofilter").Logger()
	}
}

// WithMaxLimit overrides MaxLimit, the largest accepted page size.
func WithMaxLimit(maxLimit int) Option {
	return func(s *Service) {
		if maxLimit > 0 {
			s.maxLimit = maxLimit
		}
	}
}

func NewService(store RecordStore, opts ...Option) *Service {
	s := &Service{
		store:    store,
		logger:   zerolog.Nop(),
		maxLimit: MaxLimit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// BuildPredicates - see BuildPredicates.
func (s *Service) BuildPredicates(c Criteria) Predicates {
	return BuildPredicates(c)
}

// SearchOffset returns page pageNumber (zero based) of pageSize records.
//
// Records are ordered by sort, then by id DESC so that rows neither repeat
// nor vanish between pages. TotalCount is computed by a separate count query
// over the same predicates.
//
// IMPORTANT:
// The content and count queries do not share a transaction. Under concurrent
// writes TotalCount may disagree with Content.
//
// Sorting by a group field places records without a group first in
// ascending and last in descending order, whatever the store.
func (s *Service) SearchOffset(ctx context.Context, c Criteria, pageNumber, pageSize int, sort ...OrderBy) (*Page, error) {
	offset, err := s.pageOffset(pageNumber, pageSize)
	if err != nil {
		return nil, err
	}

	return s.searchOffset(ctx, c, NewOffsetCursor(offset), pageSize, sort)
}

// SearchOffsetToken continues SearchOffset from Page.NextToken. An empty
// token reads the first page. The same criteria and sort must be passed on
// every call.
func (s *Service) SearchOffsetToken(ctx context.Context, c Criteria, token string, pageSize int, sort ...OrderBy) (*Page, error) {
	cursor, err := DecodeOffsetCursor(token)
	if err != nil {
		return nil, err
	}

	return s.searchOffset(ctx, c, cursor, pageSize, sort)
}

func (s *Service) searchOffset(
	ctx context.Context,
	c Criteria,
	cursor *OffsetCursor,
	pageSize int,
	sort Orderings,
) (*Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := CheckLimitMax(pageSize, s.maxLimit); err != nil {
		return nil, err
	}

	filter := BuildPredicates(c)
	pager := NewPager[*OffsetCursor]().
		WithLimit(pageSize).
		WithCursor(cursor).
		WithSort(sort...).
		WithTiebreaker(ByIDDesc)

	q, err := pager.Paginate(Query{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	content, err := s.store.Find(ctx, q)
	if err != nil {
		s.logStoreError(err, "find")
		return nil, err
	}

	total, err := s.store.Count(ctx, filter)
	if err != nil {
		s.logStoreError(err, "count")
		return nil, err
	}

	page := &Page{
		Content:    content,
		TotalCount: lo.ToPtr(total),
		HasNext:    int64(q.Offset+len(content)) < total,
	}
	if page.HasNext {
		page.NextToken = NewOffsetCursor(q.Offset + len(content)).String()
	}

	s.logger.Debug().
		Str("mode", "offset").
		Int("offset", q.Offset).
		Int("size", pageSize).
		Int("predicates", len(filter)).
		Int("returned", len(content)).
		Int64("total", total).
		Msg("search")

	return page, nil
}

// SearchKeyset returns up to limit records with id below lastSeenID, ordered
// by id DESC. A nil lastSeenID starts from the first page. No count query is
// issued.
func (s *Service) SearchKeyset(ctx context.Context, c Criteria, lastSeenID *int64, limit int) (*Page, error) {
	return s.SearchKeysetDirection(ctx, c, lastSeenID, limit, DirectionDESC)
}

// SearchKeysetDirection is SearchKeyset with an explicit id direction. For
// DirectionASC the implicit predicate becomes id > lastSeenID.
func (s *Service) SearchKeysetDirection(
	ctx context.Context,
	c Criteria,
	lastSeenID *int64,
	limit int,
	direction Direction,
) (*Page, error) {
	if !direction.Valid() {
		return nil, invalidArgument("invalid direction '%s'", direction)
	}

	var cursor *KeysetCursor
	if lastSeenID != nil {
		cursor = NewKeysetCursor(*lastSeenID, direction)
	}

	return s.searchKeyset(ctx, c, cursor, limit, direction)
}

// SearchKeysetToken continues a keyset search from Page.NextToken. An empty
// token starts from the first page in id DESC order.
func (s *Service) SearchKeysetToken(ctx context.Context, c Criteria, token string, limit int) (*Page, error) {
	cursor, err := DecodeKeysetCursor(token)
	if err != nil {
		return nil, err
	}

	return s.searchKeyset(ctx, c, cursor, limit, cursor.Direction())
}

func (s *Service) searchKeyset(
	ctx context.Context,
	c Criteria,
	cursor *KeysetCursor,
	limit int,
	direction Direction,
) (*Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := CheckLimitMax(limit, s.maxLimit); err != nil {
		return nil, err
	}

	filter := BuildPredicates(c)
	pager := NewPager[*KeysetCursor]().
		WithLimit(limit).
		WithLookahead().
		WithCursor(cursor).
		WithSubstitutedSort(OrderBy{Field: FieldID, Direction: direction})

	q, err := pager.Paginate(Query{Filter: filter})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	records, err := s.store.Find(ctx, q)
	if err != nil {
		s.logStoreError(err, "find")
		return nil, err
	}

	content, next, err := NextKeysetCursor(pager, records, func(r Record) int64 { return r.ID })
	if err != nil {
		return nil, err
	}

	s.logger.Debug().
		Str("mode", "keyset").
		Bool("first", cursor.IsEmpty()).
		Int("limit", limit).
		Int("predicates", len(filter)).
		Int("returned", len(content)).
		Msg("search")

	return &Page{
		Content:   content,
		HasNext:   next != nil,
		NextToken: next.String(),
	}, nil
}

// SearchCovering pages through ids first and then loads the projected rows
// for exactly those ids:
//
//	SELECT id FROM ... WHERE <filter> ORDER BY id DESC LIMIT n OFFSET m
//	SELECT <projection> FROM ... WHERE id IN (...) ORDER BY id DESC
//
// When the id query can be served from an index the expensive projection is
// only read for the rows that are returned. TotalCount is not computed.
func (s *Service) SearchCovering(ctx context.Context, c Criteria, pageNumber, pageSize int) (*Page, error) {
	offset, err := s.pageOffset(pageNumber, pageSize)
	if err != nil {
		return nil, err
	}

	return s.searchCovering(ctx, c, NewOffsetCursor(offset), pageSize)
}

// SearchCoveringToken continues SearchCovering from Page.NextToken. An empty
// token reads the first page.
func (s *Service) SearchCoveringToken(ctx context.Context, c Criteria, token string, pageSize int) (*Page, error) {
	cursor, err := DecodeOffsetCursor(token)
	if err != nil {
		return nil, err
	}

	return s.searchCovering(ctx, c, cursor, pageSize)
}

func (s *Service) searchCovering(ctx context.Context, c Criteria, cursor *OffsetCursor, pageSize int) (*Page, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}
	if err := CheckLimitMax(pageSize, s.maxLimit); err != nil {
		return nil, err
	}

	pager := NewPager[*OffsetCursor]().
		WithLimit(pageSize).
		WithLookahead().
		WithCursor(cursor).
		WithSort(ByIDDesc)

	q, err := pager.Paginate(Query{Filter: BuildPredicates(c)})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidArgument, err)
	}

	ids, err := s.store.FindIDs(ctx, q)
	if err != nil {
		s.logStoreError(err, "find_ids")
		return nil, err
	}

	ids, next, err := NextOffsetCursor(pager, ids)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return &Page{Content: []Record{}}, nil
	}

	content, err := s.store.Find(ctx, Query{
		Filter: Predicates{In(FieldID, ids)},
		Sort:   Orderings{ByIDDesc},
	})
	if err != nil {
		s.logStoreError(err, "find")
		return nil, err
	}

	s.logger.Debug().
		Str("mode", "covering").
		Int("offset", q.Offset).
		Int("size", pageSize).
		Int("returned", len(content)).
		Msg("search")

	return &Page{
		Content:   content,
		HasNext:   next != nil,
		NextToken: next.String(),
	}, nil
}

// Exists reports whether a record with the id exists. It probes for a single
// id instead of counting matches.
func (s *Service) Exists(ctx context.Context, id int64) (bool, error) {
	ids, err := s.store.FindIDs(ctx, Query{
		Filter: Predicates{Eq(FieldID, id)},
		Limit:  1,
	})
	if err != nil {
		s.logStoreError(err, "find_ids")
		return false, err
	}

	return len(ids) > 0, nil
}

// GroupTotals sums record values per group over the records matching the
// criteria. Records without a group are not included.
func (s *Service) GroupTotals(ctx context.Context, c Criteria) ([]GroupTotal, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	totals, err := s.store.SumByGroup(ctx, BuildPredicates(c))
	if err != nil {
		s.logStoreError(err, "sum_by_group")
		return nil, err
	}

	return totals, nil
}

// pageOffset converts a page number into a row offset.
func (s *Service) pageOffset(pageNumber, pageSize int) (int, error) {
	if pageNumber < 0 {
		return 0, invalidArgument("page number must not be negative, got %d", pageNumber)
	}
	if err := CheckLimitMax(pageSize, s.maxLimit); err != nil {
		return 0, err
	}
	if pageNumber > math.MaxInt/pageSize {
		return 0, invalidArgument("page %d of size %d is out of range", pageNumber, pageSize)
	}

	return pageNumber * pageSize, nil
}

func (s *Service) logStoreError(err error, op string) {
	s.logger.Error().Err(err).Str("op", op).Msg("record store failure")
}
