package gormstore

import (
	"context"
	"fmt"
	"strings"

	"github.com/Alp4ka/gofilter"
	"github.com/samber/lo"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store implements gofilter.RecordStore on top of GORM.
//
// Every read selects only the projected columns and reaches the group table
// through an explicit join, so no query is ever issued implicitly.
type Store struct {
	db          *gorm.DB
	schema      Schema
	orderByNull bool
	nullsOrder  bool
}

type Option func(*Store)

// WithSchema overrides DefaultSchema.
func WithSchema(schema Schema) Option {
	return func(s *Store) {
		s.schema = schema
	}
}

func New(db *gorm.DB, opts ...Option) (*Store, error) {
	if db == nil {
		return nil, fmt.Errorf("gormstore: nil db")
	}

	s := &Store{
		db:     db,
		schema: DefaultSchema(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.schema.validate(); err != nil {
		return nil, fmt.Errorf("gormstore: invalid schema: %w", err)
	}

	// MySQL sorts grouped rows unless told otherwise.
	s.orderByNull = db.Dialector.Name() == "mysql"
	// PostgreSQL sorts NULL as the largest value. Group columns are pinned to
	// the MySQL and SQLite placement instead.
	s.nullsOrder = db.Dialector.Name() == "postgres"

	return s, nil
}

// Find - implements gofilter.RecordStore.
func (s *Store) Find(ctx context.Context, q gofilter.Query) ([]gofilter.Record, error) {
	db, err := s.query(ctx, q, "LEFT")
	if err != nil {
		return nil, err
	}

	records := make([]gofilter.Record, 0)
	if err = db.Select(s.schema.projection()).Find(&records).Error; err != nil {
		return nil, err
	}

	return records, nil
}

// FindIDs - implements gofilter.RecordStore.
func (s *Store) FindIDs(ctx context.Context, q gofilter.Query) ([]int64, error) {
	db, err := s.query(ctx, q, "LEFT")
	if err != nil {
		return nil, err
	}

	ids := make([]int64, 0)
	if err = db.Pluck(s.schema.Columns[gofilter.FieldID], &ids).Error; err != nil {
		return nil, err
	}

	return ids, nil
}

// Count - implements gofilter.RecordStore.
func (s *Store) Count(ctx context.Context, filter gofilter.Predicates) (int64, error) {
	db, err := s.where(s.from(ctx, "LEFT"), filter)
	if err != nil {
		return 0, err
	}

	var total int64
	if err = db.Count(&total).Error; err != nil {
		return 0, err
	}

	return total, nil
}

// SumByGroup - implements gofilter.RecordStore.
//
// On MySQL the grouped query ends with ORDER BY NULL, which skips the
// implicit filesort of GROUP BY.
func (s *Store) SumByGroup(ctx context.Context, filter gofilter.Predicates) ([]gofilter.GroupTotal, error) {
	db, err := s.where(s.from(ctx, "INNER"), filter)
	if err != nil {
		return nil, err
	}

	groupName := s.schema.Columns[gofilter.FieldGroupName]
	db = db.
		Select(fmt.Sprintf(
			"%s AS group_id, %s AS group_name, SUM(%s) AS total",
			s.schema.GroupKey, groupName, s.schema.Columns[gofilter.FieldValue],
		)).
		Group(fmt.Sprintf("%s, %s", s.schema.GroupKey, groupName))

	if s.orderByNull {
		db = db.Clauses(OrderByNull())
	}

	totals := make([]gofilter.GroupTotal, 0)
	if err = db.Scan(&totals).Error; err != nil {
		return nil, err
	}

	return totals, nil
}

// OrderByNull renders "ORDER BY NULL".
func OrderByNull() clause.OrderBy {
	return clause.OrderBy{Expression: clause.Expr{SQL: "NULL"}}
}

func (s *Store) from(ctx context.Context, joinKind string) *gorm.DB {
	return s.db.WithContext(ctx).
		Table(s.schema.Table).
		Joins(s.schema.join(joinKind))
}

func (s *Store) query(ctx context.Context, q gofilter.Query, joinKind string) (*gorm.DB, error) {
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("gormstore: %w", err)
	}

	db, err := s.where(s.from(ctx, joinKind), q.Filter)
	if err != nil {
		return nil, err
	}

	if len(q.Sort) > 0 {
		orderBy, err := s.orderBy(q.Sort)
		if err != nil {
			return nil, err
		}
		db = db.Order(orderBy)
	}

	if q.Limit > 0 {
		db = db.Limit(q.Limit)
	}
	if q.Offset > 0 {
		db = db.Offset(q.Offset)
	}

	return db, nil
}

// orderBy renders the ORDER BY list. Absent groups sort first in ascending
// and last in descending order on every dialect.
func (s *Store) orderBy(sort gofilter.Orderings) (string, error) {
	parts, err := sort.ToSQLSlice(s.schema.Columns)
	if err != nil {
		return "", fmt.Errorf("gormstore: %w", err)
	}

	if s.nullsOrder {
		for i, o := range sort {
			if !nullable(o.Field) {
				continue
			}
			parts[i] += lo.Ternary(o.Direction == gofilter.DirectionASC, " NULLS FIRST", " NULLS LAST")
		}
	}

	return strings.Join(parts, ", "), nil
}

// where adds the AND-joined predicates as a single WHERE expression.
func (s *Store) where(db *gorm.DB, filter gofilter.Predicates) (*gorm.DB, error) {
	if len(filter) == 0 {
		return db, nil
	}

	sqlClause, args, err := filter.ToSQL(s.schema.Columns)
	if err != nil {
		return nil, fmt.Errorf("gormstore: %w", err)
	}

	return db.Clauses(clause.Expr{
		SQL:  sqlClause,
		Vars: lo.ToAnySlice(args),
	}), nil
}

// nullable reports whether the field comes from the optional group join.
func nullable(f gofilter.Field) bool {
	return f == gofilter.FieldGroupID || f == gofilter.FieldGroupName
}

var _ gofilter.RecordStore = (*Store)(nil)
