package gofilter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func Test_Pager_WithMethods_And_SortDedup(t *testing.T) {
	p := (*Pager[*KeysetCursor])(nil)
	p = p.WithLimit(5).
		WithLookahead().
		WithUnlimited().
		WithSubstitutedSort(
			OrderBy{Field: FieldID, Direction: DirectionASC},
		).
		WithSort(
			OrderBy{Field: FieldID, Direction: DirectionDESC},
			OrderBy{Field: FieldValue, Direction: DirectionASC},
		)

	if !p.lookahead {
		t.Fatalf("expected lookahead")
	}
	if p.limit != NoLimit {
		t.Fatalf("expected NoLimit after WithUnlimited")
	}
	require.Equal(
		t,
		Orderings{
			{Field: FieldID, Direction: DirectionDESC},
			{Field: FieldValue, Direction: DirectionASC},
		},
		p.sort,
	)
}

func Test_Pager_WithTiebreaker(t *testing.T) {
	p := NewPager[*OffsetCursor]().
		WithSort(OrderBy{Field: FieldValue, Direction: DirectionASC}).
		WithTiebreaker(ByIDDesc)
	require.Equal(t, Orderings{{Field: FieldValue, Direction: DirectionASC}, ByIDDesc}, p.GetSort())

	p = NewPager[*OffsetCursor]().
		WithSort(OrderBy{Field: FieldID, Direction: DirectionASC}).
		WithTiebreaker(ByIDDesc)
	require.Equal(t, Orderings{{Field: FieldID, Direction: DirectionASC}}, p.GetSort())
}

func Test_Pager_validate(t *testing.T) {
	tests := []struct {
		name    string
		pager   *Pager[*KeysetCursor]
		wantErr bool
	}{
		{
			name: "standard case, ok",
			pager: &Pager[*KeysetCursor]{
				lookahead: true,
				limit:     10,
				cursor:    NewKeysetCursor(1, DirectionASC),
				sort:      Orderings{{Field: FieldID, Direction: DirectionASC}},
			},
			wantErr: false,
		},
		{
			name:    "nil pager",
			pager:   nil,
			wantErr: true,
		},
		{
			name: "lookahead with no limit is forbidden",
			pager: &Pager[*KeysetCursor]{
				lookahead: true,
				limit:     NoLimit,
				sort:      Orderings{ByIDDesc},
			},
			wantErr: true,
		},
		{
			name: "zero limit is forbidden",
			pager: &Pager[*KeysetCursor]{
				limit: 0,
				sort:  Orderings{ByIDDesc},
			},
			wantErr: true,
		},
		{
			name: "unlimited without lookahead, ok",
			pager: &Pager[*KeysetCursor]{
				limit: NoLimit,
				sort:  Orderings{ByIDDesc},
			},
			wantErr: false,
		},
		{
			name: "sort must be present",
			pager: &Pager[*KeysetCursor]{
				limit: 10,
			},
			wantErr: true,
		},
		{
			name: "cursor must agree with the sort",
			pager: &Pager[*KeysetCursor]{
				limit:  10,
				cursor: NewKeysetCursor(1, DirectionASC),
				sort:   Orderings{{Field: FieldName, Direction: DirectionASC}},
			},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.pager.validate(); (err != nil) != tt.wantErr {
				t.Errorf("%s: err=%v wantErr=%v", tt.name, err, tt.wantErr)
			}
		})
	}
}

func Test_Pager_Paginate(t *testing.T) {
	base := Predicates{Eq(FieldName, "a")}

	q, err := NewPager[*KeysetCursor]().
		WithLimit(5).
		WithLookahead().
		WithCursor(NewKeysetCursor(50, DirectionDESC)).
		WithSort(ByIDDesc).
		Paginate(Query{Filter: base})
	require.NoError(t, err)

	assert.Equal(t, Query{
		Filter: Predicates{Eq(FieldName, "a"), Lt(FieldID, int64(50))},
		Sort:   Orderings{ByIDDesc},
		Limit:  6,
	}, q)
	assert.Equal(t, Predicates{Eq(FieldName, "a")}, base)

	q, err = NewPager[*OffsetCursor]().
		WithUnlimited().
		WithCursor(NewOffsetCursor(30)).
		WithSort(ByIDDesc).
		Paginate(Query{})
	require.NoError(t, err)
	assert.Equal(t, 30, q.Offset)
	assert.Equal(t, 0, q.Limit)

	_, err = NewPager[*OffsetCursor]().WithLimit(-5).WithSort(ByIDDesc).Paginate(Query{})
	assert.Error(t, err)
}

func Test_IsLastPage_And_TrimResultSet(t *testing.T) {
	tests := []struct {
		name        string
		pager       *Pager[*OffsetCursor]
		input       []int
		wantLast    bool
		wantTrimmed []int
	}{
		{"short page", NewPager[*OffsetCursor]().WithLimit(3), []int{1, 2}, true, []int{1, 2}},
		{"full page no lookahead", NewPager[*OffsetCursor]().WithLimit(2), []int{1, 2}, false, []int{1, 2}},
		{"full page with lookahead", NewPager[*OffsetCursor]().WithLimit(2).WithLookahead(), []int{1, 2}, true, []int{1, 2}},
		{"lookahead extra row", NewPager[*OffsetCursor]().WithLimit(2).WithLookahead(), []int{1, 2, 3}, false, []int{1, 2}},
		{"unlimited", NewPager[*OffsetCursor]().WithUnlimited(), []int{1, 2, 3}, true, []int{1, 2, 3}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantLast, IsLastPage(tt.pager, tt.input))
			assert.Equal(t, tt.wantTrimmed, TrimResultSet(tt.pager, tt.input))
		})
	}
}
