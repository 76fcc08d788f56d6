package gofilter

import (
	"encoding/base64"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func Test_OffsetCursor_Decode(t *testing.T) {
	tests := []struct {
		name           string
		input          string
		expectedOffset int
		expectedEmpty  bool
		expectError    bool
	}{
		{"zero empty", "", 0, true, false},
		{"zero encoded", base64.RawURLEncoding.EncodeToString([]byte("0")), 0, true, false},
		{"non-zero encodes", base64.RawURLEncoding.EncodeToString([]byte("15")), 15, false, false},
		{"negative rejected", base64.RawURLEncoding.EncodeToString([]byte("-1")), 0, true, true},
		{"not a number", base64.RawURLEncoding.EncodeToString([]byte("abc")), 0, true, true},
		{"not base64", "%%%", 0, true, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pc, err := DecodeOffsetCursor(tt.input)
			if tt.expectError {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Fatalf("%s: expected ErrInvalidArgument, got %v", tt.name, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("decode failed: %v pc=%#v", err, pc)
			}

			if e := pc.IsEmpty(); e != tt.expectedEmpty {
				t.Errorf("%s: IsEmpty=%v want %v", tt.name, e, tt.expectedEmpty)
			}
			if off := pc.GetOffset(); off != tt.expectedOffset {
				t.Errorf("%s: GetOffset=%d want %d", tt.name, off, tt.expectedOffset)
			}
		})
	}
}

func Test_OffsetCursor_String_RoundTrip(t *testing.T) {
	require.Equal(t, "", (*OffsetCursor)(nil).String())
	require.Equal(t, "", NewOffsetCursor(0).String())

	decoded, err := DecodeOffsetCursor(NewOffsetCursor(42).String())
	require.NoError(t, err)
	require.Equal(t, 42, decoded.GetOffset())
}

func Test_OffsetCursor_apply(t *testing.T) {
	q := Query{Offset: 3}
	NewOffsetCursor(20).apply(&q)
	require.Equal(t, 20, q.Offset)

	(*OffsetCursor)(nil).apply(&q)
	require.Equal(t, 0, q.Offset)
}

func Test_NextOffsetCursor(t *testing.T) {
	type item struct{ ID int }

	tests := []struct {
		name        string
		pager       *Pager[*OffsetCursor]
		input       []item
		expectedRes []item
		expectedCur *OffsetCursor
		expectError bool
	}{
		{
			name: "last page without lookahead",
			pager: NewPager[*OffsetCursor]().
				WithLimit(3).
				WithCursor(NewOffsetCursor(0)).
				WithSort(ByIDDesc),
			input:       []item{{1}, {2}},
			expectedRes: []item{{1}, {2}},
			expectedCur: nil,
		},
		{
			name: "full page without lookahead may continue",
			pager: NewPager[*OffsetCursor]().
				WithLimit(2).
				WithCursor(NewOffsetCursor(4)).
				WithSort(ByIDDesc),
			input:       []item{{1}, {2}},
			expectedRes: []item{{1}, {2}},
			expectedCur: NewOffsetCursor(6),
		},
		{
			name: "lookahead hit trims and continues",
			pager: NewPager[*OffsetCursor]().
				WithLimit(2).
				WithLookahead().
				WithCursor(NewOffsetCursor(2)).
				WithSort(ByIDDesc),
			input:       []item{{1}, {2}, {3}},
			expectedRes: []item{{1}, {2}},
			expectedCur: NewOffsetCursor(4),
		},
		{
			name: "lookahead miss is the last page",
			pager: NewPager[*OffsetCursor]().
				WithLimit(2).
				WithLookahead().
				WithSort(ByIDDesc),
			input:       []item{{1}, {2}},
			expectedRes: []item{{1}, {2}},
			expectedCur: nil,
		},
		{
			name:        "invalid pager",
			pager:       NewPager[*OffsetCursor]().WithLimit(2),
			input:       []item{{1}},
			expectError: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, cur, err := NextOffsetCursor(tt.pager, tt.input)
			if tt.expectError {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.expectedRes, res)
			require.Equal(t, tt.expectedCur, cur)
		})
	}
}
