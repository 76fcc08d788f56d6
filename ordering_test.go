package gofilter

import (
	"errors"
	"slices"
	"strings"
	"testing"
)

func Test_Direction_Valid_And_ForOperator(t *testing.T) {
	tests := []struct {
		name     string
		in       Direction
		valid    bool
		operator Operator
		panicExp bool
	}{
		{"ASC valid maps to GT", DirectionASC, true, OperatorGT, false},
		{"DESC valid maps to LT", DirectionDESC, true, OperatorLT, false},
		{"lowercase invalid", Direction("asc"), false, "", true},
	}
	for _, tt := range tests {
		if got := tt.in.Valid(); got != tt.valid {
			t.Errorf("%s: Valid=%v want %v", tt.name, got, tt.valid)
		}
		if !tt.panicExp {
			if got := tt.in.ForOperator(); got != tt.operator {
				t.Errorf("%s: ForOperator=%v want %v", tt.name, got, tt.operator)
			}
		}
	}
}

func Test_Orderings_validate(t *testing.T) {
	tests := []struct {
		name string
		ord  Orderings
		ok   bool
	}{
		{"empty returns error", Orderings{}, false},
		{"invalid direction", Orderings{{Field: FieldID, Direction: "bad"}}, false},
		{"unknown field", Orderings{{Field: "age", Direction: DirectionASC}}, false},
		{"valid list", Orderings{{Field: FieldID, Direction: DirectionASC}}, true},
	}
	for _, tt := range tests {
		if err := tt.ord.validate(); (err == nil) != tt.ok {
			t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
		}
	}
}

func Test_Orderings_ToSQLSlice(t *testing.T) {
	columns := ColumnMapping{
		FieldID:    "members.id",
		FieldValue: "members.age",
	}

	got, err := Orderings{
		{Field: FieldValue, Direction: DirectionASC},
		ByIDDesc,
	}.ToSQLSlice(columns)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if want := []string{"members.age ASC", "members.id DESC"}; !slices.Equal(got, want) {
		t.Errorf("got %q want %q", got, want)
	}

	if _, err = (Orderings{{Field: FieldName, Direction: DirectionASC}}).ToSQLSlice(columns); err == nil {
		t.Errorf("expected error for unmapped field")
	}
}

func Test_Orderings_Has(t *testing.T) {
	o := Orderings{{Field: FieldValue, Direction: DirectionASC}}
	if !o.Has(FieldValue) {
		t.Errorf("expected value to be present")
	}
	if o.Has(FieldID) {
		t.Errorf("expected id to be absent")
	}
}

func Test_ParseSort(t *testing.T) {
	mapping := FieldMapping{
		"id":   FieldID,
		"name": FieldName,
		"age":  FieldValue,
	}

	tests := []struct {
		name  string
		in    []string
		ok    bool
		first OrderBy
	}{
		{"invalid format", []string{"id"}, false, OrderBy{}},
		{"unknown alias", []string{"idx asc"}, false, OrderBy{}},
		{"invalid direction", []string{"id up"}, false, OrderBy{}},
		{"valid asc", []string{"id asc"}, true, OrderBy{Field: FieldID, Direction: DirectionASC}},
		{"valid desc", []string{"name desc"}, true, OrderBy{Field: FieldName, Direction: DirectionDESC}},
		{"alias resolves to field", []string{"age DESC"}, true, OrderBy{Field: FieldValue, Direction: DirectionDESC}},
		{"extra spaces", []string{"  age   asc "}, true, OrderBy{Field: FieldValue, Direction: DirectionASC}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseSort(tt.in, mapping)
			if (err == nil) != tt.ok {
				t.Errorf("%s: ok=%v err=%v", tt.name, tt.ok, err)
				return
			}
			if !tt.ok {
				if !errors.Is(err, ErrInvalidArgument) {
					t.Errorf("%s: expected ErrInvalidArgument, got %v", tt.name, err)
				}
				return
			}
			if len(got) == 0 || got[0] != tt.first {
				t.Errorf("%s: first=%v want %v", tt.name, got, tt.first)
			}
		})
	}
}

func Test_ParseSort_SuggestsClosestAlias(t *testing.T) {
	_, err := ParseSort([]string{"nmae asc"}, DefaultFieldMapping())
	if err == nil {
		t.Fatalf("expected error")
	}
	if !strings.Contains(err.Error(), "closest: 'name'") {
		t.Errorf("unexpected error: %v", err)
	}
}

func Test_closestAlias(t *testing.T) {
	aliases := []FieldAlias{"id", "name", "group_name"}
	tests := []struct {
		name string
		in   FieldAlias
		out  FieldAlias
	}{
		{"closest to id", "idx", "id"},
		{"closest to name", "nme", "name"},
		{"closest to group_name", "groupname", "group_name"},
		{"empty dataset", "name", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dataSet := aliases
			if tt.out == "" {
				dataSet = nil
			}
			if got := closestAlias(tt.in, dataSet); got != tt.out {
				t.Errorf("%s: got %s want %s", tt.name, got, tt.out)
			}
		})
	}
}
