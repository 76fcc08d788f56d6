package gofilter

import (
	"errors"
	"testing"

	"github.com/samber/lo"
)

func Test_Criteria_Validate(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		wantErr  bool
	}{
		{"empty", Criteria{}, false},
		{"min only", Criteria{MinValue: lo.ToPtr(10)}, false},
		{"min equals max", Criteria{MinValue: lo.ToPtr(10), MaxValue: lo.ToPtr(10)}, false},
		{"min below max", Criteria{MinValue: lo.ToPtr(10), MaxValue: lo.ToPtr(11)}, false},
		{"min above max", Criteria{MinValue: lo.ToPtr(11), MaxValue: lo.ToPtr(10)}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.criteria.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("%s: err=%v wantErr=%v", tt.name, err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("%s: expected ErrInvalidArgument, got %v", tt.name, err)
			}
		})
	}
}

func Test_Criteria_IsEmpty(t *testing.T) {
	tests := []struct {
		name     string
		criteria Criteria
		want     bool
	}{
		{"zero value", Criteria{}, true},
		{"blank name", Criteria{}.WithName(""), true},
		{"whitespace group", Criteria{}.WithGroup(" \t"), true},
		{"name", Criteria{}.WithName("a"), false},
		{"zero max", Criteria{}.WithMaxValue(0), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.criteria.IsEmpty(); got != tt.want {
				t.Errorf("%s: got %v want %v", tt.name, got, tt.want)
			}
		})
	}
}

func Test_Criteria_With_DoesNotMutateReceiver(t *testing.T) {
	base := Criteria{}.WithName("a")
	derived := base.WithGroup("teamA")

	if base.Group != nil {
		t.Errorf("receiver modified: %v", *base.Group)
	}
	if derived.Name == nil || *derived.Name != "a" {
		t.Errorf("derived lost name")
	}
}
