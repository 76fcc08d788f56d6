package gofilter

import (
	"strings"

	"github.com/samber/lo"
)

// Criteria holds optional search filters. A nil field means "no constraint"
// and never turns into a comparison against NULL or zero.
//
// Criteria is intended for API payloads:
//
//	type MemberSearch struct {
//	    Filter gofilter.Criteria `json:",inline"`
//	}
type Criteria struct {
	// Name exact match on the record name.
	Name *string `json:"name,omitempty"`
	// Group exact match on the group name.
	Group *string `json:"group,omitempty"`
	// MinValue inclusive lower bound on the record value.
	MinValue *int `json:"minValue,omitempty"`
	// MaxValue inclusive upper bound on the record value.
	MaxValue *int `json:"maxValue,omitempty"`
}

// Validate rejects criteria that can never match: MinValue above MaxValue.
func (c Criteria) Validate() error {
	if c.MinValue != nil && c.MaxValue != nil && *c.MinValue > *c.MaxValue {
		return invalidArgument("minValue %d is greater than maxValue %d", *c.MinValue, *c.MaxValue)
	}

	return nil
}

// IsEmpty returns true if no filter is present.
func (c Criteria) IsEmpty() bool {
	return len(BuildPredicates(c)) == 0
}

// WithName sets the name filter. Blank names are kept as-is and ignored later.
func (c Criteria) WithName(name string) Criteria {
	c.Name = lo.ToPtr(name)
	return c
}

func (c Criteria) WithGroup(group string) Criteria {
	c.Group = lo.ToPtr(group)
	return c
}

func (c Criteria) WithMinValue(v int) Criteria {
	c.MinValue = lo.ToPtr(v)
	return c
}

func (c Criteria) WithMaxValue(v int) Criteria {
	c.MaxValue = lo.ToPtr(v)
	return c
}

func (c Criteria) name() (string, bool) {
	return hasText(c.Name)
}

func (c Criteria) group() (string, bool) {
	return hasText(c.Group)
}

func hasText(s *string) (string, bool) {
	if s == nil || strings.TrimSpace(*s) == "" {
		return "", false
	}

	return *s, true
}
