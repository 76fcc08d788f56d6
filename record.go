package gofilter

import (
	"cmp"
	"math"
)

// Record is a read-only projection of a stored row. It carries only the
// columns a search returns, never the full entity.
type Record struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	Value     int     `json:"value"`
	GroupID   *int64  `json:"groupId,omitempty"`
	GroupName *string `json:"groupName,omitempty"`
}

// Get returns the value of the field, or nil when the field is absent
// (a record without a group) or unknown.
func (r Record) Get(f Field) any {
	switch f {
	case FieldID:
		return r.ID
	case FieldName:
		return r.Name
	case FieldValue:
		return r.Value
	case FieldGroupID:
		if r.GroupID == nil {
			return nil
		}
		return *r.GroupID
	case FieldGroupName:
		if r.GroupName == nil {
			return nil
		}
		return *r.GroupName
	default:
		return nil
	}
}

// Page is a single page of search results.
type Page struct {
	// Content result elements in query order.
	Content []Record `json:"content"`
	// TotalCount number of records matching the predicates. Set in offset mode only.
	TotalCount *int64 `json:"totalCount,omitempty"`
	// HasNext whether another page follows.
	HasNext bool `json:"hasNext"`
	// NextToken token for the next page. Empty on the last page.
	NextToken string `json:"nextToken,omitempty"`
}

// GroupTotal is the sum of record values within one group.
type GroupTotal struct {
	GroupID   int64  `json:"groupId"`
	GroupName string `json:"groupName"`
	Total     int64  `json:"total"`
}

// compareValues compares two field values. ok is false when the values are
// not comparable, which includes either side being nil: like SQL NULL, an
// absent value satisfies no comparison.
func compareValues(a, b any) (int, bool) {
	if a == nil || b == nil {
		return 0, false
	}

	if as, isStr := a.(string); isStr {
		bs, isStr := b.(string)
		if !isStr {
			return 0, false
		}
		return cmp.Compare(as, bs), true
	}

	ai, aok := toInt64(a)
	bi, bok := toInt64(b)
	au, aBig := aboveInt64(a)
	bu, bBig := aboveInt64(b)

	switch {
	case aok && bok:
		return cmp.Compare(ai, bi), true
	case aBig && bBig:
		return cmp.Compare(au, bu), true
	case aok && bBig:
		return -1, true
	case aBig && bok:
		return 1, true
	default:
		return 0, false
	}
}

// aboveInt64 reports unsigned values too large for int64.
func aboveInt64(v any) (uint64, bool) {
	var u uint64
	switch vt := v.(type) {
	case uint:
		u = uint64(vt)
	case uint64:
		u = vt
	default:
		return 0, false
	}

	return u, u > math.MaxInt64
}

func toInt64(v any) (int64, bool) {
	switch vt := v.(type) {
	case int:
		return int64(vt), true
	case int8:
		return int64(vt), true
	case int16:
		return int64(vt), true
	case int32:
		return int64(vt), true
	case int64:
		return vt, true
	case uint:
		return int64(vt), uint64(vt) <= math.MaxInt64
	case uint8:
		return int64(vt), true
	case uint16:
		return int64(vt), true
	case uint32:
		return int64(vt), true
	case uint64:
		return int64(vt), vt <= math.MaxInt64
	case float64:
		// JSON-decoded cursor values arrive as float64.
		return int64(vt), vt == float64(int64(vt))
	default:
		return 0, false
	}
}
