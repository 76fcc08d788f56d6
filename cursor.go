package gofilter

import "encoding/base64"

var _encoder = base64.RawURLEncoding

// Cursor marks the position a page starts from.
type Cursor interface {
	String() string
	IsEmpty() bool
	apply(q *Query)
	validate(orderings Orderings) error
}
