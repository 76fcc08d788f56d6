package gofilter

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned for malformed input. Such input is always
// rejected before the record store is queried.
//
// Errors coming from a RecordStore are never wrapped: callers see exactly
// what the store returned.
var ErrInvalidArgument = errors.New("invalid argument")

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
