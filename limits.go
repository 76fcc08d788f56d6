package gofilter

const (
	NoLimit  = -1
	MaxLimit = 100
)

// IsValidLimitMax reports whether limit is within (0, maxLimit].
func IsValidLimitMax(limit int, maxLimit int) bool {
	return limit > 0 && limit <= maxLimit
}

// CheckLimitMax returns an error wrapping ErrInvalidArgument unless limit is
// within (0, maxLimit].
func CheckLimitMax(limit int, maxLimit int) error {
	if limit <= 0 {
		return invalidArgument("limit must be positive, got %d", limit)
	} else if limit > maxLimit {
		return invalidArgument("limit %d exceeds maximum %d", limit, maxLimit)
	}

	return nil
}

func CheckLimit(limit int) error {
	return CheckLimitMax(limit, MaxLimit)
}
