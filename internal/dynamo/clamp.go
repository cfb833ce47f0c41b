package dynamo

import (
	"fmt"

	"golang.org/x/exp/constraints"
)

// Clamp bounds v to [lo, hi]. A range with lo > hi is rejected rather than
// silently clamped to one of its ends.
func Clamp[T constraints.Ordered](v, lo, hi T) (T, error) {
	if lo > hi {
		return v, fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lo, hi)
	}
	if v < lo {
		return lo, nil
	}
	if v > hi {
		return hi, nil
	}
	return v, nil
}

// CheckRange validates a [lo, hi] pair without clamping anything.
func CheckRange[T constraints.Ordered](lo, hi T) error {
	if lo > hi {
		return fmt.Errorf("%w: [%v, %v]", ErrInvalidRange, lo, hi)
	}
	return nil
}
