package sievebench

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidElementCount is returned when a filter is sized for a
	// non-positive expected element count.
	ErrInvalidElementCount = errors.New("sievebench: expected element count must be positive")

	// ErrInvalidTargetRate is returned when the target false-positive
	// rate is outside (0, 1).
	ErrInvalidTargetRate = errors.New("sievebench: target false-positive rate must be in (0, 1)")

	// ErrZeroSizedFilter is returned when a filter would be built over an
	// empty bit array.
	ErrZeroSizedFilter = errors.New("sievebench: bit array size must be at least 1")

	// ErrFilterTooLarge is returned when the computed bit array exceeds
	// the allocation guard.
	ErrFilterTooLarge = errors.New("sievebench: computed bit array size exceeds the allocation limit")

	// ErrUnknownHashFamily is returned when a hash family name does not
	// match any registered family.
	ErrUnknownHashFamily = errors.New("sievebench: unknown hash family")
)

// InvariantViolationError reports false negatives observed during an
// evaluation run. A Bloom filter can never report an inserted element as
// absent, so any occurrence points at a defect in hashing, sizing, or
// insertion rather than an ordinary statistical outcome.
type InvariantViolationError struct {
	FalseNegatives uint64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("sievebench: %d false negative(s) observed; the no-false-negative guarantee was violated", e.FalseNegatives)
}
