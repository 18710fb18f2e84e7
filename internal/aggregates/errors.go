package aggregates

import (
	"errors"
	"fmt"
)

// Sentinel errors for the journey aggregate. Callers classify with errors.Is;
// the HTTP layer maps each class to a status code in pkg/utils.
var (
	// ErrValidation indicates a caller-fixable field problem (shape, length, enum, range).
	ErrValidation = errors.New("validation failed")
	// ErrLimitExceeded indicates a collection or quota cap was hit.
	ErrLimitExceeded = errors.New("limit exceeded")
	// ErrDuplicateItem indicates an insertion that would duplicate an existing entry.
	ErrDuplicateItem = errors.New("duplicate item")
	// ErrNotFound indicates a missing journey, pikmi, or itinerary day.
	ErrNotFound = errors.New("not found")

	// Idempotence guards. Reported to the caller, never retried.
	ErrAlreadyMember = errors.New("already a member")
	ErrNotMember     = errors.New("not a member")
	ErrAlreadyLiked  = errors.New("already liked")
	ErrNotLiked      = errors.New("not liked")

	// ErrConflict indicates the optimistic-concurrency retry budget was exhausted.
	// The caller should retry the whole operation.
	ErrConflict = errors.New("version conflict")
	// ErrUnavailable indicates the store could not be reached.
	ErrUnavailable = errors.New("store unavailable")
)

// ValidationError tags an error as a validation failure on the given field.
func ValidationError(field, msg string) error {
	return fmt.Errorf("%w: %s %s", ErrValidation, field, msg)
}

// FieldTooLongError reports a string field exceeding its maximum rune count.
func FieldTooLongError(field string, max int) error {
	return fmt.Errorf("%w: %s longer than %d characters", ErrValidation, field, max)
}

// InvalidEnumError reports a value outside a fixed enum set.
func InvalidEnumError(field, value string) error {
	return fmt.Errorf("%w: %s has invalid value %q", ErrValidation, field, value)
}

// InvalidTimeRangeError reports a bad start/end pair.
func InvalidTimeRangeError(msg string) error {
	return fmt.Errorf("%w: time range %s", ErrValidation, msg)
}

// CoordinateOutOfBoundsError reports a position outside the service area.
func CoordinateOutOfBoundsError(lon, lat float64) error {
	return fmt.Errorf("%w: coordinate (%v, %v) outside service area", ErrValidation, lon, lat)
}

// IndexOutOfRangeError reports an itinerary day index outside [0, days).
func IndexOutOfRangeError(index, days int) error {
	return fmt.Errorf("%w: day index %d outside itinerary of %d days", ErrValidation, index, days)
}

// LimitError reports which cap was hit.
func LimitError(what string, max int) error {
	return fmt.Errorf("%w: %s capped at %d", ErrLimitExceeded, what, max)
}

// DuplicateError reports which entry would be duplicated.
func DuplicateError(what string) error {
	return fmt.Errorf("%w: %s", ErrDuplicateItem, what)
}
