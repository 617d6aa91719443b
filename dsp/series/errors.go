package series

import "errors"

var (
	// ErrEmptyInput is returned when no samples are supplied.
	ErrEmptyInput = errors.New("no samples")
	// ErrMalformedTimestamp is returned when a sample's date/time cannot be parsed.
	ErrMalformedTimestamp = errors.New("malformed timestamp")
	// ErrDegenerateSegment is returned when two adjacent samples share the same elapsed time.
	ErrDegenerateSegment = errors.New("zero-length segment")
	// ErrUnordered is returned when a sample precedes its predecessor in time.
	ErrUnordered = errors.New("samples out of order")
	// ErrNonFinite is returned for NaN or infinite times and levels.
	ErrNonFinite = errors.New("non-finite value")
)
