package scoreboard

import "errors"

var (
	// ErrInvalidArgument marks a caller contract violation, e.g. an unknown player key.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrMalformedInput marks CSV text too short to hold a header and a data row.
	ErrMalformedInput = errors.New("malformed input")
	// ErrStorageFailure marks a failed durable write. The in-memory state stays authoritative.
	ErrStorageFailure = errors.New("storage failure")
)
