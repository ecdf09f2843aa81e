package manuscript

import "errors"

var (
	// ErrIndexOutOfRange is returned when an index does not address a record.
	ErrIndexOutOfRange = errors.New("entry index out of range")
	// ErrMalformedInput is returned when structured record input is not valid JSON.
	ErrMalformedInput = errors.New("malformed input")
)
