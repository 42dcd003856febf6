package impute

import "errors"

var (
	// ErrInvalidRange is returned when a random range has min > max.
	ErrInvalidRange = errors.New("invalid range")
	// ErrUnsupportedKind is returned for columns an imputer cannot fill.
	ErrUnsupportedKind = errors.New("unsupported column kind")
)
