package ksignal

import "errors"

// Sentinel errors for common failure cases.
var (
	ErrAlreadyBound  = errors.New("function already bound")
	ErrNilOperator   = errors.New("operator must not be nil")
	ErrInvalidCount  = errors.New("buffer count must be positive")
	ErrInvalidPeriod = errors.New("period must be positive")
)
