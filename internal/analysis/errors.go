package analysis

import "errors"

// Fatal-tier errors. Every error returned by Validate wraps exactly one of these.
var (
	ErrInvalidInput    = errors.New("invalid input data")
	ErrEmptyInput      = errors.New("input collections must not be empty")
	ErrInvalidOptions  = errors.New("options must be provided")
	ErrMissingStrategy = errors.New("options must supply revenue and bonus strategies")
	ErrInvalidSeller   = errors.New("seller must have id, first_name and last_name")
)
