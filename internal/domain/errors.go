package domain

import "errors"

// Input errors.
var (
	ErrFileNotFound  = errors.New("input file not found")
	ErrParse         = errors.New("input is not a valid delimited table")
	ErrMissingColumn = errors.New("expected column missing")
)

// Rendering errors.
var (
	ErrEmptyTable = errors.New("table has no rows")
	ErrNonNumeric = errors.New("numeric column holds a non-finite value")
	ErrOutputDir  = errors.New("output directory does not exist")
)

// ErrInsufficientData is returned when a statistic needs more points than
// the table holds.
var ErrInsufficientData = errors.New("not enough data points")
