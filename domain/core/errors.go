package core

import (
	"errors"
	"fmt"
)

// Domain errors - centralized error definitions
var (
	// Load errors
	ErrDataUnavailable = errors.New("dataset unavailable")
	ErrMissingColumn   = fmt.Errorf("%w: required column missing", ErrDataUnavailable)
	ErrMalformedCell   = fmt.Errorf("%w: malformed cell", ErrDataUnavailable)

	// Control errors
	ErrInvalidBins  = errors.New("bin count out of range")
	ErrInvalidClass = errors.New("invalid passenger class")
	ErrInvalidSex   = errors.New("invalid sex")
)

// NewDataUnavailableError tags a source failure as fatal for the run.
func NewDataUnavailableError(source string, err error) error {
	return fmt.Errorf("%w: source %s: %w", ErrDataUnavailable, source, err)
}

func NewMissingColumnError(column string) error {
	return fmt.Errorf("%w: %s", ErrMissingColumn, column)
}

func NewMalformedCellError(row int, column, value string) error {
	return fmt.Errorf("%w: row %d column %s value %q", ErrMalformedCell, row, column, value)
}

func NewInvalidBinsError(bins, min, max int) error {
	return fmt.Errorf("%w: %d not in [%d, %d]", ErrInvalidBins, bins, min, max)
}

// Error checking helpers
func IsDataUnavailable(err error) bool {
	return errors.Is(err, ErrDataUnavailable)
}

func IsInvalidControl(err error) bool {
	return errors.Is(err, ErrInvalidBins) ||
		errors.Is(err, ErrInvalidClass) ||
		errors.Is(err, ErrInvalidSex)
}
