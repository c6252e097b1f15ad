package inflation

import "errors"

var (
	// ErrSchema reports a table header that does not follow the CPI layout.
	ErrSchema = errors.New("invalid CPI schema")
	// ErrUnknownCategory reports a category that is not a category column.
	ErrUnknownCategory = errors.New("unknown category")
	// ErrInvalidRange reports a start year that is not strictly before the end year.
	ErrInvalidRange = errors.New("end year must be greater than start year")
	// ErrInvalidAmount reports a monetary amount below the minimum of 1.
	ErrInvalidAmount = errors.New("amount must be at least 1")
	// ErrInsufficientData reports a year without any value for the category.
	ErrInsufficientData = errors.New("insufficient data")
	// ErrUndefinedInflation reports a ratio that cannot be computed, typically
	// a zero start value.
	ErrUndefinedInflation = errors.New("undefined inflation")
)
