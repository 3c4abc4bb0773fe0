package fdc

import (
	"errors"
	"fmt"
)

// Common FoodData Central lookup errors
var (
	// ErrMissingAPIKey is returned when no USDA_API_KEY is configured.
	ErrMissingAPIKey = errors.New("missing FoodData Central API key: set USDA_API_KEY environment variable")

	// ErrLookupFailed is returned when the API responds with a non-success status.
	ErrLookupFailed = errors.New("FoodData Central lookup failed")

	// ErrFoodNotFound is returned when a detail fetch targets an unknown FDC ID.
	ErrFoodNotFound = errors.New("food record not found")

	// ErrRateLimited is returned when the shared API key quota is exhausted.
	ErrRateLimited = errors.New("FoodData Central rate limit exceeded")
)

// FDCError wraps errors with context about the failed lookup operation.
type FDCError struct {
	// Op is the operation that failed (e.g., "SearchFoods", "FoodDetails").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *FDCError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("fdc: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("fdc: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *FDCError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *FDCError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapFDCError wraps an error as an FDCError if it isn't already one.
func WrapFDCError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var fdcErr *FDCError
	if errors.As(err, &fdcErr) {
		return err // Already wrapped
	}

	return &FDCError{Op: op, Err: err, Details: details}
}
