package recipe

import (
	"errors"
	"fmt"
)

// Common recipe structuring errors
var (
	// ErrMissingAPIKey is returned when the OpenAI API key is not configured.
	ErrMissingAPIKey = errors.New("missing OpenAI API key")

	// ErrCompletionFailed is returned when the language model request fails.
	ErrCompletionFailed = errors.New("language model request failed")

	// ErrNoResponse is returned when the model returns no usable content.
	ErrNoResponse = errors.New("no content in model response")

	// ErrNoTitle is returned when no recipe title could be recovered from the
	// OCR text by any strategy.
	ErrNoTitle = errors.New("could not determine recipe title")
)

// RecipeError wraps errors with additional context about the structuring failure.
type RecipeError struct {
	// Op is the operation that failed (e.g., "StructureRecipe").
	Op string

	// Err is the underlying error.
	Err error

	// Details provides additional context about the failure.
	Details string
}

// Error implements the error interface.
func (e *RecipeError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("recipe: %s failed: %s: %v", e.Op, e.Details, e.Err)
	}
	return fmt.Sprintf("recipe: %s failed: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error for error unwrapping.
func (e *RecipeError) Unwrap() error {
	return e.Err
}

// Is implements error matching for errors.Is.
func (e *RecipeError) Is(target error) bool {
	return errors.Is(e.Err, target)
}

// WrapRecipeError wraps an error as a RecipeError if it isn't already one.
func WrapRecipeError(op string, err error, details string) error {
	if err == nil {
		return nil
	}

	var recipeErr *RecipeError
	if errors.As(err, &recipeErr) {
		return err // Already wrapped
	}

	return &RecipeError{Op: op, Err: err, Details: details}
}
