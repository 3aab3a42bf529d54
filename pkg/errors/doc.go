// Package errors provides structured error types for better observability
// and programmatic error handling across the application.
//
// Example usage:
//
//	err := errors.NewWithContext(
//	    errors.ErrCodeTypeMismatch,
//	    "expected a map at the top level",
//	    map[string]any{
//	        "got": fmt.Sprintf("%T", record),
//	    },
//	)
//
// Callers test for a classification with IsCode, which sees through
// fmt.Errorf("%w") wrapping:
//
//	if errors.IsCode(err, errors.ErrCodeTypeMismatch) {
//	    // reject the input
//	}
package errors
