package errors

import "fmt"

// WikiError is the structured error type for wikigen. It carries a code,
// category, and optional user-facing suggestion alongside the wrapped
// cause.
type WikiError struct {
	// Code is the unique error code (e.g., "ERR_201_PAGE_NOT_FOUND").
	Code string
	// Message is the human-readable error message.
	Message string
	// Category is the derived error category.
	Category Category
	// Cause is the underlying error, if any.
	Cause error
	// Retryable indicates if the operation can be retried.
	Retryable bool
	// Suggestion is an actionable hint for the user.
	Suggestion string
}

// Error implements the error interface.
func (e *WikiError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for error chain support.
func (e *WikiError) Unwrap() error {
	return e.Cause
}

// Is matches WikiErrors by code, enabling errors.Is.
func (e *WikiError) Is(target error) bool {
	if t, ok := target.(*WikiError); ok {
		return e.Code == t.Code
	}
	return false
}

// WithSuggestion attaches an actionable hint and returns the error.
func (e *WikiError) WithSuggestion(s string) *WikiError {
	e.Suggestion = s
	return e
}

// New creates a WikiError with the given code and message. Category and
// retryability are derived from the code.
func New(code, message string, cause error) *WikiError {
	return &WikiError{
		Code:      code,
		Message:   message,
		Category:  categoryFromCode(code),
		Cause:     cause,
		Retryable: retryableCodes[code],
	}
}

// Wrap creates a WikiError from an existing error, reusing its message.
// Returns nil when err is nil.
func Wrap(code string, err error) *WikiError {
	if err == nil {
		return nil
	}
	return New(code, err.Error(), err)
}

// StorageError creates a storage-related error.
func StorageError(message string, cause error) *WikiError {
	return New(ErrCodeStorage, message, cause)
}

// EmbeddingError creates an embedding provider error.
func EmbeddingError(message string, cause error) *WikiError {
	return New(ErrCodeEmbeddingFailed, message, cause)
}

// QueryError creates a query validation error.
func QueryError(message string, cause error) *WikiError {
	return New(ErrCodeInvalidQuery, message, cause)
}

// IsRetryable reports whether err is a WikiError with the retryable flag.
func IsRetryable(err error) bool {
	if we, ok := err.(*WikiError); ok {
		return we.Retryable
	}
	return false
}
