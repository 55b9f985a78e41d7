// Package errors provides structured error handling for wikigen.
//
// Error codes follow the pattern ERR_XXX_DESCRIPTION where:
//   - 1XX: configuration errors
//   - 2XX: storage errors
//   - 3XX: embedding provider errors
//   - 4XX: query/validation errors
//   - 5XX: internal errors
package errors

// Category classifies errors for handling and reporting.
type Category string

const (
	// CategoryConfig indicates configuration-related errors.
	CategoryConfig Category = "CONFIG"
	// CategoryStorage indicates page database and file I/O errors.
	CategoryStorage Category = "STORAGE"
	// CategoryEmbedding indicates embedding provider errors.
	CategoryEmbedding Category = "EMBEDDING"
	// CategoryQuery indicates query and input validation errors.
	CategoryQuery Category = "QUERY"
	// CategoryInternal indicates unexpected internal errors.
	CategoryInternal Category = "INTERNAL"
)

// Error codes organized by category.
const (
	ErrCodeConfigNotFound = "ERR_101_CONFIG_NOT_FOUND"
	ErrCodeConfigInvalid  = "ERR_102_CONFIG_INVALID"

	ErrCodePageNotFound = "ERR_201_PAGE_NOT_FOUND"
	ErrCodeStorage      = "ERR_202_STORAGE"
	ErrCodeIndexLocked  = "ERR_203_INDEX_LOCKED"

	ErrCodeProviderUnavailable = "ERR_301_PROVIDER_UNAVAILABLE"
	ErrCodeEmbeddingFailed     = "ERR_302_EMBEDDING_FAILED"

	ErrCodeInvalidQuery  = "ERR_401_INVALID_QUERY"
	ErrCodeInvalidFilter = "ERR_402_INVALID_FILTER"

	ErrCodeInternal = "ERR_501_INTERNAL"
)

// categoryFromCode derives the category from the code's numeric block.
func categoryFromCode(code string) Category {
	if len(code) < 7 {
		return CategoryInternal
	}
	switch code[4] {
	case '1':
		return CategoryConfig
	case '2':
		return CategoryStorage
	case '3':
		return CategoryEmbedding
	case '4':
		return CategoryQuery
	default:
		return CategoryInternal
	}
}

// retryableCodes marks error codes where retrying the operation can help.
var retryableCodes = map[string]bool{
	ErrCodeProviderUnavailable: true,
	ErrCodeEmbeddingFailed:     true,
	ErrCodeIndexLocked:         true,
}
