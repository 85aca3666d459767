package errors

import (
	"errors"
	"fmt"
)

// Domain errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidPeriod    = errors.New("invalid plan period")
	ErrDuplicatePlan    = errors.New("plan already exists")
	ErrCacheUnavailable = errors.New("cache unavailable")
	ErrStorageFailure   = errors.New("storage failure")
	ErrInvalidFile      = errors.New("invalid plan file")
	ErrInvalidRequest   = errors.New("invalid request")
)

// BusinessError represents a business logic error
type BusinessError struct {
	Code    string
	Message string
	Err     error
}

func (e *BusinessError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *BusinessError) Unwrap() error {
	return e.Err
}

// NewBusinessError creates a new business error
func NewBusinessError(code, message string, err error) *BusinessError {
	return &BusinessError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// Error codes
const (
	ErrCodeCategoryNotFound = "CATEGORY_NOT_FOUND"
	ErrCodeInvalidPeriod    = "INVALID_PERIOD"
	ErrCodeDuplicatePlan    = "DUPLICATE_PLAN"
	ErrCodeDatabaseError    = "DATABASE_ERROR"
	ErrCodeCacheError       = "CACHE_ERROR"
	ErrCodeInvalidFile      = "INVALID_FILE"
	ErrCodeInvalidRequest   = "INVALID_REQUEST"
)

// CodeOf returns the code of the first BusinessError in err's chain.
func CodeOf(err error) string {
	var be *BusinessError
	if errors.As(err, &be) {
		return be.Code
	}
	return ""
}

// Wrap common errors with business context

func WrapCategoryNotFound(row int, name string) *BusinessError {
	return NewBusinessError(
		ErrCodeCategoryNotFound,
		fmt.Sprintf("row %d: category '%s' not found", row, name),
		ErrCategoryNotFound,
	)
}

func WrapInvalidPeriod(row int, month string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPeriod,
		fmt.Sprintf("row %d: plan month '%s' must be the first day of the month", row, month),
		ErrInvalidPeriod,
	)
}

func WrapUnparseablePeriod(row int, month string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidPeriod,
		fmt.Sprintf("row %d: plan month '%s' is not a YYYY-MM-DD date", row, month),
		errors.Join(ErrInvalidPeriod, err),
	)
}

func WrapDuplicatePlan(row int, period, category string) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicatePlan,
		fmt.Sprintf("row %d: plan for %s and category %s already exists", row, period, category),
		ErrDuplicatePlan,
	)
}

// WrapDuplicatePlanConstraint reports a uniqueness violation raised by storage
// when the row that collided is not known.
func WrapDuplicatePlanConstraint(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDuplicatePlan,
		"plan for the same period and category was inserted concurrently",
		errors.Join(ErrDuplicatePlan, err),
	)
}

func WrapDatabaseError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeDatabaseError,
		"database operation failed",
		errors.Join(ErrStorageFailure, err),
	)
}

func WrapCacheError(err error) *BusinessError {
	return NewBusinessError(
		ErrCodeCacheError,
		"Cache operation failed",
		errors.Join(ErrCacheUnavailable, err),
	)
}

func WrapInvalidFile(message string) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidFile,
		message,
		ErrInvalidFile,
	)
}

func WrapInvalidRequest(message string, err error) *BusinessError {
	return NewBusinessError(
		ErrCodeInvalidRequest,
		message,
		errors.Join(ErrInvalidRequest, err),
	)
}
