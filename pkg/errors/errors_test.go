package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrappedErrorsMatchSentinels(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		code     string
	}{
		{"category", WrapCategoryNotFound(1, "Marketing"), ErrCategoryNotFound, ErrCodeCategoryNotFound},
		{"period", WrapInvalidPeriod(2, "2021-02-15"), ErrInvalidPeriod, ErrCodeInvalidPeriod},
		{"unparseable period", WrapUnparseablePeriod(2, "Feb", errors.New("bad")), ErrInvalidPeriod, ErrCodeInvalidPeriod},
		{"duplicate", WrapDuplicatePlan(3, "2021-02-01", "Issuance"), ErrDuplicatePlan, ErrCodeDuplicatePlan},
		{"duplicate constraint", WrapDuplicatePlanConstraint(errors.New("23505")), ErrDuplicatePlan, ErrCodeDuplicatePlan},
		{"database", WrapDatabaseError(errors.New("conn reset")), ErrStorageFailure, ErrCodeDatabaseError},
		{"cache", WrapCacheError(errors.New("dial tcp")), ErrCacheUnavailable, ErrCodeCacheError},
		{"file", WrapInvalidFile("missing column sum"), ErrInvalidFile, ErrCodeInvalidFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wrapped := fmt.Errorf("outer: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
			assert.Equal(t, tt.code, CodeOf(wrapped))
		})
	}
}

func TestBusinessError_Message(t *testing.T) {
	err := WrapDuplicatePlan(2, "2021-02-01", "Issuance")

	assert.Equal(t, "DUPLICATE_PLAN: row 2: plan for 2021-02-01 and category Issuance already exists (plan already exists)", err.Error())
	assert.Equal(t, "", CodeOf(errors.New("plain")))
}
