// internal/common/errors/errors_test.go
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		code     ErrorCode
		expected int
	}{
		{ErrCodeInvalidRequest, http.StatusBadRequest},
		{ErrCodeValidationFailed, http.StatusBadRequest},
		{ErrCodeAuthentication, http.StatusUnauthorized},
		{ErrCodeDatabaseConnectionFailed, http.StatusServiceUnavailable},
		{ErrCodeSessionStoreFailed, http.StatusServiceUnavailable},
		{ErrCodeDatabaseInsertFailed, http.StatusInternalServerError},
		{ErrCodeRulesInvalid, http.StatusInternalServerError},
		{ErrorCode("SOMETHING_ELSE"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.code), func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.code))
		})
	}
}

func TestAs(t *testing.T) {
	t.Run("nil stays nil", func(t *testing.T) {
		assert.Nil(t, As(nil))
	})

	t.Run("wrapped standard error is found", func(t *testing.T) {
		base := NewValidationFailedError("email is required")
		wrapped := fmt.Errorf("handler: %w", base)

		got := As(wrapped)
		require.NotNil(t, got)
		assert.Same(t, base, got)
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		got := As(stderrors.New("boom"))
		require.NotNil(t, got)
		assert.Equal(t, ErrCodeInternal, got.Code)
		assert.Equal(t, "boom", got.Details)
	})
}

func TestConstructors(t *testing.T) {
	cause := stderrors.New("connection refused")

	t.Run("rules invalid keeps cause", func(t *testing.T) {
		err := NewRulesInvalidError("read rules.json", cause)
		assert.Equal(t, ErrCodeRulesInvalid, err.Code)
		assert.False(t, err.Retryable)
		assert.Contains(t, err.Details, "connection refused")
		assert.True(t, stderrors.Is(err, cause))
	})

	t.Run("rules invalid without cause", func(t *testing.T) {
		err := NewRulesInvalidError("no services defined", nil)
		assert.Equal(t, "no services defined", err.Details)
		assert.Nil(t, err.Unwrap())
	})

	t.Run("insert failure is retryable", func(t *testing.T) {
		err := NewDatabaseInsertFailedError("interactions", cause)
		assert.True(t, err.Retryable)
		assert.Contains(t, err.Details, "interactions")
		assert.False(t, err.Timestamp.IsZero())
	})

	t.Run("metadata is attached", func(t *testing.T) {
		err := NewNotificationSendFailedError("ses", cause).WithMetadata("recordId", "abc")
		assert.Equal(t, "abc", err.Metadata["recordId"])
	})

	t.Run("error string carries code", func(t *testing.T) {
		err := NewValidationFailedError("email is required")
		assert.Equal(t, "StandardError[VALIDATION_FAILED]: Request validation failed", err.Error())
	})
}

func TestRetryableAndCategory(t *testing.T) {
	assert.True(t, IsRetryableErrorCode(ErrCodeQueryExecutionFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeValidationFailed))

	assert.Equal(t, "RULES", GetErrorCategory(ErrCodeRulesInvalid))
	assert.Equal(t, "SESSION", GetErrorCategory(ErrCodeAuthentication))
	assert.Equal(t, "DATABASE", GetErrorCategory(ErrCodeDatabaseInsertFailed))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeNotificationSendFailed))
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeInvalidRequest))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
}
