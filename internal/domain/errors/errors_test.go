package errors

import (
	"net/http"
	"testing"

	"vigil/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBaseError_WithDetailsKeepsIdentity(t *testing.T) {
	detailed := ErrValidationFailed.WithDetails("email is required")

	assert.True(t, errors.Is(detailed, ErrValidationFailed))
	assert.False(t, errors.Is(detailed, ErrForbidden))
	assert.Equal(t, "email is required", detailed.Details())
	assert.Empty(t, ErrValidationFailed.Details())

	// detailing a detailed copy still resolves to the predefined value
	again := detailed.WithDetails("phone is required")
	assert.True(t, errors.Is(again, ErrValidationFailed))
}

func TestBaseError_WrapMessage(t *testing.T) {
	err := ErrInvalidCredentials.WrapMessage("login failed")

	assert.True(t, errors.Is(err, ErrInvalidCredentials))

	var appErr AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, http.StatusUnauthorized, appErr.HTTPCode())
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.ErrorCode())
}

func TestDatabaseExecuteError(t *testing.T) {
	cause := errors.New("connection reset")
	err := NewDatabaseExecuteError(cause, "insert notification")

	assert.Equal(t, http.StatusInternalServerError, err.HTTPCode())
	assert.Equal(t, "DATABASE_EXECUTE_FAILED", err.ErrorCode())
	assert.Equal(t, "insert notification", err.Details())
	assert.True(t, errors.Is(err, cause))
}
