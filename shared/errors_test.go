package shared

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetAppError(t *testing.T) {
	appErr := NewNotFoundError(nil, "Video not found")

	got, ok := GetAppError(appErr)
	require.True(t, ok)
	assert.Equal(t, 404, got.StatusCode)
	assert.Equal(t, "Video not found", got.Message)

	_, ok = GetAppError(errors.New("plain"))
	assert.False(t, ok)

	_, ok = GetAppError(nil)
	assert.False(t, ok)
}

func TestGetAppErrorUnwrapsChain(t *testing.T) {
	inner := NewBadRequestError(nil, "bad input")
	wrapped := fmt.Errorf("handling request: %w", inner)

	got, ok := GetAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, 400, got.StatusCode)
}

func TestAppErrorMessagePrecedence(t *testing.T) {
	cause := errors.New("duplicate key")
	appErr := NewConflictError(cause, "Email is already registered")

	// Error() reports the cause when present; Message stays caller-facing.
	assert.Equal(t, "duplicate key", appErr.Error())
	assert.Equal(t, "Email is already registered", appErr.Message)
	assert.ErrorIs(t, appErr, cause)

	bare := NewInternalError(nil, "Something broke")
	assert.Equal(t, "Something broke", bare.Error())
}
