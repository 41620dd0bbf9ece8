package errors

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"usergate/internal/errors"
)

func TestBaseError_WithDetailsMatchesSentinel(t *testing.T) {
	err := ErrIllegalState.WithDetails("update requires an authenticated session")

	assert.ErrorIs(t, err, ErrIllegalState)
	assert.Equal(t, "update requires an authenticated session", err.Details())
	assert.Equal(t, ErrIllegalState.ErrorCode(), err.ErrorCode())
}

func TestBaseError_WrapMessageKeepsChain(t *testing.T) {
	err := ErrInvalidCredentials.WrapMessage("login failed")

	assert.ErrorIs(t, err, ErrInvalidCredentials)

	var appErr AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Equal(t, "INVALID_CREDENTIALS", appErr.ErrorCode())
}

func TestBaseError_DistinctKindsDoNotMatch(t *testing.T) {
	assert.NotErrorIs(t, ErrValidation, ErrInvalidCredentials)
	assert.NotErrorIs(t, ErrUnauthorized.WithDetails("missing header"), ErrIllegalState)
	assert.NotErrorIs(t, ErrStoreUnavailable, errors.New("plain"))
}
