package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestConstructorsCarryStatusAndCode(t *testing.T) {
	cases := []struct {
		err    *AppError
		status int
		code   string
		cause  error
	}{
		{Validation("bad input"), http.StatusBadRequest, CodeValidation, ErrInvalidInput},
		{InvalidCredentials(), http.StatusUnauthorized, CodeInvalidCredentials, ErrInvalidCredentials},
		{TokenExpired(), http.StatusUnauthorized, CodeTokenExpired, ErrTokenExpired},
		{TokenInvalid(), http.StatusUnauthorized, CodeTokenInvalid, ErrTokenInvalid},
		{Suspended(), http.StatusForbidden, CodeAccountSuspended, ErrAccountSuspended},
		{Forbidden("no"), http.StatusForbidden, CodeForbidden, ErrPermissionDenied},
		{NotFound("gone"), http.StatusNotFound, CodeNotFound, ErrNotFound},
		{Conflict("dup"), http.StatusConflict, CodeConflict, ErrAlreadyExists},
		{RateLimited(), http.StatusTooManyRequests, CodeRateLimited, ErrRateLimited},
	}

	for _, tc := range cases {
		require.Equal(t, tc.status, tc.err.Status, tc.code)
		require.Equal(t, tc.code, tc.err.Code)
		require.ErrorIs(t, tc.err, tc.cause)
	}
}

func TestAppError_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := InternalError(cause)

	require.Equal(t, "connection refused", err.Error())
	require.ErrorIs(t, err, cause)

	noCause := &AppError{Message: "just a message"}
	require.Equal(t, "just a message", noCause.Error())
}

func TestAppError_SurvivesWrapping(t *testing.T) {
	wrapped := fmt.Errorf("handling request: %w", Suspended())

	var appErr *AppError
	require.True(t, errors.As(wrapped, &appErr))
	require.Equal(t, CodeAccountSuspended, appErr.Code)
	require.ErrorIs(t, wrapped, ErrAccountSuspended)
}
