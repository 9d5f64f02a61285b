package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestToHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, http.StatusOK},
		{"duplicate email", ErrDuplicateEmail, http.StatusConflict},
		{"invalid credentials", ErrInvalidCredentials, http.StatusUnauthorized},
		{"deactivated", ErrAccountDeactivated, http.StatusForbidden},
		{"invalid token", ErrInvalidToken, http.StatusUnauthorized},
		{"session expired", ErrSessionExpiredOrNotFound, http.StatusUnauthorized},
		{"user not found", ErrUserNotFound, http.StatusNotFound},
		{"storage", WrapError(ErrStorageFailure, errors.New("conn refused")), http.StatusServiceUnavailable},
		{"invalid input", ErrInvalidInput, http.StatusBadRequest},
		{"wrapped by fmt", fmt.Errorf("login: %w", ErrInvalidCredentials), http.StatusUnauthorized},
		{"plain error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ToHTTPStatus(tt.err); got != tt.want {
				t.Errorf("ToHTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestWrapError_IsAndUnwrap(t *testing.T) {
	cause := errors.New("signature is invalid")
	err := WrapError(ErrInvalidToken, cause)

	if !errors.Is(err, ErrInvalidToken) {
		t.Error("wrapped error should match ErrInvalidToken")
	}
	if !errors.Is(err, cause) {
		t.Error("wrapped error should expose its cause")
	}
	if errors.Is(err, ErrSessionExpiredOrNotFound) {
		t.Error("wrapped error must not match a different code")
	}
}

func TestGetErrorMessage_HidesCause(t *testing.T) {
	err := WrapError(ErrStorageFailure, errors.New("password authentication failed for user postgres"))

	if got := GetErrorMessage(err); got != "storage unavailable" {
		t.Errorf("GetErrorMessage() = %q", got)
	}
	if got := GetErrorMessage(errors.New("raw")); got != ErrInternal.Message {
		t.Errorf("GetErrorMessage(plain) = %q", got)
	}
}

func TestIsAuthFailure(t *testing.T) {
	if !IsAuthFailure(WrapError(ErrInvalidToken, errors.New("x"))) {
		t.Error("invalid token should be an auth failure")
	}
	if !IsAuthFailure(ErrSessionExpiredOrNotFound) {
		t.Error("expired session should be an auth failure")
	}
	if IsAuthFailure(ErrStorageFailure) {
		t.Error("storage failure is not an auth failure")
	}
	if IsAuthFailure(errors.New("x")) {
		t.Error("plain error is not an auth failure")
	}
}
