package shared

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppErrorStatusCodes(t *testing.T) {
	tests := []struct {
		name string
		err  *AppError
		want int
	}{
		{"bad request", NewBadRequestError("bad input"), http.StatusBadRequest},
		{"unauthorized", NewUnauthorizedError("no token"), http.StatusUnauthorized},
		{"forbidden", NewForbiddenError("not allowed"), http.StatusForbidden},
		{"not found", NewNotFoundError("missing"), http.StatusNotFound},
		{"conflict", NewConflictError("duplicate"), http.StatusConflict},
		{"insufficient", NewInsufficientError("not enough", nil), http.StatusUnprocessableEntity},
		{"internal", NewInternalError("boom", nil), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.err.StatusCode)
		})
	}
}

func TestGetAppError(t *testing.T) {
	appErr := NewConflictError("duplicate")

	got, ok := GetAppError(appErr)
	require.True(t, ok)
	assert.Equal(t, http.StatusConflict, got.StatusCode)

	wrapped := fmt.Errorf("handler: %w", appErr)
	got, ok = GetAppError(wrapped)
	require.True(t, ok)
	assert.Equal(t, "duplicate", got.Message)

	_, ok = GetAppError(errors.New("plain"))
	assert.False(t, ok)
}

func TestInsufficientErrorCarriesData(t *testing.T) {
	payload := map[string]int{"required": 150, "current": 100, "shortfall": 50}
	err := NewInsufficientError("Insufficient coins", payload)

	assert.Equal(t, payload, err.Data)
	assert.Equal(t, "Insufficient coins", err.Error())
}

func TestAppErrorUnwrap(t *testing.T) {
	cause := errors.New("pq: connection reset")
	err := NewInternalError("query failed", cause)

	assert.True(t, errors.Is(err, cause))
}
