package helpers

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"projectledger/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteJSONSuccess(t *testing.T) {
	rr := httptest.NewRecorder()
	WriteJSONSuccess(rr, http.StatusCreated, map[string]string{"id": "p-1"})

	require.Equal(t, http.StatusCreated, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"data":{"id":"p-1"},"error":null}`, rr.Body.String())
}

func TestWriteServiceError(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    string
		wantMessage string
	}{
		{name: "validation", err: domain.NewValidationError("name is required", "amount must be positive"), wantStatus: http.StatusBadRequest, wantCode: ErrCodeBadRequest, wantMessage: "name is required; amount must be positive"},
		{name: "wrapped not found", err: fmt.Errorf("get: %w", domain.ErrNotFound), wantStatus: http.StatusNotFound, wantCode: ErrCodeNotFound, wantMessage: "get: not found"},
		{name: "user not found", err: domain.ErrUserNotFound, wantStatus: http.StatusNotFound, wantCode: ErrCodeNotFound},
		{name: "duplicate email", err: domain.ErrDuplicateEmail, wantStatus: http.StatusConflict, wantCode: ErrCodeConflict},
		{name: "conflict", err: domain.ErrConflict, wantStatus: http.StatusConflict, wantCode: ErrCodeConflict},
		{name: "forbidden", err: domain.ErrForbidden, wantStatus: http.StatusForbidden, wantCode: ErrCodeForbidden},
		{name: "invalid credentials", err: domain.ErrInvalidCredentials, wantStatus: http.StatusUnauthorized, wantCode: ErrCodeUnauthorized},
		{name: "unexpected", err: assert.AnError, wantStatus: http.StatusInternalServerError, wantCode: ErrCodeInternalError, wantMessage: "internal server error"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := httptest.NewRecorder()
			r := httptest.NewRequest(http.MethodGet, "/projects", nil)
			WriteServiceError(rr, r, logger, tt.err)

			require.Equal(t, tt.wantStatus, rr.Code)
			var envelope APIResponse
			require.NoError(t, json.NewDecoder(rr.Body).Decode(&envelope))
			require.NotNil(t, envelope.Error)
			assert.Nil(t, envelope.Data)
			assert.Equal(t, tt.wantCode, envelope.Error.Code)
			if tt.wantMessage != "" {
				assert.Equal(t, tt.wantMessage, envelope.Error.Message)
			}
		})
	}
}
