package response

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/storefront/storefront-admin/internal/errors"
)

func decode(t *testing.T, w *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var result Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	return result
}

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	JSON(w, http.StatusOK, map[string]string{"message": "test"}, logger)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	result := decode(t, w)
	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Error)
}

func TestJSON_ErrorStatus(t *testing.T) {
	w := httptest.NewRecorder()

	JSON(w, http.StatusNotFound, map[string]string{"message": "test"}, nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, decode(t, w).Success, "Success should be false for status >= 400")
}

func TestCreatedAndNoContent(t *testing.T) {
	w := httptest.NewRecorder()
	Created(w, map[string]int{"id": 1}, nil)
	assert.Equal(t, http.StatusCreated, w.Code)

	w = httptest.NewRecorder()
	NoContent(w)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Empty(t, w.Body.String())
}

func TestRedirect(t *testing.T) {
	w := httptest.NewRecorder()

	Redirect(w, "/login", map[string]string{"from": "/admin"}, nil)

	assert.Equal(t, http.StatusSeeOther, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
	assert.False(t, decode(t, w).Success)
}

func TestHandleError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
		wantMsg    string
	}{
		{"validation", domainerrors.ValidationWithDetails("bad", map[string]string{"email": "x"}), http.StatusBadRequest, "VALIDATION", "bad"},
		{"policy", domainerrors.Policy("has parent"), http.StatusConflict, "POLICY", "has parent"},
		{"authentication", domainerrors.Authentication("nope"), http.StatusUnauthorized, "AUTHENTICATION", "nope"},
		{"transport", domainerrors.Transport(500, "upstream"), http.StatusBadGateway, "TRANSPORT", "upstream"},
		{"not found", domainerrors.NotFound("missing"), http.StatusNotFound, "NOT_FOUND", "missing"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "", "internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()

			HandleError(w, tt.err, nil)

			assert.Equal(t, tt.wantStatus, w.Code)
			result := decode(t, w)
			assert.False(t, result.Success)
			assert.Equal(t, tt.wantCode, result.Code)
			assert.Equal(t, tt.wantMsg, result.Error)
		})
	}
}

func TestHandleError_KeepsDetails(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, domainerrors.ValidationWithDetails("bad", map[string]string{"email": "invalid"}), nil)

	result := decode(t, w)
	assert.Equal(t, map[string]any{"email": "invalid"}, result.Details)
}

func TestErrorWithData(t *testing.T) {
	w := httptest.NewRecorder()

	ErrorWithData(w, domainerrors.Transport(http.StatusInternalServerError, ""), map[string]any{"status": "failed"}, nil)

	assert.Equal(t, http.StatusBadGateway, w.Code)
	result := decode(t, w)
	assert.False(t, result.Success)
	assert.Equal(t, "TRANSPORT", result.Code)
	assert.Equal(t, domainerrors.TransportFallbackMessage, result.Error)
	assert.Equal(t, map[string]any{"status": "failed"}, result.Data)
}

func TestHandleError_OmitsData(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, domainerrors.Policy("no"), nil)

	result := decode(t, w)
	assert.Nil(t, result.Data)
}
