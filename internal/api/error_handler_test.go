package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/myne7x/store-api/internal/core/domain"
)

func renderError(t *testing.T, err error) (int, errorResponse) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := NewHTTPErrorHandler(zerolog.Nop())
	handler(err, c)

	var body errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not the error envelope: %v", err)
	}
	return rec.Code, body
}

func TestErrorHandler_DomainErrorMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrUnauthorized, http.StatusForbidden},
		{domain.ErrProductNotFound, http.StatusNotFound},
		{domain.ErrRequestNotFound, http.StatusNotFound},
		{domain.ErrProfileNotFound, http.StatusNotFound},
		{domain.ErrTaskNotFound, http.StatusNotFound},
		{domain.ErrNotificationNotFound, http.StatusNotFound},
		{domain.ErrDuplicateRequest, http.StatusConflict},
		{domain.ErrInvalidTransition, http.StatusUnprocessableEntity},
		{domain.ErrValidation, http.StatusUnprocessableEntity},
		{domain.ErrStorageUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		code, body := renderError(t, tc.err)
		if code != tc.code {
			t.Errorf("%v: expected %d, got %d", tc.err, tc.code, code)
		}
		if body.Error == "" {
			t.Errorf("%v: error message must not be empty", tc.err)
		}
	}
}

func TestErrorHandler_WrappedErrorsStillMap(t *testing.T) {
	wrapped := fmt.Errorf("decide request: %w", domain.ErrInvalidTransition)
	code, _ := renderError(t, wrapped)
	if code != http.StatusUnprocessableEntity {
		t.Errorf("wrapped sentinel: expected 422, got %d", code)
	}
}

func TestErrorHandler_EchoHTTPErrorPassthrough(t *testing.T) {
	code, body := renderError(t, echo.NewHTTPError(http.StatusUnauthorized, "invalid token"))
	if code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", code)
	}
	if body.Error != "invalid token" {
		t.Errorf("expected echo message, got %q", body.Error)
	}
}

func TestErrorHandler_UnknownErrorIs500WithoutDetails(t *testing.T) {
	code, body := renderError(t, fmt.Errorf("mongo: socket was unexpectedly closed"))
	if code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", code)
	}
	if body.Error != "internal server error" {
		t.Errorf("internal details must not leak, got %q", body.Error)
	}
}

func TestErrorHandler_StorageUnavailableHidesCause(t *testing.T) {
	wrapped := fmt.Errorf("find product: %w: connection refused", domain.ErrStorageUnavailable)
	_, body := renderError(t, wrapped)
	if body.Error != "temporarily unavailable, please try again" {
		t.Errorf("storage failure must render the generic message, got %q", body.Error)
	}
}
