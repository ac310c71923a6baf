package api

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/taskwell/todo-system/internal/core/domain"
)

func TestResolveError_DomainMapping(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{domain.ErrTaskNotFound, http.StatusNotFound},
		{domain.ErrUserNotFound, http.StatusNotFound},
		{domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{domain.ErrEmailTaken, http.StatusBadRequest},
		{domain.ErrMissingFields, http.StatusBadRequest},
		{domain.ErrPasswordTooShort, http.StatusBadRequest},
		{domain.ErrTitleRequired, http.StatusBadRequest},
		{fmt.Errorf("wrap: %w", domain.ErrTaskNotFound), http.StatusNotFound},
		{echo.NewHTTPError(http.StatusUnauthorized, "missing token"), http.StatusUnauthorized},
	}

	e := echo.New()
	for _, c := range cases {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		rec := httptest.NewRecorder()
		ctx := e.NewContext(req, rec)

		code, _ := resolveError(c.err, zerolog.Nop(), ctx)
		if code != c.code {
			t.Errorf("resolveError(%v) = %d, want %d", c.err, code, c.code)
		}
	}
}

func TestResolveError_UnknownErrorIsOpaque(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	code, msg := resolveError(fmt.Errorf("mongo: socket closed"), zerolog.Nop(), ctx)
	if code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", code)
	}
	if msg != "internal server error" {
		t.Fatalf("internal detail leaked: %q", msg)
	}
}

func TestHTTPErrorHandler_Envelope(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	ctx := e.NewContext(req, rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrTaskNotFound, ctx)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := rec.Body.String(); body != "{\"error\":\"task not found\"}\n" {
		t.Fatalf("unexpected body: %s", body)
	}
}
