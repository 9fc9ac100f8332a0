package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/planning-insights/editorial-system/internal/core/domain"
)

func TestResolveError_DomainMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", fmt.Errorf("title required: %w", domain.ErrValidation), http.StatusBadRequest},
		{"forbidden", domain.ErrForbidden, http.StatusForbidden},
		{"submission not found", domain.ErrSubmissionNotFound, http.StatusNotFound},
		{"editor not found", domain.ErrEditorNotFound, http.StatusNotFound},
		{"raced review", fmt.Errorf("review: %w", domain.ErrConflict), http.StatusConflict},
		{"already reviewed", domain.ErrAlreadyReviewed, http.StatusConflict},
		{"duplicate pending", domain.ErrDuplicatePending, http.StatusConflict},
		{"cannot delete", domain.ErrCannotDelete, http.StatusConflict},
		{"role mismatch", domain.ErrRoleMismatch, http.StatusConflict},
		{"user exists", domain.ErrUserExists, http.StatusConflict},
		{"no editors", domain.ErrNoEditorsAvailable, http.StatusUnprocessableEntity},
		{"bad credentials", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"cascade incomplete", fmt.Errorf("counter: %w", domain.ErrCascadeIncomplete), http.StatusInternalServerError},
		{"store unavailable", domain.ErrStoreUnavailable, http.StatusServiceUnavailable},
		{"unknown", errors.New("boom"), http.StatusInternalServerError},
	}

	e := echo.New()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			rec := httptest.NewRecorder()
			c := e.NewContext(req, rec)

			code, _ := resolveError(tc.err, zerolog.Nop(), c)
			if code != tc.want {
				t.Fatalf("code = %d, want %d", code, tc.want)
			}
		})
	}
}

func TestHTTPErrorHandler_Envelope(t *testing.T) {
	e := echo.New()
	h := NewHTTPErrorHandler(zerolog.Nop())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h(domain.ErrSubmissionNotFound, c)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if body := rec.Body.String(); body == "" || body[0] != '{' {
		t.Fatalf("expected JSON envelope, got %q", body)
	}
}
