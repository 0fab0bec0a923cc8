package api

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/sentinelforce/agency-api/internal/api/middleware"
	"github.com/sentinelforce/agency-api/internal/core/domain"
)

func TestHTTPErrorHandler_Mapping(t *testing.T) {
	cases := []struct {
		name      string
		err       error
		enveloped bool
		code      int
		message   string
		logged    bool
	}{
		{"validation", domain.Invalid("name is required"), false, http.StatusBadRequest, "name is required", false},
		{"email required", domain.ErrEmailRequired, true, http.StatusBadRequest, "email required", false},
		{"duplicate", fmt.Errorf("create: %w", domain.ErrUserExists), false, http.StatusBadRequest, "user already exists", false},
		{"forbidden", domain.ErrForbidden, true, http.StatusForbidden, domain.ErrForbidden.Error(), false},
		{"immutable", domain.ErrImmutableField, false, http.StatusForbidden, domain.ErrImmutableField.Error(), false},
		{"guard missing", domain.ErrGuardNotFound, true, http.StatusNotFound, "guard not found", false},
		{"throttled", domain.ErrTooManyRequests, true, http.StatusTooManyRequests, domain.ErrTooManyRequests.Error(), false},
		{"echo error", echo.NewHTTPError(http.StatusBadRequest, "invalid payload"), true, http.StatusBadRequest, "invalid payload", false},
		{"unacknowledged", domain.ErrWriteNotAcknowledged, true, http.StatusInternalServerError, "internal server error", true},
		{"unknown", errors.New("socket closed"), false, http.StatusInternalServerError, "internal server error", true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var logs bytes.Buffer
			e := echo.New()
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
			if tc.enveloped {
				c.Set(middleware.EnvelopeKey, true)
			}

			NewHTTPErrorHandler(zerolog.New(&logs))(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			var body map[string]any
			if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
				t.Fatalf("invalid json: %v", err)
			}
			if body["message"] != tc.message {
				t.Fatalf("expected message %q, got %v", tc.message, body["message"])
			}
			success, hasSuccess := body["success"]
			if hasSuccess != tc.enveloped || (tc.enveloped && success != false) {
				t.Fatalf("envelope mismatch: %s", rec.Body.String())
			}
			if (logs.Len() > 0) != tc.logged {
				t.Fatalf("logged = %v, want %v (%s)", logs.Len() > 0, tc.logged, logs.String())
			}
		})
	}
}

func TestHTTPErrorHandler_SkipsCommittedResponse(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)
	_ = c.String(http.StatusOK, "done")

	NewHTTPErrorHandler(zerolog.Nop())(domain.ErrForbidden, c)

	if rec.Code != http.StatusOK || rec.Body.String() != "done" {
		t.Fatalf("committed response was overwritten: %d %q", rec.Code, rec.Body.String())
	}
}
