package handler

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/alienbase/auth-api/internal/domain"
	"github.com/stretchr/testify/assert"
)

func TestHTTPError_SentinelMapping(t *testing.T) {
	cases := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("bad: %w", domain.ErrBadRequest), http.StatusBadRequest},
		{fmt.Errorf("nope: %w", domain.ErrUnauthorized), http.StatusUnauthorized},
		{fmt.Errorf("verify first: %w", domain.ErrForbidden), http.StatusForbidden},
		{fmt.Errorf("missing: %w", domain.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("taken: %w", domain.ErrConflict), http.StatusConflict},
		{fmt.Errorf("slow down: %w", domain.ErrTooManyAttempts), http.StatusTooManyRequests},
		{fmt.Errorf("upstream: %w", domain.ErrUnavailable), http.StatusBadGateway},
	}
	for _, tc := range cases {
		rr := httptest.NewRecorder()
		httpError(rr, tc.err)
		assert.Equal(t, tc.status, rr.Code, "for %v", tc.err)
		assert.Contains(t, rr.Body.String(), "error")
	}
}

func TestHTTPError_UnknownError_HidesDetail(t *testing.T) {
	rr := httptest.NewRecorder()
	httpError(rr, errors.New("dynamo: connection refused to 10.0.0.5"))

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.NotContains(t, rr.Body.String(), "10.0.0.5")
	assert.Contains(t, rr.Body.String(), "internal server error")
}
