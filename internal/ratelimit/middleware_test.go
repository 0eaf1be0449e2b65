package ratelimit_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/gariflow/backend-gari/internal/ratelimit"
)

func TestMiddlewareAllowsWithinBudget(t *testing.T) {
	h := ratelimit.New(2, time.Minute)
	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	for i := 0; i < 2; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
		req.RemoteAddr = "10.0.0.1:4000"
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		require.Equal(t, http.StatusNoContent, rec.Code)
		require.Equal(t, "2", rec.Header().Get("X-RateLimit-Limit"))
	}
}

func TestMiddlewareRejectsOverBudget(t *testing.T) {
	h := ratelimit.New(1, time.Minute)
	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	first := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	first.RemoteAddr = "10.0.0.2:4000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, first)
	require.Equal(t, http.StatusNoContent, rec.Code)

	second := httptest.NewRequest(http.MethodGet, "/api/v1/vehicles", nil)
	second.RemoteAddr = "10.0.0.2:4000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, second)
	require.Equal(t, http.StatusTooManyRequests, rec.Code)
	require.NotEmpty(t, rec.Header().Get("Retry-After"))
}

func TestMiddlewareKeysByClientIP(t *testing.T) {
	h := ratelimit.New(1, time.Minute)
	handler := h.Middleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	a := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	a.RemoteAddr = "10.0.0.3:4000"
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, a)
	require.Equal(t, http.StatusNoContent, rec.Code)

	b := httptest.NewRequest(http.MethodGet, "/api/v1/stats", nil)
	b.RemoteAddr = "10.0.0.4:4000"
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, b)
	require.Equal(t, http.StatusNoContent, rec.Code)
}
