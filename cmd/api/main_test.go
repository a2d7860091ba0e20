package main

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestLoggingMiddleware_PassesThrough(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
		_, _ = w.Write([]byte("short and stout"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/teapot", nil)

	loggingMiddleware(inner).ServeHTTP(rr, req)

	if rr.Code != http.StatusTeapot {
		t.Fatalf("expected status to pass through, got %d", rr.Code)
	}
	if rr.Body.String() != "short and stout" {
		t.Fatalf("expected body to pass through, got %q", rr.Body.String())
	}
}

func TestStatusRecorder_DefaultsToOK(t *testing.T) {
	t.Parallel()

	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("implicit 200"))
	})

	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	inner.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	if rec.status != http.StatusOK {
		t.Fatalf("expected recorded status 200, got %d", rec.status)
	}
}
