package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestRequestID_HonorsInboundHeader(t *testing.T) {
	var seen string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = GetRequestID(r.Context())
	})

	req := httptest.NewRequest("GET", "/", nil)
	req.Header.Set(HeaderRequestID, "client-supplied-id")
	rr := httptest.NewRecorder()

	RequestID(next).ServeHTTP(rr, req)

	if seen != "client-supplied-id" {
		t.Errorf("Expected context id 'client-supplied-id', got '%s'", seen)
	}
	if got := rr.Header().Get(HeaderRequestID); got != "client-supplied-id" {
		t.Errorf("Expected echoed header 'client-supplied-id', got '%s'", got)
	}
}

func TestRequestID_GeneratesWhenMissing(t *testing.T) {
	ids := make(map[string]bool)

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := GetRequestID(r.Context())
		if id == "" {
			t.Error("Expected generated request id in context")
		}
		ids[id] = true
	})
	handler := RequestID(next)

	for i := 0; i < 3; i++ {
		req := httptest.NewRequest("GET", "/", nil)
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)

		if rr.Header().Get(HeaderRequestID) == "" {
			t.Error("Expected generated id on response header")
		}
	}

	if len(ids) != 3 {
		t.Errorf("Expected 3 distinct generated ids, got %d", len(ids))
	}
}

func TestGetRequestID_EmptyWithoutMiddleware(t *testing.T) {
	if id := GetRequestID(context.Background()); id != "" {
		t.Errorf("Expected empty id, got '%s'", id)
	}
}
