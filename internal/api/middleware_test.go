package api

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestEnsureSession(t *testing.T) {
	m := NewSessionMiddleware()

	var seen string
	handler := m.EnsureSession(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionIDFromContext(r.Context())
	}))

	// A valid header is kept and echoed.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "shopper-123")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if seen != "shopper-123" {
		t.Errorf("context session = %q, want shopper-123", seen)
	}
	if got := rec.Header().Get(SessionHeader); got != "shopper-123" {
		t.Errorf("echoed session = %q, want shopper-123", got)
	}

	// A missing header mints a fresh id and echoes it.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	minted := rec.Header().Get(SessionHeader)
	if minted == "" || minted == "shopper-123" {
		t.Errorf("minted session = %q", minted)
	}
	if seen != minted {
		t.Errorf("context session %q differs from echoed %q", seen, minted)
	}

	// An invalid header is replaced rather than used as a storage key.
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(SessionHeader, "bad key/../../etc")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if got := rec.Header().Get(SessionHeader); got == "bad key/../../etc" || got == "" {
		t.Errorf("invalid session kept: %q", got)
	}
}

func TestValidSessionID(t *testing.T) {
	tests := []struct {
		id   string
		want bool
	}{
		{"", false},
		{"abc123", true},
		{"a1b2c3-d4e5_f6", true},
		{"550e8400-e29b-41d4-a716-446655440000", true},
		{"has space", false},
		{"has/slash", false},
		{"has.dot", false},
		{strings.Repeat("a", 64), true},
		{strings.Repeat("a", 65), false},
	}

	for _, tt := range tests {
		if got := validSessionID(tt.id); got != tt.want {
			t.Errorf("validSessionID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}
