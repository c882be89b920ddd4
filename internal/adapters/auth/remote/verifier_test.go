package remote

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-plates/internal/ports/auth"
)

func identityServer(t *testing.T) *httptest.Server {
	t.Helper()
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != verifyPath || r.Header.Get("X-Api-Key") != "secret" {
			w.WriteHeader(http.StatusForbidden)
			return
		}
		var in struct {
			Token string `json:"token"`
		}
		_ = json.NewDecoder(r.Body).Decode(&in)
		switch in.Token {
		case "good":
			_ = json.NewEncoder(w).Encode(map[string]string{"user_id": " owner-1 ", "email": "a@b.c"})
		case "empty":
			_ = json.NewEncoder(w).Encode(map[string]string{})
		case "down":
			w.WriteHeader(http.StatusBadGateway)
		default:
			w.WriteHeader(http.StatusUnauthorized)
		}
	}))
	t.Cleanup(ts.Close)
	return ts
}

func TestVerifier(t *testing.T) {
	ts := identityServer(t)
	v, err := NewVerifier(Config{BaseURL: ts.URL, APIKey: "secret"})
	if err != nil {
		t.Fatalf("new verifier: %v", err)
	}
	ctx := context.Background()

	c, err := v.Verify(ctx, "good")
	if err != nil || c.UserID != "owner-1" || c.Email != "a@b.c" {
		t.Fatalf("expected owner-1 claims, got %+v err=%v", c, err)
	}

	if _, err := v.Verify(ctx, "bad"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
	if _, err := v.Verify(ctx, "bad"); !errors.Is(err, auth.ErrInvalidToken) {
		t.Fatalf("rejected token must map to auth.ErrInvalidToken, got %v", err)
	}
	if _, err := v.Verify(ctx, "down"); !errors.Is(err, ErrUpstream) || !errors.Is(err, auth.ErrUnavailable) {
		t.Fatalf("expected ErrUpstream wrapping auth.ErrUnavailable, got %v", err)
	}
	if _, err := v.Verify(ctx, "empty"); !errors.Is(err, ErrUpstream) {
		t.Fatalf("expected ErrUpstream for missing user, got %v", err)
	}
	if _, err := v.Verify(ctx, "  "); !errors.Is(err, ErrTokenEmpty) {
		t.Fatalf("expected ErrTokenEmpty, got %v", err)
	}
}

func TestNewVerifier_NotConfigured(t *testing.T) {
	if _, err := NewVerifier(Config{BaseURL: "http://x"}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
