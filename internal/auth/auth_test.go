// auth_test.go - Tests for token providers
package auth

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider("pre-shared")

	t.Run("accepts the configured token", func(t *testing.T) {
		user, err := p.UserFromToken(context.Background(), "pre-shared")
		if err != nil {
			t.Fatalf("UserFromToken failed: %v", err)
		}
		if user.Role != "authenticated" {
			t.Errorf("role = %q, want authenticated", user.Role)
		}
	})

	t.Run("rejects any other token", func(t *testing.T) {
		if _, err := p.UserFromToken(context.Background(), "wrong"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("empty configured token rejects everything", func(t *testing.T) {
		empty := NewStaticProvider("")
		if _, err := empty.UserFromToken(context.Background(), ""); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})
}

func TestSupabaseProvider(t *testing.T) {
	t.Run("resolves a valid token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/auth/v1/user" {
				t.Errorf("unexpected path %s", r.URL.Path)
			}
			if r.Header.Get("Authorization") != "Bearer user-jwt" {
				t.Errorf("unexpected authorization header %q", r.Header.Get("Authorization"))
			}
			if r.Header.Get("apikey") != "anon-key" {
				t.Errorf("unexpected apikey header %q", r.Header.Get("apikey"))
			}
			io.WriteString(w, `{"id": "u-1", "email": "a@b.c", "role": "authenticated"}`)
		}))
		defer srv.Close()

		p, err := NewSupabaseProvider(srv.URL, "anon-key", nil)
		if err != nil {
			t.Fatalf("NewSupabaseProvider failed: %v", err)
		}

		user, err := p.UserFromToken(context.Background(), "user-jwt")
		if err != nil {
			t.Fatalf("UserFromToken failed: %v", err)
		}
		if user.ID != "u-1" || user.Role != "authenticated" {
			t.Errorf("unexpected user %+v", user)
		}
	})

	t.Run("non-200 means invalid token", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			io.WriteString(w, `{"message": "invalid JWT"}`)
		}))
		defer srv.Close()

		p, err := NewSupabaseProvider(srv.URL, "anon-key", nil)
		if err != nil {
			t.Fatalf("NewSupabaseProvider failed: %v", err)
		}

		if _, err := p.UserFromToken(context.Background(), "expired"); !errors.Is(err, ErrInvalidToken) {
			t.Errorf("expected ErrInvalidToken, got %v", err)
		}
	})

	t.Run("requires base URL and key", func(t *testing.T) {
		if _, err := NewSupabaseProvider("", "k", nil); err == nil {
			t.Error("expected error for missing URL")
		}
		if _, err := NewSupabaseProvider("http://x", "", nil); err == nil {
			t.Error("expected error for missing key")
		}
	})
}
