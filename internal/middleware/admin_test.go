package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"golang.org/x/crypto/bcrypt"
)

func hashFor(t *testing.T, token string) string {
	t.Helper()
	h, err := bcrypt.GenerateFromPassword([]byte(token), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("bcrypt: %v", err)
	}
	return string(h)
}

func TestTokenGate(t *testing.T) {
	gate := NewTokenGate(hashFor(t, "s3cret"))

	cases := []struct {
		name   string
		header string
		value  string
		want   bool
	}{
		{"bearer ok", "Authorization", "Bearer s3cret", true},
		{"bearer lowercase scheme", "Authorization", "bearer s3cret", true},
		{"x-admin-token ok", "X-Admin-Token", "s3cret", true},
		{"wrong token", "Authorization", "Bearer nope", false},
		{"basic scheme", "Authorization", "Basic s3cret", false},
		{"no token", "", "", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/api/admin/add-product", nil)
			if tc.header != "" {
				r.Header.Set(tc.header, tc.value)
			}
			if got := gate.Authorize(r); got != tc.want {
				t.Fatalf("Authorize=%v, want %v", got, tc.want)
			}
		})
	}
}

func TestTokenGate_EmptyHashDeniesAll(t *testing.T) {
	gate := NewTokenGate("")
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	r.Header.Set("X-Admin-Token", "anything")
	if gate.Authorize(r) {
		t.Fatalf("expected empty-hash gate to deny")
	}
}

func TestRequireAdmin(t *testing.T) {
	ok := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireAdmin(NewTokenGate(hashFor(t, "s3cret")))(ok)

	cases := []struct {
		name  string
		token string
		want  int
	}{
		{"missing", "", http.StatusUnauthorized},
		{"rejected", "wrong", http.StatusForbidden},
		{"accepted", "s3cret", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodPost, "/", nil)
			if tc.token != "" {
				r.Header.Set("X-Admin-Token", tc.token)
			}
			rec := httptest.NewRecorder()
			h.ServeHTTP(rec, r)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got=%d", tc.want, rec.Code)
			}
		})
	}
}

func TestOpenGate(t *testing.T) {
	r := httptest.NewRequest(http.MethodPost, "/", nil)
	if !(OpenGate{}).Authorize(r) {
		t.Fatalf("open gate must authorize")
	}
}
