package middleware

import (
	"net/http"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/columbia-shop/columbia/backend/internal/httpjson"
)

// Authorizer decides whether a request may use admin write capabilities.
type Authorizer interface {
	Authorize(r *http.Request) bool
}

// TokenGate accepts requests whose admin token matches a bcrypt hash.
// A gate with an empty hash rejects everything.
type TokenGate struct {
	hash []byte
}

func NewTokenGate(hash string) *TokenGate {
	return &TokenGate{hash: []byte(hash)}
}

func (g *TokenGate) Authorize(r *http.Request) bool {
	token := AdminToken(r)
	if token == "" || len(g.hash) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(g.hash, []byte(token)) == nil
}

// OpenGate authorizes every request. Development only.
type OpenGate struct{}

func (OpenGate) Authorize(*http.Request) bool { return true }

// AdminToken extracts the token from "Authorization: Bearer <t>" or X-Admin-Token.
func AdminToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if scheme, token, ok := strings.Cut(h, " "); ok && strings.EqualFold(scheme, "Bearer") {
			return strings.TrimSpace(token)
		}
	}
	return strings.TrimSpace(r.Header.Get("X-Admin-Token"))
}

// RequireAdmin rejects requests the authorizer does not accept.
// Missing credentials get 401, rejected ones 403.
func RequireAdmin(a Authorizer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if a.Authorize(r) {
				next.ServeHTTP(w, r)
				return
			}
			if AdminToken(r) == "" {
				httpjson.Fail(w, http.StatusUnauthorized, "admin token required")
				return
			}
			httpjson.Fail(w, http.StatusForbidden, "admin access denied")
		})
	}
}
