package rest

import (
	"context"
	"net/http"
	"strings"

	"github.com/dekorshop/dekorshop/internal/auth/app"
	"github.com/dekorshop/dekorshop/pkg/httpx"
)

type ctxKey struct{}

// ClaimsFrom returns the verified token claims stored by Authenticate.
func ClaimsFrom(ctx context.Context) (app.Claims, bool) {
	claims, ok := ctx.Value(ctxKey{}).(app.Claims)
	return claims, ok
}

type Middleware struct {
	svc *app.Service
}

func NewMiddleware(svc *app.Service) *Middleware {
	return &Middleware{svc: svc}
}

// Authenticate parses an optional bearer token into the request
// context. Requests without a token pass through anonymously; a
// malformed token is rejected here rather than deeper in.
func (m *Middleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		raw, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "malformed authorization header")
			return
		}

		claims, err := m.svc.ParseToken(raw)
		if err != nil {
			httpx.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "invalid or expired token")
			return
		}

		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), ctxKey{}, claims)))
	})
}

// RequireUser guards routes that need a signed-in user.
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if _, ok := ClaimsFrom(r.Context()); !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "sign in required")
			return
		}
		next(w, r)
	}
}

// RequireAdmin guards the admin product editor and order management.
func (m *Middleware) RequireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := ClaimsFrom(r.Context())
		if !ok {
			httpx.WriteError(w, http.StatusUnauthorized, "UNAUTHENTICATED", "sign in required")
			return
		}
		if !claims.Admin {
			httpx.WriteError(w, http.StatusForbidden, "FORBIDDEN", "admin access required")
			return
		}
		next(w, r)
	}
}
