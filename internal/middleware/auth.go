package middleware

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/baharkarakas/dormshop-backend/internal/api/httpx"
	"github.com/baharkarakas/dormshop-backend/internal/apperr"
	"github.com/baharkarakas/dormshop-backend/internal/auth"
)

type AuthMiddleware struct {
	TM *auth.TokenManager
}

func NewAuthMiddleware(tm *auth.TokenManager) *AuthMiddleware {
	return &AuthMiddleware{TM: tm}
}

// Authenticate attaches the caller to the context when a valid bearer token is
// present. It never rejects; the Require* guards do.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ah := r.Header.Get("Authorization")
		if len(ah) < 7 || !strings.EqualFold(ah[:7], "bearer ") {
			next.ServeHTTP(w, r)
			return
		}
		claims, err := m.TM.Parse(strings.TrimSpace(ah[7:]))
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}
		ctx := WithUser(r.Context(), User{Username: claims.Username, IsAdmin: claims.IsAdmin})
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, ok := FromCtx(r.Context()); !ok {
			httpx.WriteError(w, r, apperr.Unauthorized("you must be logged in"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := FromCtx(r.Context())
		if !ok {
			httpx.WriteError(w, r, apperr.Unauthorized("you must be logged in"))
			return
		}
		if !u.IsAdmin {
			httpx.WriteError(w, r, apperr.Unauthorized("you must be an admin"))
			return
		}
		next.ServeHTTP(w, r)
	})
}

// RequireSelfOrAdmin admits the user named by the URL parameter param, or
// any admin.
func RequireSelfOrAdmin(param string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := FromCtx(r.Context())
			if !ok {
				httpx.WriteError(w, r, apperr.Unauthorized("you must be logged in"))
				return
			}
			if !u.IsAdmin && u.Username != chi.URLParam(r, param) {
				httpx.WriteError(w, r, apperr.Unauthorized("you may only act on your own account"))
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
