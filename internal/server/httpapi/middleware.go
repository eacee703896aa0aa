package httpapi

import (
	"context"
	"net/http"
	"strings"

	"github.com/Rechidesigns/RechiGPT/internal/shared/models"
)

type contextKey string

const userContextKey contextKey = "user"

// authMiddleware is a pure gate: it extracts the bearer token, resolves it
// to a stored user and attaches that user to the request context. Every
// failure mode answers identically so callers cannot enumerate accounts.
func (r *Router) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		authz := req.Header.Get("Authorization")
		if authz == "" || !strings.HasPrefix(authz, "Bearer ") {
			writeUnauthorized(w)
			return
		}
		token := strings.TrimPrefix(authz, "Bearer ")
		user, err := r.services.Auth.ResolveToken(req.Context(), token)
		if err != nil {
			writeUnauthorized(w)
			return
		}
		ctx := context.WithValue(req.Context(), userContextKey, user)
		next.ServeHTTP(w, req.WithContext(ctx))
	})
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "could not validate credentials"})
}

func getUser(ctx context.Context) (models.User, bool) {
	u, ok := ctx.Value(userContextKey).(models.User)
	return u, ok
}
