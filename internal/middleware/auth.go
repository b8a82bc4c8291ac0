package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/rpattn/portfolio/internal/auth"
)

// RequireAuth rejects requests without a valid bearer token and stores the
// verified actor on the request context for history attribution.
func RequireAuth(verifier *auth.Verifier, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(token) == "" {
				http.Error(w, "missing bearer token", http.StatusUnauthorized)
				return
			}

			actor, err := verifier.Verify(strings.TrimSpace(token))
			if err != nil {
				log.Warn("rejected bearer token", "path", r.URL.Path, "error", err)
				http.Error(w, "invalid bearer token", http.StatusUnauthorized)
				return
			}

			next.ServeHTTP(w, r.WithContext(auth.ContextWithActor(r.Context(), actor)))
		})
	}
}
