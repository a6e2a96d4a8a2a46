package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/guardianlab/guardian/internal/models"
	pkgerrors "github.com/guardianlab/guardian/pkg/errors"
)

type claimsContextKey struct{}

// ClaimsFromContext returns the identity attached by Middleware.
func ClaimsFromContext(ctx context.Context) (*models.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey{}).(*models.Claims)
	return claims, ok
}

// Middleware guards protected routes: it extracts the bearer token, verifies
// it with the access-token verifier and attaches the decoded claims to the
// request context. A single verification attempt per request; rejections are
// all surfaced as 401.
func Middleware(verifier *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := bearerToken(r.Header.Get("Authorization"))
			if !ok {
				writeUnauthorized(w, pkgerrors.ErrTokenMissing)
				return
			}

			claims, err := verifier.Verify(token)
			if err != nil {
				slog.Warn("token rejected", "path", r.URL.Path, "error", err)
				writeUnauthorized(w, pkgerrors.ErrTokenInvalid)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerToken(header string) (string, bool) {
	parts := strings.Split(header, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

func writeUnauthorized(w http.ResponseWriter, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
