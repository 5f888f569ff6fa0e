package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"minidb/internal/domain"
)

// Auth authenticates requests with either a JWT Bearer token or an
// X-API-Key header checked against the configured key set. The resolved
// principal is stored in the request context for downstream handlers.
func Auth(validator JWTValidator, apiKeys map[string]string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Try JWT Bearer token first.
			authHeader := r.Header.Get("Authorization")
			if strings.HasPrefix(authHeader, "Bearer ") && validator != nil {
				tokenStr := strings.TrimPrefix(authHeader, "Bearer ")
				if claims, err := validator.Validate(tokenStr); err == nil {
					ctx := domain.WithPrincipal(r.Context(), domain.ContextPrincipal{
						Name: claims.Subject,
						Type: "user",
					})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			// Fall back to API key.
			if apiKey := r.Header.Get("X-API-Key"); apiKey != "" {
				if name, ok := matchAPIKey(apiKeys, apiKey); ok {
					ctx := domain.WithPrincipal(r.Context(), domain.ContextPrincipal{
						Name: name,
						Type: "api_key",
					})
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}

			writeUnauthorized(w)
		})
	}
}

// matchAPIKey compares the presented key against every configured key and
// returns the matching key's name. Comparisons run over digests so a
// mismatch reveals nothing about key length, and the scan never exits
// early.
func matchAPIKey(apiKeys map[string]string, presented string) (string, bool) {
	presentedSum := sha256.Sum256([]byte(presented))
	var name string
	found := false
	for n, key := range apiKeys {
		keySum := sha256.Sum256([]byte(key))
		if subtle.ConstantTimeCompare(keySum[:], presentedSum[:]) == 1 {
			name = n
			found = true
		}
	}
	return name, found
}

func writeUnauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_ = json.NewEncoder(w).Encode(map[string]any{
		"code":    http.StatusUnauthorized,
		"message": "unauthorized: provide a valid JWT Bearer token or API key",
	})
}
