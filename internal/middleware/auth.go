// Package middleware provides HTTP middleware shared by all routes.
package middleware

import (
	"crypto/subtle"
	"net/http"
)

// publicPaths are exempt from API key authentication.
var publicPaths = map[string]bool{
	"/health": true,
}

// APIKeyAuth returns middleware that checks the X-API-Key header against the
// configured keys with a constant-time compare. With no keys configured,
// authentication is disabled and all requests pass.
func APIKeyAuth(keys []string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if len(keys) == 0 || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			got := r.Header.Get("X-API-Key")
			if got == "" {
				w.Header().Set("Content-Type", "application/json")
				http.Error(w, `{"error":"API key required"}`, http.StatusUnauthorized)
				return
			}

			for _, key := range keys {
				if subtle.ConstantTimeCompare([]byte(got), []byte(key)) == 1 {
					next.ServeHTTP(w, r)
					return
				}
			}

			w.Header().Set("Content-Type", "application/json")
			http.Error(w, `{"error":"invalid API key"}`, http.StatusUnauthorized)
		})
	}
}
