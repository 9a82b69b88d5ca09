package server

import (
	"crypto/subtle"
	"net/http"
	"strings"
)

// requirePassword gates the API behind the configured shared secret.
// No password configured means open access. Comparison is constant-time.
func (s *Server) requirePassword(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		password := s.cfg.Server.Password
		if password == "" {
			next.ServeHTTP(w, r)
			return
		}

		supplied := bearerToken(r)
		if supplied == "" || subtle.ConstantTimeCompare([]byte(supplied), []byte(password)) != 1 {
			s.logger.Warn("rejected request with bad credentials", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "invalid or missing password")
			return
		}

		next.ServeHTTP(w, r)
	})
}

// bearerToken extracts the token from the Authorization header
func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(auth, prefix) {
		return ""
	}
	return strings.TrimSpace(auth[len(prefix):])
}
