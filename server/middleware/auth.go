package middleware

import (
	"log"
	"net/http"
	"strings"

	"github.com/mechtronglobal/backend/config"
	"github.com/mechtronglobal/backend/server/auth"
	"github.com/mechtronglobal/backend/server/resp"
	"github.com/mechtronglobal/backend/server/util"
)

// RequireAuth wraps admin handlers: it extracts a Bearer token from the
// Authorization header, verifies it, and injects the claims plus a
// user-scoped request logger into the context. Requests without a valid
// token never reach the wrapped handler.
func RequireAuth(cfg *config.Config, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := strings.TrimSpace(auth.ExtractBearerToken(r.Header.Get("Authorization")))
		if token == "" {
			resp.WriteUnauthorized(w, "An access token is required")
			return
		}

		claims, err := auth.VerifyToken(&cfg.Auth, token)
		if err != nil {
			if cfg.Debug {
				log.Printf("token verification failed: %v", err)
			}
			resp.WriteForbidden(w, "Invalid or expired token")
			return
		}

		rl := util.WithRequest(log.Default(), r, claims.Username)
		ctx := util.ContextWithLogger(r.Context(), rl)
		next.ServeHTTP(w, r.WithContext(auth.AddClaims(ctx, claims)))
	})
}
