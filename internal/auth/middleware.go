package auth

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"

	"vodadmin/internal/session"
)

type ctxKey string

const sessionKey ctxKey = "session"

func WithSession(ctx context.Context, s *session.Session) context.Context {
	return context.WithValue(ctx, sessionKey, s)
}

func SessionFromContext(ctx context.Context) *session.Session {
	s, _ := ctx.Value(sessionKey).(*session.Session)
	return s
}

// RequireSession lets through requests carrying a live admin session and
// sends everything else to the login page.
func RequireSession(mgr *session.Manager, loginPath string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			s, err := mgr.Load(r)
			if err != nil || s.AccessToken == "" || !IsAdminRole(s.Role) {
				_ = mgr.Destroy(w, r)
				http.Redirect(w, r, loginPath, http.StatusSeeOther)
				return
			}
			next.ServeHTTP(w, r.WithContext(WithSession(r.Context(), s)))
		})
	}
}

// RequireToken enforces a fixed token in header X-API-Token or as a bearer
// token. Used for machine endpoints such as /metrics.
func RequireToken(expected string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if expected == "" {
				http.Error(w, "api token not configured", http.StatusUnauthorized)
				return
			}
			got := r.Header.Get("X-API-Token")
			if got == "" {
				if parts := strings.SplitN(r.Header.Get("Authorization"), " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					got = parts[1]
				}
			}
			if subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
				http.Error(w, "unauthorized", http.StatusUnauthorized)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
