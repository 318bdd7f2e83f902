package middleware

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/xavierca1/ligue-leads/internal/auth"
)

const SessionCookieName = "portal_session"

type sessionKey struct{}

type SessionAuthorizer interface {
	Authorize(token string) (auth.PortalSession, error)
}

// RequireSession rejects requests without a valid portal_session cookie. With
// roles set, the session must also hold one of them.
func RequireSession(authorizer SessionAuthorizer, roles ...auth.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil || cookie.Value == "" {
				writeUnauthorized(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			session, err := authorizer.Authorize(cookie.Value)
			if err != nil {
				writeUnauthorized(w, http.StatusUnauthorized, "unauthorized")
				return
			}

			if len(roles) > 0 && !hasRole(session, roles) {
				writeUnauthorized(w, http.StatusForbidden, "forbidden")
				return
			}

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionKey{}, session)))
		})
	}
}

func SessionFromContext(ctx context.Context) (auth.PortalSession, bool) {
	s, ok := ctx.Value(sessionKey{}).(auth.PortalSession)
	return s, ok
}

func hasRole(s auth.PortalSession, roles []auth.Role) bool {
	for _, r := range roles {
		if s.Role == r {
			return true
		}
	}
	return false
}

func writeUnauthorized(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
