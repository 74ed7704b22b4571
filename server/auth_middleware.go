package server

import (
	"context"
	"net/http"

	"github.com/jrsteele09/go-identity-console/authclient"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeySession stores the authenticated session
	ContextKeySession ContextKey = "session"
)

// RequireSession is middleware for the admin API routes. It validates the
// session cookie against the operator session and enforces token expiry -
// an expired token is useless against the backend API anyway.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(sessionCookieName)
			if err != nil || cookie.Value == "" {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "missing session cookie")
				return
			}

			session, ok := s.auth.Session(r.Context())
			if !ok || session.AccessToken == "" || session.ID != cookie.Value {
				writeJSONError(w, http.StatusUnauthorized, "unauthorized", "invalid session")
				return
			}

			if session.Expired() {
				_ = s.auth.ClearSession(r.Context())
				writeJSONError(w, http.StatusUnauthorized, "session_expired", "session expired, log in again")
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeySession, session)
			next(w, r.WithContext(ctx))
		}
	}
}

// SessionFromContext returns the session stored by RequireSession
func SessionFromContext(ctx context.Context) (*authclient.Session, bool) {
	session, ok := ctx.Value(ContextKeySession).(*authclient.Session)
	return session, ok
}
