package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/jrsteele09/go-identity-console/authclient"
)

const (
	// sessionCookieName binds the browser to the operator session
	sessionCookieName = "console_session"
	// returnToCookieName carries the post-login destination across the redirect
	returnToCookieName = "console_return_to"
)

// LoginHandler starts the PKCE flow and redirects the user agent to the
// authorization endpoint (GET /auth/login)
func (s *Server) LoginHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		returnTo := r.URL.Query().Get("return_to")
		// Only local paths; an absolute URL here would be an open redirect
		if !strings.HasPrefix(returnTo, "/") || strings.HasPrefix(returnTo, "//") {
			returnTo = "/"
		}

		authURL, err := s.auth.BeginLogin()
		if err != nil {
			s.log.Err(err).Msg("Failed to begin login")
			writeJSONError(w, http.StatusInternalServerError, "login_failed", "could not start login flow")
			return
		}

		s.setReturnToCookie(w, r, returnTo)
		s.ship.Info("Login started", nil)
		http.Redirect(w, r, authURL, http.StatusSeeOther)
	}
}

// CallbackHandler completes the PKCE flow (GET|POST /auth/callback; POST
// supports the form_post response mode)
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// r.ParseForm merges query params and POST form data
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid callback data", http.StatusBadRequest)
			return
		}
		callback := *r.URL
		callback.RawQuery = r.Form.Encode()

		session, err := s.auth.CompleteLogin(r.Context(), callback.String())
		if err != nil {
			_ = s.auth.ClearSession(r.Context())
			s.ship.Warn("Login callback failed", map[string]any{"error": err.Error()})
			http.Error(w, "Login failed: "+err.Error(), callbackErrorStatus(err))
			return
		}

		s.setSessionCookie(w, r, session)
		s.ship.Info("Login completed", map[string]any{"subject": session.SubjectID})

		returnTo := "/"
		if cookie, err := r.Cookie(returnToCookieName); err == nil && strings.HasPrefix(cookie.Value, "/") {
			returnTo = cookie.Value
		}
		s.clearReturnToCookie(w, r)
		http.Redirect(w, r, returnTo, http.StatusSeeOther)
	}
}

// LogoutHandler ends the session and navigates to the remote logout endpoint
// (GET /auth/logout)
func (s *Server) LogoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logoutURL, err := s.auth.Logout(r.Context())
		if err != nil {
			s.log.Err(err).Msg("Failed to clear session on logout")
		}
		s.clearSessionCookie(w, r)
		s.ship.Info("Logged out", nil)

		if logoutURL == "" {
			http.Redirect(w, r, "/", http.StatusSeeOther)
			return
		}
		http.Redirect(w, r, logoutURL, http.StatusSeeOther)
	}
}

// SessionHandler reports the current authentication state as JSON
// (GET /auth/session)
func (s *Server) SessionHandler() http.HandlerFunc {
	type sessionInfo struct {
		Authenticated bool   `json:"authenticated"`
		SubjectID     string `json:"subject_id,omitempty"`
		Email         string `json:"email,omitempty"`
		Scope         string `json:"scope,omitempty"`
		ExpiresIn     int    `json:"expires_in,omitempty"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		session, ok := s.auth.Session(r.Context())
		if !ok {
			writeJSON(w, http.StatusOK, sessionInfo{Authenticated: false})
			return
		}
		writeJSON(w, http.StatusOK, sessionInfo{
			Authenticated: session.AccessToken != "",
			SubjectID:     session.SubjectID,
			Email:         session.Email,
			Scope:         session.Scope,
			ExpiresIn:     session.ExpiresIn,
		})
	}
}

func callbackErrorStatus(err error) int {
	switch {
	case errors.Is(err, authclient.ErrAuthorizationDenied):
		return http.StatusUnauthorized
	case errors.Is(err, authclient.ErrTokenExchangeFailed):
		return http.StatusBadGateway
	default:
		return http.StatusBadRequest
	}
}

func (s *Server) setSessionCookie(w http.ResponseWriter, r *http.Request, session *authclient.Session) {
	maxAge := session.ExpiresIn
	if maxAge <= 0 {
		maxAge = 3600
	}
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    session.ID,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   maxAge,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}

func (s *Server) setReturnToCookie(w http.ResponseWriter, r *http.Request, returnTo string) {
	http.SetCookie(w, &http.Cookie{
		Name:     returnToCookieName,
		Value:    returnTo,
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300, // long enough for the round trip to the authorization server
	})
}

func (s *Server) clearReturnToCookie(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, &http.Cookie{
		Name:     returnToCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		Secure:   getScheme(r) == "https",
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
