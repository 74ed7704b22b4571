package sessionrepo

import (
	"context"
	"errors"
	"time"
)

// Session is the authenticated operator session. It exists if and only if a
// state-and-verifier-validated code exchange has completed since the last
// logout or clear.
type Session struct {
	ID          string    `json:"id"`
	SubjectID   string    `json:"subject_id,omitempty"`
	Email       string    `json:"email,omitempty"`
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type,omitempty"`
	ExpiresIn   int       `json:"expires_in,omitempty"` // lifetime in seconds at issue time
	Scope       string    `json:"scope,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Expired reports whether the access token lifetime has elapsed. Callers that
// want expiry enforcement check this themselves; IsAuthenticated does not.
func (s *Session) Expired() bool {
	if s.ExpiresIn <= 0 {
		return false
	}
	return time.Since(s.CreatedAt) > time.Duration(s.ExpiresIn)*time.Second
}

var (
	ErrNotFound = errors.New("session not found")
	ErrCorrupt  = errors.New("stored session data is corrupt")
)

// Repo persists the single console session between restarts, mirroring the
// durable storage of a browser profile.
type Repo interface {
	Save(ctx context.Context, session *Session) error
	Load(ctx context.Context) (*Session, error)
	Delete(ctx context.Context) error
}
