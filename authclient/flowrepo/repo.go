package flowrepo

import "time"

// FlowState holds the PKCE material for one in-flight login attempt, keyed by
// the anti-CSRF state parameter. It is short-lived: created by BeginLogin and
// consumed (deleted) by CompleteLogin.
type FlowState struct {
	State         string
	CodeVerifier  string
	CodeChallenge string
	CreatedAt     time.Time
}

type Repo interface {
	Upsert(state string, flow *FlowState) error
	Get(state string) (*FlowState, error)
	Delete(state string) error
}
