package sessionrepo

import (
	"context"
	"sync"
)

// InMemoryRepo is an in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu      sync.RWMutex
	session *Session
}

// NewInMemoryRepo creates a new in-memory session repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{}
}

func (r *InMemoryRepo) Save(_ context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to prevent external modifications
	s := *session
	r.session = &s
	return nil
}

func (r *InMemoryRepo) Load(_ context.Context) (*Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.session == nil {
		return nil, ErrNotFound
	}
	s := *r.session
	return &s, nil
}

func (r *InMemoryRepo) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session = nil
	return nil
}
