package flowrepo

import (
	"errors"
	"sync"
	"time"
)

// maxFlowAge bounds how long an unconsumed flow state is considered valid.
const maxFlowAge = 15 * time.Minute

// InMemoryRepo is a thread-safe in-memory implementation of the Repo interface
type InMemoryRepo struct {
	mu    sync.RWMutex
	flows map[string]*FlowState
}

// NewInMemoryRepo creates a new in-memory flow state repository
func NewInMemoryRepo() *InMemoryRepo {
	return &InMemoryRepo{
		flows: make(map[string]*FlowState),
	}
}

// Upsert stores or updates a flow state
func (r *InMemoryRepo) Upsert(state string, flow *FlowState) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}
	if flow == nil {
		return errors.New("flow cannot be nil")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	// Store a copy to prevent external modifications
	r.flows[state] = &FlowState{
		State:         flow.State,
		CodeVerifier:  flow.CodeVerifier,
		CodeChallenge: flow.CodeChallenge,
		CreatedAt:     flow.CreatedAt,
	}

	return nil
}

// Get retrieves a flow state by state parameter. Stale entries are treated as
// missing and dropped.
func (r *InMemoryRepo) Get(state string) (*FlowState, error) {
	if state == "" {
		return nil, errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	flow, exists := r.flows[state]
	if !exists {
		return nil, errors.New("state not found")
	}

	if time.Since(flow.CreatedAt) > maxFlowAge {
		delete(r.flows, state)
		return nil, errors.New("state expired")
	}

	return &FlowState{
		State:         flow.State,
		CodeVerifier:  flow.CodeVerifier,
		CodeChallenge: flow.CodeChallenge,
		CreatedAt:     flow.CreatedAt,
	}, nil
}

// Delete removes a flow state
func (r *InMemoryRepo) Delete(state string) error {
	if state == "" {
		return errors.New("state cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.flows, state)
	return nil
}
