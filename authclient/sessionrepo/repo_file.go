package sessionrepo

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

const sessionFileName = "session.json"

// FileRepo persists the session as a JSON file under the data folder. This is
// the default durable store for a single-instance console.
type FileRepo struct {
	mu   sync.Mutex
	path string
}

// NewFileRepo creates a file-backed session repository under dataFolder
func NewFileRepo(dataFolder string) (*FileRepo, error) {
	if err := os.MkdirAll(dataFolder, 0o700); err != nil {
		return nil, fmt.Errorf("[NewFileRepo] failed to create data folder: %w", err)
	}
	return &FileRepo{path: filepath.Join(dataFolder, sessionFileName)}, nil
}

func (r *FileRepo) Save(_ context.Context, session *Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("[FileRepo Save] marshal session: %w", err)
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return fmt.Errorf("[FileRepo Save] write session file: %w", err)
	}
	return nil
}

func (r *FileRepo) Load(_ context.Context) (*Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("[FileRepo Load] read session file: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return &session, nil
}

func (r *FileRepo) Delete(_ context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("[FileRepo Delete] remove session file: %w", err)
	}
	return nil
}
