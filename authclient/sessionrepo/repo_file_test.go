package sessionrepo

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testSession() *Session {
	return &Session{
		ID:          "session-1",
		SubjectID:   "user-1",
		Email:       "operator@example.com",
		AccessToken: "tok1",
		TokenType:   "Bearer",
		ExpiresIn:   3600,
		Scope:       "openid email",
		CreatedAt:   time.Now().UTC().Truncate(time.Second),
	}
}

func TestFileRepoRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	saved := testSession()
	require.NoError(t, repo.Save(ctx, saved))

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, saved, loaded)
}

func TestFileRepoSurvivesReopen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	repo, err := NewFileRepo(dir)
	require.NoError(t, err)
	require.NoError(t, repo.Save(ctx, testSession()))

	reopened, err := NewFileRepo(dir)
	require.NoError(t, err)
	loaded, err := reopened.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok1", loaded.AccessToken)
}

func TestFileRepoLoadMissing(t *testing.T) {
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	_, err = repo.Load(context.Background())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFileRepoLoadCorrupt(t *testing.T) {
	dir := t.TempDir()
	repo, err := NewFileRepo(dir)
	require.NoError(t, err)
	require.NoError(t, os.WriteFile(filepath.Join(dir, sessionFileName), []byte("{not json"), 0o600))

	_, err = repo.Load(context.Background())
	require.ErrorIs(t, err, ErrCorrupt)
}

func TestFileRepoDelete(t *testing.T) {
	ctx := context.Background()
	repo, err := NewFileRepo(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, repo.Save(ctx, testSession()))
	require.NoError(t, repo.Delete(ctx))
	_, err = repo.Load(ctx)
	require.ErrorIs(t, err, ErrNotFound)

	// Deleting an already-absent session is not an error.
	require.NoError(t, repo.Delete(ctx))
}

func TestInMemoryRepoCopiesOnSaveAndLoad(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryRepo()

	saved := testSession()
	require.NoError(t, repo.Save(ctx, saved))
	saved.AccessToken = "mutated"

	loaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok1", loaded.AccessToken)

	loaded.AccessToken = "mutated again"
	reloaded, err := repo.Load(ctx)
	require.NoError(t, err)
	require.Equal(t, "tok1", reloaded.AccessToken)
}

func TestSessionExpired(t *testing.T) {
	s := testSession()
	require.False(t, s.Expired())

	s.CreatedAt = time.Now().Add(-2 * time.Hour)
	require.True(t, s.Expired())

	// Sessions without a recorded lifetime never expire locally.
	s.ExpiresIn = 0
	require.False(t, s.Expired())
}
