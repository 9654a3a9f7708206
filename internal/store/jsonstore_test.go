package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bioprov/internal/common"
)

func newTestJSONStore(t *testing.T) *JSONStore {
	t.Helper()
	s, err := OpenJSON(filepath.Join(t.TempDir(), "db.json"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestJSONStoreRoundtrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestJSONStore(t)

	p := NewProject("soil-metagenome", "vini", "abc123")
	p.Files = []FileEntry{{Path: "/run/assembly.fasta", Tag: "assembly", Size: "4 B", RawSize: 4}}
	require.NoError(t, s.Insert(ctx, p))

	projects, err := s.All(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, p.ID, projects[0].ID)
	assert.Equal(t, "soil-metagenome", projects[0].Name)
	assert.Equal(t, "abc123", projects[0].EnvHash)
	require.Len(t, projects[0].Files, 1)
	assert.Equal(t, int64(4), projects[0].Files[0].RawSize)
}

func TestJSONStoreCountAndTruncate(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestJSONStore(t)

	for _, name := range []string{"a", "b", "c"} {
		require.NoError(t, s.Insert(ctx, NewProject(name, "vini", "")))
	}
	n, err := s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, n)

	require.NoError(t, s.Truncate(ctx))
	n, err = s.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0, n)

	// Truncating an already-empty store is fine.
	require.NoError(t, s.Truncate(ctx))
}

func TestJSONStorePersistsAcrossOpens(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "db.json")

	s1, err := OpenJSON(path)
	require.NoError(t, err)
	require.NoError(t, s1.Insert(ctx, NewProject("persisted", "vini", "")))
	require.NoError(t, s1.Close())

	s2, err := OpenJSON(path)
	require.NoError(t, err)
	defer s2.Close()
	projects, err := s2.All(ctx)
	require.NoError(t, err)
	require.Len(t, projects, 1)
	assert.Equal(t, "persisted", projects[0].Name)
}

func TestJSONStoreRejectsInvalidRecord(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestJSONStore(t)

	assert.ErrorIs(t, s.Insert(ctx, nil), common.ErrInvalidRecord)
	assert.ErrorIs(t, s.Insert(ctx, &Project{Name: "no-id"}), common.ErrInvalidRecord)
}

func TestJSONStoreClosed(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := newTestJSONStore(t)
	require.NoError(t, s.Close())

	_, err := s.All(ctx)
	assert.ErrorIs(t, err, common.ErrClosed)
	assert.ErrorIs(t, s.Insert(ctx, NewProject("x", "", "")), common.ErrClosed)
	assert.ErrorIs(t, s.Truncate(ctx), common.ErrClosed)
}

func TestOpenCreatesMissingDirectory(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "nested", "dir", "db.json")

	s, err := Open(BackendJSON, path)
	require.NoError(t, err)
	defer s.Close()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestOpenUnknownBackend(t *testing.T) {
	t.Parallel()
	_, err := Open("mongodb", filepath.Join(t.TempDir(), "db"))
	assert.Error(t, err)
}
