package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/OliveiraNt/ltu-generator/internal/config"
	"github.com/OliveiraNt/ltu-generator/internal/domain"
	"github.com/stretchr/testify/require"
)

// exerciseStorage runs the behaviour every backend must share.
func exerciseStorage(t *testing.T, s domain.Storage) {
	t.Helper()
	ctx := context.Background()

	_, ok, err := s.Get(ctx, "missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, s.Set(ctx, "k", `[{"id":"1"}]`))
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[{"id":"1"}]`, v)

	require.NoError(t, s.Set(ctx, "k", "second"))
	v, _, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.Equal(t, "second", v)

	require.NoError(t, s.Delete(ctx, "k"))
	_, ok, err = s.Get(ctx, "k")
	require.NoError(t, err)
	require.False(t, ok)

	// deleting a missing key is not an error
	require.NoError(t, s.Delete(ctx, "k"))
}

func TestMemoryStore(t *testing.T) {
	exerciseStorage(t, NewMemoryStore())
}

func TestFileStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.json")
	fs, err := NewFileStore(path)
	require.NoError(t, err)
	exerciseStorage(t, fs)
}

func TestFileStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tabs.json")

	fs, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoError(t, fs.Set(ctx, "htmlGeneratorTabs", `[]`))
	require.NoError(t, fs.Close())

	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "htmlGeneratorTabs")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, `[]`, v)
}

func TestFileStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tabs.json")
	bad := []byte(`{"htmlGeneratorTabs": "[{\"id\":\"1\"`)
	require.NoError(t, os.WriteFile(path, bad, 0644))

	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, ok, err := s.Get(ctx, "htmlGeneratorTabs")
	require.NoError(t, err)
	require.False(t, ok)

	moved, err := os.ReadFile(path + ".corrupt")
	require.NoError(t, err)
	require.Equal(t, bad, moved)
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)

	require.NoError(t, s.Set(ctx, "k", "v"))
	reopened, err := NewFileStore(path)
	require.NoError(t, err)
	v, ok, err := reopened.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestFileStore_WrongShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"htmlGeneratorTabs": 3}`), 0644))
	s, err := NewFileStore(path)
	require.NoError(t, err)
	_, ok, err := s.Get(context.Background(), "htmlGeneratorTabs")
	require.NoError(t, err)
	require.False(t, ok)
	require.FileExists(t, path+".corrupt")
}

func TestFileStore_BlankFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tabs.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0644))
	_, err := NewFileStore(path)
	require.NoError(t, err)
	require.NoFileExists(t, path+".corrupt")
}

func TestOpen_FileBackendSurvivesCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state", "tabs.json")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(`{"htmlGeneratorTabs": "[{\"id\":\"1\"`), 0644))

	s, err := Open(context.Background(), config.StorageConfig{Backend: "file", Path: path})
	require.NoError(t, err)
	defer s.Close()
	_, ok, err := s.Get(context.Background(), "htmlGeneratorTabs")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestSQLiteStore(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tabs.db")
	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	exerciseStorage(t, s)
}

func TestSQLiteStore_PersistsAcrossReopen(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "tabs.db")

	s, err := NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	require.NoError(t, s.Set(ctx, "k", "v"))
	require.NoError(t, s.Close())

	s, err = NewSQLiteStore(ctx, path)
	require.NoError(t, err)
	defer s.Close()
	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, "v", v)
}

func TestOpen(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	s, err := Open(ctx, config.StorageConfig{Backend: "memory"})
	require.NoError(t, err)
	require.IsType(t, &MemoryStore{}, s)

	s, err = Open(ctx, config.StorageConfig{Backend: "file", Path: filepath.Join(dir, "data", "tabs.json")})
	require.NoError(t, err)
	require.IsType(t, &FileStore{}, s)

	s, err = Open(ctx, config.StorageConfig{Backend: "SQLite", Path: filepath.Join(dir, "db", "tabs.db")})
	require.NoError(t, err)
	require.IsType(t, &SQLiteStore{}, s)
	require.NoError(t, s.Close())

	_, err = Open(ctx, config.StorageConfig{Backend: "redis"})
	require.ErrorIs(t, err, ErrUnknownBackend)

	_, err = Open(ctx, config.StorageConfig{Backend: "file"})
	require.Error(t, err)
}
