package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReadConfig(t *testing.T) {
	t.Run("valid config file", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")

		yamlContent := `site:
  title: My Generator
  student_name: Ada Lovelace
  student_number: "1815"
storage:
  backend: sqlite
  path: data/tabs.db
generator:
  escape_content: true
`
		require.NoError(t, os.WriteFile(configPath, []byte(yamlContent), 0644))

		cfg, err := ReadConfig(configPath)
		require.NoError(t, err)
		require.Equal(t, "My Generator", cfg.Site.Title)
		require.Equal(t, "Ada Lovelace", cfg.Site.StudentName)
		require.Equal(t, "1815", cfg.Site.StudentNumber)
		require.Equal(t, "sqlite", cfg.Storage.Backend)
		require.True(t, cfg.Generator.EscapeContent)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.yml")
		require.NoError(t, os.WriteFile(configPath, []byte("site:\n  course: CSE5006\n"), 0644))

		cfg, err := ReadConfig(configPath)
		require.NoError(t, err)
		require.Equal(t, "CSE5006", cfg.Site.Course)
		require.Equal(t, Default().Site.University, cfg.Site.University)
		require.Equal(t, "file", cfg.Storage.Backend)
		require.False(t, cfg.Generator.EscapeContent)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := ReadConfig(filepath.Join(t.TempDir(), "nope.yml"))
		require.ErrorIs(t, err, os.ErrNotExist)
	})

	t.Run("invalid yaml", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "bad.yml")
		require.NoError(t, os.WriteFile(configPath, []byte("site: [unterminated"), 0644))
		_, err := ReadConfig(configPath)
		require.Error(t, err)
	})
}

func TestWriteConfig_RoundTrip(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yml")
	cfg := Default()
	cfg.Site.StudentName = "Grace Hopper"
	cfg.Storage = StorageConfig{Backend: "memory", Path: "unused.json"}

	require.NoError(t, WriteConfig(configPath, cfg))
	got, err := ReadConfig(configPath)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestEnsureFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "nested", "config.yml")
	require.NoError(t, EnsureFile(configPath))

	cfg, err := ReadConfig(configPath)
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)

	// existing files are left alone
	require.NoError(t, os.WriteFile(configPath, []byte("site:\n  title: Kept\n"), 0644))
	require.NoError(t, EnsureFile(configPath))
	cfg, err = ReadConfig(configPath)
	require.NoError(t, err)
	require.Equal(t, "Kept", cfg.Site.Title)
}

func TestStoragePath(t *testing.T) {
	cfg := Default()
	require.Equal(t, filepath.Join("/etc/ltugen", "tabs.json"), cfg.StoragePath("/etc/ltugen/config.yml"))

	cfg.Storage.Path = "/var/lib/ltugen/tabs.db"
	require.Equal(t, "/var/lib/ltugen/tabs.db", cfg.StoragePath("/etc/ltugen/config.yml"))

	cfg.Storage.Path = ""
	require.Equal(t, "", cfg.StoragePath("config.yml"))
}

func TestCandidatePaths_IncludesWorkingDir(t *testing.T) {
	paths := candidatePaths()
	require.Contains(t, paths, "./config.yml")
	require.Contains(t, paths, "./config.yaml")
}
