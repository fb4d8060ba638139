package iofs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/macrofitas/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	home := t.TempDir()
	for range 2 {
		require.NoError(t, EnsureDirs(home))
	}

	dirs := []string{
		config.ConfigDir(home),
		config.CacheDir(home),
		config.DataDir(home),
		config.LogDir(home),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), dir)
	}
}

func TestEnsureDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "reports", "2025")
	require.NoError(t, EnsureDir(dir))
	require.NoError(t, EnsureDir(dir))
	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	file := filepath.Join(t.TempDir(), "names.txt")
	require.NoError(t, os.WriteFile(file, []byte("Aus bus"), 0644))
	assert.Error(t, EnsureDir(file), "a file is in the way")
}

func TestEnsureFiles(t *testing.T) {
	tests := []struct {
		msg     string
		ensure  func(string) error
		path    func(string) string
		content string
	}{
		{"config", EnsureConfigFile, config.ConfigFilePath, ConfigYAML},
		{"sources", EnsureSourcesFile, config.SourcesFilePath, SourcesYAML},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			home := t.TempDir()
			require.NoError(t, EnsureDirs(home))
			require.NoError(t, tt.ensure(home))

			path := tt.path(home)
			bs, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(bs))
			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

			edited := "# edited by user\n"
			require.NoError(t, os.WriteFile(path, []byte(edited), 0644))
			require.NoError(t, tt.ensure(home))
			bs, err = os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, edited, string(bs), "user edits are kept")
		})
	}
}

func TestEmbeddedYAML(t *testing.T) {
	for _, section := range []string{"http:", "journal:", "log:", "output_dir"} {
		assert.Contains(t, ConfigYAML, section)
	}

	assert.Contains(t, SourcesYAML, "data_sources")
	assert.Contains(t, SourcesYAML, "endpoints")
	for _, id := range []string{"flora", "plant", "gbif", "splink"} {
		assert.Contains(t, SourcesYAML, "id: "+id)
	}
}

func TestRemoveDir(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "gbif")
	require.NoError(t, EnsureDir(dir))
	err := os.WriteFile(filepath.Join(dir, "a.csv"), []byte("x"), 0644)
	require.NoError(t, err)

	require.NoError(t, RemoveDir(dir))
	_, err = os.Stat(dir)
	assert.True(t, os.IsNotExist(err))

	assert.NoError(t, RemoveDir(dir), "missing directory is fine")
}
