package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.NoError(t, err)
	assert.Equal(t, 1080, cfg.Width)
	assert.Equal(t, 1920, cfg.Height)
	assert.Equal(t, 8080, cfg.Port)
}

func TestLoadFileAndEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thumbcard.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
port = 9000
width = 720
height = 1280
workers = 3
fetch_timeout = "3s"
data_dir = "/srv/catalog"
`), 0o644))
	t.Setenv("PORT", "9100")
	t.Setenv("OUTPUT_DIR", "/tmp/cards")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Port)
	assert.Equal(t, 720, cfg.Width)
	assert.Equal(t, 1280, cfg.Height)
	assert.Equal(t, 3, cfg.Workers)
	assert.Equal(t, 3*time.Second, time.Duration(cfg.FetchTimeout))
	assert.Equal(t, "/srv/catalog", cfg.DataDir)
	assert.Equal(t, "/tmp/cards", cfg.OutputDir)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("PORT", "")
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.toml")
	require.NoError(t, os.WriteFile(bad, []byte("width = \n"), 0o644))
	_, err := Load(bad)
	assert.ErrorContains(t, err, "parse")

	neg := filepath.Join(dir, "neg.toml")
	require.NoError(t, os.WriteFile(neg, []byte("height = -5\n"), 0o644))
	_, err = Load(neg)
	assert.ErrorContains(t, err, "must be positive")

	t.Setenv("PORT", "eighty")
	_, err = Load("")
	assert.ErrorContains(t, err, "PORT")
}
