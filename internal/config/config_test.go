package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	inerr "github.com/vango-dev/inertia/internal/errors"
)

func writeConfig(t *testing.T, name, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Chdir(t.TempDir())

	c, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, DefaultAddr, c.Addr)
	assert.Equal(t, DefaultID, c.ID)
	assert.Equal(t, "/build/", c.Assets.Prefix)
	assert.Equal(t, 250*time.Millisecond, c.Progress.Delay)
	assert.Equal(t, "#29d", c.Progress.Color)
	assert.True(t, c.Progress.IncludeCSS)
	assert.True(t, c.Live.Enabled)
	assert.Equal(t, DefaultLivePath, c.Live.Path)
	assert.Equal(t, "inertia", c.Metrics.Namespace)
	assert.Empty(t, c.Path())
}

func TestLoadYAML(t *testing.T) {
	path := writeConfig(t, "inertia.yaml", `
addr: ":9000"
title: "%s - Acme"
log_level: debug
assets:
  manifest: dist/manifest.json
  entrypoints: [app.css, app.js]
progress:
  delay: 100ms
  show_spinner: true
live:
  enabled: false
`)

	c, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, ":9000", c.Addr)
	assert.Equal(t, "dist/manifest.json", c.Assets.Manifest)
	assert.Equal(t, []string{"app.css", "app.js"}, c.Assets.Entrypoints)
	assert.Equal(t, 100*time.Millisecond, c.Progress.Delay)
	assert.True(t, c.Progress.ShowSpinner)
	assert.False(t, c.Live.Enabled)
	assert.Equal(t, path, c.Path())

	pc := c.ProgressConfig()
	assert.Equal(t, 100*time.Millisecond, pc.Delay)
	assert.Equal(t, "#29d", pc.Color)

	title := c.TitleFunc()
	require.NotNil(t, title)
	assert.Equal(t, "Users - Acme", title("Users"))
	assert.Equal(t, "Acme", title(""))
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("INERTIA_ADDR", ":7070")
	t.Setenv("INERTIA_PROGRESS_DISABLED", "true")
	path := writeConfig(t, "inertia.yaml", "addr: \":9000\"\n")

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":7070", c.Addr)
	assert.True(t, c.ProgressConfig().Disabled)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		file string
		body string
	}{
		{"bad title", "a.yaml", "title: Acme\n"},
		{"bad live path", "b.yaml", "live:\n  path: live\n"},
		{"half s3", "c.yaml", "assets:\n  s3_bucket: builds\n"},
		{"bad level", "d.yaml", "log_level: loud\n"},
		{"bad syntax", "e.yaml", "addr: [\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.file, tt.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, inerr.New("E080")), "error %v should be E080", err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLevel(t *testing.T) {
	c := &Config{LogLevel: "warn"}
	assert.Equal(t, "WARN", c.Level().String())
	assert.Nil(t, (&Config{}).TitleFunc())
}
