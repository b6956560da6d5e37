package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "conf.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
log:
  level: debug
input:
  format: mgb
  skip_overlaps: true
output:
  mode: tra
  nonspeech_marker: "<NS>"
`), 0o644))

	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "mgb", c.Input.Format)
	assert.True(t, c.Input.SkipOverlaps)
	assert.Equal(t, "##", c.Input.OverlapMarker, "unset keys keep their default")
	assert.Equal(t, "tra", c.Output.Mode)
	assert.Equal(t, "<NS>", c.Output.NonSpeechMarker)
	assert.Equal(t, "transcript_new.xsd", c.Output.SchemaLocation)
}

func TestLoadEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.yaml")
	require.NoError(t, os.WriteFile(path, nil, 0o644))
	c, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), c)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("log: [unclosed"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadGuessedPaths(t *testing.T) {
	dir := t.TempDir()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("CONFIG_ENV", "test")

	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), c, "no file falls back to defaults")

	require.NoError(t, os.MkdirAll(filepath.Join("config", "test"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("config", "test", "config.yaml"), []byte("output:\n  mode: ctm\n"), 0o644))
	c, err = Load("")
	require.NoError(t, err)
	assert.Equal(t, "ctm", c.Output.Mode)
}
