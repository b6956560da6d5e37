package transcript

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadSpeakers(t *testing.T) {
	got, err := ReadSpeakers(strings.NewReader("\ufeffAlice Smith\n Bob \n\nCarol\n"))
	require.NoError(t, err)
	assert.Equal(t, []string{"Alice Smith", "Bob", "", "Carol"}, got)
}

func TestLoadSpeakers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "spk.txt")
	require.NoError(t, os.WriteFile(path, []byte("a\nb"), 0o644))

	got, err := LoadSpeakers(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b"}, got)

	_, err = LoadSpeakers(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadSpeakersEmpty(t *testing.T) {
	got, err := ReadSpeakers(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, got)
}
