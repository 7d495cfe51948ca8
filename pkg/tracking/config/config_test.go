package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itohio/mosse/pkg/tracking"
)

func validSettings(t *testing.T) tracking.Settings {
	t.Helper()
	s, err := tracking.NewSettings(64, 64, 16, 0.05, 7.0, 0.001)
	require.NoError(t, err)
	return s
}

func TestSaveLoad_YAML_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	want := validSettings(t)

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSaveLoad_JSON_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.json")
	want := validSettings(t)

	require.NoError(t, Save(path, want))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_RejectsInvalidSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	bad := tracking.Settings{WindowSize: 0}
	err := Save(path, bad)
	assert.Error(t, err)
}

func TestLoadBytes_UnsupportedFormat(t *testing.T) {
	_, err := LoadBytes([]byte("irrelevant"), "toml")
	assert.Error(t, err)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "does-not-exist.yaml"))
	assert.Error(t, err)
}
