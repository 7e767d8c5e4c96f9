package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestLoadMissingFileGivesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestWriteThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.yaml")
	require.NoError(t, Write(path, false))
	assert.Error(t, Write(path, false))
	require.NoError(t, Write(path, true))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestFileValuesAndEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("db_path: /tmp/a.db\nuser: alice\nrollover:\n  cutoff_hour: 18\n"), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/tmp/a.db", cfg.DBPath)
	assert.Equal(t, "alice", cfg.User)
	assert.Equal(t, 18, cfg.Rollover.CutoffHour)
	assert.Equal(t, DefaultRolloverTimezone, cfg.Rollover.Timezone)

	t.Setenv("LQ_USER", "bob")
	t.Setenv("LQ_ROLLOVER_CUTOFF_HOUR", "9")
	t.Setenv("LQ_TIMEZONE", "UTC")
	cfg, err = Load(path)
	require.NoError(t, err)
	assert.Equal(t, "bob", cfg.User)
	assert.Equal(t, 9, cfg.Rollover.CutoffHour)
	assert.Equal(t, "/tmp/a.db", cfg.DBPath)

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "UTC", loc.String())
}

func TestValidate(t *testing.T) {
	cfg := Default()
	cfg.Rollover.CutoffHour = 24
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.Timezone = "Mars/Olympus"
	assert.Error(t, cfg.Validate())

	cfg = Default()
	cfg.LogLevel = "loud"
	assert.Error(t, cfg.Validate())
}

func TestMarshalIsLoadable(t *testing.T) {
	in := Default()
	in.User = "carol"
	data, err := Marshal(in)
	require.NoError(t, err)

	var out Config
	require.NoError(t, yaml.Unmarshal(data, &out))
	assert.Equal(t, in, out)
}
