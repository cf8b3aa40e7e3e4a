package envconfig

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.NoError(t, err)
	assert.Equal(t, "info", s.LogLevel)
	assert.Equal(t, "loader.json", s.ModuleConfig)
	assert.Equal(t, "localhost:9091", s.AdminAddr)
	assert.Equal(t, 15*time.Second, s.StatsLatch)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "test.env")
	require.NoError(t, os.WriteFile(file, []byte("LOADER_LOG_LEVEL=debug\nLOADER_STATS_LATCH=1m\n"), 0644))
	// godotenv writes the process environment; t.Setenv restores it afterwards.
	for _, k := range []string{"LOADER_LOG_LEVEL", "LOADER_STATS_LATCH"} {
		t.Setenv(k, "")
		os.Unsetenv(k)
	}
	t.Setenv("LOADER_ADMIN_ADDR", ":7000")

	s, err := Load(file)
	require.NoError(t, err)
	assert.Equal(t, "debug", s.LogLevel)
	assert.Equal(t, time.Minute, s.StatsLatch)
	assert.Equal(t, ":7000", s.AdminAddr, "the environment wins over .env files")
}

func TestLoadBadValue(t *testing.T) {
	t.Setenv("LOADER_STATS_LATCH", "soon")
	_, err := Load(filepath.Join(t.TempDir(), "absent.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse env")
}

func TestAsset(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "config"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config", "a.json"), []byte("{}"), 0644))
	s := &Settings{ConfigDir: dir}
	b, err := s.Asset("config/a.json")
	require.NoError(t, err)
	assert.Equal(t, "{}", string(b))
}
