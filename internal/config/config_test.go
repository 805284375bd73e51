package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MDS_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "data/cache", cfg.Paths.CacheDir)
	assert.NotEmpty(t, cfg.Sources.APIBaseURL)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte("server:\n  port: 9000\nlogging:\n  level: warn\n"), 0644))

	t.Setenv("MDS_CONFIG_FILE", file)
	t.Setenv("MDS_LOGGING_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoad_RejectsInvalidLevel(t *testing.T) {
	t.Setenv("MDS_CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("MDS_LOGGING_LEVEL", "loud")

	_, err := Load()
	require.Error(t, err)
}

func TestYearSupported(t *testing.T) {
	assert.True(t, YearSupported(MinEndYear))
	assert.True(t, YearSupported(MaxEndYear))
	assert.False(t, YearSupported(MinEndYear-1))
	assert.False(t, YearSupported(MaxEndYear+1))
}

func TestAvailableYears(t *testing.T) {
	years := AvailableYears()
	require.NotEmpty(t, years)
	assert.Equal(t, MinEndYear, years[0])
	assert.Equal(t, MaxEndYear, years[len(years)-1])
	assert.Len(t, years, MaxEndYear-MinEndYear+1)
}

func TestResolvePathsFrom(t *testing.T) {
	cfg := &Config{}
	cfg.Paths.DataDir = "data"
	cfg.Paths.CacheDir = "/abs/cache"
	cfg.Paths.ExportDir = "data/exports"
	cfg.Paths.LogsDir = "logs"

	paths := resolvePathsFrom("/opt/mdscli", cfg)
	assert.Equal(t, "/opt/mdscli/data", paths.DataDir)
	assert.Equal(t, "/abs/cache", paths.CacheDir)
	assert.Equal(t, "/opt/mdscli/data/exports", paths.ExportDir)
	assert.Equal(t, "/opt/mdscli/logs", paths.LogsDir)
}
