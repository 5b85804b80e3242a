package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"eventfeed/internal/config"
)

func TestLoadDefaultsWithoutFile(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, "0.0.0.0:3030", cfg.Listen)
	assert.Equal(t, 600*time.Second, cfg.CacheTTL())
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout())
	assert.NotEmpty(t, cfg.CalendarURL)
	assert.NotEmpty(t, cfg.SpacesURL)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	cfg, err := config.Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:3030", cfg.Listen)
}

func TestLoadYAMLWithNormalization(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(
		"listen: 127.0.0.1:8080\n"+
			"timezone: Europe/Helsinki\n"+
			"cache_ttl_seconds: 60\n",
	), 0o600))

	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:8080", cfg.Listen)
	assert.Equal(t, time.Minute, cfg.CacheTTL())
	// unset fields get defaults
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout())
	assert.NotEmpty(t, cfg.CalendarURL)

	loc, err := cfg.DisplayLocation()
	require.NoError(t, err)
	assert.Equal(t, "Europe/Helsinki", loc.String())
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv("EVENTFEED_LISTEN", "0.0.0.0:9999")
	t.Setenv("EVENTFEED_CALENDAR_URL", "https://example.org/cal.ics")

	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0:9999", cfg.Listen)
	assert.Equal(t, "https://example.org/cal.ics", cfg.CalendarURL)
}

func TestDisplayLocationRejectsBadZone(t *testing.T) {
	cfg, err := config.Load("")
	require.NoError(t, err)
	cfg.Timezone = "Nowhere/Atlantis"

	_, err = cfg.DisplayLocation()
	assert.Error(t, err)
}
