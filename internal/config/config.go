package config

import (
	"errors"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration. Values load from a
// YAML file and may be overridden by EVENTFEED_* environment variables.
type Config struct {
	// Listen is the HTTP listen address.
	Listen string `yaml:"listen"`

	// CalendarURL is the ICS document the feed is derived from.
	CalendarURL string `yaml:"calendar_url"`

	// SpacesURL is the university space registry used for location links.
	SpacesURL string `yaml:"spaces_url"`

	// Timezone is the IANA zone used when rendering instant-based events
	// for display. Empty means the host's local zone.
	Timezone string `yaml:"timezone"`

	// CacheTTLSeconds is how long a built feed is served before the next
	// request triggers a refresh.
	CacheTTLSeconds int `yaml:"cache_ttl_seconds"`

	// FetchTimeoutSeconds bounds each upstream HTTP fetch.
	FetchTimeoutSeconds int `yaml:"fetch_timeout_seconds"`

	// RefreshCron, when set, prewarms the feed cache on a cron schedule
	// (e.g. "*/10 * * * *") so interactive requests rarely pay the
	// refresh latency.
	RefreshCron string `yaml:"refresh"`
}

// Default returns the in-memory default configuration.
func Default() *Config {
	return &Config{
		Listen:              "0.0.0.0:3030",
		CalendarURL:         "https://calendar.google.com/calendar/ical/c_g2eqt2a7u1fc1pahe2o0ecm7as%40group.calendar.google.com/public/basic.ics",
		SpacesURL:           "https://navi.jyu.fi/api/spaces",
		CacheTTLSeconds:     600,
		FetchTimeoutSeconds: 15,
	}
}

// Load reads the YAML config at path. A missing file is not an error: the
// defaults, plus any environment overrides, apply.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// fall through to defaults
		case err != nil:
			return nil, err
		default:
			if err := yaml.Unmarshal(data, cfg); err != nil {
				return nil, err
			}
		}
	}

	cfg.applyEnv()
	cfg.Normalize()
	return cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("EVENTFEED_LISTEN"); v != "" {
		c.Listen = v
	}
	if v := os.Getenv("EVENTFEED_CALENDAR_URL"); v != "" {
		c.CalendarURL = v
	}
	if v := os.Getenv("EVENTFEED_SPACES_URL"); v != "" {
		c.SpacesURL = v
	}
	if v := os.Getenv("EVENTFEED_TIMEZONE"); v != "" {
		c.Timezone = v
	}
}

// Normalize fills missing/zero values with defaults so partially-filled
// configs still behave.
func (c *Config) Normalize() {
	def := Default()
	if c.Listen == "" {
		c.Listen = def.Listen
	}
	if c.CalendarURL == "" {
		c.CalendarURL = def.CalendarURL
	}
	if c.SpacesURL == "" {
		c.SpacesURL = def.SpacesURL
	}
	if c.CacheTTLSeconds <= 0 {
		c.CacheTTLSeconds = def.CacheTTLSeconds
	}
	if c.FetchTimeoutSeconds <= 0 {
		c.FetchTimeoutSeconds = def.FetchTimeoutSeconds
	}
}

func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}

func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutSeconds) * time.Second
}

// DisplayLocation resolves the configured display timezone.
func (c *Config) DisplayLocation() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Timezone)
}
