package config

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Errors for config management
var (
	ErrUnknownKey   = errors.New("unknown config key")
	ErrInvalidValue = errors.New("invalid config value")
)

// ConfigManager provides keyed read and write access to config values
type ConfigManager struct {
	config     *Config
	configPath string
}

// NewConfigManager creates a new config manager
func NewConfigManager(cfg *Config, configPath string) *ConfigManager {
	return &ConfigManager{
		config:     cfg,
		configPath: configPath,
	}
}

type field struct {
	get func(*Config) string
	set func(*Config, string) error
}

var fields = map[string]field{
	"scan.poll_interval": {
		get: func(c *Config) string { return c.Scan.PollInterval.String() },
		set: func(c *Config, v string) error {
			d, err := time.ParseDuration(v)
			if err != nil {
				return err
			}
			c.Scan.PollInterval = d
			return nil
		},
	},
	"scan.progress_every": {
		get: func(c *Config) string { return strconv.Itoa(c.Scan.ProgressEvery) },
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return err
			}
			c.Scan.ProgressEvery = n
			return nil
		},
	},
	"scan.output_suffix": {
		get: func(c *Config) string { return c.Scan.OutputSuffix },
		set: func(c *Config, v string) error { c.Scan.OutputSuffix = v; return nil },
	},
	"decoder.backend": {
		get: func(c *Config) string { return c.Decoder.Backend },
		set: func(c *Config, v string) error { c.Decoder.Backend = strings.ToLower(v); return nil },
	},
	"decoder.ffmpeg_path": {
		get: func(c *Config) string { return c.Decoder.FFmpegPath },
		set: func(c *Config, v string) error { c.Decoder.FFmpegPath = v; return nil },
	},
	"decoder.ffprobe_path": {
		get: func(c *Config) string { return c.Decoder.FFprobePath },
		set: func(c *Config, v string) error { c.Decoder.FFprobePath = v; return nil },
	},
	"logging.level": {
		get: func(c *Config) string { return c.Logging.Level },
		set: func(c *Config, v string) error { c.Logging.Level = strings.ToLower(v); return nil },
	},
}

// Keys returns all settable keys in sorted order
func (m *ConfigManager) Keys() []string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Get returns the current value of key
func (m *ConfigManager) Get(key string) (string, error) {
	f, ok := fields[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}
	return f.get(m.config), nil
}

// Set updates key, validates the result and saves the config file.
// The in-memory config is left unchanged when validation fails.
func (m *ConfigManager) Set(key, value string) error {
	f, ok := fields[strings.ToLower(strings.TrimSpace(key))]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnknownKey, key)
	}

	next := *m.config
	if err := f.set(&next, strings.TrimSpace(value)); err != nil {
		return fmt.Errorf("%w for %s: %v", ErrInvalidValue, key, err)
	}
	if err := next.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidValue, err)
	}

	*m.config = next
	return Save(m.config, m.configPath)
}
