package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Decoder backends
const (
	BackendFFmpeg = "ffmpeg"
	BackendGoCV   = "gocv"
)

// Config represents the complete application configuration
type Config struct {
	Scan    ScanConfig    `yaml:"scan"`
	Decoder DecoderConfig `yaml:"decoder"`
	Logging LoggingConfig `yaml:"logging"`
}

// ScanConfig controls the per-file job and the directory run
type ScanConfig struct {
	PollInterval  time.Duration `yaml:"poll_interval"`
	ProgressEvery int           `yaml:"progress_every"`
	OutputSuffix  string        `yaml:"output_suffix"`
}

// DecoderConfig selects and configures the frame source
type DecoderConfig struct {
	Backend     string `yaml:"backend"`
	FFmpegPath  string `yaml:"ffmpeg_path"`
	FFprobePath string `yaml:"ffprobe_path"`
}

// LoggingConfig contains diagnostic log settings
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Scan: ScanConfig{
			PollInterval:  time.Second,
			ProgressEvery: 40,
			OutputSuffix:  ".csv",
		},
		Decoder: DecoderConfig{
			Backend:     BackendFFmpeg,
			FFmpegPath:  "ffmpeg",
			FFprobePath: "ffprobe",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load reads and parses the configuration from the specified YAML file.
// Values missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config file %s: %w", path, err)
	}

	return cfg, nil
}

// LoadOrDefault loads path, falling back to defaults when the file does not exist
func LoadOrDefault(path string) (*Config, error) {
	cfg, err := Load(path)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	return cfg, err
}

// Save writes the configuration to the specified YAML file
func Save(cfg *Config, path string) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to serialize config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// Validate checks that the configuration values are usable
func (c *Config) Validate() error {
	if c.Scan.PollInterval <= 0 {
		return fmt.Errorf("scan.poll_interval must be positive, got %s", c.Scan.PollInterval)
	}
	if c.Scan.ProgressEvery <= 0 {
		return fmt.Errorf("scan.progress_every must be positive, got %d", c.Scan.ProgressEvery)
	}
	if c.Scan.OutputSuffix == "" {
		return fmt.Errorf("scan.output_suffix is required")
	}
	switch c.Decoder.Backend {
	case BackendFFmpeg, BackendGoCV:
	default:
		return fmt.Errorf("decoder.backend must be %q or %q, got %q", BackendFFmpeg, BackendGoCV, c.Decoder.Backend)
	}
	return nil
}
