package config

import (
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func TestConfigManager(t *testing.T) {
	newManager := func(t *testing.T) (*ConfigManager, *Config, string) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		cfg := Default()
		return NewConfigManager(cfg, path), cfg, path
	}

	t.Run("get known key", func(t *testing.T) {
		m, _, _ := newManager(t)
		v, err := m.Get("scan.poll_interval")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if v != "1s" {
			t.Errorf("expected 1s, got %s", v)
		}
	})

	t.Run("set persists the file", func(t *testing.T) {
		m, cfg, path := newManager(t)
		if err := m.Set("scan.poll_interval", "500ms"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Scan.PollInterval != 500*time.Millisecond {
			t.Errorf("expected in-memory update, got %s", cfg.Scan.PollInterval)
		}
		saved, err := Load(path)
		if err != nil {
			t.Fatalf("unexpected load error: %v", err)
		}
		if saved.Scan.PollInterval != 500*time.Millisecond {
			t.Errorf("expected saved 500ms, got %s", saved.Scan.PollInterval)
		}
	})

	t.Run("backend is case-insensitive", func(t *testing.T) {
		m, cfg, _ := newManager(t)
		if err := m.Set("decoder.backend", "GoCV"); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if cfg.Decoder.Backend != BackendGoCV {
			t.Errorf("expected gocv, got %s", cfg.Decoder.Backend)
		}
	})

	t.Run("unknown key", func(t *testing.T) {
		m, _, _ := newManager(t)
		if err := m.Set("email.from", "x"); !errors.Is(err, ErrUnknownKey) {
			t.Errorf("expected ErrUnknownKey, got %v", err)
		}
		if _, err := m.Get("email.from"); !errors.Is(err, ErrUnknownKey) {
			t.Errorf("expected ErrUnknownKey, got %v", err)
		}
	})

	t.Run("invalid value leaves config untouched", func(t *testing.T) {
		m, cfg, _ := newManager(t)
		for _, tc := range [][2]string{
			{"scan.poll_interval", "soon"},
			{"scan.progress_every", "0"},
			{"decoder.backend", "vlc"},
		} {
			if err := m.Set(tc[0], tc[1]); !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Set(%s, %s): expected ErrInvalidValue, got %v", tc[0], tc[1], err)
			}
		}
		if *cfg != *Default() {
			t.Errorf("expected defaults to remain, got %+v", cfg)
		}
	})

	t.Run("keys are sorted", func(t *testing.T) {
		m, _, _ := newManager(t)
		keys := m.Keys()
		if len(keys) != 7 {
			t.Fatalf("expected 7 keys, got %v", keys)
		}
		for i := 1; i < len(keys); i++ {
			if keys[i-1] > keys[i] {
				t.Errorf("keys not sorted: %v", keys)
			}
		}
	})
}
