package cmd

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"background-band/infrastructure/config"
)

func TestRunConfigShowWithDependencies(t *testing.T) {
	var out bytes.Buffer
	if err := RunConfigShowWithDependencies(config.Default(), &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, want := range []string{"backend: ffmpeg", "poll_interval: 1s", "output_suffix: .csv"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("expected %q in output:\n%s", want, out.String())
		}
	}
}

func TestRunConfigListWithDependencies(t *testing.T) {
	var out bytes.Buffer
	if err := RunConfigListWithDependencies(config.Default(), "unused.yaml", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	if len(lines) != 8 {
		t.Fatalf("expected header and 7 keys, got %d lines:\n%s", len(lines), out.String())
	}
	if !strings.HasPrefix(lines[1], "decoder.backend") || !strings.Contains(lines[1], "ffmpeg") {
		t.Errorf("unexpected first entry %q", lines[1])
	}
}

func TestRunConfigSetAndGet(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := config.Default()

	var out bytes.Buffer
	if err := RunConfigSetWithDependencies(cfg, path, "decoder.backend", "GOCV", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "Set decoder.backend = gocv\n" {
		t.Errorf("unexpected output %q", out.String())
	}

	saved, err := config.Load(path)
	if err != nil {
		t.Fatalf("failed to load saved config: %v", err)
	}
	out.Reset()
	if err := RunConfigGetWithDependencies(saved, path, "decoder.backend", &out); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "gocv\n" {
		t.Errorf("expected gocv, got %q", out.String())
	}

	err = RunConfigGetWithDependencies(saved, path, "email.sender", &out)
	if !errors.Is(err, config.ErrUnknownKey) {
		t.Errorf("expected ErrUnknownKey, got %v", err)
	}
}
