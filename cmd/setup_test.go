package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"background-band/infrastructure/config"
)

// scriptedPrompter answers prompts in order
type scriptedPrompter struct {
	answers  []string
	confirms []bool
	asked    []string
}

func (p *scriptedPrompter) next(message string) (string, error) {
	p.asked = append(p.asked, message)
	if len(p.answers) == 0 {
		return "", errors.New("unexpected prompt: " + message)
	}
	a := p.answers[0]
	p.answers = p.answers[1:]
	return a, nil
}

func (p *scriptedPrompter) Input(message string, defaultValue string) (string, error) {
	return p.next(message)
}

func (p *scriptedPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	if len(p.confirms) == 0 {
		return defaultValue, nil
	}
	c := p.confirms[0]
	p.confirms = p.confirms[1:]
	return c, nil
}

func (p *scriptedPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	return p.next(message)
}

func TestRunSetupWithPrompter(t *testing.T) {
	t.Run("ffmpeg decoder", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config", "config.yaml")
		prompter := &scriptedPrompter{answers: []string{
			"ffmpeg", "/opt/ffmpeg", "", "250ms", "10", "", "debug",
		}}
		var out bytes.Buffer

		if err := RunSetupWithPrompter(prompter, path, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		cfg, err := config.Load(path)
		if err != nil {
			t.Fatalf("failed to load saved config: %v", err)
		}
		if cfg.Decoder.FFmpegPath != "/opt/ffmpeg" || cfg.Decoder.FFprobePath != "ffprobe" {
			t.Errorf("unexpected decoder config %+v", cfg.Decoder)
		}
		if cfg.Scan.PollInterval != 250*time.Millisecond || cfg.Scan.ProgressEvery != 10 || cfg.Scan.OutputSuffix != ".csv" {
			t.Errorf("unexpected scan config %+v", cfg.Scan)
		}
		if cfg.Logging.Level != "debug" {
			t.Errorf("expected debug level, got %q", cfg.Logging.Level)
		}
		if !strings.Contains(out.String(), "Configuration saved to") {
			t.Errorf("unexpected output %q", out.String())
		}
	})

	t.Run("gocv decoder skips binary paths", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		prompter := &scriptedPrompter{answers: []string{"gocv", "", "", "", "info"}}

		if err := RunSetupWithPrompter(prompter, path, &bytes.Buffer{}); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(prompter.asked) != 5 {
			t.Errorf("expected 5 prompts, got %v", prompter.asked)
		}
	})

	t.Run("invalid poll interval", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		prompter := &scriptedPrompter{answers: []string{"gocv", "soon"}}

		err := RunSetupWithPrompter(prompter, path, &bytes.Buffer{})
		if err == nil || !strings.Contains(err.Error(), "invalid poll interval") {
			t.Fatalf("expected poll interval error, got %v", err)
		}
		if _, err := os.Stat(path); err == nil {
			t.Error("expected no config file to be written")
		}
	})

	t.Run("existing config kept", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "config.yaml")
		if err := os.WriteFile(path, []byte("logging:\n  level: warn\n"), 0644); err != nil {
			t.Fatal(err)
		}
		prompter := &scriptedPrompter{confirms: []bool{false}}
		var out bytes.Buffer

		if err := RunSetupWithPrompter(prompter, path, &out); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(out.String(), "Setup cancelled.") {
			t.Errorf("expected cancellation, got %q", out.String())
		}
		data, _ := os.ReadFile(path)
		if string(data) != "logging:\n  level: warn\n" {
			t.Errorf("config was modified: %q", data)
		}
	})
}
