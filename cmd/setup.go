package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"background-band/infrastructure/config"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"
)

// Prompter interface for interactive prompts (allows mocking in tests)
type Prompter interface {
	Input(message string, defaultValue string) (string, error)
	Confirm(message string, defaultValue bool) (bool, error)
	Select(message string, options []string, defaultValue string) (string, error)
}

// SurveyPrompter implements Prompter using the survey library
type SurveyPrompter struct{}

func (p *SurveyPrompter) Input(message string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Input{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

func (p *SurveyPrompter) Confirm(message string, defaultValue bool) (bool, error) {
	result := defaultValue
	prompt := &survey.Confirm{
		Message: message,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return false, err
	}
	return result, nil
}

func (p *SurveyPrompter) Select(message string, options []string, defaultValue string) (string, error) {
	result := ""
	prompt := &survey.Select{
		Message: message,
		Options: options,
		Default: defaultValue,
	}
	if err := survey.AskOne(prompt, &result); err != nil {
		return "", err
	}
	return result, nil
}

// DefaultPrompter is the prompter used in production
var DefaultPrompter Prompter = &SurveyPrompter{}

var setupCmd = &cobra.Command{
	Use:   "setup",
	Short: "Create configuration file interactively",
	Long: `Prompts for configuration values and creates config.yaml.

This command guides you through choosing a frame decoder, the scan
progress settings and the diagnostic log level. Press enter to keep
the suggested default.`,
	Args: cobra.NoArgs,
	RunE: runSetup,
}

func init() {
	rootCmd.AddCommand(setupCmd)
}

func runSetup(cmd *cobra.Command, args []string) error {
	return RunSetupWithPrompter(DefaultPrompter, configPath(), cmd.OutOrStdout())
}

// RunSetupWithPrompter runs the setup with a given prompter (for testing)
func RunSetupWithPrompter(prompter Prompter, configPath string, out OutputWriter) error {
	// Check if config already exists
	if _, err := os.Stat(configPath); err == nil {
		overwrite, err := prompter.Confirm("config.yaml already exists. Overwrite?", false)
		if err != nil {
			return fmt.Errorf("prompt cancelled")
		}
		if !overwrite {
			fmt.Fprintln(out, "Setup cancelled.")
			return nil
		}
	}

	fmt.Fprintln(out, "Welcome to background-band setup!")
	fmt.Fprintln(out)

	cfg := config.Default()

	if err := promptDecoder(prompter, cfg); err != nil {
		return err
	}
	if err := promptScan(prompter, cfg); err != nil {
		return err
	}
	if err := promptLogging(prompter, cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	// Ensure config directory exists
	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := config.Save(cfg, configPath); err != nil {
		return fmt.Errorf("failed to save configuration: %w", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "Configuration saved to %s\n", configPath)
	return nil
}

func promptDecoder(prompter Prompter, cfg *config.Config) error {
	backend, err := prompter.Select("Which frame decoder should be used?",
		[]string{config.BackendFFmpeg, config.BackendGoCV}, cfg.Decoder.Backend)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Decoder.Backend = backend

	if backend != config.BackendFFmpeg {
		return nil
	}

	ffmpegPath, err := prompter.Input("Path to the ffmpeg executable?", cfg.Decoder.FFmpegPath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ffmpegPath != "" {
		cfg.Decoder.FFmpegPath = ffmpegPath
	}

	ffprobePath, err := prompter.Input("Path to the ffprobe executable?", cfg.Decoder.FFprobePath)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if ffprobePath != "" {
		cfg.Decoder.FFprobePath = ffprobePath
	}
	return nil
}

func promptScan(prompter Prompter, cfg *config.Config) error {
	interval, err := prompter.Input("How often should progress be printed?", cfg.Scan.PollInterval.String())
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if interval != "" {
		d, err := time.ParseDuration(interval)
		if err != nil {
			return fmt.Errorf("invalid poll interval %q: %w", interval, err)
		}
		cfg.Scan.PollInterval = d
	}

	every, err := prompter.Input("Update progress every how many frames?", strconv.Itoa(cfg.Scan.ProgressEvery))
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if every != "" {
		n, err := strconv.Atoi(every)
		if err != nil {
			return fmt.Errorf("invalid frame count %q: %w", every, err)
		}
		cfg.Scan.ProgressEvery = n
	}

	suffix, err := prompter.Input("Suffix for timeline files?", cfg.Scan.OutputSuffix)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	if suffix != "" {
		cfg.Scan.OutputSuffix = suffix
	}
	return nil
}

func promptLogging(prompter Prompter, cfg *config.Config) error {
	level, err := prompter.Select("Diagnostic log level?",
		[]string{"debug", "info", "warn", "error"}, cfg.Logging.Level)
	if err != nil {
		return fmt.Errorf("prompt cancelled")
	}
	cfg.Logging.Level = strings.ToLower(level)
	return nil
}
