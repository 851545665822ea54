package cmd

import (
	"context"
	"fmt"
	"os"
	"time"

	"background-band/application/scan"
	"background-band/domain/band"
	"background-band/infrastructure/config"
	"background-band/infrastructure/csvfile"
	"background-band/infrastructure/detection"
	"background-band/infrastructure/ffmpeg"
	"background-band/infrastructure/filesystem"
	"background-band/infrastructure/logging"

	"github.com/spf13/cobra"
)

// UsageMessage is printed when the folder argument is missing or repeated
const UsageMessage = "Wrong number of params. Use: background-band <folder with mp4 files>"

const defaultConfigPath = "config/config.yaml"

var (
	cfgFile     string
	decoderName string
	logLevel    string
)

// OutputWriter allows capturing output in tests
type OutputWriter interface {
	Write(p []byte) (n int, err error)
}

var rootCmd = &cobra.Command{
	Use:   "background-band <folder>",
	Short: "Detect background bands in recorded videos",
	Long: `background-band scans every file in a folder for horizontal background
bands: a darker region that appears across the bottom of the picture.

For each video it writes <video>.csv next to the source with one row per
appear or disappear event:

  FrameN,upperY,lowerY
  50,100,-1

Example:
  background-band ./recordings`,
	Args:          cobra.ArbitraryArgs,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runScan,
}

// Execute runs the root command. Failures are printed; the exit code stays 0.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config/config.yaml)")
	rootCmd.PersistentFlags().StringVar(&decoderName, "decoder", "", "frame decoder: ffmpeg or gocv (overrides config)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "diagnostic log level (overrides config)")
}

func configPath() string {
	if cfgFile == "" {
		return defaultConfigPath
	}
	return cfgFile
}

// loadConfig reads the config file and applies flag overrides. A missing
// default file yields the defaults.
func loadConfig() (*config.Config, error) {
	cfg, err := config.LoadOrDefault(configPath())
	if err != nil {
		return nil, err
	}
	if decoderName != "" {
		cfg.Decoder.Backend = decoderName
	}
	if logLevel != "" {
		cfg.Logging.Level = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func runScan(cmd *cobra.Command, args []string) error {
	if !CheckArgs(args, cmd.OutOrStdout()) {
		return nil
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Logging.Level, os.Stderr)
	if err != nil {
		return err
	}

	opener, err := newSourceOpener(cfg)
	if err != nil {
		return err
	}

	svc := scan.NewService(
		filesystem.NewLister(),
		opener,
		csvfile.NewWriter(cfg.Scan.OutputSuffix),
		cfg,
		logger,
		cmd.OutOrStdout(),
	)
	return RunScanWithDependencies(cmd.Context(), svc, opener, args[0], cmd.OutOrStdout())
}

// CheckArgs reports whether args hold exactly one folder, printing the
// usage message otherwise
func CheckArgs(args []string, output OutputWriter) bool {
	if len(args) != 1 {
		fmt.Fprintln(output, UsageMessage)
		return false
	}
	return true
}

// newSourceOpener builds the frame decoder selected in cfg
func newSourceOpener(cfg *config.Config) (band.SourceOpener, error) {
	switch cfg.Decoder.Backend {
	case config.BackendFFmpeg:
		return ffmpeg.NewFrameSourceOpener(
			ffmpeg.WithFFmpegPath(cfg.Decoder.FFmpegPath),
			ffmpeg.WithFFprobePath(cfg.Decoder.FFprobePath),
		), nil
	case config.BackendGoCV:
		return detection.NewCaptureOpener(), nil
	}
	return nil, fmt.Errorf("unknown decoder %q", cfg.Decoder.Backend)
}

// Scanner runs a directory scan
type Scanner interface {
	Run(ctx context.Context, dir string) (*scan.Summary, error)
}

// RunScanWithDependencies runs the scan with injected dependencies (for testing)
func RunScanWithDependencies(
	ctx context.Context,
	scanner Scanner,
	opener band.SourceOpener,
	dir string,
	output OutputWriter,
) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Verify the decoder binaries are available if the opener supports it
	if verifiable, ok := opener.(interface{ VerifyInstalled(context.Context) error }); ok {
		verifyCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		if err := verifiable.VerifyInstalled(verifyCtx); err != nil {
			return fmt.Errorf("decoder verification failed: %w", err)
		}
	}

	summary, err := scanner.Run(ctx, dir)
	if err != nil {
		fmt.Fprintln(output, err)
		return nil
	}

	fmt.Fprintf(output, "Scanned %d files: %d with bands, %d failed\n",
		len(summary.Files), summary.Succeeded(), summary.Failed())
	return nil
}
