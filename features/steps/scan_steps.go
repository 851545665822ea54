//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"background-band/application/scan"
	"background-band/cmd"
	"background-band/infrastructure/config"
	"background-band/infrastructure/csvfile"
	"background-band/infrastructure/filesystem"

	"github.com/cucumber/godog"
	"github.com/rs/zerolog"
)

type scanContext struct {
	tempDir string
	opener  *syntheticOpener
	summary *scan.Summary
	output  *bytes.Buffer
	err     error
}

var SharedScanContext = &scanContext{}

func InitializeScanScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedScanContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "scan-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.opener = newSyntheticOpener()
		testCtx.summary = nil
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		SharedScanContext = &scanContext{}
		return c, nil
	})

	ctx.Step(`^a folder with a video "([^"]*)" of (\d+) frames where the band appears at frame (\d+)$`, testCtx.aVideoWhereTheBandAppears)
	ctx.Step(`^a folder with a video "([^"]*)" of (\d+) frames where the band is visible from frame (\d+) to frame (\d+)$`, testCtx.aVideoWhereTheBandIsVisible)
	ctx.Step(`^a folder with a video "([^"]*)" of (\d+) frames without a band$`, testCtx.aVideoWithoutABand)
	ctx.Step(`^a folder with a video "([^"]*)" of (\d+) frames that ends after (\d+) frames$`, testCtx.aTruncatedVideo)
	ctx.Step(`^a folder with a file "([^"]*)" that is not a video$`, testCtx.aFileThatIsNotAVideo)
	ctx.Step(`^I scan the folder$`, testCtx.iScanTheFolder)
	ctx.Step(`^I run the command with (\d+) arguments$`, testCtx.iRunTheCommandWithArguments)
	ctx.Step(`^the timeline for "([^"]*)" should be:$`, testCtx.theTimelineShouldBe)
	ctx.Step(`^no timeline should exist for "([^"]*)"$`, testCtx.noTimelineShouldExist)
	ctx.Step(`^the output should contain "([^"]*)"$`, testCtx.theOutputShouldContain)
	ctx.Step(`^the run should report (\d+) failed files?$`, testCtx.theRunShouldReportFailedFiles)
}

func (s *scanContext) addVideo(name string, v syntheticVideo) error {
	s.opener.videos[name] = v
	return os.WriteFile(filepath.Join(s.tempDir, name), []byte("synthetic"), 0644)
}

func (s *scanContext) aVideoWhereTheBandAppears(name string, total, from int) error {
	return s.addVideo(name, syntheticVideo{total: total, available: total, bandFrom: from, bandTo: total})
}

func (s *scanContext) aVideoWhereTheBandIsVisible(name string, total, from, to int) error {
	return s.addVideo(name, syntheticVideo{total: total, available: total, bandFrom: from, bandTo: to})
}

func (s *scanContext) aVideoWithoutABand(name string, total int) error {
	return s.addVideo(name, syntheticVideo{total: total, available: total, bandFrom: -1})
}

func (s *scanContext) aTruncatedVideo(name string, total, available int) error {
	return s.addVideo(name, syntheticVideo{total: total, available: available, bandFrom: 10, bandTo: total})
}

func (s *scanContext) aFileThatIsNotAVideo(name string) error {
	return os.WriteFile(filepath.Join(s.tempDir, name), []byte("plain text"), 0644)
}

func (s *scanContext) service() *scan.Service {
	cfg := config.Default()
	cfg.Scan.PollInterval = time.Millisecond
	return scan.NewService(
		filesystem.NewLister(),
		s.opener,
		csvfile.NewWriter(cfg.Scan.OutputSuffix),
		cfg,
		zerolog.Nop(),
		s.output,
	)
}

func (s *scanContext) iScanTheFolder() error {
	svc := s.service()
	var err error
	s.summary, err = svc.Run(context.Background(), s.tempDir)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	return nil
}

func (s *scanContext) iRunTheCommandWithArguments(count int) error {
	args := make([]string, count)
	for i := range args {
		args[i] = s.tempDir
	}
	if cmd.CheckArgs(args, s.output) {
		return fmt.Errorf("expected %d arguments to be rejected", count)
	}
	return nil
}

func (s *scanContext) theTimelineShouldBe(name string, expected *godog.DocString) error {
	data, err := os.ReadFile(filepath.Join(s.tempDir, name+".csv"))
	if err != nil {
		return fmt.Errorf("timeline not written: %w", err)
	}
	want := strings.TrimSpace(expected.Content)
	got := strings.TrimSpace(string(data))
	if got != want {
		return fmt.Errorf("expected timeline:\n%s\ngot:\n%s", want, got)
	}
	return nil
}

func (s *scanContext) noTimelineShouldExist(name string) error {
	path := filepath.Join(s.tempDir, name+".csv")
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("expected no timeline at %s", path)
	}
	return nil
}

func (s *scanContext) theOutputShouldContain(expected string) error {
	if !strings.Contains(s.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, s.output.String())
	}
	return nil
}

func (s *scanContext) theRunShouldReportFailedFiles(count int) error {
	if s.summary == nil {
		return fmt.Errorf("no scan has run")
	}
	if s.summary.Failed() != count {
		return fmt.Errorf("expected %d failed files, got %d", count, s.summary.Failed())
	}
	return nil
}
