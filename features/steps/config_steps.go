//go:build integration

package steps

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"background-band/cmd"
	"background-band/infrastructure/config"

	"github.com/cucumber/godog"
)

type configContext struct {
	tempDir    string
	configPath string
	config     *config.Config
	output     *bytes.Buffer
	err        error
}

var SharedConfigContext = &configContext{}

func InitializeConfigScenario(ctx *godog.ScenarioContext) {
	testCtx := SharedConfigContext

	ctx.Before(func(c context.Context, sc *godog.Scenario) (context.Context, error) {
		tempDir, err := os.MkdirTemp("", "config-test-*")
		if err != nil {
			return c, err
		}
		testCtx.tempDir = tempDir
		testCtx.configPath = filepath.Join(tempDir, "config.yaml")
		testCtx.config = nil
		testCtx.output = &bytes.Buffer{}
		testCtx.err = nil
		return c, nil
	})

	ctx.After(func(c context.Context, sc *godog.Scenario, err error) (context.Context, error) {
		if testCtx.tempDir != "" {
			os.RemoveAll(testCtx.tempDir)
		}
		SharedConfigContext = &configContext{}
		return c, nil
	})

	ctx.Step(`^a config file exists with the decoder "([^"]*)"$`, testCtx.aConfigFileExistsWithTheDecoder)
	ctx.Step(`^I run config get "([^"]*)"$`, testCtx.iRunConfigGet)
	ctx.Step(`^I run config set "([^"]*)" to "([^"]*)"$`, testCtx.iRunConfigSet)
	ctx.Step(`^I run config show$`, testCtx.iRunConfigShow)
	ctx.Step(`^the config command should succeed$`, testCtx.theConfigCommandShouldSucceed)
	ctx.Step(`^the config command should fail with "([^"]*)"$`, testCtx.theConfigCommandShouldFailWith)
	ctx.Step(`^the config output should contain "([^"]*)"$`, testCtx.theConfigOutputShouldContain)
	ctx.Step(`^the config file should have "([^"]*)" set to "([^"]*)"$`, testCtx.theConfigFileShouldHave)
}

func (c *configContext) aConfigFileExistsWithTheDecoder(backend string) error {
	cfg := config.Default()
	cfg.Decoder.Backend = backend
	if err := config.Save(cfg, c.configPath); err != nil {
		return err
	}
	c.config = cfg
	return nil
}

func (c *configContext) iRunConfigGet(key string) error {
	c.err = cmd.RunConfigGetWithDependencies(c.config, c.configPath, key, c.output)
	return nil
}

func (c *configContext) iRunConfigSet(key, value string) error {
	c.err = cmd.RunConfigSetWithDependencies(c.config, c.configPath, key, value, c.output)
	return nil
}

func (c *configContext) iRunConfigShow() error {
	c.err = cmd.RunConfigShowWithDependencies(c.config, c.output)
	return nil
}

func (c *configContext) theConfigCommandShouldSucceed() error {
	if c.err != nil {
		return fmt.Errorf("expected success, got %v", c.err)
	}
	return nil
}

func (c *configContext) theConfigCommandShouldFailWith(expected string) error {
	if c.err == nil {
		return fmt.Errorf("expected an error containing %q", expected)
	}
	if !strings.Contains(c.err.Error(), expected) {
		return fmt.Errorf("expected error containing %q, got %v", expected, c.err)
	}
	return nil
}

func (c *configContext) theConfigOutputShouldContain(expected string) error {
	if !strings.Contains(c.output.String(), expected) {
		return fmt.Errorf("expected output to contain %q, got:\n%s", expected, c.output.String())
	}
	return nil
}

func (c *configContext) theConfigFileShouldHave(key, expected string) error {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	got, err := config.NewConfigManager(cfg, c.configPath).Get(key)
	if err != nil {
		return err
	}
	if got != expected {
		return fmt.Errorf("expected %s %q, got %q", key, expected, got)
	}
	return nil
}
