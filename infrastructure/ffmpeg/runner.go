package ffmpeg

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"
)

// CommandRunner defines the interface for running external commands
// This allows mocking exec.Command in tests
type CommandRunner interface {
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
	// Start launches a command and returns its stdout. Closing the stream
	// stops the command and waits for it to exit.
	Start(ctx context.Context, name string, args ...string) (io.ReadCloser, error)
}

// ExecCommandRunner is the production implementation using os/exec
type ExecCommandRunner struct{}

// Output executes a command and returns its output
func (r *ExecCommandRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.Output()
}

// Start launches a command with its stdout piped back to the caller
func (r *ExecCommandRunner) Start(ctx context.Context, name string, args ...string) (io.ReadCloser, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stderr = os.Stderr
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("failed to pipe %s output: %w", name, err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("failed to start %s: %w", name, err)
	}
	return &processStream{ReadCloser: stdout, cmd: cmd}, nil
}

// processStream ties a stdout pipe to the lifetime of its process
type processStream struct {
	io.ReadCloser
	cmd *exec.Cmd
}

// Close stops the process if it is still running and reaps it. Being
// killed by Close is not reported as an error.
func (s *processStream) Close() error {
	s.ReadCloser.Close()
	_ = s.cmd.Process.Kill()
	err := s.cmd.Wait()
	if exitErr, ok := err.(*exec.ExitError); ok && !exitErr.Exited() {
		return nil
	}
	return err
}
