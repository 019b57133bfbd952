// Package execx runs external binaries and captures their output.
//
// Callers depend on the Runner interface so tests can substitute a fake
// and never spawn a real process.
package execx

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/iconidentify/vidgrab/internal/domain"
)

// waitDelay bounds how long Run waits for output pipes after the process
// has been killed.
const waitDelay = 2 * time.Second

// Result holds the captured output of a finished process.
type Result struct {
	Stdout   []byte
	Stderr   string
	ExitCode int
}

// Runner executes an external command.
//
// Run returns a non-nil Result whenever the process was started, even if it
// exited non-zero. The error is non-nil for a non-zero exit, a start failure,
// or a context cancellation.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (*Result, error)
}

// OSRunner runs commands with os/exec.
type OSRunner struct{}

// NewOSRunner creates a runner backed by real processes.
func NewOSRunner() *OSRunner {
	return &OSRunner{}
}

// Run starts name with args and waits for it to exit. The process is killed
// when ctx is done.
func (r *OSRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.WaitDelay = waitDelay
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	res := &Result{
		Stdout: stdout.Bytes(),
		Stderr: strings.TrimSpace(stderr.String()),
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return res, fmt.Errorf("%s: %w", name, ctxErr)
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return res, fmt.Errorf("%s exited with status %d", name, exitErr.ExitCode())
		}
		return nil, fmt.Errorf("start %s: %w", name, err)
	}
	return res, nil
}

// LookPath resolves a binary name to an absolute path.
func LookPath(name string) (string, error) {
	path, err := exec.LookPath(name)
	if err != nil {
		return "", fmt.Errorf("%s: %w: %w", name, domain.ErrToolNotFound, err)
	}
	return path, nil
}
