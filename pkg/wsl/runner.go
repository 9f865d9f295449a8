package wsl

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Result holds the outcome of a captured host process.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Success reports whether the process exited with status 0.
func (r *Result) Success() bool {
	return r.ExitCode == 0
}

// Runner executes host processes. Implementations must report a non-zero exit
// status through the returned exit code, and reserve errors for processes that
// could not be started or were cut short by the context.
type Runner interface {
	// Run executes name with args and captures stdout and stderr.
	Run(ctx context.Context, name string, args ...string) (*Result, error)

	// Attach executes name with args connected to the runner's stdio.
	Attach(ctx context.Context, name string, args ...string) (int, error)
}

// ExecRunner runs processes with os/exec.
type ExecRunner struct {
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer
	log    *zap.Logger
}

// NewExecRunner creates a runner attached to the process stdio.
func NewExecRunner(log *zap.Logger) *ExecRunner {
	if log == nil {
		log = zap.NewNop()
	}
	return &ExecRunner{
		Stdin:  os.Stdin,
		Stdout: os.Stdout,
		Stderr: os.Stderr,
		log:    log,
	}
}

// Run executes a process and captures its output byte for byte. Callers that
// read wsl.exe's own messages decode them with DecodeOutput.
func (r *ExecRunner) Run(ctx context.Context, name string, args ...string) (*Result, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	err := cmd.Run()
	res := &Result{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	code, err := exitStatus(ctx, name, err)
	res.ExitCode = code

	r.log.Debug("host command",
		zap.String("cmd", name),
		zap.Strings("args", args),
		zap.Int("exit", code),
		zap.Duration("took", time.Since(start)),
		zap.Error(err))

	if err != nil {
		return nil, err
	}
	return res, nil
}

// Attach executes a process wired to the runner's stdio and waits for it.
func (r *ExecRunner) Attach(ctx context.Context, name string, args ...string) (int, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdin = r.Stdin
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	r.log.Debug("attach host command", zap.String("cmd", name), zap.Strings("args", args))
	code, err := exitStatus(ctx, name, cmd.Run())
	if err != nil {
		return -1, err
	}
	return code, nil
}

// exitStatus maps the error from exec.Cmd.Run to an exit code. Only failures
// to start the process or context expiry are returned as errors.
func exitStatus(ctx context.Context, name string, err error) (int, error) {
	if err == nil {
		return 0, nil
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		if errors.Is(ctxErr, context.DeadlineExceeded) {
			return -1, fmt.Errorf("%s: %w", name, ErrTimeout)
		}
		return -1, ctxErr
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	if errors.Is(err, exec.ErrNotFound) {
		return -1, fmt.Errorf("%s: %w", name, ErrNotInstalled)
	}
	return -1, fmt.Errorf("run %s: %w", name, err)
}

// joinArgs renders an argument list for messages.
func joinArgs(name string, args []string) string {
	return strings.TrimSpace(name + " " + strings.Join(args, " "))
}
