package wsl

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// cliDriver implements Driver by shelling out to wsl.exe.
type cliDriver struct {
	binary     string
	powershell string
	runner     Runner
	log        *zap.Logger
}

func (d *cliDriver) Info() Info {
	return Info{
		Binary:     d.binary,
		PowerShell: d.powershell,
	}
}

// Status runs wsl --status. A missing binary, a timeout or a non-zero exit all
// mean the subsystem is not usable and are reported as ErrNotInstalled.
func (d *cliDriver) Status(ctx context.Context) (*StatusInfo, error) {
	res, err := d.runner.Run(ctx, d.binary, "--status")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNotInstalled, err)
	}
	if !res.Success() {
		return nil, fmt.Errorf("%w: %s exited with %d", ErrNotInstalled, d.binary, res.ExitCode)
	}
	text := hostText(res.Stdout)
	out := strings.ToLower(text)
	return &StatusInfo{
		Output: text,
		WSL2:   strings.Contains(out, "wsl 2") || strings.Contains(out, "version: 2"),
	}, nil
}

func (d *cliDriver) SetDefaultVersion(ctx context.Context, version int) error {
	return d.mustRun(ctx, "--set-default-version", strconv.Itoa(version))
}

func (d *cliDriver) Import(ctx context.Context, name, installDir, archive string) error {
	res, err := d.runner.Run(ctx, d.binary, "--import", name, installDir, archive)
	if err != nil {
		return fmt.Errorf("import %s: %w", name, err)
	}
	if res.Success() {
		return nil
	}
	msg := hostText(res.Stderr)
	if strings.Contains(strings.ToLower(msg+hostText(res.Stdout)), "already exists") {
		return fmt.Errorf("import %s: %w", name, ErrAlreadyExists)
	}
	return fmt.Errorf("import %s: %s", name, strings.TrimSpace(msg))
}

// Exec returns the guest's output exactly as the command wrote it.
func (d *cliDriver) Exec(ctx context.Context, name, dir, command string) (*Result, error) {
	args := []string{"-d", name}
	if dir != "" {
		args = append(args, "--cd", dir)
	}
	args = append(args, "--", "sh", "-c", command)
	res, err := d.runner.Run(ctx, d.binary, args...)
	if err != nil {
		return nil, fmt.Errorf("exec in %s: %w", name, err)
	}
	return res, nil
}

func (d *cliDriver) Shell(ctx context.Context, name, dir, shell string) (int, error) {
	args := []string{"-d", name}
	if dir != "" {
		args = append(args, "--cd", dir)
	}
	args = append(args, "--", shell)
	code, err := d.runner.Attach(ctx, d.binary, args...)
	if err != nil {
		return code, fmt.Errorf("shell in %s: %w", name, err)
	}
	return code, nil
}

func (d *cliDriver) Terminate(ctx context.Context, name string) error {
	return d.mustRun(ctx, "--terminate", name)
}

func (d *cliDriver) Unregister(ctx context.Context, name string) error {
	return d.mustRun(ctx, "--unregister", name)
}

func (d *cliDriver) List(ctx context.Context, running bool) (string, error) {
	args := []string{"--list", "--quiet"}
	if running {
		args = []string{"--list", "--running"}
	}
	res, err := d.runner.Run(ctx, d.binary, args...)
	if err != nil {
		return "", fmt.Errorf("list instances: %w", err)
	}
	// wsl exits non-zero when there is nothing to list; the text is still meaningful.
	return hostText(res.Stdout), nil
}

// Install starts an elevated "wsl --install --no-distribution" through
// PowerShell. It returns once the elevation request has been issued.
func (d *cliDriver) Install(ctx context.Context) error {
	args := []string{
		"-Command", "Start-Process", "wsl",
		"-ArgumentList '--install --no-distribution'", "-Verb", "RunAs",
	}
	res, err := d.runner.Run(ctx, d.powershell, args...)
	if err != nil {
		return fmt.Errorf("install subsystem: %w", err)
	}
	if !res.Success() {
		return fmt.Errorf("install subsystem: %s", strings.TrimSpace(hostText(res.Stderr)))
	}
	return nil
}

// mustRun runs wsl with args and treats a non-zero exit as an error.
func (d *cliDriver) mustRun(ctx context.Context, args ...string) error {
	res, err := d.runner.Run(ctx, d.binary, args...)
	if err != nil {
		return err
	}
	if !res.Success() {
		msg := strings.TrimSpace(hostText(res.Stderr))
		if msg == "" {
			msg = strings.TrimSpace(hostText(res.Stdout))
		}
		return fmt.Errorf("%s: exit %d: %s", joinArgs(d.binary, args), res.ExitCode, msg)
	}
	return nil
}

// hostText decodes a message written by wsl.exe or powershell itself.
func hostText(s string) string {
	return DecodeOutput([]byte(s))
}
