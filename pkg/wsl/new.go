package wsl

import (
	"runtime"

	"go.uber.org/zap"
)

// DefaultBinary returns the wsl binary name for the current platform.
// Inside a WSL guest the Windows tool is reachable through interop as wsl.exe.
func DefaultBinary() string {
	if runtime.GOOS == "windows" {
		return "wsl"
	}
	return "wsl.exe"
}

// DefaultPowerShell returns the powershell binary name for the current platform.
func DefaultPowerShell() string {
	if runtime.GOOS == "windows" {
		return "powershell"
	}
	return "powershell.exe"
}

// Options configures NewDriver.
type Options struct {
	// Binary overrides the wsl binary (empty = DefaultBinary).
	Binary string

	// PowerShell overrides the powershell binary (empty = DefaultPowerShell).
	PowerShell string

	// Runner executes host processes (nil = ExecRunner on os stdio).
	Runner Runner

	// Logger receives debug output for every invocation (nil = no-op).
	Logger *zap.Logger
}

// NewDriver creates a driver for the wsl command-line tool.
func NewDriver(opts Options) Driver {
	if opts.Binary == "" {
		opts.Binary = DefaultBinary()
	}
	if opts.PowerShell == "" {
		opts.PowerShell = DefaultPowerShell()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Runner == nil {
		opts.Runner = NewExecRunner(opts.Logger)
	}
	return &cliDriver{
		binary:     opts.Binary,
		powershell: opts.PowerShell,
		runner:     opts.Runner,
		log:        opts.Logger,
	}
}
