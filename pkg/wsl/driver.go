// Package wsl provides a driver for the Windows Subsystem for Linux command-line
// tool. Every operation is a single invocation of wsl.exe; the driver only
// builds argument lists and interprets exit codes and output text.
package wsl

import "context"

// Driver is the interface for host subsystem operations.
type Driver interface {
	Lifecycle
	Info() Info

	// Status reports whether the subsystem is installed and which version it defaults to.
	Status(ctx context.Context) (*StatusInfo, error)

	// SetDefaultVersion changes the default WSL version for new instances.
	SetDefaultVersion(ctx context.Context, version int) error

	// List returns the decoded output of wsl --list. When running is true only
	// running instances are listed.
	List(ctx context.Context, running bool) (string, error)

	// Install launches an elevated installation of the subsystem without a distribution.
	Install(ctx context.Context) error
}

// Lifecycle defines instance lifecycle operations.
type Lifecycle interface {
	// Import materializes a new instance from a rootfs archive.
	Import(ctx context.Context, name, installDir, archive string) error

	// Exec runs a shell command inside the instance and captures its output.
	// A non-zero exit code is reported in the Result, not as an error.
	Exec(ctx context.Context, name, dir, command string) (*Result, error)

	// Shell starts an interactive shell attached to the caller's terminal and
	// blocks until it exits.
	Shell(ctx context.Context, name, dir, shell string) (int, error)

	// Terminate stops a running instance.
	Terminate(ctx context.Context, name string) error

	// Unregister removes the instance and its virtual disk.
	Unregister(ctx context.Context, name string) error
}

// Info contains driver metadata.
type Info struct {
	Binary     string // wsl binary invoked
	PowerShell string // powershell binary used for elevated installs
}

// StatusInfo is the interpreted output of wsl --status.
type StatusInfo struct {
	Output string
	WSL2   bool
}
