package env

import "errors"

var (
	// ErrNotInitialized is returned when an operation needs an instance record
	// and the project has none.
	ErrNotInitialized = errors.New("no lenv environment found, run 'lenv init' first")

	// ErrInstallPending means an elevated subsystem install was launched and
	// init has to be run again once it finishes. It is not a failure.
	ErrInstallPending = errors.New("subsystem installation initiated")

	// ErrSubsystemMissing means the subsystem is not installed and the user
	// declined the automatic install.
	ErrSubsystemMissing = errors.New("WSL2 is not installed")
)
