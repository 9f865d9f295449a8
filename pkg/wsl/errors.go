package wsl

import "errors"

// Host errors
var (
	ErrNotInstalled  = errors.New("wsl: subsystem not installed")
	ErrTimeout       = errors.New("wsl: command timed out")
	ErrAlreadyExists = errors.New("wsl: instance already exists")
)
