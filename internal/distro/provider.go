// Package distro provides distribution-specific rootfs and provisioning details.
package distro

import (
	"fmt"
	"runtime"
)

// ID identifies a Linux distribution.
type ID string

const (
	Alpine ID = "alpine"
	Ubuntu ID = "ubuntu"
)

// Arch represents a CPU architecture.
type Arch string

const (
	ArchAMD64 Arch = "amd64"
	ArchARM64 Arch = "arm64"
)

// CurrentArch returns the current system architecture.
// Unknown architectures fall back to amd64, the only one every provider ships.
func CurrentArch() Arch {
	switch runtime.GOARCH {
	case "arm64":
		return ArchARM64
	default:
		return ArchAMD64
	}
}

// Rootfs describes a downloadable root filesystem archive.
type Rootfs struct {
	URL      string // Download URL
	Filename string // Cache key under the rootfs cache directory
	SizeMB   int    // Approximate download size, for display only
}

// Provider defines the interface for distribution-specific configuration.
type Provider interface {
	// ID returns the unique identifier for this distribution.
	ID() ID

	// Name returns the human-readable name.
	Name() string

	// Version returns the distribution version.
	Version() string

	// SupportedArchs returns the architectures this distro supports.
	SupportedArchs() []Arch

	// SupportsArch checks if the given architecture is supported.
	SupportsArch(arch Arch) bool

	// Rootfs returns the rootfs archive for the given architecture.
	Rootfs(arch Arch) (*Rootfs, error)

	// Provisioning returns the shell commands, in order, that install the
	// language runtime inside a freshly imported instance.
	Provisioning() []string

	// Highlights returns short selling points shown in the distro menu.
	Highlights() []string
}

// BaseProvider holds the fields every provider shares; providers embed it and
// add Rootfs and Provisioning.
type BaseProvider struct {
	id         ID
	name       string
	version    string
	archs      []Arch
	highlights []string
}

func (p *BaseProvider) ID() ID {
	return p.id
}

func (p *BaseProvider) Name() string {
	return p.name
}

func (p *BaseProvider) Version() string {
	return p.version
}

func (p *BaseProvider) SupportedArchs() []Arch {
	return p.archs
}

// SupportsArch checks if the given architecture is supported.
func (p *BaseProvider) SupportsArch(arch Arch) bool {
	for _, a := range p.archs {
		if a == arch {
			return true
		}
	}
	return false
}

// Highlights returns the menu bullet points.
func (p *BaseProvider) Highlights() []string {
	return p.highlights
}

// pythonSymlink points "python" at python3; shared by every provider.
const pythonSymlink = "ln -sf /usr/bin/python3 /usr/bin/python"

// pipUpgrade upgrades pip once python is on the path.
const pipUpgrade = "python -m pip install --upgrade pip"

// ErrUnsupportedArch is returned when an architecture is not supported.
type ErrUnsupportedArch struct {
	Distro ID
	Arch   Arch
}

func (e *ErrUnsupportedArch) Error() string {
	return fmt.Sprintf("architecture %s not supported by %s", e.Arch, e.Distro)
}
