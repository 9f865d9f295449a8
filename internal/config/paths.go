// Package config provides configuration management for lenv.
package config

import (
	"os"
	"path/filepath"
)

// DirName is the hidden directory used both under the user's home (shared
// cache) and under each project (instance record).
const DirName = ".lenv"

// Paths holds the user-level directory layout for lenv.
type Paths struct {
	// HomeDir is the shared lenv directory: ~/.lenv
	HomeDir string

	// RootfsDir caches downloaded rootfs archives, keyed by filename.
	RootfsDir string

	// InstancesDir holds one install directory per imported instance.
	InstancesDir string

	// IndexFile lists every environment created by this user.
	IndexFile string

	// SettingsFile is the optional user settings file.
	SettingsFile string
}

// GetPaths returns the paths rooted at the current user's home directory.
func GetPaths() (*Paths, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return PathsFor(home), nil
}

// PathsFor returns the paths rooted at the given home directory.
func PathsFor(home string) *Paths {
	base := filepath.Join(home, DirName)
	return &Paths{
		HomeDir:      base,
		RootfsDir:    filepath.Join(base, "rootfs"),
		InstancesDir: filepath.Join(base, "instances"),
		IndexFile:    filepath.Join(base, "instances.json"),
		SettingsFile: filepath.Join(base, "settings.yaml"),
	}
}

// EnsureDirectories creates the home and rootfs cache directories if they don't exist.
func (p *Paths) EnsureDirectories() error {
	if err := os.MkdirAll(p.HomeDir, 0755); err != nil {
		return err
	}
	if err := os.MkdirAll(p.RootfsDir, 0755); err != nil {
		return err
	}
	return nil
}

// InstanceDir returns the install directory for a named instance.
func (p *Paths) InstanceDir(name string) string {
	return filepath.Join(p.InstancesDir, name)
}
