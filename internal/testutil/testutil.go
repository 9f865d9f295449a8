// Package testutil provides common test helpers for lenv tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/javanstorm/lenv/internal/config"
)

// TestPaths returns a lenv directory layout rooted in t.TempDir().
func TestPaths(t *testing.T) *config.Paths {
	t.Helper()
	return config.PathsFor(t.TempDir())
}

// TestSettings returns default settings without the destroy grace period so
// tests don't sleep.
func TestSettings() *config.Settings {
	s := config.DefaultSettings()
	s.DestroyGrace = 0
	return s
}

// CreateProject creates an empty project directory named name and returns
// its absolute path.
func CreateProject(t *testing.T, name string) string {
	t.Helper()

	dir := filepath.Join(t.TempDir(), name)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create project %s: %v", dir, err)
	}
	return dir
}

// WriteRecord writes v as the instance record of the project and returns the
// record path. v is marshaled as-is so tests can write partial records.
func WriteRecord(t *testing.T, projectDir string, v any) string {
	t.Helper()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		t.Fatalf("failed to marshal record: %v", err)
	}
	return WriteRawRecord(t, projectDir, data)
}

// WriteRawRecord writes data verbatim as the instance record of the project.
func WriteRawRecord(t *testing.T, projectDir string, data []byte) string {
	t.Helper()

	dir := filepath.Join(projectDir, config.DirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write record: %v", err)
	}
	return path
}
