package env

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// RecordFileName is the instance record inside the project's .lenv directory.
const RecordFileName = "config.json"

// Record is the per-project instance record. It is written once by init and
// never updated.
type Record struct {
	// InstanceName is the wsl distribution name of the instance.
	InstanceName string `json:"instance_name"`

	// Distro is the distribution the instance was created from.
	Distro string `json:"distro"`

	// CreatedAt is when init completed, in UTC.
	CreatedAt time.Time `json:"created_at"`
}

// RecordFile manages the record on disk.
type RecordFile struct {
	path string
}

// NewRecordFile creates a record file manager for the given project config directory.
func NewRecordFile(configDir string) *RecordFile {
	return &RecordFile{
		path: filepath.Join(configDir, RecordFileName),
	}
}

// Exists reports whether the record file is present.
func (f *RecordFile) Exists() bool {
	_, err := os.Stat(f.path)
	return err == nil
}

// Load reads the record from disk.
func (f *RecordFile) Load() (*Record, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read record: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("parse record: %w", err)
	}

	return &rec, nil
}

// Save writes the record to disk.
func (f *RecordFile) Save(rec *Record) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return fmt.Errorf("create record dir: %w", err)
	}

	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal record: %w", err)
	}

	// Write atomically
	tmpPath := f.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write record: %w", err)
	}

	return os.Rename(tmpPath, f.path)
}

// Path returns the record file path.
func (f *RecordFile) Path() string {
	return f.path
}
