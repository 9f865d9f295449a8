package env

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"
)

// IndexEntry records one environment in the user-level index.
type IndexEntry struct {
	Name        string    `json:"name"`
	ProjectPath string    `json:"project_path"`
	Distro      string    `json:"distro"`
	CreatedAt   time.Time `json:"created_at"`
}

// IndexData holds the index file contents.
type IndexData struct {
	Instances []IndexEntry `json:"instances"`
}

// Index tracks every environment created by this user, across projects.
// The per-project record stays authoritative; the index only backs lenv list.
type Index struct {
	path string
}

// NewIndex creates an index backed by the given file.
func NewIndex(path string) *Index {
	return &Index{path: path}
}

// Load reads the index from disk.
func (x *Index) Load() (*IndexData, error) {
	data, err := os.ReadFile(x.path)
	if err != nil {
		if os.IsNotExist(err) {
			return &IndexData{Instances: []IndexEntry{}}, nil
		}
		return nil, fmt.Errorf("read index: %w", err)
	}

	var idx IndexData
	if err := json.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parse index: %w", err)
	}

	return &idx, nil
}

// Save writes the index to disk.
func (x *Index) Save(idx *IndexData) error {
	if err := os.MkdirAll(filepath.Dir(x.path), 0755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	data, err := json.MarshalIndent(idx, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal index: %w", err)
	}

	tmpPath := x.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("write index: %w", err)
	}

	return os.Rename(tmpPath, x.path)
}

// Add inserts an entry, replacing any existing entry with the same name.
func (x *Index) Add(entry IndexEntry) error {
	idx, err := x.Load()
	if err != nil {
		return err
	}

	kept := make([]IndexEntry, 0, len(idx.Instances)+1)
	for _, e := range idx.Instances {
		if e.Name != entry.Name {
			kept = append(kept, e)
		}
	}
	idx.Instances = append(kept, entry)

	return x.Save(idx)
}

// Remove deletes the named entry. Returns false if it was not present.
func (x *Index) Remove(name string) (bool, error) {
	idx, err := x.Load()
	if err != nil {
		return false, err
	}

	found := false
	kept := make([]IndexEntry, 0, len(idx.Instances))
	for _, e := range idx.Instances {
		if e.Name == name {
			found = true
		} else {
			kept = append(kept, e)
		}
	}

	if !found {
		return false, nil
	}

	idx.Instances = kept
	return true, x.Save(idx)
}

// Get returns an entry by name.
func (x *Index) Get(name string) (*IndexEntry, error) {
	idx, err := x.Load()
	if err != nil {
		return nil, err
	}

	for _, e := range idx.Instances {
		if e.Name == name {
			return &e, nil
		}
	}

	return nil, fmt.Errorf("instance '%s' not found", name)
}

// List returns all entries sorted by project path.
func (x *Index) List() ([]IndexEntry, error) {
	idx, err := x.Load()
	if err != nil {
		return nil, err
	}

	entries := idx.Instances
	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ProjectPath < entries[j].ProjectPath
	})
	return entries, nil
}

// Path returns the index file path.
func (x *Index) Path() string {
	return x.path
}
