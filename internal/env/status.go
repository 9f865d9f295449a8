package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"go.uber.org/zap"
)

// Status describes a project's environment.
type Status struct {
	Project     string     `json:"project" yaml:"project"`
	Path        string     `json:"path" yaml:"path"`
	Initialized bool       `json:"initialized" yaml:"initialized"`
	Instance    string     `json:"instance,omitempty" yaml:"instance,omitempty"`
	Distro      string     `json:"distro,omitempty" yaml:"distro,omitempty"`
	CreatedAt   *time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	Exists      bool       `json:"exists" yaml:"exists"`
	Running     bool       `json:"running" yaml:"running"`
}

// State returns Running, Stopped or Not found for an initialized project.
func (s *Status) State() string {
	switch {
	case !s.Exists:
		return "Not found"
	case s.Running:
		return "Running"
	default:
		return "Stopped"
	}
}

// WriteText renders the status the way lenv status prints it.
func (s *Status) WriteText(w io.Writer) {
	fmt.Fprintf(w, "Project: %s\n", s.Project)
	fmt.Fprintf(w, "Path: %s\n", s.Path)

	if !s.Initialized {
		fmt.Fprintln(w, "Status:  Not initialized")
		return
	}
	fmt.Fprintln(w, "Status:  Initialized")

	if s.Distro != "" {
		fmt.Fprintf(w, "Distro:  %s\n", s.Distro)
	}
	if !s.Exists {
		fmt.Fprintln(w, "WSL Instance:  Not found")
		return
	}
	fmt.Fprintf(w, "WSL Instance:  %s\n", s.Instance)
	fmt.Fprintf(w, "State:  %s\n", s.State())
}

// Status reports whether the project is initialized and, if so, whether its
// instance is registered and running.
func (m *Manager) Status(ctx context.Context) (*Status, error) {
	st := &Status{
		Project: ProjectName(m.projectPath),
		Path:    m.projectPath,
	}

	rec, err := m.loadRecord()
	if errors.Is(err, ErrNotInitialized) {
		return st, nil
	}
	st.Initialized = true
	st.Instance = m.name
	if err != nil {
		m.log.Warn("unreadable instance record", zap.String("path", m.record.Path()), zap.Error(err))
	} else {
		if rec.InstanceName != "" {
			st.Instance = rec.InstanceName
		}
		st.Distro = rec.Distro
		if !rec.CreatedAt.IsZero() {
			created := rec.CreatedAt
			st.CreatedAt = &created
		}
	}

	all, err := m.driver.List(ctx, false)
	if err != nil {
		return nil, fmt.Errorf("list instances: %w", err)
	}
	st.Exists = listed(all, st.Instance)
	if !st.Exists {
		return st, nil
	}

	running, err := m.driver.List(ctx, true)
	if err != nil {
		return nil, fmt.Errorf("list running instances: %w", err)
	}
	st.Running = listed(running, st.Instance)
	return st, nil
}

// listed reports whether name appears as a whole word in wsl --list output.
// Verbose listings mark the default instance with "*" and append "(Default)",
// so lines are split into fields rather than compared whole.
func listed(output, name string) bool {
	for _, line := range strings.Split(output, "\n") {
		for _, field := range strings.Fields(line) {
			if field == name {
				return true
			}
		}
	}
	return false
}
