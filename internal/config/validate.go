package config

import (
	"fmt"
	"path"
	"strings"

	"github.com/javanstorm/lenv/internal/distro"
)

// ValidationError represents a configuration issue.
type ValidationError struct {
	Field   string
	Message string
	Fatal   bool // true = can't proceed, false = will be ignored
}

// ValidateSettings checks settings for values lenv cannot work with.
func ValidateSettings(s *Settings) []ValidationError {
	var errors []ValidationError

	if !distro.IsRegistered(distro.ID(s.DefaultDistro)) {
		errors = append(errors, ValidationError{
			Field:   "default_distro",
			Message: (&distro.ErrUnknownDistro{ID: distro.ID(s.DefaultDistro)}).Error(),
			Fatal:   true,
		})
	}

	durations := []struct {
		field string
		value int64
	}{
		{"status_timeout", int64(s.StatusTimeout)},
		{"terminate_timeout", int64(s.TerminateTimeout)},
		{"unregister_timeout", int64(s.UnregisterTimeout)},
		{"destroy_grace", int64(s.DestroyGrace)},
		{"download_timeout", int64(s.DownloadTimeout)},
	}
	for _, d := range durations {
		if d.value < 0 {
			errors = append(errors, ValidationError{
				Field:   d.field,
				Message: "must not be negative",
				Fatal:   true,
			})
		}
	}

	// Guest paths are POSIX regardless of the host.
	if s.Shell == "" || !path.IsAbs(s.Shell) {
		errors = append(errors, ValidationError{
			Field:   "shell",
			Message: fmt.Sprintf("%q is not an absolute guest path, /bin/sh will be used", s.Shell),
			Fatal:   false,
		})
	}

	switch strings.ToLower(s.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		errors = append(errors, ValidationError{
			Field:   "log_level",
			Message: fmt.Sprintf("unknown level %q, warn will be used", s.LogLevel),
			Fatal:   false,
		})
	}

	return errors
}

// HasFatal reports whether any validation error prevents running.
func HasFatal(errors []ValidationError) bool {
	for _, e := range errors {
		if e.Fatal {
			return true
		}
	}
	return false
}

// FormatValidationErrors returns human-readable error summary.
func FormatValidationErrors(errors []ValidationError) string {
	if len(errors) == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString("Configuration warnings:\n")
	for _, e := range errors {
		prefix := "Warning"
		if e.Fatal {
			prefix = "Error"
		}
		fmt.Fprintf(&b, "  %s [%s]: %s\n", prefix, e.Field, e.Message)
	}
	return b.String()
}

// Normalize replaces the values ValidateSettings reports as non-fatal with
// their defaults.
func Normalize(s *Settings) {
	defaults := DefaultSettings()
	if s.Shell == "" || !path.IsAbs(s.Shell) {
		s.Shell = defaults.Shell
	}
	level := strings.ToLower(s.LogLevel)
	switch level {
	case "debug", "info", "warn", "error":
		s.LogLevel = level
	default:
		s.LogLevel = defaults.LogLevel
	}
}
