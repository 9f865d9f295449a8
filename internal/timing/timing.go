// Package timing records how long each phase of an operation takes.
package timing

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"
)

// EnvVar enables phase timing reports when set to 1 or true.
const EnvVar = "LENV_TIMING"

// Enabled reports whether timing was requested through the environment.
func Enabled() bool {
	v := strings.ToLower(os.Getenv(EnvVar))
	return v == "1" || v == "true"
}

// Timer tracks durations of named phases.
type Timer struct {
	title  string
	start  time.Time
	last   time.Time
	phases []Phase
}

// Phase is a named span of a timed operation.
type Phase struct {
	Name     string
	Duration time.Duration
}

// New creates a Timer starting now. The title heads the report.
func New(title string) *Timer {
	now := time.Now()
	return &Timer{title: title, start: now, last: now}
}

// Mark ends the current phase. Its duration runs from the previous mark, or
// from the start for the first one.
func (t *Timer) Mark(name string) {
	now := time.Now()
	t.phases = append(t.phases, Phase{Name: name, Duration: now.Sub(t.last)})
	t.last = now
}

// Total returns the time elapsed since the timer was created.
func (t *Timer) Total() time.Duration {
	return time.Since(t.start)
}

// Phases returns the recorded phases in order.
func (t *Timer) Phases() []Phase {
	return t.phases
}

// Report writes a phase table to w.
func (t *Timer) Report(w io.Writer) {
	header := fmt.Sprintf("=== %s ===", t.title)
	fmt.Fprintln(w)
	fmt.Fprintln(w, header)
	for _, p := range t.phases {
		fmt.Fprintf(w, "  %-20s %s\n", p.Name+":", formatDuration(p.Duration))
	}
	fmt.Fprintf(w, "  %-20s %s\n", "TOTAL:", formatDuration(t.Total()))
	fmt.Fprintln(w, strings.Repeat("=", len(header)))
}

func formatDuration(d time.Duration) string {
	switch {
	case d < time.Millisecond:
		return fmt.Sprintf("%dµs", d.Microseconds())
	case d < time.Second:
		return fmt.Sprintf("%dms", d.Milliseconds())
	default:
		return fmt.Sprintf("%.2fs", d.Seconds())
	}
}
