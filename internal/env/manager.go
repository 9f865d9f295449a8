// Package env manages project-scoped Linux environments. Each project maps to
// one WSL instance, named after the project's absolute path and described by a
// small record under <project>/.lenv.
package env

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/javanstorm/lenv/internal/config"
	"github.com/javanstorm/lenv/internal/distro"
	"github.com/javanstorm/lenv/internal/terminal"
	"github.com/javanstorm/lenv/internal/timing"
	"github.com/javanstorm/lenv/pkg/wsl"
)

// Config holds configuration for the environment manager.
type Config struct {
	// ProjectPath is the project directory (empty = current directory).
	ProjectPath string

	// Paths is the user-level directory layout (nil = rooted at the user's home).
	Paths *config.Paths

	// Settings supplies timeouts and defaults (nil = config.Current()).
	Settings *config.Settings

	// Driver runs wsl (nil = the wsl command-line driver).
	Driver wsl.Driver

	// HTTPClient downloads rootfs archives (nil = http.DefaultClient).
	HTTPClient *http.Client

	// Stdin, Stdout and Stderr are the user's streams (nil = os streams).
	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Logger receives diagnostics (nil = no-op).
	Logger *zap.Logger

	// Arch selects the rootfs architecture (empty = host architecture).
	Arch distro.Arch

	// Timer, when set, records init phase durations.
	Timer *timing.Timer
}

// Manager runs environment lifecycle operations for one project.
type Manager struct {
	projectPath string
	configDir   string
	name        string
	paths       *config.Paths
	settings    *config.Settings
	driver      wsl.Driver
	record      *RecordFile
	index       *Index
	cache       *RootfsCache
	prompter    *terminal.Prompter
	stdout      io.Writer
	stderr      io.Writer
	log         *zap.Logger
	arch        distro.Arch
	timer       *timing.Timer
}

// InitOptions controls distro selection for Init.
type InitOptions struct {
	// Distro is the distribution to use. Empty means the configured default,
	// or the interactive menu when Choose is set.
	Distro string

	// Choose shows the distro menu when Distro is empty.
	Choose bool
}

// NewManager creates a manager for the project in cfg.
func NewManager(cfg Config) (*Manager, error) {
	projectPath := cfg.ProjectPath
	if projectPath == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		projectPath = wd
	}
	projectPath, err := filepath.Abs(projectPath)
	if err != nil {
		return nil, fmt.Errorf("resolve project path: %w", err)
	}

	if cfg.Paths == nil {
		cfg.Paths, err = config.GetPaths()
		if err != nil {
			return nil, fmt.Errorf("determine paths: %w", err)
		}
	}
	if cfg.Settings == nil {
		cfg.Settings = config.Current()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.Driver == nil {
		cfg.Driver = wsl.NewDriver(wsl.Options{
			Binary: cfg.Settings.WSLBinary,
			Logger: cfg.Logger,
		})
	}
	if cfg.Stdin == nil {
		cfg.Stdin = os.Stdin
	}
	if cfg.Stdout == nil {
		cfg.Stdout = os.Stdout
	}
	if cfg.Stderr == nil {
		cfg.Stderr = os.Stderr
	}
	if cfg.Arch == "" {
		cfg.Arch = distro.CurrentArch()
	}

	configDir := filepath.Join(projectPath, config.DirName)
	cache := NewRootfsCache(cfg.Paths.RootfsDir, cfg.HTTPClient, cfg.Stdout, cfg.Logger)
	cache.Timeout = cfg.Settings.DownloadTimeout

	return &Manager{
		projectPath: projectPath,
		configDir:   configDir,
		name:        InstanceName(projectPath),
		paths:       cfg.Paths,
		settings:    cfg.Settings,
		driver:      cfg.Driver,
		record:      NewRecordFile(configDir),
		index:       NewIndex(cfg.Paths.IndexFile),
		cache:       cache,
		prompter:    terminal.NewPrompter(cfg.Stdin, cfg.Stdout),
		stdout:      cfg.Stdout,
		stderr:      cfg.Stderr,
		log:         cfg.Logger.With(zap.String("project", projectPath)),
		arch:        cfg.Arch,
		timer:       cfg.Timer,
	}, nil
}

// ProjectPath returns the absolute project path.
func (m *Manager) ProjectPath() string {
	return m.projectPath
}

// InstanceName returns the instance name derived from the project path.
func (m *Manager) InstanceName() string {
	return m.name
}

// Init creates and provisions the project's instance and writes its record.
func (m *Manager) Init(ctx context.Context, opts InitOptions) error {
	if err := os.MkdirAll(m.configDir, 0755); err != nil {
		return fmt.Errorf("create %s: %w", m.configDir, err)
	}

	provider, err := m.resolveDistro(opts)
	if err != nil {
		return err
	}
	m.log.Debug("init", zap.String("instance", m.name), zap.String("distro", string(provider.ID())))

	if err := m.ensureSubsystem(ctx); err != nil {
		return err
	}
	m.mark("subsystem")

	if err := m.paths.EnsureDirectories(); err != nil {
		return fmt.Errorf("create lenv home: %w", err)
	}
	archive, err := m.cache.Ensure(ctx, provider, m.arch)
	if err != nil {
		return err
	}
	m.mark("rootfs")

	installDir := m.paths.InstanceDir(m.name)
	if err := os.MkdirAll(installDir, 0755); err != nil {
		return fmt.Errorf("create install dir: %w", err)
	}

	fmt.Fprintf(m.stdout, "Creating WSL instance '%s'...\n", m.name)
	if err := m.driver.Import(ctx, m.name, installDir, archive); err != nil {
		if !errors.Is(err, wsl.ErrAlreadyExists) {
			return fmt.Errorf("create WSL instance: %w", err)
		}
		fmt.Fprintf(m.stdout, "Instance '%s' already exists\n", m.name)
	}
	m.mark("import")

	if err := m.provision(ctx, provider); err != nil {
		return err
	}
	fmt.Fprintln(m.stdout, "WSL instance created successfully")
	m.mark("provision")

	rec := &Record{
		InstanceName: m.name,
		Distro:       string(provider.ID()),
		CreatedAt:    time.Now().UTC(),
	}
	if err := m.record.Save(rec); err != nil {
		return err
	}

	entry := IndexEntry{
		Name:        rec.InstanceName,
		ProjectPath: m.projectPath,
		Distro:      rec.Distro,
		CreatedAt:   rec.CreatedAt,
	}
	if err := m.index.Add(entry); err != nil {
		m.log.Warn("update instance index", zap.Error(err))
	}
	m.mark("record")

	fmt.Fprintf(m.stdout, "lenv instance initialized: %s\n", m.name)
	fmt.Fprintln(m.stdout, "\nNext steps:")
	fmt.Fprintln(m.stdout, "  lenv activate    # Enter Linux environment")
	fmt.Fprintln(m.stdout, "  lenv run <cmd>   # Run a command inside it")
	return nil
}

// resolveDistro picks the provider from the options, the menu or the settings.
func (m *Manager) resolveDistro(opts InitOptions) (distro.Provider, error) {
	name := opts.Distro
	if name == "" && opts.Choose {
		return m.chooseDistro()
	}
	if name == "" {
		name = m.settings.DefaultDistro
	}
	if name == "" {
		return distro.GetDefault()
	}

	id, err := distro.ParseID(name)
	if err != nil {
		return nil, err
	}
	return distro.Get(id)
}

// chooseDistro shows the numbered distro menu and reads the user's choice.
func (m *Manager) chooseDistro() (distro.Provider, error) {
	providers := distro.ListProviders()

	fmt.Fprintln(m.stdout, "\nChoose your Linux distribution:")
	for i, p := range providers {
		label := fmt.Sprintf("%s %s", p.Name(), p.Version())
		if p.ID() == distro.DefaultID() {
			label += " (Recommended)"
		}
		fmt.Fprintf(m.stdout, "\n%d. %s\n", i+1, label)
		for _, h := range p.Highlights() {
			fmt.Fprintf(m.stdout, "   - %s\n", h)
		}
	}

	choice, err := m.prompter.Choose(fmt.Sprintf("\nEnter your choice (1-%d): ", len(providers)), len(providers))
	if err != nil {
		return nil, fmt.Errorf("choose distro: %w", err)
	}
	return providers[choice], nil
}

// provision runs the distro's setup commands. A failing command is reported
// and skipped; only cancellation stops the sequence.
func (m *Manager) provision(ctx context.Context, provider distro.Provider) error {
	fmt.Fprintln(m.stdout, "Installing Python and essential tools...")

	for _, cmd := range provider.Provisioning() {
		res, err := m.driver.Exec(ctx, m.name, "", cmd)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			fmt.Fprintf(m.stdout, "  Warning: Command failed: %s\n", cmd)
			fmt.Fprintf(m.stdout, "   %v\n", err)
			continue
		}
		if !res.Success() {
			fmt.Fprintf(m.stdout, "  Warning: Command failed: %s\n", cmd)
			fmt.Fprintf(m.stdout, "   %s\n", res.Stderr)
		}
	}

	fmt.Fprintln(m.stdout, "Configuration complete")
	return nil
}

// Activate opens an interactive shell in the instance, starting in the
// project directory, and blocks until it exits.
func (m *Manager) Activate(ctx context.Context) error {
	rec, err := m.loadRecord()
	if errors.Is(err, ErrNotInitialized) {
		fmt.Fprintln(m.stdout, "No lenv environment found. Run 'lenv init' first.")
		return nil
	}
	if err != nil {
		return err
	}

	fmt.Fprintf(m.stdout, "Entering Linux environment '%s'...\n", rec.InstanceName)
	fmt.Fprintln(m.stdout, "Type 'exit' to return to Windows")

	code, err := m.driver.Shell(ctx, rec.InstanceName, GuestPath(m.projectPath), m.settings.Shell)
	if err != nil {
		return err
	}
	m.log.Debug("shell exited", zap.Int("exit", code))

	fmt.Fprintln(m.stdout, "Exited Linux environment")
	return nil
}

// Run executes command inside the instance from the project directory,
// copies its output to the manager's streams and returns its exit code.
// A non-zero exit code is not an error.
func (m *Manager) Run(ctx context.Context, command string) (int, error) {
	rec, err := m.loadRecord()
	if err != nil {
		return 1, err
	}

	res, err := m.driver.Exec(ctx, rec.InstanceName, GuestPath(m.projectPath), command)
	if err != nil {
		return 1, err
	}

	io.WriteString(m.stdout, res.Stdout)
	if res.Stderr != "" {
		io.WriteString(m.stderr, res.Stderr)
	}
	return res.ExitCode, nil
}

// Destroy stops and unregisters the instance and removes the project's
// record. Without a record it does nothing, so running it twice is safe.
func (m *Manager) Destroy(ctx context.Context) error {
	if !m.record.Exists() {
		fmt.Fprintln(m.stdout, "No lenv environment found")
		return nil
	}

	name := m.name
	rec, err := m.record.Load()
	if err != nil {
		fmt.Fprintf(m.stderr, "Warning: %v; using instance name %s\n", err, name)
	} else if rec.InstanceName != "" {
		name = rec.InstanceName
	}

	// Host failures are ignored: the instance may already be stopped or gone.
	tctx, cancel := withTimeout(ctx, m.settings.TerminateTimeout)
	if err := m.driver.Terminate(tctx, name); err != nil {
		m.log.Debug("terminate failed", zap.String("instance", name), zap.Error(err))
	}
	cancel()

	if err := sleep(ctx, m.settings.DestroyGrace); err != nil {
		return err
	}

	uctx, cancel := withTimeout(ctx, m.settings.UnregisterTimeout)
	if err := m.driver.Unregister(uctx, name); err != nil {
		m.log.Debug("unregister failed", zap.String("instance", name), zap.Error(err))
	}
	cancel()

	if err := os.RemoveAll(m.configDir); err != nil {
		return fmt.Errorf("remove %s: %w", m.configDir, err)
	}
	if err := os.RemoveAll(m.paths.InstanceDir(name)); err != nil {
		m.log.Warn("remove install dir", zap.Error(err))
	}
	if _, err := m.index.Remove(name); err != nil {
		m.log.Warn("update instance index", zap.Error(err))
	}

	fmt.Fprintf(m.stdout, "Destroyed environment: %s\n", name)
	return nil
}

// loadRecord returns the project's record or ErrNotInitialized.
func (m *Manager) loadRecord() (*Record, error) {
	if !m.record.Exists() {
		return nil, ErrNotInitialized
	}
	rec, err := m.record.Load()
	if err != nil {
		return nil, err
	}
	if rec.InstanceName == "" {
		rec.InstanceName = m.name
	}
	return rec, nil
}

func (m *Manager) mark(phase string) {
	if m.timer != nil {
		m.timer.Mark(phase)
	}
}

// withTimeout bounds ctx by d; d <= 0 means no extra bound.
func withTimeout(ctx context.Context, d time.Duration) (context.Context, context.CancelFunc) {
	if d <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, d)
}

// sleep waits for d or until ctx is done.
func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
