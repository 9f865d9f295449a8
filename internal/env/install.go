package env

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/javanstorm/lenv/pkg/wsl"
)

// manualInstallHelp is printed when the subsystem is missing.
const manualInstallHelp = `WSL2 is not installed on your system.

Option 1: Automatic Installation (Recommended)
Run this command in PowerShell as Administrator:
  wsl --install --no-distribution

Option 2: Manual Installation
Follow: https://docs.microsoft.com/en-us/windows/wsl/install`

// ensureSubsystem checks that WSL is installed and defaults to version 2,
// offering an elevated install when it is missing.
func (m *Manager) ensureSubsystem(ctx context.Context) error {
	status, err := m.subsystemStatus(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		m.log.Debug("subsystem check failed", zap.Error(err))
		return m.installSubsystem(ctx)
	}

	if !status.WSL2 {
		fmt.Fprintln(m.stdout, "WSL is installed but may be version 1.")
		fmt.Fprintln(m.stdout, "Setting WSL 2 as default...")
		if err := m.driver.SetDefaultVersion(ctx, 2); err != nil {
			m.log.Warn("set default version failed", zap.Error(err))
		}
	}
	return nil
}

// subsystemStatus runs the presence check under the status timeout.
func (m *Manager) subsystemStatus(ctx context.Context) (*wsl.StatusInfo, error) {
	ctx, cancel := withTimeout(ctx, m.settings.StatusTimeout)
	defer cancel()
	return m.driver.Status(ctx)
}

// installSubsystem explains how to install WSL and, if the user agrees,
// launches the elevated installer. Either way init cannot continue.
func (m *Manager) installSubsystem(ctx context.Context) error {
	fmt.Fprintln(m.stdout, manualInstallHelp)
	fmt.Fprintln(m.stdout)

	ok, err := m.prompter.Confirm("Do you want lenv to attempt automatic installation?")
	if err != nil {
		return fmt.Errorf("read answer: %w", err)
	}
	if !ok {
		fmt.Fprintln(m.stdout, "\nPlease install WSL2 and run 'lenv init' again.")
		return ErrSubsystemMissing
	}

	fmt.Fprintln(m.stdout, "\nAttempting to install WSL2...")
	fmt.Fprintln(m.stdout, "Note: This requires Administrator privileges.")

	if err := m.driver.Install(ctx); err != nil {
		fmt.Fprintln(m.stdout, "\nFailed to auto-install. Please install WSL2 manually using PowerShell as admin:")
		fmt.Fprintln(m.stdout, "  wsl --install --no-distribution")
		return fmt.Errorf("%w: %v", ErrSubsystemMissing, err)
	}

	fmt.Fprintln(m.stdout, "\nWSL2 installation initiated.")
	fmt.Fprintln(m.stdout, "You may need to restart your computer.")
	fmt.Fprintln(m.stdout, "After restart, run 'lenv init' again.")
	return ErrInstallPending
}
