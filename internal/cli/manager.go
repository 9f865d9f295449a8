package cli

import (
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javanstorm/lenv/internal/config"
	"github.com/javanstorm/lenv/internal/env"
	"github.com/javanstorm/lenv/internal/timing"
	"github.com/javanstorm/lenv/pkg/wsl"
)

// newDriver creates the host driver. Tests replace it with a scripted one.
var newDriver = func(s *config.Settings, log *zap.Logger) wsl.Driver {
	return wsl.NewDriver(wsl.Options{Binary: s.WSLBinary, Logger: log})
}

// newManager creates an environment manager for the selected project wired
// to the command's streams.
func newManager(cmd *cobra.Command, timer *timing.Timer) (*env.Manager, error) {
	settings := config.Current()
	return env.NewManager(env.Config{
		ProjectPath: projectDir,
		Settings:    settings,
		Driver:      newDriver(settings, logger),
		Stdin:       cmd.InOrStdin(),
		Stdout:      cmd.OutOrStdout(),
		Stderr:      cmd.ErrOrStderr(),
		Logger:      logger,
		Timer:       timer,
	})
}
