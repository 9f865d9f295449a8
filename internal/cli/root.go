// Package cli provides the command-line interface for lenv.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/javanstorm/lenv/internal/config"
	"github.com/javanstorm/lenv/internal/version"
)

var (
	verbose    bool
	projectDir string
	logger     = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   "lenv",
	Short: "lenv - project-scoped Linux environments",
	Long: `lenv gives every project its own lightweight Linux instance on WSL2.

Run 'lenv init' in a project directory to create the instance, then
'lenv activate' for a shell or 'lenv run <cmd>' for a single command.
The instance lives until 'lenv destroy'.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// setup loads settings and builds the logger before any command runs.
func setup(cmd *cobra.Command, args []string) error {
	switch cmd.Name() {
	case "version", "completion", "help", "set", "path":
		return nil
	}

	if err := config.Load(); err != nil {
		return err
	}
	settings := config.Global

	issues := config.ValidateSettings(settings)
	if len(issues) > 0 {
		fmt.Fprint(cmd.ErrOrStderr(), config.FormatValidationErrors(issues))
	}
	if config.HasFatal(issues) {
		return fmt.Errorf("invalid settings")
	}
	config.Normalize(settings)

	l, err := newLogger(settings.LogLevel, verbose, cmd.ErrOrStderr())
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	logger = l
	logger.Debug("settings loaded", zap.Any("settings", settings))
	return nil
}

// Execute runs the root command. Cancelling ctx stops the running operation.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.Version = version.String()
	rootCmd.SetVersionTemplate("lenv {{.Version}}\n")

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log host commands and other diagnostics")
	rootCmd.PersistentFlags().StringVarP(&projectDir, "project", "C", "", "Project directory (default: current directory)")

	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(activateCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(destroyCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(cacheCmd)
	rootCmd.AddCommand(configCmd)
	rootCmd.AddCommand(versionCmd)
}
