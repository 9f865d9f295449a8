package cli

import (
	"github.com/spf13/cobra"

	"github.com/javanstorm/lenv/internal/terminal"
)

var activateCmd = &cobra.Command{
	Use:   "activate",
	Short: "Enter the project's Linux environment",
	Long:  `Open an interactive shell inside the project's instance, starting in the project directory. Type 'exit' to return.`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd, nil)
		if err != nil {
			return err
		}
		if !terminal.IsTTY() {
			logger.Warn("stdin is not a terminal, the shell will read commands from it")
		}
		return m.Activate(cmd.Context())
	},
}
