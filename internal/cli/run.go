package cli

import (
	"strings"

	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run <command...>",
	Short: "Run a command in the project's Linux environment",
	Long: `Run a shell command inside the project's instance from the project directory.

Arguments are joined with spaces and passed to sh -c. lenv exits with the
command's exit code.

Examples:
  lenv run python --version
  lenv run pip install -r requirements.txt
  lenv run 'ls -la | wc -l'`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRun,
}

func init() {
	// Everything after the command name belongs to the command.
	runCmd.Flags().SetInterspersed(false)
}

func runRun(cmd *cobra.Command, args []string) error {
	m, err := newManager(cmd, nil)
	if err != nil {
		return err
	}

	code, err := m.Run(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return err
	}
	if code != 0 {
		return &ExitError{Code: code}
	}
	return nil
}
