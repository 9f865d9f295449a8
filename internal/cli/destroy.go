package cli

import "github.com/spf13/cobra"

var destroyCmd = &cobra.Command{
	Use:   "destroy",
	Short: "Remove the project's Linux environment",
	Long: `Stop and unregister the project's instance and delete its files.

Everything installed inside the instance is lost. Running destroy on a
project without an environment does nothing.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		m, err := newManager(cmd, nil)
		if err != nil {
			return err
		}
		return m.Destroy(cmd.Context())
	},
}
