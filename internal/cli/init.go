package cli

import (
	"github.com/spf13/cobra"

	"github.com/javanstorm/lenv/internal/env"
	"github.com/javanstorm/lenv/internal/timing"
)

var (
	initDistro string
	initChoose bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the project's Linux environment",
	Long: `Create a WSL2 instance for the current project and install Python into it.

If WSL2 is missing, lenv offers to install it (administrator rights and a
restart may be required). The rootfs archive is downloaded once and cached
in ~/.lenv/rootfs.

Examples:
  lenv init                 # Default distribution (alpine)
  lenv init --distro ubuntu
  lenv init --choose        # Pick from a menu`,
	Args: cobra.NoArgs,
	RunE: runInit,
}

func init() {
	initCmd.Flags().StringVar(&initDistro, "distro", "", "Linux distribution: alpine or ubuntu (default from settings)")
	initCmd.Flags().BoolVar(&initChoose, "choose", false, "Choose the distribution from a menu")
}

func runInit(cmd *cobra.Command, args []string) error {
	var timer *timing.Timer
	if timing.Enabled() {
		timer = timing.New("Init Timing")
	}

	m, err := newManager(cmd, timer)
	if err != nil {
		return err
	}

	err = m.Init(cmd.Context(), env.InitOptions{Distro: initDistro, Choose: initChoose})
	if timer != nil {
		timer.Report(cmd.ErrOrStderr())
	}
	return err
}
