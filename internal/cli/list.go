package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/javanstorm/lenv/internal/config"
	"github.com/javanstorm/lenv/internal/env"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all lenv environments",
	Long:  `List every environment created by this user, across projects. Projects whose record has been removed are marked missing.`,
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func runList(cmd *cobra.Command, args []string) error {
	paths, err := config.GetPaths()
	if err != nil {
		return err
	}

	entries, err := env.NewIndex(paths.IndexFile).List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(entries) == 0 {
		fmt.Fprintln(out, "No lenv environments")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDISTRO\tCREATED\tPROJECT")
	for _, e := range entries {
		project := e.ProjectPath
		if _, err := os.Stat(filepath.Join(e.ProjectPath, config.DirName, env.RecordFileName)); err != nil {
			project += " (missing)"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", e.Name, e.Distro, humanize.Time(e.CreatedAt), project)
	}
	return w.Flush()
}
