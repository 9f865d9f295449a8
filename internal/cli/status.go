package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

var statusOutput string

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the project's environment status",
	Long: `Show whether the project is initialized and whether its instance exists and is running.

Output formats:
  text  (default) Human-readable summary
  json  Machine-readable JSON
  yaml  Machine-readable YAML`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().StringVarP(&statusOutput, "output", "o", "text", "Output format: text, json or yaml")
}

func runStatus(cmd *cobra.Command, args []string) error {
	switch statusOutput {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("unknown output format %q (use text, json or yaml)", statusOutput)
	}

	m, err := newManager(cmd, nil)
	if err != nil {
		return err
	}

	st, err := m.Status(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch statusOutput {
	case "json":
		data, err := json.MarshalIndent(st, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal status: %w", err)
		}
		fmt.Fprintln(out, string(data))
	case "yaml":
		data, err := yaml.Marshal(st)
		if err != nil {
			return fmt.Errorf("marshal status: %w", err)
		}
		fmt.Fprint(out, string(data))
	default:
		st.WriteText(out)
	}
	return nil
}
