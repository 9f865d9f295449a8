package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/javanstorm/lenv/internal/config"
	"github.com/javanstorm/lenv/internal/distro"
	"github.com/javanstorm/lenv/internal/env"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached rootfs archives",
	Long:  `Manage the rootfs archives downloaded by 'lenv init' and shared by all projects.`,
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear [distro]",
	Short: "Clear cached rootfs archives",
	Long: `Clear cached archives for a specific distro or all distros.

Existing environments are not affected; the next 'lenv init' downloads again.

Examples:
  lenv cache clear          # Clear all cached archives
  lenv cache clear ubuntu   # Clear only the Ubuntu archive`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCacheClear,
}

var cacheListCmd = &cobra.Command{
	Use:   "list",
	Short: "List cached rootfs archives",
	Args:  cobra.NoArgs,
	RunE:  runCacheList,
}

func init() {
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheListCmd)
}

func rootfsCache(cmd *cobra.Command) (*env.RootfsCache, error) {
	paths, err := config.GetPaths()
	if err != nil {
		return nil, err
	}
	return env.NewRootfsCache(paths.RootfsDir, nil, cmd.OutOrStdout(), logger), nil
}

func runCacheClear(cmd *cobra.Command, args []string) error {
	var id distro.ID
	if len(args) > 0 {
		parsed, err := distro.ParseID(args[0])
		if err != nil {
			return err
		}
		id = parsed
	}

	cache, err := rootfsCache(cmd)
	if err != nil {
		return err
	}

	removed, err := cache.Clear(id)
	out := cmd.OutOrStdout()
	switch {
	case len(removed) == 0 && id != "":
		fmt.Fprintf(out, "No cache found for %s\n", id)
	case len(removed) == 0:
		fmt.Fprintln(out, "No cached archives to clear")
	default:
		var total int64
		for _, a := range removed {
			total += a.Size
		}
		fmt.Fprintf(out, "Cleared %d archive(s), %s freed\n", len(removed), humanize.Bytes(uint64(total)))
	}
	return err
}

func runCacheList(cmd *cobra.Command, args []string) error {
	cache, err := rootfsCache(cmd)
	if err != nil {
		return err
	}

	archives, err := cache.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(archives) == 0 {
		fmt.Fprintln(out, "No cached archives")
		return nil
	}

	fmt.Fprintln(out, "Cached archives:")
	var total int64
	for _, a := range archives {
		label := string(a.Distro)
		if label == "" {
			label = "unknown"
		}
		fmt.Fprintf(out, "  %s: %s (%s)\n", label, a.Filename, humanize.Bytes(uint64(a.Size)))
		total += a.Size
	}
	fmt.Fprintf(out, "\nTotal: %s in %s\n", humanize.Bytes(uint64(total)), cache.Dir())
	return nil
}
