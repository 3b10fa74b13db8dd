package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vango-dev/reconcile/internal/config"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "\033[31mError:\033[0m %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "reconcile",
		Short: "Inspect virtual tree reconciliation",
		Long: `reconcile renders YAML tree fixtures through the reconciler into an
in-memory host and reports the host operations each render produced.

Use it to check that a keyed list reorders with the minimum number of
moves, or to see the longest increasing subsequence the reconciler keeps
in place.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to "+config.ConfigFileName+" (default: ./"+config.ConfigFileName+" when present)")

	load := func() (*config.Config, error) {
		return loadConfig(configPath)
	}

	rootCmd.AddCommand(
		diffCmd(load),
		lisCmd(),
		renderCmd(),
		versionCmd(),
	)

	return rootCmd
}

// loadConfig reads path, or reconcile.json in the working directory when
// path is empty and the file exists, or falls back to defaults.
func loadConfig(path string) (*config.Config, error) {
	if path != "" {
		return config.LoadFile(path)
	}
	if config.Exists(".") {
		return config.Load(".")
	}
	return config.New(), nil
}
