// Package main implements the entry point for the code camp API server.
//
// Without a subcommand the server is started. The migrate subcommands
// manage the database schema with the embedded migrations of the configured
// driver.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// newRootCmd builds the command tree. Every command shares the --config flag.
func newRootCmd() *cobra.Command {
	var configPath string

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), configPath)
		},
	}

	rootCmd := &cobra.Command{
		Use:   "codecamp",
		Short: "Code camp REST API",
		Long: `Code camp REST API server.

Configuration is read from config.yaml (or --config), then from
CODECAMP_* environment variables.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE:         serveCmd.RunE,
	}
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")

	rootCmd.AddCommand(serveCmd, newMigrateCmd(&configPath))
	return rootCmd
}
