// Command token-generator mints an operator bearer token signed with the
// configured secret, for use against the mutating camp routes.
package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/garibaycarlos/core-code-camp/internal/config"
	"github.com/garibaycarlos/core-code-camp/internal/service/auth"
)

func main() {
	if err := newCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating token: %v\n", err)
		os.Exit(1)
	}
}

func newCmd() *cobra.Command {
	var configPath, subject string
	cmd := &cobra.Command{
		Use:           "token-generator",
		Short:         "Print an operator bearer token",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.Context(), configPath, subject, cmd.OutOrStdout())
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to the YAML configuration file")
	cmd.Flags().StringVar(&subject, "subject", "operator", "subject recorded in the token")
	return cmd
}

func run(ctx context.Context, configPath, subject string, out io.Writer) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	tokens := auth.NewJWTService(func() config.AuthConfig { return cfg.Auth })
	token, err := tokens.GenerateToken(ctx, subject)
	if err != nil {
		return fmt.Errorf("subject %q: %w", subject, err)
	}

	fmt.Fprintln(out, token)
	return nil
}
