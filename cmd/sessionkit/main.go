// Command sessionkit generates secrets, seals and inspects session cookies and
// runs a demo login flow.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/dmitrymomot/sessionkit/pkg/config"
)

var (
	// Version is set by the build system
	Version = "dev"

	envFiles   []string
	configFile string
)

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "sessionkit",
		Short:         "Encrypted cookie sessions",
		Long:          "Tools for sessionkit: generate secrets, seal and inspect cookies, run a demo login flow.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if len(envFiles) > 0 {
				if err := config.LoadEnv(envFiles...); err != nil {
					return err
				}
			}
			if configFile != "" {
				if err := config.LoadYAML(configFile); err != nil {
					return err
				}
			}
			return nil
		},
	}

	cmd.PersistentFlags().StringSliceVar(&envFiles, "env-file", nil, "load environment from .env files")
	cmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "load environment from a YAML file")

	cmd.AddCommand(
		versionCmd(),
		keygenCmd(),
		sealCmd(),
		inspectCmd(),
		demoCmd(),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			_, err := fmt.Fprintln(cmd.OutOrStdout(), Version)
			return err
		},
	}
}

func execute() error {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := rootCmd().ExecuteContext(ctx); err != nil {
		_, _ = fmt.Fprintln(os.Stderr, "error:", err)
		return err
	}
	return nil
}

func main() {
	if err := execute(); err != nil {
		os.Exit(1)
	}
}
