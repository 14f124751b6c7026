package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/lieuweberg/bungie-go"
	"github.com/lieuweberg/bungie-go/config"
	"github.com/lieuweberg/bungie-go/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Shared global variables
var (
	log    *zap.Logger
	client *bungie.Client
	locale string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if log != nil {
		log.Sync()
	}
	if err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var (
		configFile string
		debug      bool
	)

	rootCmd := &cobra.Command{
		Use:   "destinyctl",
		Short: "Query the Bungie.net Platform from the command line",
		Long: `destinyctl calls Bungie.net Platform endpoints and prints the decoded envelope.
The API key and other settings come from --config and BUNGIE_* environment variables.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			log, err = logger.New(debug)
			if err != nil {
				return fmt.Errorf("failed to create logger: %w", err)
			}

			cfg, err := config.Load(configFile)
			if err != nil {
				return fmt.Errorf("failed to load config: %w", err)
			}
			if cfg.AppName == bungie.DefaultConfig().AppName {
				cfg.AppName = "destinyctl"
				cfg.AppVersion = version
			}

			client, err = bungie.NewClient(cfg, bungie.WithLogger(log))
			if err != nil {
				return fmt.Errorf("failed to create client: %w", err)
			}
			return nil
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFile, "config", "c", "", "yaml config file")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "log every platform call")
	rootCmd.PersistentFlags().StringVarP(&locale, "locale", "l", "en", "locale of manifest content")

	rootCmd.AddCommand(
		manifestCmd(),
		definitionCmd(),
		worlddbCmd(),
		versionCmd(),
	)
	return rootCmd
}

// versionCmd shows version information
func versionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(cmd *cobra.Command, args []string) {
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "destinyctl %s\n", version)
			fmt.Fprintf(out, "  Commit:     %s\n", commit)
			fmt.Fprintf(out, "  Build Date: %s\n", buildDate)
		},
	}
	// needs neither config nor client
	cmd.PersistentPreRun = func(cmd *cobra.Command, args []string) {}
	return cmd
}
