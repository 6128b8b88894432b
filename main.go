package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/kastheco/spindle/app"
	"github.com/kastheco/spindle/config"
	sentrypkg "github.com/kastheco/spindle/internal/sentry"
	"github.com/kastheco/spindle/log"
)

var (
	version = "0.1.0"
	rootCmd = &cobra.Command{
		Use:          "spindle",
		Short:        "spindle - Spotify in your terminal.",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := context.Background()

			cfg := config.LoadConfig()
			if err := sentrypkg.Init(version, cfg.IsTelemetryEnabled()); err != nil {
				// Non-fatal: sentry failure should not prevent startup
				_ = err
			}
			defer sentrypkg.Flush()
			defer sentrypkg.RecoverPanic()

			log.Initialize(cfg.IsTelemetryEnabled())
			defer log.Close()

			creds, err := config.CredentialsFromEnv()
			if err != nil {
				return fmt.Errorf("%w\n\nCreate an application at https://developer.spotify.com/dashboard with\nredirect URI http://127.0.0.1:%d/callback, then export SPOTIFY_CLIENT_ID\nand SPOTIFY_CLIENT_SECRET", err, cfg.RedirectPort)
			}

			return app.Run(ctx, cfg, creds)
		},
	}

	debugCmd = &cobra.Command{
		Use:   "debug",
		Short: "Print debug information like config paths",
		RunE: func(cmd *cobra.Command, args []string) error {
			log.Initialize(false)
			defer log.Close()

			cfg := config.LoadConfig()

			configDir, err := config.GetConfigDir()
			if err != nil {
				return fmt.Errorf("failed to get config directory: %w", err)
			}
			configJson, _ := json.MarshalIndent(cfg, "", "  ")

			fmt.Printf("Config: %s\n%s\n", filepath.Join(configDir, config.ConfigFileName), configJson)

			return nil
		},
	}

	versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the version number of spindle",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Printf("spindle version %s\n", version)
			fmt.Printf("https://github.com/kastheco/spindle/releases/tag/v%s\n", version)
		},
	}
)

func init() {
	rootCmd.AddCommand(debugCmd)
	rootCmd.AddCommand(versionCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
