package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/pixelveil/pixelveil/internal/api"
	"github.com/pixelveil/pixelveil/internal/config"
	"github.com/pixelveil/pixelveil/internal/history"
)

// serveCmd starts the HTTP API server.
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the pixelveil HTTP API.

Configuration comes from an optional yaml file, PIXELVEIL_* environment
variables, and command-line flags, in increasing priority.

Examples:
  pixelveil serve
  pixelveil serve --port 9000 --api-key mysecret
  pixelveil serve --config /etc/pixelveil/config.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.LoadOrDefault(configPath)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Port, _ = cmd.Flags().GetInt("port")
		}
		if cmd.Flags().Changed("api-key") {
			cfg.APIKey, _ = cmd.Flags().GetString("api-key")
		}
		if cmd.Flags().Changed("data-dir") {
			cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
		}

		var hist *history.Log
		if cfg.DataDir != "" {
			if err := os.MkdirAll(cfg.DataDir, 0o755); err != nil {
				return fmt.Errorf("failed to create data dir: %w", err)
			}
			hist, err = history.Open(filepath.Join(cfg.DataDir, "history"))
			if err != nil {
				return err
			}
			defer hist.Close()
		}

		return api.NewServer(cfg, hist).Start()
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("config", "", "Path to a yaml config file")
	serveCmd.Flags().IntP("port", "p", 8000, "Port to listen on")
	serveCmd.Flags().String("api-key", "", "Require this key in the X-API-Key header")
	serveCmd.Flags().String("data-dir", "", "Directory for the operation history database")
}
