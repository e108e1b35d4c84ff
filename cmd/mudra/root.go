package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/lokesh7385/mudra/internal/config"
	"github.com/lokesh7385/mudra/internal/logging"
)

var rootCmd = &cobra.Command{
	Use:   "mudra",
	Short: "Mudra turns hand gestures into desktop actions",
	Long: `Mudra watches the webcam, classifies hand gestures and runs the bound
actions: media play/pause, volume, cursor movement, clicks, zoom and tab close.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("config", config.DefaultPath(), "Path to the YAML config file")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error (overrides config)")
	rootCmd.PersistentFlags().String("data-dir", "", "Directory for the database and plugins (overrides config)")
}

// loadConfig reads the config file and applies persistent flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, *slog.Logger, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path)
	if err != nil {
		return cfg, nil, err
	}

	if dir, _ := cmd.Flags().GetString("data-dir"); dir != "" {
		// The plugin dir follows the data dir unless it was set explicitly.
		if cfg.Plugins.Dir == filepath.Join(cfg.DataDir, "plugins") {
			cfg.Plugins.Dir = filepath.Join(dir, "plugins")
		}
		cfg.DataDir = dir
	}
	if level, _ := cmd.Flags().GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if err := cfg.Validate(); err != nil {
		return cfg, nil, err
	}

	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return cfg, nil, err
	}
	log := logging.New(level, cfg.Log.Format)
	slog.SetDefault(log)

	return cfg, log, nil
}
