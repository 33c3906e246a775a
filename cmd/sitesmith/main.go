package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sitesmith/sitesmith/internal/sitecfg"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	var configPath string

	rootCmd := &cobra.Command{
		Use:   "sitesmith",
		Short: "Render and serve no-code websites built from component trees",
		Long: `Sitesmith stores websites as flat component lists, derives the UI tree on
demand, and renders it twice from the same definitions: an annotated canvas
for the editor and static, hydration-free HTML for visitors.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (YAML)")

	rootCmd.AddCommand(
		serveCmd(&configPath),
		exportCmd(&configPath),
		migrateCmd(&configPath),
		versionCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

// newLogger builds the process logger from config.
func newLogger(cfg *sitecfg.Config) (*zap.Logger, error) {
	var zc zap.Config
	if cfg.Logger.Development {
		zc = zap.NewDevelopmentConfig()
	} else {
		zc = zap.NewProductionConfig()
	}
	level, err := zap.ParseAtomicLevel(cfg.Logger.Level)
	if err != nil {
		return nil, fmt.Errorf("parse log level %q: %w", cfg.Logger.Level, err)
	}
	zc.Level = level
	return zc.Build()
}
