package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith/internal/sitecfg"
	"github.com/sitesmith/sitesmith/internal/store/postgres"
)

func migrateCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations",
		Long: `Apply pending database migrations.

Requires a configured database URL (database.url or SITESMITH_DATABASE_URL).
The migration set is embedded in the binary.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := sitecfg.Load(*configPath)
			if err != nil {
				return err
			}
			if cfg.Database.URL == "" {
				return fmt.Errorf("migrate requires a database URL")
			}
			log, err := newLogger(cfg)
			if err != nil {
				return err
			}
			defer log.Sync() //nolint:errcheck

			pg, err := postgres.Open(cfg.Database.URL, log)
			if err != nil {
				return err
			}
			defer pg.Close()

			return pg.Migrate()
		},
	}
}
