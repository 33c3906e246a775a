package main

import (
	"context"
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/spf13/cobra"

	"github.com/sitesmith/sitesmith/internal/export"
	"github.com/sitesmith/sitesmith/internal/materialize"
	"github.com/sitesmith/sitesmith/internal/registry"
	"github.com/sitesmith/sitesmith/internal/sitecfg"
)

func exportCmd(configPath *string) *cobra.Command {
	var (
		outDir string
		toS3   bool
	)

	cmd := &cobra.Command{
		Use:   "export <website-id>",
		Short: "Export a published website as static HTML",
		Long: `Export a published website as static HTML.

Writes one .html file per published page, named after the page path
(the home page becomes index.html). The default destination is a local
directory; --s3 uploads to the configured bucket instead.

Examples:
  sitesmith export 7c5e... --out dist/acme
  sitesmith export 7c5e... --s3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runExport(cmd.Context(), *configPath, args[0], outDir, toS3)
		},
	}

	cmd.Flags().StringVarP(&outDir, "out", "o", "", "Output directory (overrides config)")
	cmd.Flags().BoolVar(&toS3, "s3", false, "Upload to the configured S3 bucket")

	return cmd
}

func runExport(ctx context.Context, configPath, websiteID, outDir string, toS3 bool) error {
	cfg, err := sitecfg.Load(configPath)
	if err != nil {
		return err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return err
	}
	defer log.Sync() //nolint:errcheck

	st, closeStore, err := openStore(cfg, log)
	if err != nil {
		return err
	}
	defer closeStore()

	var up export.Uploader
	if toS3 {
		if cfg.Export.S3Bucket == "" {
			return fmt.Errorf("--s3 requires export.s3_bucket to be configured")
		}
		awsCfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(cfg.Export.S3Region))
		if err != nil {
			return fmt.Errorf("load aws config: %w", err)
		}
		up = export.NewS3Uploader(s3.NewFromConfig(awsCfg), cfg.Export.S3Bucket, cfg.Export.S3Prefix)
	} else {
		dir := outDir
		if dir == "" {
			dir = cfg.Export.Dir
		}
		up = export.DirUploader{Root: dir}
	}

	mat := materialize.New(registry.New(), log)
	exp := export.New(st, mat, up, log)

	n, err := exp.ExportWebsite(ctx, websiteID)
	if err != nil {
		return err
	}
	fmt.Printf("Exported %d page(s)\n", n)
	return nil
}
