// Package appwrap writes a JSON-lines snapshot of an application's models.
//
// A model root holds an optional appwrap.yaml, an optional .env and the model
// manifest (models.yaml by default). Extract reads them, connects to the
// configured database for table metadata and writes
// <root>/<output_dir>/routes.jsonl.
package appwrap

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	_ "appwrap/internal/db/extractors"

	"appwrap/internal/catalog"
	"appwrap/internal/extract"
	"appwrap/pkg/config"
)

// Extract runs a full extraction for the model root and returns the number of
// models written. An empty outputDir uses the configured directory, "appwrap"
// by default.
func Extract(ctx context.Context, root, outputDir string) (int, error) {
	cfg, err := Configure(root)
	if err != nil {
		return 0, err
	}
	if outputDir != "" {
		cfg.Models.OutputDir = outputDir
	}
	return ExtractWith(ctx, root, cfg)
}

// Configure loads the configuration of a model root: appwrap.yaml, then .env,
// then APPWRAP_* overrides.
func Configure(root string) (config.AppConfig, error) {
	cfg, err := config.LoadRoot(root)
	if err != nil {
		return cfg, err
	}
	if err := config.LoadEnv(root); err != nil {
		return cfg, fmt.Errorf("load .env: %w", err)
	}
	return config.ApplyEnv(cfg), nil
}

// ExtractWith runs a full extraction with an explicit configuration.
func ExtractWith(ctx context.Context, root string, cfg config.AppConfig) (int, error) {
	return Run(ctx, root, cfg, os.Stdout)
}

// Run is ExtractWith with the summary line written to out.
func Run(ctx context.Context, root string, cfg config.AppConfig, out io.Writer) (int, error) {
	cfg = cfg.WithDefaults()
	// SQLite files are relative to the model root
	if config.NormalizeDriver(cfg.Database.Type) == "sqlite" && cfg.Database.DSN == "" &&
		cfg.Database.DatabaseName != "" && !filepath.IsAbs(cfg.Database.DatabaseName) {
		cfg.Database.DatabaseName = filepath.Join(root, cfg.Database.DatabaseName)
	}
	driver, dsn, err := config.BuildDriverAndDSN(cfg.Database)
	if err != nil {
		return 0, err
	}

	manifest := cfg.Models.Manifest
	if !filepath.IsAbs(manifest) {
		manifest = filepath.Join(root, manifest)
	}
	registry := catalog.New(manifest, driver, dsn, cfg.Models.Timeout)
	ex := extract.NewExtractor(root, cfg.Models.OutputDir, registry)
	ex.SetOutput(out)
	return ex.Extract(ctx)
}
