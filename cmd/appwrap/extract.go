package main

import (
	"github.com/spf13/cobra"

	"appwrap/internal/logger"
	"appwrap/pkg/appwrap"
	"appwrap/pkg/config"
)

type extractOptions struct {
	root     string
	output   string
	cfgPath  string
	driver   string
	dsn      string
	timeout  int
	logLevel string
}

func newExtractCmd() *cobra.Command {
	opts := &extractOptions{}
	cmd := &cobra.Command{
		Use:   "extract",
		Short: "Write the model snapshot",
		Long: `Load the model manifest, read table metadata from the configured database
and replace <root>/<output_dir>/routes.jsonl with one record per model.

Configuration comes from <root>/appwrap.yaml (or --config), then <root>/.env
and APPWRAP_* variables, then flags.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			logger.SetLevel(opts.logLevel)
			cfg, err := opts.config()
			if err != nil {
				return err
			}
			_, err = appwrap.Run(cmd.Context(), opts.root, cfg, cmd.OutOrStdout())
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.root, "root", ".", "application root holding the manifest")
	f.StringVar(&opts.output, "output", "", "output directory relative to root (default \"appwrap\")")
	f.StringVar(&opts.cfgPath, "config", "", "config YAML (default <root>/appwrap.yaml)")
	f.StringVar(&opts.driver, "driver", "", "db driver override (postgres,mysql,sqlite,sqlserver,godror)")
	f.StringVar(&opts.dsn, "dsn", "", "dsn override, used together with --driver")
	f.IntVar(&opts.timeout, "timeout", 0, "db connect timeout seconds")
	f.StringVar(&opts.logLevel, "log-level", "info", "log level (debug, info, warn, error)")
	return cmd
}

// config resolves the configuration; flags win over files and environment.
func (o *extractOptions) config() (config.AppConfig, error) {
	var (
		cfg config.AppConfig
		err error
	)
	if o.cfgPath != "" {
		logger.Info("config file %s", o.cfgPath)
		if cfg, err = config.LoadFile(o.cfgPath); err != nil {
			return cfg, err
		}
		if err = config.LoadEnv(o.root); err != nil {
			return cfg, err
		}
		cfg = config.ApplyEnv(cfg)
	} else if cfg, err = appwrap.Configure(o.root); err != nil {
		return cfg, err
	}

	// allow CLI overrides
	if o.driver != "" && o.dsn != "" {
		cfg.Database = config.DBConfig{Type: o.driver, DSN: o.dsn}
	} else if o.driver != "" || o.dsn != "" {
		logger.Warn("--driver and --dsn must be given together, ignoring")
	}
	if o.output != "" {
		cfg.Models.OutputDir = o.output
	}
	if o.timeout > 0 {
		cfg.Models.Timeout = o.timeout
	}
	return cfg, nil
}
