package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"appwrap/internal/logger"
)

var (
	// Version information, set at build time
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "appwrap",
		Short: "Snapshot an application's models as JSON lines",
		Long: `appwrap reads a model manifest together with the live database schema and
writes one JSON record per concrete model to <root>/<output_dir>/routes.jsonl.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.AddCommand(newExtractCmd())
	rootCmd.AddCommand(newDialectsCmd())
	rootCmd.AddCommand(newVersionCmd())
	return rootCmd
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := newRootCmd().ExecuteContext(ctx)
	stop()
	if err != nil {
		logger.Error("%v", err)
		logger.Sync()
		os.Exit(1)
	}
	logger.Sync()
}
