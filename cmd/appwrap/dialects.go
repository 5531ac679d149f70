package main

import (
	"fmt"

	"github.com/spf13/cobra"

	_ "appwrap/internal/db/extractors"

	"appwrap/internal/db"
)

func newDialectsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dialects",
		Short: "List the database dialects compiled in",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			for _, d := range db.RegisteredDialects() {
				fmt.Fprintln(cmd.OutOrStdout(), d)
			}
		},
	}
}
