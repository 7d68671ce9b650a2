package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func clearCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Delete the stored export and start fresh",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.Close()

			if err := e.db.Clear(); err != nil {
				return err
			}
			e.log.Info().Str("db", e.db.Path()).Msg("stored export cleared")
			fmt.Fprintln(os.Stderr, "Cleared.")
			return nil
		},
	}
}
