package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/render"
)

func showCmd(g *globals) *cobra.Command {
	var asJSON bool
	var limit int

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show the dashboard for the stored export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.Close()

			loaded, err := e.restore()
			if err != nil {
				return err
			}

			if asJSON {
				enc := json.NewEncoder(os.Stdout)
				enc.SetIndent("", "  ")
				return enc.Encode(loaded.Model)
			}
			fmt.Print(render.RenderDashboard(loaded.Model, loaded.StoredAt, limit))
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the canonical model as JSON")
	cmd.Flags().IntVar(&limit, "limit", 10, "Max contacts in the message table (0 = all)")
	return cmd
}
