package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/insights"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/render"
)

func wrappedCmd(g *globals) *cobra.Command {
	var width int

	cmd := &cobra.Command{
		Use:   "wrapped",
		Short: "Show the year-in-review cards for the stored export",
		Long: `Renders summary cards: shopping totals, top purchases, most expensive
products, messages, top friends, busiest login month and profile.
Card captions can be overridden with mustache templates in the [cards]
table of the config file.`,
		Args: cobra.NoArgs,
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

			if width <= 0 && term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}

			cards := insights.Cards(loaded.Model, e.cfg.Cards)
			fmt.Println(render.RenderWrapped(cards, width))
			return nil
		},
	}

	cmd.Flags().IntVar(&width, "width", 0, "Card width (default: fit the terminal)")
	return cmd
}
