package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/render"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/search"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/tui"
)

func chatsCmd(g *globals) *cobra.Command {
	var filter string

	cmd := &cobra.Command{
		Use:   "chats",
		Short: "Browse conversations, busiest contact first",
		Long: `Lists every contact with its message count. On a terminal this opens an
interactive browser (Tab switches to message search, Enter copies the
transcript). When piped, prints TSV: contact, messages, sent, last message.`,
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

			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.RunContacts(loaded.Model, e.owner)
			}

			for _, c := range search.Contacts(loaded.Model, filter) {
				last := c.Last
				if last == "" {
					last = "-"
				}
				fmt.Printf("%s\t%d\t%d\t%s%s%s\n", c.Name, c.Messages, c.Sent, sColorDim, last, sColorReset)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&filter, "filter", "", "Only contacts whose name contains this text")
	return cmd
}

func chatCmd(g *globals) *cobra.Command {
	var hit, context int
	var query string

	cmd := &cobra.Command{
		Use:   "chat <contact>",
		Short: "Print one conversation in date order",
		Args:  cobra.MinimumNArgs(1),
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

			contact := parse.ContactFromLabel(strings.Join(args, " "))
			width := 0
			if term.IsTerminal(int(os.Stdout.Fd())) {
				if w, _, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
					width = w
				}
			}
			if hit < 0 {
				context = -1
			}

			out, _, err := render.RenderConversation(loaded.Model, contact, render.Options{
				Owner:    e.owner,
				HitIndex: hit,
				Context:  context,
				Width:    width,
				Query:    query,
			})
			if err != nil {
				return err
			}
			fmt.Print(out)
			return nil
		},
	}

	cmd.Flags().IntVar(&hit, "hit", -1, "Message index to highlight (from search output)")
	cmd.Flags().IntVar(&context, "context", 10, "Messages before/after the hit to show")
	cmd.Flags().StringVar(&query, "query", "", "Search query for keyword highlighting")
	return cmd
}
