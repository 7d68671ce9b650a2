package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/insights"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/search"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/tui"
)

const (
	sColorReset   = "\033[0m"
	sColorBoldRed = "\033[1;31m"
	sColorMagenta = "\033[1;35m"
	sColorCyan    = "\033[1;36m"
	sColorDim     = "\033[2m"
)

func colorizeSender(sender string, fromOwner bool) string {
	if fromOwner {
		return sColorMagenta + sender + sColorReset
	}
	return sColorCyan + sender + sColorReset
}

func colorizeSnippet(snippet string) string {
	snippet = strings.ReplaceAll(snippet, ">>>", sColorBoldRed)
	snippet = strings.ReplaceAll(snippet, "<<<", sColorReset)
	return snippet
}

func searchCmd(g *globals) *cobra.Command {
	var contact, sender, since string
	var limit int

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search message text across all conversations",
		Long: `Case-insensitive substring search over every message, newest first.
Output is TSV for fzf integration:
  contact, index, date, sender, snippet

Example:
  ttw search pizza | fzf --ansi --delimiter='\t' --with-nth=3.. \
    --preview 'ttw chat {1} --hit {2} --context 5'`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := search.Options{
				Contact: contact,
				Sender:  sender,
				Limit:   limit,
			}
			if since != "" {
				t, ok := insights.ParseDate(since, time.Now())
				if !ok {
					return fmt.Errorf("cannot understand --since %q", since)
				}
				opts.Since = t
			}

			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.Close()

			loaded, err := e.restore()
			if err != nil {
				return err
			}

			query := strings.Join(args, " ")
			if term.IsTerminal(int(os.Stdout.Fd())) {
				return tui.RunSearch(loaded.Model, e.owner, query, opts)
			}

			opts.Query = query
			results, err := search.Search(loaded.Model, e.owner, opts)
			if err != nil {
				return err
			}
			if len(results) == 0 {
				fmt.Fprintln(os.Stderr, "No results found.")
				return nil
			}

			for _, r := range results {
				snippet := strings.NewReplacer("\t", " ", "\n", " ").Replace(r.Snippet)
				// first two fields stay plain for fzf {1} {2}
				fmt.Printf("%s\t%d\t%s%s%s\t%s\t%s\n",
					r.Contact,
					r.Index,
					sColorDim, r.Date, sColorReset,
					colorizeSender(r.Sender, r.FromOwner),
					colorizeSnippet(snippet),
				)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&contact, "contact", "", "Only search this contact's conversation")
	cmd.Flags().StringVar(&sender, "sender", "", "Only messages from this sender")
	cmd.Flags().StringVar(&since, "since", "", `Only messages on or after this date ("2024-01-01", "2 weeks ago")`)
	cmd.Flags().IntVar(&limit, "limit", 100, "Max results")
	return cmd
}
