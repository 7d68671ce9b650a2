package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/export"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/parse"
)

func importCmd(g *globals) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "Import a TikTok data export (JSON or ZIP), replacing the stored one",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := export.ReadFile(args[0])
			if err != nil {
				return err
			}

			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.Close()

			preview := parse.Normalize(raw, e.owner)
			fmt.Fprintf(os.Stderr, "Profile found:\n")
			fmt.Fprintf(os.Stderr, "  Name:       %s\n", preview.Profile.Name)
			fmt.Fprintf(os.Stderr, "  Birth date: %s\n", preview.Profile.BirthDate)
			fmt.Fprintf(os.Stderr, "  %s\n", export.StatsOf(preview))

			if !yes {
				if !term.IsTerminal(int(os.Stdin.Fd())) {
					return fmt.Errorf("refusing to replace the stored export without confirmation (pass --yes)")
				}
				ok, err := confirm(os.Stdin, os.Stderr, "Import this export?")
				if err != nil {
					return err
				}
				if !ok {
					fmt.Fprintln(os.Stderr, "Cancelled.")
					return nil
				}
			}

			m, err := export.Import(e.db, raw, e.owner, e.log)
			if err != nil {
				return err
			}
			fmt.Fprintf(os.Stderr, "Imported. %s\n", export.StatsOf(m))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")
	return cmd
}

// confirm asks a yes/no question; anything but y/yes is a no.
func confirm(in io.Reader, out io.Writer, question string) (bool, error) {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("read answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true, nil
	}
	return false, nil
}
