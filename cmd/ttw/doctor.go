package main

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/export"
)

func doctorCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "doctor",
		Short: "Self-check: verify config, database and the stored export",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := g.open()
			if err != nil {
				return err
			}
			defer e.Close()

			fmt.Println("=== Config ===")
			checkFile("File", e.cfg.Path())
			owner := e.owner
			if owner == "" {
				owner = "(not set, sent messages cannot be detected)"
			}
			fmt.Printf("  Username:  %s\n", owner)
			fmt.Printf("  Log level: %s\n", e.cfg.LogLevel)
			fmt.Printf("  Caption overrides: %d\n", len(e.cfg.Cards))

			fmt.Println("\n=== Database ===")
			fmt.Printf("  Path: %s\n", e.db.Path())
			if info, err := os.Stat(e.db.Path()); err == nil {
				fmt.Printf("  Size: %s\n", humanize.Bytes(uint64(info.Size())))
			}
			var tables int
			if err := e.db.Raw().QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type = 'table'").Scan(&tables); err != nil {
				fmt.Printf("  Status: ERROR (%v)\n", err)
				return nil
			}
			fmt.Printf("  Status: OK (%d tables)\n", tables)

			fmt.Println("\n=== Stored Export ===")
			loaded, err := export.Restore(e.db, e.owner, e.log)
			if err != nil {
				fmt.Printf("  Status: UNREADABLE (%v)\n", err)
				fmt.Println("  Run 'ttw clear' to start fresh.")
				return nil
			}
			if loaded == nil {
				fmt.Println("  Status: NONE (run 'ttw import <file>' first)")
				return nil
			}
			fmt.Printf("  Imported: %s (%s)\n", loaded.StoredAt.Format("2006-01-02 15:04"), humanize.Time(loaded.StoredAt))
			fmt.Printf("  Size:     %s (%s compressed)\n",
				humanize.Bytes(uint64(loaded.Size)), humanize.Bytes(uint64(loaded.CompressedSize)))

			stats := export.StatsOf(loaded.Model)
			fmt.Println("\n=== Sections ===")
			fmt.Printf("  Profile:  %s\n", loaded.Model.Profile.Name)
			fmt.Printf("  Contacts: %d\n", stats.Contacts)
			fmt.Printf("  Messages: %d (%d sent)\n", stats.Messages, stats.Sent)
			fmt.Printf("  Logins:   %d\n", stats.Logins)
			fmt.Printf("  Orders:   %d\n", stats.Orders)
			if stats.Diagnostics > 0 {
				fmt.Printf("  Diagnostics: %d skipped or defaulted records (see --log-level debug)\n", stats.Diagnostics)
			} else {
				fmt.Println("  Diagnostics: none")
			}
			return nil
		},
	}
}

func checkFile(name, path string) {
	if info, err := os.Stat(path); err != nil {
		fmt.Printf("  %s: %s (NOT FOUND, using defaults)\n", name, path)
	} else if info.IsDir() {
		fmt.Printf("  %s: %s (IS A DIRECTORY)\n", name, path)
	} else {
		fmt.Printf("  %s: %s (OK)\n", name, path)
	}
}
