package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/JoshuaShunk/tik-tok-wrapped/internal/config"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/export"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/logger"
	"github.com/JoshuaShunk/tik-tok-wrapped/internal/store"
)

var version = "dev"

// globals holds the persistent flags shared by every subcommand.
type globals struct {
	user     string
	logLevel string
}

// env is what a subcommand works against: resolved config, logger and an
// open store.
type env struct {
	cfg   *config.Config
	log   zerolog.Logger
	db    *store.DB
	owner string
}

func (g *globals) open() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if g.logLevel != "" {
		cfg.LogLevel = g.logLevel
	}
	if g.user != "" {
		cfg.Username = config.NormalizeUsername(g.user)
	}

	db, err := store.OpenDB(cfg.DBPath)
	if err != nil {
		return nil, err
	}
	return &env{
		cfg:   cfg,
		log:   logger.New(cfg.LogLevel, os.Stderr),
		db:    db,
		owner: cfg.Username,
	}, nil
}

func (e *env) Close() error {
	return e.db.Close()
}

// restore loads the resident export, failing with a hint when there is none.
func (e *env) restore() (*export.Loaded, error) {
	loaded, err := export.Restore(e.db, e.owner, e.log)
	if err != nil {
		return nil, err
	}
	if loaded == nil {
		return nil, errors.New("no export stored (run 'ttw import <file>' first)")
	}
	return loaded, nil
}

// hint adds the remedy for the two caller-visible error kinds.
func hint(err error) string {
	switch {
	case errors.Is(err, export.ErrInputFormat):
		return "the file is not a TikTok JSON export or ZIP archive; check the file and try again"
	case errors.Is(err, store.ErrStorage):
		return "the stored export could not be read; run 'ttw clear' to start fresh"
	}
	return ""
}

func main() {
	g := &globals{}
	rootCmd := &cobra.Command{
		Use:           "ttw",
		Short:         "TikTok Wrapped - explore and summarize a TikTok data export",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.PersistentFlags().StringVar(&g.user, "user", "", "Your TikTok username (marks sent messages)")
	rootCmd.PersistentFlags().StringVar(&g.logLevel, "log-level", "", "Log level (debug, info, warn, error)")

	rootCmd.AddCommand(importCmd(g))
	rootCmd.AddCommand(showCmd(g))
	rootCmd.AddCommand(chatsCmd(g))
	rootCmd.AddCommand(chatCmd(g))
	rootCmd.AddCommand(searchCmd(g))
	rootCmd.AddCommand(wrappedCmd(g))
	rootCmd.AddCommand(clearCmd(g))
	rootCmd.AddCommand(doctorCmd(g))

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		if h := hint(err); h != "" {
			fmt.Fprintln(os.Stderr, "Hint:", h)
		}
		os.Exit(1)
	}
}
