package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Username string            `toml:"username"`
	DBPath   string            `toml:"db_path"`
	LogLevel string            `toml:"log_level"`
	Cards    map[string]string `toml:"cards"` // caption templates by card name

	path string
}

// env holds the TTW_* overrides; unset variables leave the file values alone.
type env struct {
	Username string `envconfig:"USERNAME"`
	DBPath   string `envconfig:"DB_PATH"`
	LogLevel string `envconfig:"LOG_LEVEL"`
}

func Load() (*Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, err
	}
	return load(home)
}

func load(home string) (*Config, error) {
	dir := filepath.Join(home, ".config", "ttw")
	cfg := &Config{
		DBPath:   filepath.Join(dir, "ttw.db"),
		LogLevel: "info",
		Cards:    map[string]string{},
		path:     filepath.Join(dir, "config.toml"),
	}

	if _, err := os.Stat(cfg.path); err == nil {
		if _, err := toml.DecodeFile(cfg.path, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", cfg.path, err)
		}
	}

	var e env
	if err := envconfig.Process("TTW", &e); err != nil {
		return nil, fmt.Errorf("read environment: %w", err)
	}
	if e.Username != "" {
		cfg.Username = e.Username
	}
	if e.DBPath != "" {
		cfg.DBPath = e.DBPath
	}
	if e.LogLevel != "" {
		cfg.LogLevel = e.LogLevel
	}

	cfg.Username = NormalizeUsername(cfg.Username)
	cfg.DBPath = expandHome(cfg.DBPath, home)
	if cfg.Cards == nil {
		cfg.Cards = map[string]string{}
	}

	return cfg, nil
}

// Path is the config file location, whether or not it exists.
func (c *Config) Path() string {
	return c.path
}

// NormalizeUsername lowercases the owner name used for sent-message matching.
func NormalizeUsername(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

func expandHome(path, home string) string {
	if len(path) > 1 && path[0] == '~' && path[1] == '/' {
		return filepath.Join(home, path[2:])
	}
	return path
}
