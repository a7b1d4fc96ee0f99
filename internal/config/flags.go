package config

import (
	"flag"
	"fmt"
	"io"

	"github.com/dmitrijs2005/notesum/internal/flagx"
)

// parseFlags overlays cfg with the command-line flags it knows about. Other
// flags in args (such as -c) are filtered out first.
func parseFlags(cfg *Config, args []string) error {
	known := flagx.FilterArgs(args, []string{"-d", "-k", "-m", "-l"})

	fs := flag.NewFlagSet("notesum", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the user database")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "Gemini API key")
	fs.StringVar(&cfg.Model, "m", cfg.Model, "Gemini model name")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	if err := fs.Parse(known); err != nil {
		return fmt.Errorf("parse flags: %w", err)
	}
	return nil
}
