package config

import (
	"os"
	"time"

	"github.com/dmitrijs2005/notesum/internal/extract"
	"github.com/dmitrijs2005/notesum/internal/gemini"
	"github.com/dmitrijs2005/notesum/internal/speech"
	"github.com/dmitrijs2005/notesum/internal/summarize"
)

const (
	DefaultDatabasePath = "users.db"

	apiKeyEnv = "GEMINI_API_KEY"
)

// Config holds runtime settings for the notesum CLI.
type Config struct {
	DatabasePath string

	APIKey          string
	Model           string
	APIBaseURL      string
	MaxOutputTokens int
	Temperature     float64
	// MaxInputLength caps the note text sent for summarization, in characters.
	MaxInputLength int
	RequestTimeout time.Duration
	SpeechTimeout  time.Duration

	// MaxFileSize caps uploads handed to the extraction dispatcher, in bytes.
	MaxFileSize int64

	LogLevel  string
	LogFormat string
}

// lookupEnv is a test seam for os.LookupEnv.
var lookupEnv = os.LookupEnv

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = DefaultDatabasePath
	c.Model = gemini.DefaultModel
	c.APIBaseURL = gemini.DefaultBaseURL
	c.MaxOutputTokens = summarize.DefaultMaxOutputTokens
	c.Temperature = summarize.DefaultTemperature
	c.MaxInputLength = summarize.DefaultMaxInputLength
	c.RequestTimeout = gemini.DefaultTimeout
	c.SpeechTimeout = speech.DefaultTimeout
	c.MaxFileSize = extract.DefaultMaxFileSize
	c.LogLevel = "info"
	c.LogFormat = "text"
}

// Load builds a Config from defaults, the optional config file named in args,
// the environment and finally the flags in args. args excludes the program
// name (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()

	if err := parseFile(cfg, args); err != nil {
		return nil, err
	}

	if cfg.APIKey == "" {
		if key, ok := lookupEnv(apiKeyEnv); ok {
			cfg.APIKey = key
		}
	}

	if err := parseFlags(cfg, args); err != nil {
		return nil, err
	}
	return cfg, nil
}
