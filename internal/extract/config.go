package extract

import "github.com/dmitrijs2005/notesum/internal/logging"

const DefaultMaxFileSize int64 = 100 << 20

type Config struct {
	// MaxFileSize rejects larger inputs before any parser runs. Zero means
	// DefaultMaxFileSize.
	MaxFileSize int64
	Logger      logging.Logger
}

func (c *Config) defaults() {
	if c.MaxFileSize <= 0 {
		c.MaxFileSize = DefaultMaxFileSize
	}
	if c.Logger == nil {
		c.Logger = logging.Discard()
	}
}
