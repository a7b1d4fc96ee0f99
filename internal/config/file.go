package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/notesum/internal/flagx"
	"github.com/dmitrijs2005/notesum/internal/timex"
)

// fileConfig is a DTO used only for decoding config files. Pointer fields
// tell "absent" apart from zero values, so a file only overrides what it
// mentions.
type fileConfig struct {
	DatabasePath    *string         `json:"database_path" yaml:"database_path"`
	APIKey          *string         `json:"api_key" yaml:"api_key"`
	Model           *string         `json:"model" yaml:"model"`
	APIBaseURL      *string         `json:"api_base_url" yaml:"api_base_url"`
	MaxOutputTokens *int            `json:"max_output_tokens" yaml:"max_output_tokens"`
	Temperature     *float64        `json:"temperature" yaml:"temperature"`
	MaxInputLength  *int            `json:"max_input_length" yaml:"max_input_length"`
	RequestTimeout  *timex.Duration `json:"request_timeout" yaml:"request_timeout"`
	SpeechTimeout   *timex.Duration `json:"speech_timeout" yaml:"speech_timeout"`
	MaxFileSize     *int64          `json:"max_file_size" yaml:"max_file_size"`
	LogLevel        *string         `json:"log_level" yaml:"log_level"`
	LogFormat       *string         `json:"log_format" yaml:"log_format"`
}

// parseFile overlays cfg with values from the file given by -c / -config.
// Without such a flag it does nothing.
func parseFile(cfg *Config, args []string) error {
	path := flagx.ConfigFilePath(args)
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("decode config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}

func (fc *fileConfig) apply(cfg *Config) {
	setIf(&cfg.DatabasePath, fc.DatabasePath)
	setIf(&cfg.APIKey, fc.APIKey)
	setIf(&cfg.Model, fc.Model)
	setIf(&cfg.APIBaseURL, fc.APIBaseURL)
	setIf(&cfg.MaxOutputTokens, fc.MaxOutputTokens)
	setIf(&cfg.Temperature, fc.Temperature)
	setIf(&cfg.MaxInputLength, fc.MaxInputLength)
	setIf(&cfg.MaxFileSize, fc.MaxFileSize)
	setIf(&cfg.LogLevel, fc.LogLevel)
	setIf(&cfg.LogFormat, fc.LogFormat)
	if fc.RequestTimeout != nil {
		cfg.RequestTimeout = fc.RequestTimeout.Duration
	}
	if fc.SpeechTimeout != nil {
		cfg.SpeechTimeout = fc.SpeechTimeout.Duration
	}
}

func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}
