// Package summarize asks the generative model for summaries of note text and
// of images.
package summarize

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/dmitrijs2005/notesum/internal/gemini"
	"github.com/dmitrijs2005/notesum/internal/imageload"
	"github.com/dmitrijs2005/notesum/internal/logging"
)

const (
	DefaultMaxInputLength  = 1_000_000
	DefaultMaxOutputTokens = 8192
	DefaultTemperature     = 0.3

	textPrompt = "Please provide a comprehensive summary of the following text, including key points " +
		"and main ideas. Aim for clarity and conciseness, and structure the summary with bullet points " +
		"or short paragraphs:\n\n"
	imagePrompt = "Please provide a concise summary and description of this image. Identify key objects, " +
		"actions, and any text visible. Aim for clarity and conciseness, and structure the summary in " +
		"bullet points or short paragraphs."
)

var (
	ErrEmptyInput     = errors.New("no text to summarize")
	ErrInputTooLong   = errors.New("text is too long to summarize")
	ErrNoImage        = errors.New("no image to summarize")
	ErrNoAPIKey       = gemini.ErrNoAPIKey
	ErrQuotaExceeded  = gemini.ErrQuotaExceeded
	ErrAuthentication = gemini.ErrAuthentication
	ErrNoSummary      = gemini.ErrEmptyResponse
)

type Summarizer interface {
	SummarizeText(ctx context.Context, text string) (string, error)
	SummarizeImage(ctx context.Context, img *imageload.Image) (string, error)
}

// Generator is the model call. *gemini.Client satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, parts []gemini.Part, gen *gemini.GenerationConfig) (string, error)
}

type Config struct {
	APIKey          string
	Model           string
	BaseURL         string
	MaxInputLength  int
	MaxOutputTokens int
	Temperature     float64
	Timeout         time.Duration
}

func (c *Config) defaults() {
	if c.MaxInputLength <= 0 {
		c.MaxInputLength = DefaultMaxInputLength
	}
	if c.MaxOutputTokens <= 0 {
		c.MaxOutputTokens = DefaultMaxOutputTokens
	}
	if c.Temperature < 0 {
		c.Temperature = DefaultTemperature
	}
}

// Service is the Gemini-backed Summarizer. The API key can be replaced at
// runtime.
type Service struct {
	cfg Config
	log logging.Logger

	mu  sync.RWMutex
	gen Generator
}

var _ Summarizer = (*Service)(nil)

// newGenerator builds the model client for a key.
var newGenerator = func(cfg Config) Generator {
	return gemini.NewClient(gemini.Config{
		APIKey:  cfg.APIKey,
		Model:   cfg.Model,
		BaseURL: cfg.BaseURL,
		Timeout: cfg.Timeout,
	})
}

func New(cfg Config, log logging.Logger) *Service {
	cfg.defaults()
	s := &Service{cfg: cfg, log: log}
	if cfg.APIKey != "" {
		s.gen = newGenerator(cfg)
	}
	return s
}

// SetAPIKey replaces the key used for subsequent calls. An empty key
// disables summarization.
func (s *Service) SetAPIKey(key string) {
	key = strings.TrimSpace(key)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg.APIKey = key
	if key == "" {
		s.gen = nil
		return
	}
	s.gen = newGenerator(s.cfg)
}

func (s *Service) HasAPIKey() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen != nil
}

func (s *Service) generator() (Generator, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.gen == nil {
		return nil, ErrNoAPIKey
	}
	return s.gen, nil
}

func (s *Service) genConfig() *gemini.GenerationConfig {
	temp := s.cfg.Temperature
	return &gemini.GenerationConfig{
		MaxOutputTokens: s.cfg.MaxOutputTokens,
		Temperature:     &temp,
	}
}

// SummarizeText validates text and sends it with the summary prompt.
// Length is counted in characters.
func (s *Service) SummarizeText(ctx context.Context, text string) (string, error) {
	if strings.TrimSpace(text) == "" {
		return "", ErrEmptyInput
	}
	if n := utf8.RuneCountInString(text); n > s.cfg.MaxInputLength {
		return "", fmt.Errorf("%w: %d characters (max %d)", ErrInputTooLong, n, s.cfg.MaxInputLength)
	}

	gen, err := s.generator()
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "summarizing text", "chars", utf8.RuneCountInString(text))
	out, err := gen.GenerateContent(ctx, []gemini.Part{gemini.TextPart(textPrompt + text)}, s.genConfig())
	if err != nil {
		s.log.Error(ctx, "text summary failed", "error", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

func (s *Service) SummarizeImage(ctx context.Context, img *imageload.Image) (string, error) {
	if img == nil || len(img.Data) == 0 {
		return "", ErrNoImage
	}

	gen, err := s.generator()
	if err != nil {
		return "", err
	}

	s.log.Info(ctx, "summarizing image", "name", img.Name, "mime", img.MIMEType, "bytes", len(img.Data))
	parts := []gemini.Part{
		gemini.TextPart(imagePrompt),
		gemini.BlobPart(img.MIMEType, img.Data),
	}
	out, err := gen.GenerateContent(ctx, parts, s.genConfig())
	if err != nil {
		s.log.Error(ctx, "image summary failed", "name", img.Name, "error", err)
		return "", err
	}
	return strings.TrimSpace(out), nil
}

// Describe renders err as the text shown in place of a summary. Every
// message either starts with "Error:" or mentions "No summary", so it can
// never be mistaken for a real summary on export.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrQuotaExceeded):
		return "Error: You have exceeded your API quota. Please wait or check your usage limits.\n\n" + err.Error()
	case errors.Is(err, ErrAuthentication):
		return "Error: API key authentication failed. Please verify your Gemini API key.\n\n" + err.Error()
	case errors.Is(err, ErrNoAPIKey):
		return "Error: Gemini API key is not set. Use the apikey command to configure it."
	case errors.Is(err, ErrNoSummary):
		return "No summary was generated. The AI might not have found enough content or encountered an internal issue."
	case errors.Is(err, ErrEmptyInput), errors.Is(err, ErrNoImage):
		return "Error: Please enter a note, upload a document, or load an image to summarize."
	default:
		return "Error: " + err.Error()
	}
}
