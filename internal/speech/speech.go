// Package speech turns recorded audio into note text.
package speech

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/dmitrijs2005/notesum/internal/gemini"
	"github.com/dmitrijs2005/notesum/internal/logging"
)

const DefaultTimeout = 15 * time.Second

var (
	ErrNoSpeech          = errors.New("no speech detected")
	ErrUnrecognized      = errors.New("could not understand audio")
	ErrService           = errors.New("speech recognition service error")
	ErrUnsupportedFormat = errors.New("unsupported audio format")
)

type Recognizer interface {
	Recognize(ctx context.Context, audioPath string) (string, error)
}

// Generator is the model call. *gemini.Client satisfies it.
type Generator interface {
	GenerateContent(ctx context.Context, parts []gemini.Part, gen *gemini.GenerationConfig) (string, error)
}

// Markers the model is told to answer with instead of a transcript.
const (
	markerNoSpeech     = "NO_SPEECH"
	markerUnrecognized = "UNRECOGNIZED"
)

const transcribePrompt = "Transcribe the speech in this audio recording verbatim. " +
	"Reply with the transcript only. If the recording contains no speech, reply with exactly " +
	markerNoSpeech + ". If there is speech but it cannot be understood, reply with exactly " +
	markerUnrecognized + "."

var audioTypes = map[string]string{
	".wav":  "audio/wav",
	".mp3":  "audio/mp3",
	".flac": "audio/flac",
	".ogg":  "audio/ogg",
	".aac":  "audio/aac",
	".aiff": "audio/aiff",
}

// SupportedFormats lists the accepted audio extensions.
func SupportedFormats() []string {
	return []string{"wav", "mp3", "flac", "ogg", "aac", "aiff"}
}

// GeminiRecognizer transcribes audio files with a Gemini model.
type GeminiRecognizer struct {
	gen     Generator
	timeout time.Duration
	log     logging.Logger
}

var _ Recognizer = (*GeminiRecognizer)(nil)

func NewGeminiRecognizer(gen Generator, timeout time.Duration, log logging.Logger) *GeminiRecognizer {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &GeminiRecognizer{gen: gen, timeout: timeout, log: log}
}

func (r *GeminiRecognizer) Recognize(ctx context.Context, audioPath string) (string, error) {
	mime, ok := audioTypes[strings.ToLower(filepath.Ext(audioPath))]
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(audioPath))
	}

	data, err := os.ReadFile(audioPath)
	if err != nil {
		return "", err
	}
	if len(data) == 0 {
		return "", ErrNoSpeech
	}

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	r.log.Info(ctx, "transcribing audio", "file", filepath.Base(audioPath), "bytes", len(data))
	text, err := r.gen.GenerateContent(ctx,
		[]gemini.Part{gemini.TextPart(transcribePrompt), gemini.BlobPart(mime, data)}, nil)
	if err != nil {
		return "", r.classify(ctx, err)
	}

	text = strings.TrimSpace(text)
	switch {
	case text == "" || strings.EqualFold(text, markerNoSpeech):
		return "", ErrNoSpeech
	case strings.EqualFold(text, markerUnrecognized):
		return "", ErrUnrecognized
	}
	return text, nil
}

func (r *GeminiRecognizer) classify(ctx context.Context, err error) error {
	var netErr net.Error
	switch {
	case errors.Is(err, gemini.ErrEmptyResponse):
		return ErrNoSpeech
	case errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr) && netErr.Timeout():
		r.log.Warn(ctx, "transcription timed out", "error", err)
		return fmt.Errorf("%w: listening timed out", ErrNoSpeech)
	default:
		r.log.Error(ctx, "transcription failed", "error", err)
		return fmt.Errorf("%w: %w", ErrService, err)
	}
}

// Describe renders err as the message shown to the user.
func Describe(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoSpeech):
		return "No speech detected. Please try again."
	case errors.Is(err, ErrUnrecognized):
		return "Could not understand audio. Please try again."
	case errors.Is(err, ErrService):
		return "Could not reach the speech recognition service: " +
			strings.TrimPrefix(err.Error(), ErrService.Error()+": ")
	default:
		return "Voice input failed: " + err.Error()
	}
}
