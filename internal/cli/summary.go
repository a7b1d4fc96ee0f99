package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/notesum/internal/common"
	"github.com/dmitrijs2005/notesum/internal/export"
	"github.com/dmitrijs2005/notesum/internal/summarize"
)

// Summarize sends the loaded image, or else the note text, to the model.
// Failures are shown in place of the summary.
func (a *App) Summarize(ctx context.Context) error {
	var (
		summary string
		err     error
	)

	switch {
	case a.session.Image() != nil:
		a.println("Generating summary of the image...")
		summary, err = a.summarizer.SummarizeImage(ctx, a.session.Image())
	case a.session.Note() != "":
		a.println("Generating summary...")
		summary, err = a.summarizer.SummarizeText(ctx, a.session.Note())
	default:
		return common.ErrNothingToSummarize
	}

	if err != nil {
		summary = summarize.Describe(err)
		if errors.Is(err, summarize.ErrNoSummary) {
			a.log.Warn(ctx, "empty summary", "error", err)
		}
	}

	a.session.SetSummary(summary)
	a.println(summary)
	return nil
}

// Export writes the current summary to path.
func (a *App) Export(ctx context.Context, path string) error {
	err := export.Export(path, a.session.Summary())
	if errors.Is(err, export.ErrNothingToExport) {
		a.println("No valid summary to export. Please generate a summary first.")
		return nil
	}
	if err != nil {
		a.log.Error(ctx, "export failed", "path", path, "error", err)
		return fmt.Errorf("export failed: %w", err)
	}

	a.log.Info(ctx, "summary exported", "path", path)
	a.println("Summary exported to " + path)
	return nil
}

// APIKey prompts for a new Gemini API key and applies it to the summarizer
// and the speech recognizer.
func (a *App) APIKey(ctx context.Context) error {
	key, err := getSimpleText(a.reader, "Enter your Gemini API key (empty to keep the current one)", a.out)
	if err != nil {
		return err
	}
	if key == "" {
		if a.summarizer.HasAPIKey() {
			a.println("API key unchanged.")
		} else {
			a.println("No API key set.")
		}
		return nil
	}

	a.summarizer.SetAPIKey(key)
	a.recognizer = newRecognizer(a.config, key, a.log)
	a.log.Info(ctx, "api key updated")
	a.println("API key saved for this session.")
	return nil
}
