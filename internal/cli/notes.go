package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/dmitrijs2005/notesum/internal/extract"
	"github.com/dmitrijs2005/notesum/internal/imageload"
	"github.com/dmitrijs2005/notesum/internal/speech"
)

// loadImage is a test seam for imageload.Load.
var loadImage = imageload.Load

// Note replaces the current note with typed text.
func (a *App) Note(ctx context.Context) error {
	text, err := getMultiline(a.reader, "Enter your note", a.out)
	if err != nil {
		return err
	}
	if text == "" {
		a.println("Note is empty, nothing changed.")
		return nil
	}
	a.session.SetNote(text)
	a.println(fmt.Sprintf("Note saved (%d characters).", len([]rune(text))))
	return nil
}

// Upload loads a document into the note, or an image as the summary input.
func (a *App) Upload(ctx context.Context, path string) error {
	name := filepath.Base(path)
	res := a.extractor.Extract(ctx, path)

	switch res.Status {
	case extract.StatusImage:
		img, err := loadImage(path)
		if err != nil {
			a.log.Warn(ctx, "image load failed", "path", path, "error", err)
			return fmt.Errorf("could not load image %s: %w", name, err)
		}
		a.session.SetImage(img)
		a.println(fmt.Sprintf("Image loaded: %s (%dx%d). Use 'summarize' to describe it.", img.Name, img.Width(), img.Height()))
		return nil

	case extract.StatusUnsupported:
		a.println(fmt.Sprintf("Unsupported file type: %s. Supported: %v plus png, jpg, jpeg.", name, extract.SupportedFormats()))
		return nil

	case extract.StatusFailed:
		return fmt.Errorf("could not read %s: %w", name, res.Err)
	}

	if res.Warning != "" {
		a.println("Warning:", res.Warning)
	}
	if res.Text == "" {
		a.println(fmt.Sprintf("No text found in %s.", name))
	}
	a.session.SetNote(res.Text)
	a.println(fmt.Sprintf("Loaded %s (%d characters).", name, len([]rune(res.Text))))
	return nil
}

// Dictate transcribes a recording and appends it to the note.
func (a *App) Dictate(ctx context.Context, path string) error {
	if !a.summarizer.HasAPIKey() {
		a.println("Gemini API key is not set. Use the apikey command to configure it.")
		return nil
	}

	a.println("Transcribing... please wait.")
	text, err := a.recognizer.Recognize(ctx, path)
	if err != nil {
		a.println(speech.Describe(err))
		return nil
	}

	a.session.AppendNote(text)
	a.println("Voice input complete. Text added to your note.")
	return nil
}

func (a *App) Show(ctx context.Context) error {
	switch {
	case a.session.Image() != nil:
		img := a.session.Image()
		a.println(fmt.Sprintf("Image: %s (%s, %dx%d)", img.Name, img.MIMEType, img.Width(), img.Height()))
	case a.session.Note() != "":
		a.println("Note:")
		a.println(a.session.Note())
	default:
		a.println("No note or image loaded.")
	}

	if s := a.session.Summary(); s != "" {
		a.println()
		a.println("Summary:")
		a.println(s)
	}
	return nil
}

func (a *App) Clear(ctx context.Context) error {
	a.session.Clear()
	a.println("Cleared note, image and summary.")
	return nil
}
