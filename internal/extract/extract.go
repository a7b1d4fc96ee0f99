// Package extract turns document files into plain text.
//
// The format is chosen from the file extension alone:
//
//   - .pdf   page text joined by newlines (pdfcpu content streams)
//   - .pptx  text of every shape on every slide, in presentation order
//   - .txt   UTF-8 verbatim
//   - .docx  body paragraphs, one per line
//   - .rtf   markup stripped; raw text when the markup cannot be parsed
//   - .xlsx  every sheet, a header line and one line per row (excelize)
//   - .csv   a right-aligned fixed-width table
//
// Images (.png, .jpg, .jpeg) are recognised but not extracted; callers hand
// them to the image loader. Every other extension is unsupported.
package extract

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

type Extractor struct {
	cfg Config
}

func New(cfg Config) *Extractor {
	cfg.defaults()
	return &Extractor{cfg: cfg}
}

type extractFunc func(ctx context.Context, path string) (text, warning string, err error)

var extractors = map[Format]extractFunc{
	FormatPDF:  extractPDF,
	FormatPPTX: extractPPTX,
	FormatTXT:  extractTXT,
	FormatDOCX: extractDOCX,
	FormatRTF:  extractRTF,
	FormatXLSX: extractXLSX,
	FormatCSV:  extractCSV,
}

// Detect classifies path by the text after its final dot, case-insensitively.
func Detect(path string) Format {
	name := filepath.Base(path)
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return FormatUnknown
	}

	switch strings.ToLower(name[i+1:]) {
	case "pdf":
		return FormatPDF
	case "pptx":
		return FormatPPTX
	case "txt":
		return FormatTXT
	case "docx":
		return FormatDOCX
	case "rtf":
		return FormatRTF
	case "xlsx":
		return FormatXLSX
	case "csv":
		return FormatCSV
	case "png", "jpg", "jpeg":
		return FormatImage
	default:
		return FormatUnknown
	}
}

// SupportedFormats lists the extensions that yield text.
func SupportedFormats() []string {
	return []string{"pdf", "pptx", "txt", "docx", "rtf", "xlsx", "csv"}
}

// Extract never returns an error of its own; everything that goes wrong is
// reported through the Result.
func (e *Extractor) Extract(ctx context.Context, path string) (res Result) {
	format := Detect(path)
	res = Result{Path: path, Format: format}

	switch format {
	case FormatUnknown:
		res.Status = StatusUnsupported
		res.Err = fmt.Errorf("%w: %s", ErrUnsupportedFormat, filepath.Base(path))
		e.cfg.Logger.Debug(ctx, "unsupported file", "path", path)
		return res
	case FormatImage:
		res.Status = StatusImage
		return res
	}

	defer func() {
		if r := recover(); r != nil {
			res = e.failed(ctx, res, fmt.Errorf("parser panic: %v", r))
		}
	}()

	info, err := os.Stat(path)
	if err != nil {
		return e.failed(ctx, res, err)
	}
	if info.Size() > e.cfg.MaxFileSize {
		return e.failed(ctx, res, fmt.Errorf("%w: %d bytes (max %d)", ErrFileTooLarge, info.Size(), e.cfg.MaxFileSize))
	}

	e.cfg.Logger.Debug(ctx, "extracting document", "path", path, "format", format)

	text, warning, err := extractors[format](ctx, path)
	if err != nil {
		return e.failed(ctx, res, err)
	}
	if warning != "" {
		e.cfg.Logger.Warn(ctx, "extraction warning", "path", path, "warning", warning)
	}

	res.Status = StatusOK
	res.Text = strings.TrimSpace(text)
	res.Warning = warning
	return res
}

func (e *Extractor) failed(ctx context.Context, res Result, cause error) Result {
	res.Status = StatusFailed
	res.Text = ""
	res.Err = fmt.Errorf("%w: %s: %w", ErrExtractionFailed, filepath.Base(res.Path), cause)
	e.cfg.Logger.Warn(ctx, "extraction failed", "path", res.Path, "format", res.Format, "error", cause)
	return res
}

var defaultExtractor = New(Config{})

// ExtractText is the narrow form of Extract: ok is false with a
// human-readable errMsg for unsupported, image and failed files.
func ExtractText(path string) (text string, ok bool, errMsg string) {
	res := defaultExtractor.Extract(context.Background(), path)
	switch res.Status {
	case StatusOK:
		return res.Text, true, ""
	case StatusImage:
		return "", false, fmt.Sprintf("%s is an image, not a text document", filepath.Base(path))
	default:
		return "", false, res.Err.Error()
	}
}
