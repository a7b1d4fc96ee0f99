// Package export writes a summary to disk as PDF or plain text.
package export

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-pdf/fpdf"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

const Title = "AI-Generated Note Summary"

var ErrNothingToExport = errors.New("no valid summary to export")

const fontFamily = "go"

// Page geometry in points.
const (
	margin        = 50.0
	titleFontSize = 20.0
	bodyFontSize  = 11.0
	lineHeight    = bodyFontSize * 1.3
)

// Placeholders the UI shows instead of a real summary.
var notASummary = []string{"Error:", "No summary", "Generating summary"}

// Exportable reports whether summary holds a real generated summary rather
// than nothing, an error message or a progress placeholder.
func Exportable(summary string) bool {
	if strings.TrimSpace(summary) == "" {
		return false
	}
	for _, marker := range notASummary {
		if strings.Contains(summary, marker) {
			return false
		}
	}
	return true
}

// Export writes summary to path. A .pdf extension selects an A4 document
// with a title; anything else is written as UTF-8 text.
func Export(path, summary string) error {
	if !Exportable(summary) {
		return ErrNothingToExport
	}

	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return writePDF(path, summary)
	}
	if err := os.WriteFile(path, []byte(summary), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}

func writePDF(path, summary string) error {
	pdf := fpdf.New("P", "pt", "A4", "")
	pdf.SetTitle(Title, true)
	pdf.SetMargins(margin, margin, margin)
	pdf.SetAutoPageBreak(true, margin)

	// Embedded TrueType fonts keep every rune of the summary.
	pdf.AddUTF8FontFromBytes(fontFamily, "", goregular.TTF)
	pdf.AddUTF8FontFromBytes(fontFamily, "B", gobold.TTF)

	pdf.AddPage()
	pdf.SetFont(fontFamily, "B", titleFontSize)
	pdf.CellFormat(0, titleFontSize, Title, "", 1, "L", false, 0, "")
	pdf.Ln(20)

	pdf.SetFont(fontFamily, "", bodyFontSize)
	pdf.MultiCell(0, lineHeight, summary, "", "L", false)

	if err := pdf.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	return nil
}
