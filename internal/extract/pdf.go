package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/types"
)

func init() {
	// No pdfcpu config files under the user's home.
	api.DisableConfigDir()
}

func extractPDF(ctx context.Context, path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	pdf, err := api.ReadValidateAndOptimize(f, model.NewDefaultConfiguration())
	if err != nil {
		return "", "", fmt.Errorf("pdfcpu read: %w", err)
	}

	pages := make([]string, 0, pdf.PageCount)
	for pageNr := 1; pageNr <= pdf.PageCount; pageNr++ {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}
		text, err := pageText(pdf, pageNr)
		if err != nil {
			return "", "", fmt.Errorf("page %d: %w", pageNr, err)
		}
		pages = append(pages, text)
	}
	return strings.Join(pages, "\n"), "", nil
}

func pageText(pdf *model.Context, pageNr int) (string, error) {
	d, _, inh, err := pdf.PageDict(pageNr, false)
	if err != nil {
		return "", err
	}

	data, err := pdf.PageContent(d, pageNr)
	if errors.Is(err, model.ErrNoContent) {
		return "", nil
	}
	if err != nil {
		return "", err
	}

	var res types.Dict
	if inh != nil {
		res = inh.Resources
	}
	return textFromContentStream(data, pageFonts(pdf, res)), nil
}

// pageFonts loads the decoders for the fonts named in a page's resources.
// Fonts that cannot be resolved are left out and decoded as WinAnsi.
func pageFonts(pdf *model.Context, res types.Dict) map[string]*pdfFont {
	fonts := map[string]*pdfFont{}
	obj, found := res.Find("Font")
	if !found {
		return fonts
	}
	fd, err := pdf.DereferenceDict(obj)
	if err != nil {
		return fonts
	}
	for name, o := range fd {
		d, err := pdf.DereferenceDict(o)
		if err != nil || d == nil {
			continue
		}
		fonts[name] = loadFont(pdf, d)
	}
	return fonts
}

func loadFont(pdf *model.Context, d types.Dict) *pdfFont {
	f := &pdfFont{}
	if st := d.Subtype(); st != nil && *st == "Type0" {
		f.composite = true
	}

	if o, found := d.Find("ToUnicode"); found {
		sd, _, err := pdf.DereferenceStreamDict(o)
		if err == nil && sd != nil && sd.Decode() == nil {
			f.toUnicode = parseCMap(sd.Content)
		}
	}
	if f.composite {
		return f
	}

	o, found := d.Find("Encoding")
	if !found {
		return f
	}
	enc, err := pdf.Dereference(o)
	if err != nil {
		return f
	}
	switch enc := enc.(type) {
	case types.Name:
		f.enc = baseEncoding(enc.Value())
	case types.Dict:
		if n := enc.NameEntry("BaseEncoding"); n != nil {
			f.enc = baseEncoding(*n)
		}
		if o, found := enc.Find("Differences"); found {
			if arr, err := pdf.DereferenceArray(o); err == nil {
				f.diffs = differences(arr)
			}
		}
	}
	return f
}

// differences reads an encoding Differences array: a code followed by the
// glyph names for that code and the ones after it.
func differences(arr types.Array) map[byte]rune {
	diffs := map[byte]rune{}
	code := -1
	for _, o := range arr {
		switch o := o.(type) {
		case types.Integer:
			code = o.Value()
		case types.Name:
			if code < 0 || code > 255 {
				continue
			}
			if r, ok := glyphRune(o.Value()); ok {
				diffs[byte(code)] = r
			}
			code++
		}
	}
	return diffs
}
