package extract

import (
	"archive/zip"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/go-pdf/fpdf"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/image/font/gofont/goregular"
)

func writeFile(t *testing.T, name string, data []byte) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, data, 0o600))
	return p
}

// writePDF writes one page per entry; lines within an entry are separate
// cells.
func writePDF(t *testing.T, name string, pages ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)

	doc := fpdf.New("P", "mm", "A4", "")
	for _, page := range pages {
		doc.AddPage()
		doc.SetFont("Helvetica", "", 12)
		for _, line := range strings.Split(page, "\n") {
			doc.CellFormat(0, 10, line, "", 1, "L", false, 0, "")
		}
	}
	require.NoError(t, doc.OutputFileAndClose(p))
	return p
}

// writeUnicodePDF is writePDF with an embedded TrueType font, which fpdf
// writes as a Type0 font with two-byte codes and a ToUnicode map.
func writeUnicodePDF(t *testing.T, name string, pages ...string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)

	doc := fpdf.New("P", "mm", "A4", "")
	doc.AddUTF8FontFromBytes("goregular", "", goregular.TTF)
	for _, page := range pages {
		doc.AddPage()
		doc.SetFont("goregular", "", 12)
		for _, line := range strings.Split(page, "\n") {
			doc.CellFormat(0, 10, line, "", 1, "L", false, 0, "")
		}
	}
	require.NoError(t, doc.OutputFileAndClose(p))
	return p
}

func writeZip(t *testing.T, name string, parts map[string]string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	f, err := os.Create(p)
	require.NoError(t, err)
	defer f.Close()

	zw := zip.NewWriter(f)
	for partName, body := range parts {
		w, err := zw.Create(partName)
		require.NoError(t, err)
		_, err = w.Write([]byte(body))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return p
}

const wordNS = `xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"`

func docxParagraph(runs ...string) string {
	var sb strings.Builder
	sb.WriteString("<w:p><w:pPr><w:tabs><w:tab w:val=\"left\" w:pos=\"720\"/></w:tabs></w:pPr>")
	for _, r := range runs {
		sb.WriteString("<w:r><w:t xml:space=\"preserve\">" + r + "</w:t></w:r>")
	}
	sb.WriteString("</w:p>")
	return sb.String()
}

func writeDOCX(t *testing.T, body string) string {
	t.Helper()
	return writeZip(t, "doc.docx", map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml": `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document ` + wordNS + `><w:body>` + body + `<w:sectPr/></w:body></w:document>`,
	})
}

const (
	presentationNS = `xmlns:p="http://schemas.openxmlformats.org/presentationml/2006/main" ` +
		`xmlns:a="http://schemas.openxmlformats.org/drawingml/2006/main" ` +
		`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"`
	relsNS = `xmlns="http://schemas.openxmlformats.org/package/2006/relationships"`
)

// pptxShape builds a p:sp whose text body has one a:p per paragraph.
func pptxShape(paragraphs ...string) string {
	var sb strings.Builder
	sb.WriteString(`<p:sp><p:nvSpPr><p:cNvPr id="2" name="Shape"/></p:nvSpPr><p:spPr/><p:txBody><a:bodyPr/>`)
	for _, para := range paragraphs {
		sb.WriteString(`<a:p><a:r><a:rPr lang="en-US"/><a:t>` + para + `</a:t></a:r></a:p>`)
	}
	sb.WriteString(`</p:txBody></p:sp>`)
	return sb.String()
}

func pptxSlide(shapes ...string) string {
	return `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
		`<p:sld ` + presentationNS + `><p:cSld><p:spTree>` +
		`<p:nvGrpSpPr><p:cNvPr id="1" name=""/></p:nvGrpSpPr><p:grpSpPr/>` +
		strings.Join(shapes, "") +
		`</p:spTree></p:cSld></p:sld>`
}

// writePPTX stores slides as slide1.xml, slide2.xml... and lists them in
// the presentation in the given order (indexes into slides).
func writePPTX(t *testing.T, order []int, slides ...string) string {
	t.Helper()
	parts := map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
	}

	var ids, rels strings.Builder
	for i, s := range slides {
		n := strconv.Itoa(i + 1)
		parts["ppt/slides/slide"+n+".xml"] = s
		rels.WriteString(`<Relationship Id="rId` + n + `" Type="http://schemas.openxmlformats.org/officeDocument/2006/relationships/slide" Target="slides/slide` + n + `.xml"/>`)
	}
	for k, i := range order {
		ids.WriteString(`<p:sldId id="` + strconv.Itoa(256+k) + `" r:id="rId` + strconv.Itoa(i+1) + `"/>`)
	}
	if order != nil {
		parts["ppt/presentation.xml"] = `<?xml version="1.0"?><p:presentation ` + presentationNS +
			`><p:sldIdLst>` + ids.String() + `</p:sldIdLst></p:presentation>`
		parts["ppt/_rels/presentation.xml.rels"] = `<?xml version="1.0"?><Relationships ` + relsNS + `>` +
			rels.String() + `</Relationships>`
	}
	return writeZip(t, "deck.pptx", parts)
}

func writeXLSX(t *testing.T, sheets map[string][][]any, order []string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "book.xlsx")

	f := excelize.NewFile()
	defer f.Close()
	for i, name := range order {
		if i == 0 {
			require.NoError(t, f.SetSheetName("Sheet1", name))
		} else {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for r, row := range sheets[name] {
			for c, v := range row {
				if v == nil {
					continue
				}
				cell, err := excelize.CoordinatesToCellName(c+1, r+1)
				require.NoError(t, err)
				require.NoError(t, f.SetCellValue(name, cell, v))
			}
		}
	}
	require.NoError(t, f.SaveAs(p))
	return p
}
