package extract

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func extractOK(t *testing.T, path string) Result {
	t.Helper()
	res := New(Config{}).Extract(context.Background(), path)
	require.Equal(t, StatusOK, res.Status, "err: %v", res.Err)
	return res
}

func TestExtractPDF_PagesJoinedInOrder(t *testing.T) {
	p := writePDF(t, "three.pdf", "A", "B", "C")
	assert.Equal(t, "A\nB\nC", extractOK(t, p).Text)
}

func TestExtractPDF_LinesWithinPage(t *testing.T) {
	p := writePDF(t, "lines.pdf", "Hello (world)\nSecond line")
	assert.Equal(t, "Hello (world)\nSecond line", extractOK(t, p).Text)
}

func TestExtractPDF_UnicodeFont(t *testing.T) {
	res := extractOK(t, writeUnicodePDF(t, "hello.pdf", "Hello world"))
	assert.Equal(t, "Hello world", res.Text)
	assert.NotContains(t, res.Text, "\x00")
}

func TestExtractPDF_UnicodeFontNonLatin(t *testing.T) {
	p := writeUnicodePDF(t, "mixed.pdf", "Привет, мир\nΚαλημέρα", "Zürich €5")
	assert.Equal(t, "Привет, мир\nΚαλημέρα\nZürich €5", extractOK(t, p).Text)
}

func TestExtractDOCX(t *testing.T) {
	body := docxParagraph("Hello ", "world") +
		`<w:tbl><w:tr><w:tc>` + docxParagraph("inside a table") + `</w:tc></w:tr></w:tbl>` +
		docxParagraph("Second") +
		`<w:p><w:r><w:t>a</w:t><w:tab/><w:t>b</w:t><w:br/><w:t>c</w:t></w:r></w:p>` +
		`<w:p/>`

	res := extractOK(t, writeDOCX(t, body))
	assert.Equal(t, "Hello world\nSecond\na\tb\nc", res.Text)
	assert.NotContains(t, res.Text, "table")
}

func TestExtractDOCX_MissingDocumentPart(t *testing.T) {
	p := writeZip(t, "empty.docx", map[string]string{"[Content_Types].xml": "<Types/>"})
	res := New(Config{}).Extract(context.Background(), p)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Contains(t, res.Err.Error(), "word/document.xml")
}

func TestExtractPPTX_PresentationOrder(t *testing.T) {
	slide1 := pptxSlide(pptxShape("Title one"), pptxShape("line a", "line b"))
	slide2 := pptxSlide(pptxShape("Second"))

	res := extractOK(t, writePPTX(t, []int{1, 0}, slide1, slide2))
	assert.Equal(t, "Second\nTitle one\nline a\nline b", res.Text)
}

func TestExtractPPTX_FallbackNumericOrder(t *testing.T) {
	slides := make([]string, 11)
	for i := range slides {
		slides[i] = pptxSlide()
	}
	slides[1] = pptxSlide(pptxShape("two"))
	slides[9] = pptxSlide(pptxShape("ten"))

	res := extractOK(t, writePPTX(t, nil, slides...))
	assert.Equal(t, "two\nten", res.Text)
}

func TestExtractPPTX_SkipsGroupsAndShapesWithoutText(t *testing.T) {
	group := `<p:grpSp><p:nvGrpSpPr><p:cNvPr id="5" name="g"/></p:nvGrpSpPr><p:grpSpPr/>` +
		pptxShape("grouped") + `</p:grpSp>`
	pic := `<p:pic><p:nvPicPr><p:cNvPr id="6" name="pic"/></p:nvPicPr></p:pic>`
	lineBreak := `<p:sp><p:txBody><a:p><a:r><a:t>up</a:t></a:r><a:br/><a:r><a:t>down</a:t></a:r></a:p></p:txBody></p:sp>`

	res := extractOK(t, writePPTX(t, []int{0}, pptxSlide(group, pic, pptxShape("visible"), lineBreak)))
	assert.Equal(t, "visible\nup\ndown", res.Text)
}

func TestExtractTXT(t *testing.T) {
	res := extractOK(t, writeFile(t, "n.txt", []byte("\ufeffZürich\n  notes  ")))
	assert.Equal(t, "Zürich\n  notes", res.Text)
}

func TestExtractTXT_InvalidUTF8Fails(t *testing.T) {
	p := writeFile(t, "latin1.txt", []byte{'c', 'a', 'f', 0xe9})
	res := New(Config{}).Extract(context.Background(), p)
	assert.Equal(t, StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, errInvalidUTF8)
}

func TestExtractRTF(t *testing.T) {
	src := `{\rtf1\ansi\ansicpg1252\deff0{\fonttbl{\f0 Arial;}}{\colortbl;\red0\green0\blue0;}` +
		`{\*\generator Riched20;}\f0\fs24 Hello \b world\b0\par Caf\'e9 \u8364? done\par}`

	res := extractOK(t, writeFile(t, "doc.rtf", []byte(src)))
	assert.Equal(t, "Hello world\nCafé € done", res.Text)
	assert.Empty(t, res.Warning)
}

func TestExtractRTF_CodePage(t *testing.T) {
	src := `{\rtf1\ansi\ansicpg1251 \'cf\'f0\'e8\'e2\'e5\'f2}`
	assert.Equal(t, "Привет", extractOK(t, writeFile(t, "ru.rtf", []byte(src))).Text)
}

func TestExtractRTF_BadMarkupFallsBackToRaw(t *testing.T) {
	src := []byte("{\\rtf1 Hello \xff there")

	res := extractOK(t, writeFile(t, "broken.rtf", src))
	assert.Equal(t, `{\rtf1 Hello  there`, res.Text)
	assert.NotEmpty(t, res.Warning)
}

func TestStripRTF(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"escaped braces", `{\rtf1 a\{b\}c\\d}`, `a{b}c\d`},
		{"tab and line", `{\rtf1 a\tab b\line c}`, "a\tb\nc"},
		{"uc0", `{\rtf1\uc0 x\u233 y}`, "xéy"},
		{"surrogate pair", `{\rtf1 \u-10179?\u-8704?}`, "\U0001F600"},
		{"ignorable destination", `{\rtf1 {\*\unknown hidden}shown}`, "shown"},
		{"info group", `{\rtf1{\info{\title T}{\author A}}body}`, "body"},
		{"emdash", `{\rtf1 a\emdash b}`, "a\u2014b"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := stripRTF(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestStripRTF_Unbalanced(t *testing.T) {
	for _, in := range []string{`{\rtf1 open`, `{\rtf1 x}}`} {
		_, err := stripRTF(in)
		assert.ErrorIs(t, err, errRTFUnbalanced, in)
	}
}

func TestExtractXLSX(t *testing.T) {
	p := writeXLSX(t, map[string][][]any{
		"Fruit": {
			{"Name", "Qty"},
			{"apple", 3},
			{nil, "x"},
		},
		"Notes": {
			{"hello"},
		},
	}, []string{"Fruit", "Notes"})

	want := "--- Sheet: Fruit ---\nName Qty\napple 3\nx\n\n--- Sheet: Notes ---\nhello"
	assert.Equal(t, want, extractOK(t, p).Text)
}

func TestExtractCSV(t *testing.T) {
	p := writeFile(t, "data.csv", []byte("name,qty\napple,3\nkiwi,12\n"))
	assert.Equal(t, "name  qty\napple    3\n kiwi   12", extractOK(t, p).Text)
}

func TestExtractCSV_WideCharacters(t *testing.T) {
	p := writeFile(t, "wide.csv", []byte("k,v\n日本,1\n"))
	assert.Equal(t, "k  v\n日本  1", extractOK(t, p).Text)
}

func TestExtractCSV_EmptyCellsStayEmpty(t *testing.T) {
	p := writeFile(t, "gaps.csv", []byte("a,b\n,2\n1,\n"))
	assert.Equal(t, "a  b\n   2\n1", extractOK(t, p).Text)
}

func TestExtractCSV_ShortRowsPadded(t *testing.T) {
	p := writeFile(t, "ragged.csv", []byte("name,age,city\nalice,30\nbob,25,Paris\n"))
	want := "name  age   city\n" +
		"alice   30       \n" +
		"  bob   25  Paris"
	assert.Equal(t, want, extractOK(t, p).Text)
}

func TestExtractCSV_RowWiderThanHeader(t *testing.T) {
	res := New(Config{}).Extract(context.Background(), writeFile(t, "wide.csv", []byte("a,b\n1,2\n1,2,3\n")))
	assert.Equal(t, StatusFailed, res.Status)
	require.Error(t, res.Err)
	assert.Contains(t, res.Err.Error(), "line 3")
	assert.Empty(t, res.Text)
}

func TestExtractCSV_Failures(t *testing.T) {
	for name, body := range map[string]string{
		"empty.csv": "",
		"wider.csv": "a,b\n1,2,3\n",
		"quote.csv": "a,\"b\n",
	} {
		t.Run(name, func(t *testing.T) {
			res := New(Config{}).Extract(context.Background(), writeFile(t, name, []byte(body)))
			assert.Equal(t, StatusFailed, res.Status)
			assert.Empty(t, res.Text)
		})
	}
}
