package extract

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		path string
		want Format
	}{
		{"report.pdf", FormatPDF},
		{"REPORT.PDF", FormatPDF},
		{"deck.pptx", FormatPPTX},
		{"notes.txt", FormatTXT},
		{"letter.docx", FormatDOCX},
		{"old.rtf", FormatRTF},
		{"book.xlsx", FormatXLSX},
		{"data.csv", FormatCSV},
		{"photo.png", FormatImage},
		{"photo.JPG", FormatImage},
		{"photo.jpeg", FormatImage},
		{"archive.zip", FormatUnknown},
		{"legacy.doc", FormatUnknown},
		{"README", FormatUnknown},
		{"dir.pdf/README", FormatUnknown},
		{"/tmp/a.b.c.csv", FormatCSV},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, Detect(tt.path))
		})
	}
}

func TestSupportedFormats(t *testing.T) {
	for _, ext := range SupportedFormats() {
		f := Detect("x." + ext)
		assert.NotEqual(t, FormatUnknown, f, ext)
		assert.NotEqual(t, FormatImage, f, ext)
	}
}

func TestExtract_UnsupportedExtension(t *testing.T) {
	p := writeZip(t, "archive.zip", map[string]string{"a.txt": "hello"})

	res := New(Config{}).Extract(context.Background(), p)
	assert.Equal(t, StatusUnsupported, res.Status)
	assert.Empty(t, res.Text)
	require.Error(t, res.Err)
	assert.ErrorIs(t, res.Err, ErrUnsupportedFormat)
	assert.Contains(t, res.Err.Error(), "archive.zip")
}

func TestExtract_ImageIsRouted(t *testing.T) {
	res := New(Config{}).Extract(context.Background(), "/nonexistent/photo.png")
	assert.Equal(t, StatusImage, res.Status)
	assert.Equal(t, FormatImage, res.Format)
	assert.Empty(t, res.Text)
	assert.NoError(t, res.Err)
}

func TestExtract_CorruptFilesFail(t *testing.T) {
	junk := []byte("this is definitely not a document")
	for _, name := range []string{"bad.pdf", "bad.docx", "bad.pptx", "bad.xlsx"} {
		t.Run(name, func(t *testing.T) {
			p := writeFile(t, name, junk)

			var res Result
			require.NotPanics(t, func() {
				res = New(Config{}).Extract(context.Background(), p)
			})
			assert.Equal(t, StatusFailed, res.Status)
			assert.Empty(t, res.Text)
			require.Error(t, res.Err)
			assert.ErrorIs(t, res.Err, ErrExtractionFailed)
			assert.Contains(t, res.Err.Error(), name)
		})
	}
}

func TestExtract_MissingFile(t *testing.T) {
	res := New(Config{}).Extract(context.Background(), "/nonexistent/notes.txt")
	assert.Equal(t, StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, ErrExtractionFailed)
}

func TestExtract_FileTooLarge(t *testing.T) {
	p := writeFile(t, "big.txt", []byte("hello world"))

	res := New(Config{MaxFileSize: 4}).Extract(context.Background(), p)
	assert.Equal(t, StatusFailed, res.Status)
	assert.ErrorIs(t, res.Err, ErrFileTooLarge)
}

func TestExtract_PanicInParserIsRecovered(t *testing.T) {
	orig := extractors[FormatTXT]
	extractors[FormatTXT] = func(context.Context, string) (string, string, error) {
		panic("boom")
	}
	t.Cleanup(func() { extractors[FormatTXT] = orig })

	p := writeFile(t, "notes.txt", []byte("hello"))

	var res Result
	require.NotPanics(t, func() {
		res = New(Config{}).Extract(context.Background(), p)
	})
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, res.Text)
	assert.ErrorIs(t, res.Err, ErrExtractionFailed)
	assert.Contains(t, res.Err.Error(), "boom")
}

func TestExtract_ParserErrorIsWrapped(t *testing.T) {
	cause := errors.New("parser exploded")
	orig := extractors[FormatCSV]
	extractors[FormatCSV] = func(context.Context, string) (string, string, error) {
		return "partial", "", cause
	}
	t.Cleanup(func() { extractors[FormatCSV] = orig })

	p := writeFile(t, "data.csv", []byte("a,b\n"))
	res := New(Config{}).Extract(context.Background(), p)
	assert.Equal(t, StatusFailed, res.Status)
	assert.Empty(t, res.Text)
	assert.ErrorIs(t, res.Err, cause)
	assert.ErrorIs(t, res.Err, ErrExtractionFailed)
}

func TestExtract_TrimsText(t *testing.T) {
	p := writeFile(t, "notes.txt", []byte("\n\n  hello\nworld  \n\t"))

	res := New(Config{}).Extract(context.Background(), p)
	require.True(t, res.OK(), res.Err)
	assert.Equal(t, "hello\nworld", res.Text)
	assert.Equal(t, FormatTXT, res.Format)
}

func TestExtractText(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		p := writeFile(t, "notes.TXT", []byte("Meeting notes"))
		text, ok, msg := ExtractText(p)
		assert.True(t, ok)
		assert.Equal(t, "Meeting notes", text)
		assert.Empty(t, msg)
	})

	t.Run("unsupported", func(t *testing.T) {
		text, ok, msg := ExtractText("/tmp/archive.zip")
		assert.False(t, ok)
		assert.Empty(t, text)
		assert.Contains(t, msg, "archive.zip")
	})

	t.Run("image", func(t *testing.T) {
		text, ok, msg := ExtractText("/tmp/photo.jpg")
		assert.False(t, ok)
		assert.Empty(t, text)
		assert.Contains(t, msg, "image")
	})

	t.Run("corrupt", func(t *testing.T) {
		p := writeFile(t, "broken.pdf", []byte("%PDF-1.4 garbage"))
		text, ok, msg := ExtractText(p)
		assert.False(t, ok)
		assert.Empty(t, text)
		assert.NotEmpty(t, msg)
	})
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, "ok", StatusOK.String())
	assert.Equal(t, "unsupported", StatusUnsupported.String())
	assert.Equal(t, "image", StatusImage.String())
	assert.Equal(t, "failed", StatusFailed.String())
	assert.Equal(t, "unknown", Status(42).String())
}
