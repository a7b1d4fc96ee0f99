package extract

import "errors"

// Format identifies how a file is handled, derived from its extension.
type Format string

const (
	FormatPDF     Format = "pdf"
	FormatPPTX    Format = "pptx"
	FormatTXT     Format = "txt"
	FormatDOCX    Format = "docx"
	FormatRTF     Format = "rtf"
	FormatXLSX    Format = "xlsx"
	FormatCSV     Format = "csv"
	FormatImage   Format = "image"
	FormatUnknown Format = ""
)

type Status int

const (
	StatusOK Status = iota
	StatusUnsupported
	StatusImage
	StatusFailed
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusUnsupported:
		return "unsupported"
	case StatusImage:
		return "image"
	case StatusFailed:
		return "failed"
	default:
		return "unknown"
	}
}

var (
	ErrExtractionFailed  = errors.New("extraction failed")
	ErrUnsupportedFormat = errors.New("unsupported file format")
	ErrFileTooLarge      = errors.New("file too large")
)

// Result is the outcome of one extraction. Text is trimmed and is empty
// unless Status is StatusOK. Warning carries non-fatal trouble, such as RTF
// markup that could not be stripped.
type Result struct {
	Path    string
	Format  Format
	Text    string
	Status  Status
	Err     error
	Warning string
}

func (r Result) OK() bool {
	return r.Status == StatusOK
}
