package extract

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-runewidth"
)

var errEmptyCSV = errors.New("no columns to parse")

// extractCSV renders the file as a table: every column right-aligned to its
// widest cell, columns separated by two spaces. Rows shorter than the header
// are padded with blank cells; rows wider than the header are an error.
func extractCSV(_ context.Context, path string) (string, string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	var records [][]string
	for {
		rec, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", "", err
		}
		if len(records) > 0 {
			cols := len(records[0])
			if len(rec) > cols {
				line, _ := r.FieldPos(0)
				return "", "", fmt.Errorf("record on line %d: expected %d fields, saw %d", line, cols, len(rec))
			}
			for len(rec) < cols {
				rec = append(rec, "")
			}
		}
		records = append(records, rec)
	}
	if len(records) == 0 {
		return "", "", errEmptyCSV
	}
	if len(records[0]) > 0 {
		records[0][0] = strings.TrimPrefix(records[0][0], "\ufeff")
	}
	cols := len(records[0])

	widths := make([]int, cols)
	for _, rec := range records {
		for i, cell := range rec {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	var sb strings.Builder
	for _, rec := range records {
		for i, cell := range rec {
			if i > 0 {
				sb.WriteString("  ")
			}
			sb.WriteString(strings.Repeat(" ", widths[i]-runewidth.StringWidth(cell)))
			sb.WriteString(cell)
		}
		sb.WriteByte('\n')
	}
	return sb.String(), "", nil
}
