package extract

import (
	"context"
	"strings"

	"github.com/xuri/excelize/v2"
)

func extractXLSX(ctx context.Context, path string) (string, string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return "", "", err
	}
	defer f.Close()

	var sb strings.Builder
	for _, sheet := range f.GetSheetList() {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}
		rows, err := f.GetRows(sheet)
		if err != nil {
			return "", "", err
		}

		sb.WriteString("\n--- Sheet: ")
		sb.WriteString(sheet)
		sb.WriteString(" ---\n")
		for _, row := range rows {
			first := true
			for _, cell := range row {
				if cell == "" {
					continue
				}
				if !first {
					sb.WriteByte(' ')
				}
				sb.WriteString(cell)
				first = false
			}
			sb.WriteByte('\n')
		}
	}
	return sb.String(), "", nil
}
