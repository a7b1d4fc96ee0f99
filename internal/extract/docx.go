package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"strings"
)

// Run-level subtrees whose text is not part of the paragraph itself.
var docxSkipped = []string{"drawing", "pict", "object", "AlternateContent", "txbxContent"}

func extractDOCX(_ context.Context, path string) (string, string, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return "", "", err
	}
	defer zr.Close()

	data, err := readZipPart(&zr.Reader, "word/document.xml")
	if err != nil {
		return "", "", err
	}

	var (
		sb     strings.Builder
		inPara bool
		depth  int
	)

	err = walkXML(data, func(tok xml.Token, stack xmlStack) {
		switch t := tok.(type) {
		case xml.StartElement:
			if !inPara {
				if t.Name.Local == "p" && stack.parent() == "body" {
					inPara = true
					depth = len(stack)
				}
				return
			}
			if stack.contains(docxSkipped...) {
				return
			}
			switch t.Name.Local {
			case "tab":
				if stack.parent() == "r" {
					sb.WriteByte('\t')
				}
			case "br", "cr":
				if stack.parent() == "r" {
					sb.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if inPara && t.Name.Local == "p" && len(stack) == depth {
				inPara = false
				sb.WriteByte('\n')
			}
		case xml.CharData:
			if inPara && stack.parent() == "t" && !stack.contains(docxSkipped...) {
				sb.Write(t)
			}
		}
	})
	if err != nil {
		return "", "", err
	}
	return sb.String(), "", nil
}
