package extract

import (
	"archive/zip"
	"context"
	"encoding/xml"
	"path"
	"sort"
	"strconv"
	"strings"
)

func extractPPTX(ctx context.Context, file string) (string, string, error) {
	zr, err := zip.OpenReader(file)
	if err != nil {
		return "", "", err
	}
	defer zr.Close()

	slides, err := slideParts(&zr.Reader)
	if err != nil {
		return "", "", err
	}

	var sb strings.Builder
	for _, name := range slides {
		if err := ctx.Err(); err != nil {
			return "", "", err
		}
		data, err := readZipPart(&zr.Reader, name)
		if err != nil {
			return "", "", err
		}
		if err := slideText(&sb, data); err != nil {
			return "", "", err
		}
	}
	return sb.String(), "", nil
}

type presentation struct {
	SlideIDs []struct {
		RelID string `xml:"http://schemas.openxmlformats.org/officeDocument/2006/relationships id,attr"`
	} `xml:"sldIdLst>sldId"`
}

type relationships struct {
	Rels []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// slideParts returns the slide part names in presentation order. When the
// presentation part cannot be resolved it falls back to slideN.xml order.
func slideParts(zr *zip.Reader) ([]string, error) {
	if names := orderedSlides(zr); len(names) > 0 {
		return names, nil
	}

	var names []string
	for _, f := range zr.File {
		if slideNumber(f.Name) > 0 {
			names = append(names, f.Name)
		}
	}
	sort.Slice(names, func(i, j int) bool {
		return slideNumber(names[i]) < slideNumber(names[j])
	})

	if len(names) == 0 {
		if _, err := readZipPart(zr, "ppt/presentation.xml"); err != nil {
			return nil, err
		}
	}
	return names, nil
}

func orderedSlides(zr *zip.Reader) []string {
	presData, err := readZipPart(zr, "ppt/presentation.xml")
	if err != nil {
		return nil
	}
	relsData, err := readZipPart(zr, "ppt/_rels/presentation.xml.rels")
	if err != nil {
		return nil
	}

	var pres presentation
	if err := xml.Unmarshal(presData, &pres); err != nil {
		return nil
	}
	var rels relationships
	if err := xml.Unmarshal(relsData, &rels); err != nil {
		return nil
	}

	targets := make(map[string]string, len(rels.Rels))
	for _, r := range rels.Rels {
		targets[r.ID] = r.Target
	}

	names := make([]string, 0, len(pres.SlideIDs))
	for _, s := range pres.SlideIDs {
		t, ok := targets[s.RelID]
		if !ok {
			return nil
		}
		if strings.HasPrefix(t, "/") {
			names = append(names, strings.TrimPrefix(t, "/"))
		} else {
			names = append(names, path.Join("ppt", t))
		}
	}
	return names
}

// slideNumber returns N for ppt/slides/slideN.xml and 0 for anything else.
func slideNumber(name string) int {
	rest, ok := strings.CutPrefix(name, "ppt/slides/slide")
	if !ok {
		return 0
	}
	rest, ok = strings.CutSuffix(rest, ".xml")
	if !ok {
		return 0
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0
	}
	return n
}

// slideText writes, for every top-level shape with a text body, its
// paragraphs joined by newlines and then a newline.
func slideText(sb *strings.Builder, data []byte) error {
	var (
		inShape    bool
		hasBody    bool
		paragraphs int
		shape      strings.Builder
	)

	return walkXML(data, func(tok xml.Token, stack xmlStack) {
		switch t := tok.(type) {
		case xml.StartElement:
			switch {
			case t.Name.Local == "sp" && stack.parent() == "spTree":
				inShape, hasBody, paragraphs = true, false, 0
				shape.Reset()
			case !inShape:
			case t.Name.Local == "txBody" && stack.parent() == "sp":
				hasBody = true
			case t.Name.Local == "p" && stack.parent() == "txBody":
				if paragraphs > 0 {
					shape.WriteByte('\n')
				}
				paragraphs++
			case t.Name.Local == "br" && stack.contains("txBody"):
				shape.WriteByte('\n')
			}
		case xml.EndElement:
			if inShape && t.Name.Local == "sp" && stack.parent() == "spTree" {
				inShape = false
				if hasBody {
					sb.WriteString(shape.String())
					sb.WriteByte('\n')
				}
			}
		case xml.CharData:
			if inShape && stack.parent() == "t" && stack.contains("txBody") {
				shape.Write(t)
			}
		}
	})
}
