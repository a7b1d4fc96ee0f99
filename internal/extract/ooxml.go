package extract

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
)

var errMissingPart = errors.New("missing package part")

func readZipPart(zr *zip.Reader, name string) ([]byte, error) {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", name, err)
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%w: %s", errMissingPart, name)
}

// xmlStack tracks the local names of the open elements while walking a token
// stream.
type xmlStack []string

func (s *xmlStack) push(name string) { *s = append(*s, name) }

func (s *xmlStack) pop() {
	if len(*s) > 0 {
		*s = (*s)[:len(*s)-1]
	}
}

func (s xmlStack) parent() string {
	if len(s) == 0 {
		return ""
	}
	return s[len(s)-1]
}

func (s xmlStack) contains(names ...string) bool {
	for _, el := range s {
		for _, n := range names {
			if el == n {
				return true
			}
		}
	}
	return false
}

// walkXML feeds every token of data to fn, keeping stack current: on a start
// element the stack does not yet include it, on an end element it no longer
// does.
func walkXML(data []byte, fn func(tok xml.Token, stack xmlStack)) error {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Strict = false

	var stack xmlStack
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return fmt.Errorf("xml: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			fn(t, stack)
			stack.push(t.Name.Local)
		case xml.EndElement:
			stack.pop()
			fn(t, stack)
		default:
			fn(t, stack)
		}
	}
}
