package extract

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

type pdfTokenKind int

const (
	tokOperator pdfTokenKind = iota
	tokString
	tokNumber
	tokArrayStart
	tokArrayEnd
	tokName
	tokOther
)

// pdfToken is one lexed item. Strings keep their raw bytes in raw because
// their meaning depends on the font in effect; operators and names use text.
type pdfToken struct {
	kind pdfTokenKind
	text string
	raw  []byte
	num  float64
}

// pdfLexer splits a page content stream into tokens. It understands just
// enough of the syntax to find text-showing operators and their operands.
type pdfLexer struct {
	data []byte
	pos  int
}

func isPDFSpace(c byte) bool {
	switch c {
	case ' ', '\t', '\r', '\n', '\f', 0:
		return true
	}
	return false
}

func isPDFDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *pdfLexer) next() (pdfToken, bool) {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isPDFSpace(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		case c == '(':
			l.pos++
			return pdfToken{kind: tokString, raw: l.literal()}, true
		case c == '<':
			if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
				l.pos += 2
				return pdfToken{kind: tokOther}, true
			}
			l.pos++
			return pdfToken{kind: tokString, raw: l.hex()}, true
		case c == '>':
			l.pos++
			if l.pos < len(l.data) && l.data[l.pos] == '>' {
				l.pos++
			}
			return pdfToken{kind: tokOther}, true
		case c == '[':
			l.pos++
			return pdfToken{kind: tokArrayStart}, true
		case c == ']':
			l.pos++
			return pdfToken{kind: tokArrayEnd}, true
		case c == '/':
			l.pos++
			return pdfToken{kind: tokName, text: l.word()}, true
		case c == '{' || c == '}' || c == ')':
			l.pos++
		default:
			w := l.word()
			if n, err := strconv.ParseFloat(w, 64); err == nil {
				return pdfToken{kind: tokNumber, num: n}, true
			}
			return pdfToken{kind: tokOperator, text: w}, true
		}
	}
	return pdfToken{}, false
}

func (l *pdfLexer) word() string {
	start := l.pos
	for l.pos < len(l.data) && !isPDFSpace(l.data[l.pos]) && !isPDFDelim(l.data[l.pos]) {
		l.pos++
	}
	if l.pos == start && l.pos < len(l.data) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

// literal reads a (string) body; the opening paren is already consumed.
func (l *pdfLexer) literal() []byte {
	var b []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
			b = append(b, c)
		case ')':
			depth--
			if depth == 0 {
				return b
			}
			b = append(b, c)
		case '\\':
			if l.pos >= len(l.data) {
				break
			}
			e := l.data[l.pos]
			l.pos++
			switch e {
			case 'n':
				b = append(b, '\n')
			case 'r':
				b = append(b, '\r')
			case 't':
				b = append(b, '\t')
			case 'b':
				b = append(b, '\b')
			case 'f':
				b = append(b, '\f')
			case '\r':
				if l.pos < len(l.data) && l.data[l.pos] == '\n' {
					l.pos++
				}
			case '\n':
			default:
				if e >= '0' && e <= '7' {
					v := int(e - '0')
					for k := 0; k < 2 && l.pos < len(l.data); k++ {
						d := l.data[l.pos]
						if d < '0' || d > '7' {
							break
						}
						v = v*8 + int(d-'0')
						l.pos++
					}
					b = append(b, byte(v))
				} else {
					b = append(b, e)
				}
			}
		default:
			b = append(b, c)
		}
	}
	return b
}

// hex reads a <hex string> body; the opening bracket is already consumed.
func (l *pdfLexer) hex() []byte {
	var b []byte
	hi := -1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			break
		}
		v, ok := hexNibble(c)
		if !ok {
			continue
		}
		if hi < 0 {
			hi = v
		} else {
			b = append(b, byte(hi<<4|v))
			hi = -1
		}
	}
	if hi >= 0 {
		b = append(b, byte(hi<<4))
	}
	return b
}

func hexNibble(c byte) (int, bool) {
	switch {
	case c >= '0' && c <= '9':
		return int(c - '0'), true
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10, true
	case c >= 'A' && c <= 'F':
		return int(c-'A') + 10, true
	}
	return 0, false
}

// decodePDFBytes treats strings with a UTF-16BE byte order mark as UTF-16
// and everything else as WinAnsi.
func decodePDFBytes(b []byte) string {
	if len(b) >= 2 && b[0] == 0xFE && b[1] == 0xFF {
		return utf16BE(b[2:])
	}
	s, err := charmap.Windows1252.NewDecoder().Bytes(b)
	if err != nil {
		return string(b)
	}
	return string(s)
}

func utf16BE(b []byte) string {
	u := make([]uint16, 0, len(b)/2)
	for i := 0; i+1 < len(b); i += 2 {
		u = append(u, uint16(b[i])<<8|uint16(b[i+1]))
	}
	return string(utf16.Decode(u))
}

// textFromContentStream collects the text shown by Tj, TJ, ' and ". Text
// objects and vertical moves start a new line; wide negative kerning inside
// TJ arrays becomes a space. Strings are decoded with the font selected by
// the last Tf; fonts missing from fonts fall back to decodePDFBytes.
func textFromContentStream(data []byte, fonts map[string]*pdfFont) string {
	lex := &pdfLexer{data: data}

	var (
		sb       strings.Builder
		operands []pdfToken
		inArray  bool
		array    strings.Builder
		newline  bool
		space    bool
		font     *pdfFont
	)

	write := func(s string) {
		if s == "" {
			return
		}
		if sb.Len() > 0 {
			if newline {
				sb.WriteByte('\n')
			} else if space {
				sb.WriteByte(' ')
			}
		}
		newline, space = false, false
		sb.WriteString(s)
	}

	lastString := func() string {
		for i := len(operands) - 1; i >= 0; i-- {
			if operands[i].kind == tokString {
				if operands[i].raw == nil {
					return operands[i].text
				}
				return font.decode(operands[i].raw)
			}
		}
		return ""
	}

	for {
		tok, ok := lex.next()
		if !ok {
			break
		}

		if inArray {
			switch tok.kind {
			case tokString:
				array.WriteString(font.decode(tok.raw))
			case tokNumber:
				if tok.num < -250 {
					array.WriteByte(' ')
				}
			case tokArrayEnd:
				inArray = false
				operands = append(operands, pdfToken{kind: tokString, text: array.String()})
			}
			continue
		}

		switch tok.kind {
		case tokArrayStart:
			inArray = true
			array.Reset()
			continue
		case tokOperator:
		default:
			operands = append(operands, tok)
			continue
		}

		switch tok.text {
		case "Tf":
			font = nil
			if len(operands) >= 2 && operands[len(operands)-2].kind == tokName {
				font = fonts[operands[len(operands)-2].text]
			}
		case "Tj", "TJ":
			write(lastString())
		case "'", "\"":
			newline = true
			write(lastString())
		case "T*", "ET", "Tm":
			newline = true
		case "Td", "TD":
			if len(operands) >= 2 && operands[len(operands)-1].kind == tokNumber {
				if operands[len(operands)-1].num != 0 {
					newline = true
				} else if operands[len(operands)-2].kind == tokNumber && operands[len(operands)-2].num != 0 {
					space = true
				}
			}
		case "ID":
			lex.skipInlineImage()
		}
		operands = operands[:0]
	}

	return sb.String()
}

// skipInlineImage moves past binary inline image data up to the EI operator.
func (l *pdfLexer) skipInlineImage() {
	for l.pos+2 <= len(l.data) {
		if l.data[l.pos] == 'E' && l.data[l.pos+1] == 'I' &&
			(l.pos == 0 || isPDFSpace(l.data[l.pos-1])) &&
			(l.pos+2 == len(l.data) || isPDFSpace(l.data[l.pos+2])) {
			l.pos += 2
			return
		}
		l.pos++
	}
	l.pos = len(l.data)
}
