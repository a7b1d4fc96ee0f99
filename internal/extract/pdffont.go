package extract

import (
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

// pdfFont turns the bytes of a shown string into text for one font resource.
// A ToUnicode CMap wins when present; simple fonts fall back to their base
// encoding and Differences, composite fonts to nothing.
type pdfFont struct {
	toUnicode *cmap
	composite bool
	enc       *charmap.Charmap
	diffs     map[byte]rune
}

func (f *pdfFont) decode(b []byte) string {
	if f == nil {
		return decodePDFBytes(b)
	}

	var sb strings.Builder
	for i := 0; i < len(b); {
		n := f.codeWidth(b[i:])
		code := codeValue(b[i : i+n])

		if f.toUnicode != nil {
			if s, ok := f.toUnicode.lookup(code, n); ok {
				sb.WriteString(s)
				i += n
				continue
			}
		}
		if !f.composite {
			sb.WriteRune(f.simpleRune(b[i]))
		}
		i += n
	}
	return sb.String()
}

func (f *pdfFont) codeWidth(b []byte) int {
	n := 1
	if f.composite {
		n = 2
	}
	if f.toUnicode != nil {
		if w := f.toUnicode.codeWidth(b); w > 0 {
			n = w
		}
	}
	if n > len(b) {
		n = len(b)
	}
	return n
}

func (f *pdfFont) simpleRune(c byte) rune {
	if r, ok := f.diffs[c]; ok {
		return r
	}
	enc := f.enc
	if enc == nil {
		enc = charmap.Windows1252
	}
	return enc.DecodeByte(c)
}

func codeValue(b []byte) uint32 {
	var v uint32
	for _, c := range b {
		v = v<<8 | uint32(c)
	}
	return v
}

type codespace struct {
	lo, hi []byte
}

func (c codespace) matches(b []byte) bool {
	if len(b) < len(c.lo) {
		return false
	}
	for i := range c.lo {
		if b[i] < c.lo[i] || b[i] > c.hi[i] {
			return false
		}
	}
	return true
}

type cmapKey struct {
	code  uint32
	width int
}

type cmapRange struct {
	lo, hi uint32
	width  int
	dst    []byte   // UTF-16BE start value, last unit incremented across the range
	list   []string // explicit destinations, one per code
}

// cmap is a parsed ToUnicode CMap.
type cmap struct {
	spaces []codespace
	chars  map[cmapKey]string
	ranges []cmapRange
}

func (m *cmap) codeWidth(b []byte) int {
	for _, s := range m.spaces {
		if s.matches(b) {
			return len(s.lo)
		}
	}
	return 0
}

func (m *cmap) lookup(code uint32, width int) (string, bool) {
	if s, ok := m.chars[cmapKey{code, width}]; ok {
		return s, true
	}
	for _, r := range m.ranges {
		if r.width != width || code < r.lo || code > r.hi {
			continue
		}
		off := code - r.lo
		if r.list != nil {
			if int(off) < len(r.list) {
				return r.list[off], true
			}
			return "", false
		}
		if len(r.dst) < 2 {
			return "", false
		}
		units := make([]uint16, 0, len(r.dst)/2)
		for i := 0; i+1 < len(r.dst); i += 2 {
			units = append(units, uint16(r.dst[i])<<8|uint16(r.dst[i+1]))
		}
		units[len(units)-1] += uint16(off)
		return string(utf16.Decode(units)), true
	}
	return "", false
}

// cmapOperand is a string or, inside bfrange, an array of strings.
type cmapOperand struct {
	raw    []byte
	list   []string
	isList bool
}

// parseCMap reads the codespace, bfchar and bfrange sections of a ToUnicode
// CMap. Everything else in the PostScript wrapper is ignored.
func parseCMap(data []byte) *cmap {
	m := &cmap{chars: map[cmapKey]string{}}
	lex := &pdfLexer{data: data}

	var (
		operands []cmapOperand
		inArray  bool
		list     []string
	)

	for {
		tok, ok := lex.next()
		if !ok {
			break
		}

		if inArray {
			switch tok.kind {
			case tokString:
				list = append(list, utf16BE(tok.raw))
			case tokArrayEnd:
				inArray = false
				operands = append(operands, cmapOperand{list: list, isList: true})
			}
			continue
		}

		switch tok.kind {
		case tokArrayStart:
			inArray = true
			list = nil
			continue
		case tokString:
			operands = append(operands, cmapOperand{raw: tok.raw})
			continue
		case tokOperator:
		default:
			continue
		}

		switch tok.text {
		case "endcodespacerange":
			for i := 0; i+1 < len(operands); i += 2 {
				lo, hi := operands[i].raw, operands[i+1].raw
				if len(lo) == 0 || len(lo) != len(hi) {
					continue
				}
				m.spaces = append(m.spaces, codespace{lo: lo, hi: hi})
			}
		case "endbfchar":
			for i := 0; i+1 < len(operands); i += 2 {
				src, dst := operands[i], operands[i+1]
				if len(src.raw) == 0 || dst.isList {
					continue
				}
				m.chars[cmapKey{codeValue(src.raw), len(src.raw)}] = utf16BE(dst.raw)
			}
		case "endbfrange":
			for i := 0; i+2 < len(operands); i += 3 {
				lo, hi, dst := operands[i].raw, operands[i+1].raw, operands[i+2]
				if len(lo) == 0 || len(lo) != len(hi) {
					continue
				}
				r := cmapRange{lo: codeValue(lo), hi: codeValue(hi), width: len(lo)}
				if r.lo > r.hi {
					continue
				}
				if dst.isList {
					r.list = dst.list
				} else {
					r.dst = dst.raw
				}
				m.ranges = append(m.ranges, r)
			}
		}
		operands = operands[:0]
	}
	return m
}

// glyphRunes maps the glyph names seen in Differences arrays of Latin fonts.
// uniXXXX and uXXXX[XX] names are handled in glyphRune.
var glyphRunes = map[string]rune{
	"space": ' ', "exclam": '!', "quotedbl": '"', "numbersign": '#',
	"dollar": '$', "percent": '%', "ampersand": '&', "quotesingle": '\'',
	"parenleft": '(', "parenright": ')', "asterisk": '*', "plus": '+',
	"comma": ',', "hyphen": '-', "period": '.', "slash": '/',
	"zero": '0', "one": '1', "two": '2', "three": '3', "four": '4',
	"five": '5', "six": '6', "seven": '7', "eight": '8', "nine": '9',
	"colon": ':', "semicolon": ';', "less": '<', "equal": '=',
	"greater": '>', "question": '?', "at": '@', "bracketleft": '[',
	"backslash": '\\', "bracketright": ']', "asciicircum": '^',
	"underscore": '_', "grave": '`', "braceleft": '{', "bar": '|',
	"braceright": '}', "asciitilde": '~', "bullet": '\u2022',
	"endash": '\u2013', "emdash": '\u2014', "quoteleft": '\u2018',
	"quoteright": '\u2019', "quotedblleft": '\u201c',
	"quotedblright": '\u201d', "ellipsis": '\u2026', "fi": '\ufb01',
	"fl": '\ufb02', "Euro": '\u20ac', "minus": '\u2212',
}

func glyphRune(name string) (rune, bool) {
	if r, ok := glyphRunes[name]; ok {
		return r, true
	}
	if len(name) == 1 && (name[0] >= 'a' && name[0] <= 'z' || name[0] >= 'A' && name[0] <= 'Z') {
		return rune(name[0]), true
	}
	hex := ""
	switch {
	case strings.HasPrefix(name, "uni") && len(name) == 7:
		hex = name[3:]
	case strings.HasPrefix(name, "u") && len(name) >= 5 && len(name) <= 7:
		hex = name[1:]
	default:
		return 0, false
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return 0, false
	}
	return rune(v), true
}

func baseEncoding(name string) *charmap.Charmap {
	if name == "MacRomanEncoding" {
		return charmap.Macintosh
	}
	return charmap.Windows1252
}
