package extract

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"unicode/utf16"

	"golang.org/x/text/encoding/charmap"
)

var errRTFUnbalanced = errors.New("unbalanced braces")

// extractRTF never fails on bad markup: the permissively decoded raw content
// is returned instead, with a warning.
func extractRTF(_ context.Context, path string) (string, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", "", err
	}
	raw := strings.ToValidUTF8(string(data), "")

	text, err := stripRTF(raw)
	if err != nil {
		return raw, fmt.Sprintf("could not parse RTF markup, using raw content: %v", err), nil
	}
	return text, "", nil
}

// Destinations whose content is never document text.
var rtfSkipDestinations = map[string]bool{
	"aftncn": true, "aftnsep": true, "aftnsepc": true, "annotation": true,
	"atnauthor": true, "atndate": true, "atnicn": true, "atnid": true,
	"atnparent": true, "atnref": true, "atntime": true, "atrfend": true,
	"atrfstart": true, "author": true, "background": true, "bkmkend": true,
	"bkmkstart": true, "buptim": true, "category": true, "colortbl": true,
	"comment": true, "company": true, "creatim": true, "datafield": true,
	"do": true, "doccomm": true, "docvar": true, "dptxbxtext": true,
	"falt": true, "fchars": true, "ffdeftext": true, "ffentrymcr": true,
	"ffexitmcr": true, "ffformat": true, "ffhelptext": true, "ffl": true,
	"ffname": true, "ffstattext": true, "file": true,
	"filetbl": true, "fldinst": true, "fldtype": true, "fname": true,
	"fontemb": true, "fontfile": true, "fonttbl": true, "footer": true,
	"footerf": true, "footerl": true, "footerr": true, "footnote": true,
	"formfield": true, "ftncn": true, "ftnsep": true, "ftnsepc": true,
	"g": true, "generator": true, "gridtbl": true, "header": true,
	"headerf": true, "headerl": true, "headerr": true, "hl": true,
	"hlfr": true, "hlinkbase": true, "hlloc": true, "hlsrc": true,
	"hsv": true, "htmltag": true, "info": true, "keycode": true,
	"keywords": true, "latentstyles": true, "lchars": true,
	"levelnumbers": true, "leveltext": true, "lfolevel": true,
	"linkval": true, "list": true, "listlevel": true, "listname": true,
	"listoverride": true, "listoverridetable": true, "listpicture": true,
	"liststylename": true, "listtable": true, "listtext": true,
	"lsdlockedexcept": true, "macc": true, "maccPr": true, "mailmerge": true,
	"manager": true, "nesttableprops": true, "nextfile": true,
	"nonesttables": true, "nonshppict": true, "objalias": true,
	"objclass": true, "objdata": true, "object": true, "objname": true,
	"objsect": true, "objtime": true, "oldcprops": true, "oldpprops": true,
	"oldsprops": true, "oldtprops": true, "operator": true, "panose": true,
	"password": true, "passwordhash": true, "pgp": true, "pgptbl": true,
	"picprop": true, "pict": true, "pn": true, "pnseclvl": true,
	"pntext": true, "pntxta": true, "pntxtb": true, "printim": true,
	"private": true, "propname": true, "protend": true, "protstart": true,
	"protusertbl": true, "pxe": true, "revtbl": true,
	"revtim": true, "rsidtbl": true, "rxe": true, "shp": true,
	"shpgrp": true, "shpinst": true, "shppict": true, "shprslt": true,
	"shptxt": true, "sn": true, "sp": true, "staticval": true,
	"stylesheet": true, "subject": true, "sv": true, "svb": true,
	"tc": true, "template": true, "themedata": true, "title": true,
	"txe": true, "ud": true, "upr": true, "userprops": true,
	"wgrffmtfilter": true, "windowcaption": true, "writereservation": true,
	"writereservhash": true, "xe": true, "xform": true, "xmlattrname": true,
	"xmlattrvalue": true, "xmlclose": true, "xmlname": true, "xmlnstbl": true,
	"xmlopen": true,
}

// Control words that stand for a character.
var rtfSpecial = map[string]string{
	"par": "\n", "sect": "\n\n", "page": "\n\n", "line": "\n", "row": "\n",
	"cell": "|", "nestcell": "|", "tab": "\t",
	"emdash": "\u2014", "endash": "\u2013", "emspace": "\u2003",
	"enspace": "\u2002", "qmspace": "\u2005", "bullet": "\u2022",
	"lquote": "\u2018", "rquote": "\u2019", "ldblquote": "\u201c",
	"rdblquote": "\u201d",
}

type rtfGroup struct {
	skip   bool
	ucSkip int
}

type rtfParser struct {
	src   string
	pos   int
	out   strings.Builder
	state rtfGroup
	stack []rtfGroup
	cmap  *charmap.Charmap
	// pending high surrogate from a \u control word
	high rune
	// characters still to drop after a \u control word
	toSkip int
}

func stripRTF(src string) (string, error) {
	p := &rtfParser{src: src, state: rtfGroup{ucSkip: 1}, cmap: charmap.Windows1252}
	if err := p.parse(); err != nil {
		return "", err
	}
	return p.out.String(), nil
}

func (p *rtfParser) emit(s string) {
	if p.state.skip {
		return
	}
	p.out.WriteString(s)
}

func (p *rtfParser) emitByte(c byte) {
	if p.state.skip {
		return
	}
	p.out.WriteByte(c)
}

// consumeSkip drops one fallback character after \uN. It reports whether the
// current character was swallowed.
func (p *rtfParser) consumeSkip() bool {
	if p.toSkip > 0 {
		p.toSkip--
		return true
	}
	return false
}

func (p *rtfParser) parse() error {
	for p.pos < len(p.src) {
		c := p.src[p.pos]
		switch c {
		case '{':
			p.pos++
			p.toSkip = 0
			p.stack = append(p.stack, p.state)
		case '}':
			p.pos++
			p.toSkip = 0
			if len(p.stack) == 0 {
				return fmt.Errorf("%w: unexpected '}' at offset %d", errRTFUnbalanced, p.pos-1)
			}
			p.state = p.stack[len(p.stack)-1]
			p.stack = p.stack[:len(p.stack)-1]
		case '\\':
			p.pos++
			p.control()
		case '\r', '\n':
			p.pos++
		default:
			p.pos++
			if p.consumeSkip() {
				continue
			}
			p.emitByte(c)
		}
	}
	if len(p.stack) != 0 {
		return fmt.Errorf("%w: %d unclosed groups", errRTFUnbalanced, len(p.stack))
	}
	return nil
}

// control handles what follows a backslash.
func (p *rtfParser) control() {
	if p.pos >= len(p.src) {
		return
	}
	c := p.src[p.pos]

	if !isASCIILetter(c) {
		p.pos++
		switch c {
		case '\\', '{', '}':
			if !p.consumeSkip() {
				p.emitByte(c)
			}
		case '~':
			p.emit("\u00a0")
		case '_':
			p.emit("-")
		case '*':
			p.state.skip = true
		case '\'':
			p.hexByte()
		case '\r', '\n':
			p.emit("\n")
		}
		return
	}

	start := p.pos
	for p.pos < len(p.src) && isASCIILetter(p.src[p.pos]) {
		p.pos++
	}
	word := p.src[start:p.pos]

	numStart := p.pos
	if p.pos < len(p.src) && p.src[p.pos] == '-' {
		p.pos++
	}
	for p.pos < len(p.src) && p.src[p.pos] >= '0' && p.src[p.pos] <= '9' {
		p.pos++
	}
	arg, hasArg := 0, false
	if p.pos > numStart {
		if n, err := strconv.Atoi(p.src[numStart:p.pos]); err == nil {
			arg, hasArg = n, true
		}
	}
	if p.pos < len(p.src) && p.src[p.pos] == ' ' {
		p.pos++
	}

	switch {
	case word == "u" && hasArg:
		p.unicode(arg)
	case word == "uc" && hasArg:
		p.state.ucSkip = arg
	case word == "ansicpg" && hasArg:
		if m := codePage(arg); m != nil {
			p.cmap = m
		}
	case word == "bin" && hasArg:
		if arg > 0 {
			p.pos = min(p.pos+arg, len(p.src))
		}
	case rtfSkipDestinations[word]:
		p.state.skip = true
	default:
		if s, ok := rtfSpecial[word]; ok {
			p.emit(s)
		}
	}
}

func (p *rtfParser) hexByte() {
	if p.pos+2 > len(p.src) {
		p.pos = len(p.src)
		return
	}
	hi, ok1 := hexNibble(p.src[p.pos])
	lo, ok2 := hexNibble(p.src[p.pos+1])
	p.pos += 2
	if !ok1 || !ok2 {
		return
	}
	if p.consumeSkip() {
		return
	}
	p.emit(string(p.cmap.DecodeByte(byte(hi<<4 | lo))))
}

func (p *rtfParser) unicode(n int) {
	if n < 0 {
		n += 0x10000
	}
	r := rune(n)
	p.toSkip = p.state.ucSkip

	switch {
	case utf16.IsSurrogate(r) && r < 0xDC00:
		p.high = r
	case utf16.IsSurrogate(r) && p.high != 0:
		p.emit(string(utf16.DecodeRune(p.high, r)))
		p.high = 0
	default:
		p.high = 0
		p.emit(string(r))
	}
}

func isASCIILetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func codePage(n int) *charmap.Charmap {
	switch n {
	case 437:
		return charmap.CodePage437
	case 850:
		return charmap.CodePage850
	case 852:
		return charmap.CodePage852
	case 866:
		return charmap.CodePage866
	case 874:
		return charmap.Windows874
	case 1250:
		return charmap.Windows1250
	case 1251:
		return charmap.Windows1251
	case 1252:
		return charmap.Windows1252
	case 1253:
		return charmap.Windows1253
	case 1254:
		return charmap.Windows1254
	case 1255:
		return charmap.Windows1255
	case 1256:
		return charmap.Windows1256
	case 1257:
		return charmap.Windows1257
	case 1258:
		return charmap.Windows1258
	case 10000:
		return charmap.Macintosh
	}
	return nil
}
