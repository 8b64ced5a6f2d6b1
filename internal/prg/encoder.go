// Package prg encodes BASIC V2 source text into a tokenized PRG image: a
// two-byte load address followed by a linked list of lines and a 0x0000
// end marker. Encoding never fails; anything suspicious becomes a
// diagnostic and the output is still produced.
package prg

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"fortio.org/safecast"
	"golang.org/x/text/encoding/charmap"

	"basv2/internal/diag"
	"basv2/internal/token"
)

// DefaultLoadAddress is where BASIC programs live on the C64.
const DefaultLoadAddress uint16 = 0x0801

const maxLineNumber = 65535

// Options control encoding.
type Options struct {
	LoadAddress    uint16
	InvertCase     bool
	AutoNumber     bool
	TrimSpaces     bool
	CollapseSpaces bool
}

// DefaultOptions returns options with the standard load address.
func DefaultOptions() Options {
	return Options{LoadAddress: DefaultLoadAddress}
}

// Line describes one encoded line.
type Line struct {
	Number uint16
	Row    uint32
	Addr   uint16 // address of this line's header
	Next   uint16 // link to the next header
	Body   []byte // tokenized content including the 0x00 terminator
}

// Result is the output of Encode.
type Result struct {
	Bytes       []byte
	Lines       []Line
	Diagnostics []diag.Diagnostic
}

type encoder struct {
	opts     Options
	rep      diag.Reporter
	lastLine int
	addr     uint32
	wrapped  bool
	out      []byte
	lines    []Line
}

// Encode tokenizes src. Identical input and options give identical bytes.
func Encode(src string, opts Options) Result {
	bag := diag.NewBag(0)
	e := &encoder{
		opts:     opts,
		rep:      &diag.BagReporter{Bag: bag},
		lastLine: -1,
		addr:     uint32(opts.LoadAddress),
		out:      make([]byte, 0, len(src)+4),
	}
	e.out = binary.LittleEndian.AppendUint16(e.out, opts.LoadAddress)
	for idx, raw := range splitLines(src) {
		if raw == "" {
			continue
		}
		row, err := safecast.Conv[uint32](idx + 1)
		if err != nil {
			panic(fmt.Errorf("row overflow: %w", err))
		}
		e.encodeLine(raw, row)
	}
	e.out = binary.LittleEndian.AppendUint16(e.out, 0)
	return Result{Bytes: e.out, Lines: e.lines, Diagnostics: bag.Items()}
}

// splitLines splits on \n, \r\n and lone \r, so no \r reaches a line body.
func splitLines(src string) []string {
	src = strings.ReplaceAll(src, "\r\n", "\n")
	src = strings.ReplaceAll(src, "\r", "\n")
	return strings.Split(src, "\n")
}

func (e *encoder) encodeLine(raw string, row uint32) {
	line := raw
	if e.opts.InvertCase {
		line = invertCase(line)
	}

	num, content := e.lineNumber(line, row)
	if e.opts.TrimSpaces {
		content = strings.TrimSpace(content)
	}
	body := e.tokenize(content, diag.At(int(num), row))

	next := e.addr + uint32(len(body)) + 4
	link, err := safecast.Conv[uint16](next)
	if err != nil {
		if !e.wrapped {
			diag.ReportWarning(e.rep, diag.PrgAddressOverflow, diag.At(int(num), row),
				fmt.Sprintf("Program exceeds $FFFF at line %d; link addresses wrap", num)).Emit()
			e.wrapped = true
		}
		link = uint16(next & 0xFFFF)
	}

	e.lines = append(e.lines, Line{
		Number: num,
		Row:    row,
		Addr:   uint16(e.addr & 0xFFFF),
		Next:   link,
		Body:   body,
	})
	e.out = binary.LittleEndian.AppendUint16(e.out, link)
	e.out = binary.LittleEndian.AppendUint16(e.out, num)
	e.out = append(e.out, body...)
	e.addr = uint32(link)
}

// lineNumber parses the leading digits. The whitespace after them is not
// part of the line body.
func (e *encoder) lineNumber(line string, row uint32) (uint16, string) {
	rest := strings.TrimLeftFunc(line, unicode.IsSpace)
	n := 0
	for n < len(rest) && rest[n] >= '0' && rest[n] <= '9' {
		n++
	}
	digits := rest[:n]
	rest = strings.TrimLeftFunc(rest[n:], unicode.IsSpace)

	var num int
	switch {
	case digits != "":
		v, err := strconv.ParseUint(digits, 10, 64)
		if err != nil || v > maxLineNumber {
			num = maxLineNumber + 1
		} else {
			num = int(v)
		}
	case e.opts.AutoNumber:
		num = e.lastLine + 1
		diag.ReportInfo(e.rep, diag.PrgAutoNumber, diag.At(num, row),
			fmt.Sprintf("auto-numbering %d", num)).Emit()
	default:
		num = 0
	}
	if num > maxLineNumber {
		diag.ReportWarning(e.rep, diag.PrgLineClamped, diag.At(maxLineNumber, row),
			fmt.Sprintf("Line number %s clamped to %d", numberText(digits, num), maxLineNumber)).Emit()
		num = maxLineNumber
	}
	e.lastLine = num
	return uint16(num), rest
}

func numberText(digits string, num int) string {
	if digits != "" {
		return digits
	}
	return strconv.Itoa(num)
}

// tokenize replaces keywords outside strings and comments with their
// token bytes and copies everything else as Latin-1.
func (e *encoder) tokenize(content string, at diag.Pos) []byte {
	out := make([]byte, 0, len(content)+1)
	quoted, rem := false, false
	replaced := 0

	for i := 0; i < len(content); {
		r, size := utf8.DecodeRuneInString(content[i:])
		if e.opts.CollapseSpaces && !quoted && !rem && unicode.IsSpace(r) {
			i += size
			continue
		}
		if r == '"' {
			quoted = !quoted
		}
		if !quoted && !rem {
			if code, n, ok := token.MatchPrefix(content[i:]); ok {
				if code == token.CodeREM {
					rem = true
				}
				out = append(out, code)
				i += n
				continue
			}
		}
		switch {
		case r == utf8.RuneError && size == 1:
			// байт не из UTF-8: копируем как есть
			out = append(out, content[i])
		default:
			b, ok := charmap.ISO8859_1.EncodeRune(r)
			if !ok {
				b = '?'
				replaced++
			}
			out = append(out, b)
		}
		i += size
	}

	if replaced > 0 {
		diag.ReportWarning(e.rep, diag.PrgCharReplaced, at,
			fmt.Sprintf("Replaced %d unrepresentable character(s) with '?'", replaced)).Emit()
	}
	if len(out) == 0 {
		out = append(out, ' ')
	}
	return append(out, 0)
}

func invertCase(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case unicode.IsUpper(r):
			return unicode.ToLower(r)
		case unicode.IsLower(r):
			return unicode.ToUpper(r)
		}
		return r
	}, s)
}
