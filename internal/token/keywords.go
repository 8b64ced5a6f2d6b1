package token

import "strings"

// Keywords is the canonical BASIC V2 token table. Entry i encodes as 0x80+i.
// Placeholders in braces stand for codes with no printable keyword.
var Keywords = [128]string{
	"END", "FOR", "NEXT", "DATA", "INPUT#", "INPUT", "DIM", "READ",
	"LET", "GOTO", "RUN", "IF", "RESTORE", "GOSUB", "RETURN", "REM",
	"STOP", "ON", "WAIT", "LOAD", "SAVE", "VERIFY", "DEF", "POKE",
	"PRINT#", "PRINT", "CONT", "LIST", "CLR", "CMD", "SYS", "OPEN",
	"CLOSE", "GET", "NEW", "TAB(", "TO", "FN", "SPC(", "THEN",
	"NOT", "STEP", "+", "-", "*", "/", "^", "AND",
	"OR", ">", "=", "<", "SGN", "INT", "ABS", "USR",
	"FRE", "POS", "SQR", "RND", "LOG", "EXP", "COS", "SIN",
	"TAN", "ATN", "PEEK", "LEN", "STR$", "VAL", "ASC", "CHR$",
	"LEFT$", "RIGHT$", "MID$", "GO", "{cc}", "{cd}", "{ce}", "{cf}",
	"{d0}", "{d1}", "{d2}", "{d3}", "{d4}", "{d5}", "{d6}", "{d7}",
	"{d8}", "{d9}", "{da}", "{db}", "{dc}", "{dd}", "{de}", "{df}",
	"{e0}", "{e1}", "{e2}", "{e3}", "{e4}", "{e5}", "{e6}", "{e7}",
	"{e8}", "{e9}", "{ea}", "{eb}", "{ec}", "{ed}", "{ee}", "{ef}",
	"{f0}", "{f1}", "{f2}", "{f3}", "{f4}", "{f5}", "{f6}", "{f7}",
	"{f8}", "{f9}", "{fa}", "{fb}", "{fc}", "{fd}", "{fe}", "{pi}",
}

const (
	// FirstCode is the byte value of Keywords[0].
	FirstCode byte = 0x80
	// CodeREM is the byte value of REM.
	CodeREM byte = 0x8F
)

// MatchPrefix returns the byte code of the first table entry that is a
// case-sensitive prefix of s, and the entry length.
func MatchPrefix(s string) (code byte, n int, ok bool) {
	for i, kw := range Keywords {
		if strings.HasPrefix(s, kw) {
			return FirstCode + byte(i), len(kw), true
		}
	}
	return 0, 0, false
}

// Keyword returns the table text for a byte code.
func Keyword(code byte) (string, bool) {
	if code < FirstCode {
		return "", false
	}
	return Keywords[code-FirstCode], true
}

var keywordSet = buildKeywordSet()

// buildKeywordSet derives the word list used by the keyword sanity check:
// real keywords only, with the "(" of TAB( and SPC( dropped.
func buildKeywordSet() map[string]struct{} {
	set := make(map[string]struct{}, len(Keywords))
	for _, kw := range Keywords {
		if strings.HasPrefix(kw, "{") {
			continue
		}
		set[strings.TrimSuffix(kw, "(")] = struct{}{}
	}
	// не в таблице токенов, но легальны в листингах
	set["THEN"] = struct{}{}
	set["ELSE"] = struct{}{}
	set["PI"] = struct{}{}
	set["$"] = struct{}{}
	return set
}

// LookupKeyword reports whether the upper-cased word is a BASIC keyword.
func LookupKeyword(upper string) bool {
	_, ok := keywordSet[upper]
	return ok
}
