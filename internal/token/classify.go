package token

import "strings"

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') }
func isAlnum(c byte) bool  { return isDigit(c) || isLetter(c) }

// IsDigits reports whether s is a non-empty run of decimal digits.
// Line-number targets must look like this.
func IsDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return true
}

// IsNumber reports whether s is a numeric literal: digits with an optional
// decimal point (".5" and "1." included) and an optional E exponent.
func IsNumber(s string) bool {
	i, digits := 0, 0
	for i < len(s) && isDigit(s[i]) {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && isDigit(s[i]) {
			i++
			digits++
		}
	}
	if digits == 0 {
		return false
	}
	if i < len(s) && (s[i] == 'E' || s[i] == 'e') {
		i++
		if i < len(s) && (s[i] == '+' || s[i] == '-') {
			i++
		}
		for i < len(s) && isDigit(s[i]) {
			i++
		}
	}
	return i == len(s)
}

// IsIdentifier reports whether s is a letter followed by letters or digits,
// optionally one $ or % suffix that may itself be followed by letters or digits
// (I%2 is read as I%).
func IsIdentifier(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	i := 1
	for i < len(s) && isAlnum(s[i]) {
		i++
	}
	if i < len(s) && (s[i] == '$' || s[i] == '%') {
		i++
		for i < len(s) && isAlnum(s[i]) {
			i++
		}
	}
	return i == len(s)
}

// IsLoopVar reports whether s names a FOR/NEXT control variable:
// letters or digits after a leading letter, with an optional final $ or %.
func IsLoopVar(s string) bool {
	if s == "" || !isLetter(s[0]) {
		return false
	}
	i := 1
	for i < len(s) && isAlnum(s[i]) {
		i++
	}
	if i < len(s) && (s[i] == '$' || s[i] == '%') {
		i++
	}
	return i == len(s)
}

// IsQuoted reports whether s is a complete string literal.
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"'
}

// StartsWithLetter reports whether the first byte of s is an ASCII letter.
func StartsWithLetter(s string) bool {
	return s != "" && isLetter(s[0])
}

// IsChannelWord reports whether upper is a keyword glued to a channel
// number, such as PRINT#1 or GET#2.
func IsChannelWord(upper string) bool {
	for _, kw := range [...]string{"PRINT#", "INPUT#", "GET#"} {
		if rest, ok := strings.CutPrefix(upper, kw); ok {
			return rest == "" || IsDigits(rest)
		}
	}
	return false
}

// IsSeparator reports whether c is a character the lexer always splits on.
func IsSeparator(c byte) bool {
	return strings.IndexByte(":;,()", c) >= 0
}

// IsOperatorChar reports whether c is a single-character operator.
func IsOperatorChar(c byte) bool {
	return strings.IndexByte("=<>+-*/^", c) >= 0
}

// IsRelational reports whether s is a (possibly merged) relational operator.
func IsRelational(s string) bool {
	switch s {
	case "=", "<", ">", "<=", ">=", "<>":
		return true
	}
	return false
}

// IsOperator reports whether the upper-cased token is any expression operator.
func IsOperator(upper string) bool {
	switch upper {
	case "+", "-", "*", "/", "^", "AND", "OR":
		return true
	}
	return IsRelational(upper)
}
