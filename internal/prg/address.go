package prg

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseAddress accepts "0x0801", "$0801" or decimal "2049".
func ParseAddress(s string) (uint16, error) {
	s = strings.TrimSpace(s)
	base, digits := 10, s
	switch {
	case strings.HasPrefix(s, "0x"), strings.HasPrefix(s, "0X"):
		base, digits = 16, s[2:]
	case strings.HasPrefix(s, "$"):
		base, digits = 16, s[1:]
	}
	v, err := strconv.ParseUint(digits, base, 16)
	if err != nil {
		return 0, fmt.Errorf("invalid load address %q: %w", s, err)
	}
	return uint16(v), nil
}

// FormatAddress renders an address as $XXXX.
func FormatAddress(a uint16) string {
	return fmt.Sprintf("$%04X", a)
}
