package validators

import (
	"strings"
	"unicode"
)

// SanitizeString trims input, drops control characters so header values
// cannot split log lines, and caps the result at maxLen bytes without
// cutting a rune in half.
func SanitizeString(input string, maxLen int) string {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, strings.TrimSpace(input))
	if maxLen <= 0 || len(cleaned) <= maxLen {
		return cleaned
	}
	cut := maxLen
	for cut > 0 && !utf8RuneStart(cleaned[cut]) {
		cut--
	}
	return cleaned[:cut]
}

func utf8RuneStart(b byte) bool {
	return b&0xC0 != 0x80
}
