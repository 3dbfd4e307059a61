package textutil

import "strings"

// FileToken maps value onto the ASCII set [A-Za-z0-9_-] so it can be used
// as a file name stem. Case is kept because video ids are case-sensitive.
func FileToken(value string) string {
	value = strings.TrimSpace(value)
	if value == "" {
		return "unknown"
	}
	return strings.Map(func(r rune) rune {
		if isTokenRune(r) {
			return r
		}
		return '_'
	}, value)
}

func isTokenRune(r rune) bool {
	return r == '-' || r == '_' ||
		('0' <= r && r <= '9') ||
		('a' <= r && r <= 'z') ||
		('A' <= r && r <= 'Z')
}
