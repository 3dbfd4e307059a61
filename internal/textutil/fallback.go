package textutil

import "strings"

// Fallback returns value, or placeholder when value is blank.
func Fallback(value, placeholder string) string {
	if strings.TrimSpace(value) == "" {
		return placeholder
	}
	return value
}
