package validators

import "strings"

// SanitizeString trims surrounding whitespace and caps the result at maxLen
// runes. A maxLen of zero or less disables the cap.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen <= 0 {
		return trimmed
	}
	runes := []rune(trimmed)
	if len(runes) > maxLen {
		return string(runes[:maxLen])
	}
	return trimmed
}
