package extractor

import (
	"strings"
	"unicode"
)

const maxTitleLength = 50

// SanitizeTitle derives a safe filename stem from a video title. Letters,
// digits, spaces, dashes, and underscores are kept; everything else becomes
// an underscore. The result is trimmed and capped at 50 runes, falling back
// to "audio" when nothing usable remains.
func SanitizeTitle(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case r == ' ' || r == '-' || r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	safe := strings.TrimSpace(b.String())
	if runes := []rune(safe); len(runes) > maxTitleLength {
		safe = strings.TrimSpace(string(runes[:maxTitleLength]))
	}
	if safe == "" {
		return "audio"
	}
	return safe
}
