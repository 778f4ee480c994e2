package engine

import (
	"strings"

	"github.com/anatolykoptev/go-kit/strutil"
	"golang.org/x/text/cases"
)

// ContainsFold reports whether substr is within s under Unicode case folding.
func ContainsFold(s, substr string) bool {
	if substr == "" {
		return true
	}
	// A Caser keeps state between calls and is not safe to share.
	fold := cases.Fold()
	return strings.Contains(fold.String(s), fold.String(substr))
}

// TruncateRunes caps s at limit runes, appending suffix if truncated.
// Pass suffix="" for no suffix. Safe for UTF-8 (Cyrillic, CJK, emoji).
func TruncateRunes(s string, limit int, suffix string) string {
	return strutil.TruncateWith(s, limit, suffix)
}

// TruncateAtWord truncates a string to maxLen runes at a word boundary.
func TruncateAtWord(s string, maxLen int) string {
	return strutil.TruncateAtWord(s, maxLen)
}

// NormSpace trims s and collapses inner whitespace runs to one space.
func NormSpace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
