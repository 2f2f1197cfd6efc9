package extract

import (
	"html"
	"regexp"
	"strings"
)

var (
	promoSuffixRe   = regexp.MustCompile(`(?i)\s*free\s+download.*$`)
	trailingParenRe = regexp.MustCompile(`\s*\(.*\)\s*$`)
	whitespaceRe    = regexp.MustCompile(`\s+`)
)

// Stray punctuation stripped from both ends after whitespace collapse.
// The en-dash shows up in titles copied from the listing page.
const nameCutset = " -–+,:"

// CleanName turns raw anchor text into a canonical display name: trims, drops
// a trailing "free download" promo suffix and anything after it, drops one
// trailing parenthetical (typically a release year), collapses whitespace
// runs, strips stray edge punctuation and decodes HTML entities.
//
// Empty input yields empty output; callers fall back to a slug-derived name.
func CleanName(raw string) string {
	text := strings.TrimSpace(raw)
	if text == "" {
		return ""
	}
	text = strings.TrimSpace(promoSuffixRe.ReplaceAllString(text, ""))
	text = strings.TrimSpace(trailingParenRe.ReplaceAllString(text, ""))
	text = strings.Trim(whitespaceRe.ReplaceAllString(text, " "), nameCutset)
	return html.UnescapeString(text)
}
