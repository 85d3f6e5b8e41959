package assistant

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// disallowedRunes removes everything outside letters (any script), digits,
// whitespace and a small punctuation set. User-controlled strings pass
// through here before they are interpolated into prompts or echoed back, so
// they cannot smuggle structural tokens into the model input.
var disallowedRunes = regexp.MustCompile(`[^\p{L}\p{N}\s\-.,()#]`)

var whitespaceRun = regexp.MustCompile(`\s+`)

// sanitizeFreeText trims, strips disallowed characters, collapses whitespace
// runs and caps the result at maxLen runes.
func sanitizeFreeText(s string, maxLen int) string {
	s = disallowedRunes.ReplaceAllString(s, "")
	s = whitespaceRun.ReplaceAllString(s, " ")
	s = strings.TrimSpace(s)
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		runes := []rune(s)
		s = strings.TrimSpace(string(runes[:maxLen]))
	}
	return s
}

// capitalizeTitle upper-cases the first letter and lower-cases the rest.
func capitalizeTitle(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[size:]
}

// normalizeName case-folds, trims and collapses whitespace so two
// human-entered names compare equal when a person would call them the same.
func normalizeName(s string) string {
	s = whitespaceRun.ReplaceAllString(strings.TrimSpace(s), " ")
	return strings.ToLower(s)
}
