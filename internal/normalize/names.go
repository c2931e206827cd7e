package normalize

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var multiSpace = regexp.MustCompile(`\s+`)

// TitleName trims, collapses whitespace, and title-cases every word.
// "ali  HASSAN" → "Ali Hassan".
func TitleName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	s = multiSpace.ReplaceAllString(s, " ")
	// cases.Caser is stateful; build one per call.
	return cases.Title(language.Und).String(s)
}
