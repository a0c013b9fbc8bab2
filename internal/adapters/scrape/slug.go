package scrape

import (
	"regexp"
	"strings"
	"unicode"
)

var (
	slugSeparators = regexp.MustCompile(`[-_]+`)
	wordStart      = regexp.MustCompile(`\b[a-z]`)
)

// acronyms are applied after title-casing, in order.
var acronyms = []struct {
	pattern *regexp.Regexp
	replace string
}{
	{regexp.MustCompile(`(?i)\bCs2\b`), "CS2"},
	{regexp.MustCompile(`\bAwp\b`), "AWP"},
	{regexp.MustCompile(`\bUsp S\b`), "USP-S"},
	{regexp.MustCompile(`\bSsg 08\b`), "SSG 08"},
}

// TitleFromSlug turns "ak-47-redline" into "Ak 47 Redline".
func TitleFromSlug(slug string) string {
	s := slugSeparators.ReplaceAllString(slug, " ")
	s = strings.Join(strings.Fields(s), " ")
	s = wordStart.ReplaceAllStringFunc(s, func(m string) string {
		return string(unicode.ToUpper(rune(m[0])))
	})
	for _, a := range acronyms {
		s = a.pattern.ReplaceAllString(s, a.replace)
	}
	return s
}
