package scrape

import (
	"regexp"

	"github.com/xentee/skinticket/internal/domain/model"
)

// Route classifies one family of item links by their URL path.
type Route struct {
	Name     string
	Pattern  *regexp.Regexp
	Group    int
	Category model.Category
	// Legacy routes carry the real market identifier instead of a slug;
	// their category is inferred from the identifier text.
	Legacy bool
}

// Ruleset is the complete extraction configuration. Routes are tried in order
// and the first match wins; the text heuristic runs last.
type Ruleset struct {
	Routes      []Route
	CaseText    *regexp.Regexp
	NotCaseText *regexp.Regexp
	AgentText   *regexp.Regexp
	GlovesText  *regexp.Regexp
}

// DefaultRuleset matches the current pricempire link layout.
func DefaultRuleset() Ruleset {
	return Ruleset{
		Routes: []Route{
			{Name: "skin", Pattern: regexp.MustCompile(`(?i)^/cs2-items/skin/([^/?#]+)`), Group: 1, Category: model.CategorySkin},
			{Name: "gloves", Pattern: regexp.MustCompile(`(?i)^/cs2-items/gloves?/([^/?#]+)`), Group: 1, Category: model.CategoryGloves},
			{Name: "agent", Pattern: regexp.MustCompile(`(?i)^/cs2-items/agents?/([^/?#]+)`), Group: 1, Category: model.CategoryAgent},
			{Name: "case", Pattern: regexp.MustCompile(`(?i)^/cs2-items/case/([^/?#]+)`), Group: 1, Category: model.CategoryCase},
			{Name: "legacy", Pattern: regexp.MustCompile(`(?i)^/item/730/(.+)$`), Group: 1, Legacy: true},
		},
		CaseText:    regexp.MustCompile(`(?i)\bcase\b`),
		NotCaseText: regexp.MustCompile(`(?i)\b(?:sticker|patch|music kit|pins?|graffiti)\b`),
		AgentText:   regexp.MustCompile(`(?i)\bagent\b`),
		GlovesText:  regexp.MustCompile(`(?i)\b(?:gloves|wraps)\b`),
	}
}

// InferCategory guesses the category of a market identifier.
func (r Ruleset) InferCategory(identifier string) model.Category {
	switch {
	case identifier == "":
		return model.CategorySkin
	case r.AgentText.MatchString(identifier):
		return model.CategoryAgent
	case r.CaseText.MatchString(identifier):
		return model.CategoryCase
	case r.GlovesText.MatchString(identifier):
		return model.CategoryGloves
	default:
		return model.CategorySkin
	}
}

// looksLikeCase is the last-resort anchor-text heuristic.
func (r Ruleset) looksLikeCase(text string) bool {
	return r.CaseText.MatchString(text) && !r.NotCaseText.MatchString(text)
}
