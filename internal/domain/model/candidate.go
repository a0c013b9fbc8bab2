// Package model contains domain models passed between layers.
package model

import "strings"

// Category is the kind of a tradeable item. It is inferred, not authoritative.
type Category string

// Known categories.
const (
	CategorySkin   Category = "skin"
	CategoryGloves Category = "gloves"
	CategoryAgent  Category = "agent"
	CategoryCase   Category = "case"
)

// ParseCategory maps a stored category string back to a Category.
// Unknown values fall back to skin.
func ParseCategory(s string) Category {
	switch Category(strings.ToLower(strings.TrimSpace(s))) {
	case CategoryGloves:
		return CategoryGloves
	case CategoryAgent:
		return CategoryAgent
	case CategoryCase:
		return CategoryCase
	default:
		return CategorySkin
	}
}

// Candidate is a provisional match for a user query.
type Candidate struct {
	Name             string   `json:"name"`              // cleaned display string
	MarketIdentifier string   `json:"market_identifier"` // canonical lookup key
	Category         Category `json:"category"`
}

// Key is the case-insensitive identity used for deduplication.
func (c Candidate) Key() string {
	if c.MarketIdentifier != "" {
		return strings.ToLower(c.MarketIdentifier)
	}
	return strings.ToLower(c.Name)
}

// RankedCandidate carries a transient score used only for ordering.
type RankedCandidate struct {
	Candidate
	Score int
	Order int // discovery position
}
