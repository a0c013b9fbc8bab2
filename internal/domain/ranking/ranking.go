// Package ranking orders resolved candidates against the user's query.
package ranking

import (
	"sort"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/xentee/skinticket/internal/domain/model"
)

// Score weights.
const (
	fullQueryBonus = 50
	tokenBonus     = 10
	adjacencyBonus = 8
	weaponBonus    = 6
	casePenalty    = 20
)

// Rules holds the word lists the ranker consults.
type Rules struct {
	// WeaponTokens mark a name as a weapon, knife or glove item.
	WeaponTokens []string
	// CaseHints mark a query as being about containers.
	CaseHints []string
	// IndexTilePrefixes and IndexTileFragments recognise catalog tiles that
	// link to case listings rather than to a purchasable case.
	IndexTilePrefixes  []string
	IndexTileFragments []string
}

// DefaultRules returns the built-in word lists.
func DefaultRules() Rules {
	return Rules{
		// matched as substrings, so "ak" covers "ak-47" and "sport" covers "sport gloves"
		WeaponTokens: []string{
			"ak", "ak-47", "m4a1-s", "m4a4", "awp", "ssg", "scout", "g3sg1", "scar", "aug", "sg", "galil", "famas",
			"glock", "usp", "p2000", "p250", "cz75", "five-seven", "tec-9", "deagle", "desert", "r8",
			"mac-10", "mp9", "mp7", "mp5", "mp5-sd", "ump", "p90", "bizon",
			"nova", "xm1014", "mag-7", "sawed", "m249", "negev",
			"karambit", "bayonet", "flip", "gut", "bowie", "falchion", "huntsman", "shadow", "butterfly",
			"stiletto", "talon", "ursus", "navaja", "paracord", "survival", "classic", "nomad", "skeleton", "kukri",
			"driver", "hand wraps", "moto", "specialist", "sport", "bloodhound", "hydra", "broken fang",
		},
		CaseHints:          []string{"case", "crate", "container", "weapon case", "operation case", "esports case"},
		IndexTilePrefixes:  []string{"case index"},
		IndexTileFragments: []string{"weapon cases & special cases", "operation cases, weapon cases"},
	}
}

// Option configures a Ranker.
type Option func(*Ranker)

// WithRules replaces the word lists.
func WithRules(rules Rules) Option {
	return func(r *Ranker) {
		r.rules = normalizeRules(rules)
	}
}

// Ranker is read-only after construction and safe for concurrent use.
type Ranker struct {
	rules Rules
}

// New creates a Ranker.
func New(opts ...Option) *Ranker {
	r := &Ranker{rules: normalizeRules(DefaultRules())}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Rank filters and orders candidates. Ties keep discovery order.
func (r *Ranker) Rank(query string, candidates []model.Candidate) []model.Candidate {
	scored := r.Score(query, candidates)
	out := make([]model.Candidate, len(scored))
	for i, s := range scored {
		out[i] = s.Candidate
	}
	return out
}

// Score is Rank with the computed scores kept.
func (r *Ranker) Score(query string, candidates []model.Candidate) []model.RankedCandidate {
	q := Normalize(query)
	hinted := r.hasCaseHint(q)
	tokens := tokenize(q)

	pool := make([]model.RankedCandidate, 0, len(candidates))
	nonCase := 0
	for i, c := range candidates {
		name := Normalize(c.Name)
		if c.Category == model.CategoryCase && r.isIndexTile(name) {
			continue
		}
		if c.Category != model.CategoryCase {
			nonCase++
		}
		pool = append(pool, model.RankedCandidate{Candidate: c, Order: i})
	}

	if !hinted && nonCase > 0 {
		kept := pool[:0]
		for _, rc := range pool {
			if rc.Category != model.CategoryCase {
				kept = append(kept, rc)
			}
		}
		pool = kept
	}

	for i := range pool {
		pool[i].Score = r.score(q, tokens, hinted, pool[i].Candidate)
	}
	sort.SliceStable(pool, func(i, j int) bool { return pool[i].Score > pool[j].Score })
	return pool
}

func (r *Ranker) score(q string, tokens []string, hinted bool, c model.Candidate) int {
	name := Normalize(c.Name)
	score := 0
	if q != "" && strings.Contains(name, q) {
		score += fullQueryBonus
	}
	for _, t := range tokens {
		if strings.Contains(name, t) {
			score += tokenBonus
		}
	}
	if len(tokens) >= 2 && strings.Contains(name, tokens[0]+" "+tokens[1]) {
		score += adjacencyBonus
	}
	for _, w := range r.rules.WeaponTokens {
		if strings.Contains(name, w) {
			score += weaponBonus
			break
		}
	}
	if c.Category == model.CategoryCase && !hinted {
		score -= casePenalty
	}
	return score
}

func (r *Ranker) hasCaseHint(q string) bool {
	for _, h := range r.rules.CaseHints {
		if strings.Contains(q, h) {
			return true
		}
	}
	return false
}

// isIndexTile expects an already normalized name.
func (r *Ranker) isIndexTile(name string) bool {
	for _, p := range r.rules.IndexTilePrefixes {
		if strings.HasPrefix(name, p) {
			return true
		}
	}
	for _, f := range r.rules.IndexTileFragments {
		if strings.Contains(name, f) {
			return true
		}
	}
	return false
}

// IsIndexTile reports whether name looks like a case-index tile.
func (r *Ranker) IsIndexTile(name string) bool {
	return r.isIndexTile(Normalize(name))
}

// Normalize applies NFKC, lowercases and collapses whitespace.
func Normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(norm.NFKC.String(s))), " ")
}

func tokenize(q string) []string {
	return strings.FieldsFunc(q, func(r rune) bool { return unicode.IsSpace(r) || r == '|' })
}

func normalizeRules(rules Rules) Rules {
	each := func(in []string) []string {
		out := make([]string, 0, len(in))
		for _, s := range in {
			if n := Normalize(s); n != "" {
				out = append(out, n)
			}
		}
		return out
	}
	return Rules{
		WeaponTokens:       each(rules.WeaponTokens),
		CaseHints:          each(rules.CaseHints),
		IndexTilePrefixes:  each(rules.IndexTilePrefixes),
		IndexTileFragments: each(rules.IndexTileFragments),
	}
}

var std = New()

// Rank uses the default Ranker.
func Rank(query string, candidates []model.Candidate) []model.Candidate {
	return std.Rank(query, candidates)
}
