// Package prettify turns raw listing strings into clean "Weapon | Finish" names.
package prettify

import (
	"regexp"
	"sort"
	"strings"

	"github.com/xentee/skinticket/internal/domain/canon"
)

// Rule is one ordered textual rewrite.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp
	Replace string
}

// DefaultNoiseRules strips marketing and price noise. Order matters: later
// rules assume the earlier ones already ran.
func DefaultNoiseRules() []Rule {
	const amount = `\$\s?\d[\d,]*(?:\.\d+)?`
	return []Rule{
		{Name: "stattrak", Pattern: regexp.MustCompile(`(?i)StatTrak™\s*`)},
		{Name: "price_range", Pattern: regexp.MustCompile(amount + `\s*-\s*` + amount)},
		{Name: "listed", Pattern: regexp.MustCompile(`(?i)(?:-\s*)?(?:\d+\s*|\b)listed\b`)},
		{Name: "souvenir", Pattern: regexp.MustCompile(`(?i)\(?\bSouvenir\b\)?[\s|:–-]*`)},
		{Name: "souvenir_fused", Pattern: regexp.MustCompile(`(?i:souvenir)([A-Z0-9])`), Replace: "$1"},
		{Name: "container", Pattern: regexp.MustCompile(`^Container([A-Z])`), Replace: "$1"},
		// listing tiles end in "$7." so the trailing dot goes with the price
		{Name: "amount", Pattern: regexp.MustCompile(amount + `\.?`)},
	}
}

// DefaultCatalog lists weapon, knife and glove names that may be fused to a finish.
func DefaultCatalog() []string {
	return []string{
		// knives
		"Karambit", "Butterfly Knife", "M9 Bayonet", "Bayonet", "Flip Knife", "Gut Knife",
		"Huntsman Knife", "Falchion Knife", "Bowie Knife", "Shadow Daggers", "Navaja Knife",
		"Stiletto Knife", "Talon Knife", "Ursus Knife", "Classic Knife", "Paracord Knife",
		"Survival Knife", "Nomad Knife", "Skeleton Knife", "Kukri Knife",
		// rifles
		"AK-47", "M4A4", "M4A1-S", "AWP", "SSG 08", "SG 553", "AUG", "FAMAS", "Galil AR",
		"SCAR-20", "G3SG1",
		// pistols
		"Glock-18", "USP-S", "P2000", "P250", "Five-SeveN", "Tec-9", "CZ75-Auto",
		"Desert Eagle", "R8 Revolver", "Dual Berettas",
		// SMGs
		"MP9", "MP7", "MP5-SD", "UMP-45", "P90", "PP-Bizon", "MAC-10",
		// heavy
		"Nova", "XM1014", "MAG-7", "Sawed-Off", "Negev", "M249",
		// gloves
		"Driver Gloves", "Hand Wraps", "Moto Gloves", "Specialist Gloves", "Sport Gloves",
		"Bloodhound Gloves", "Hydra Gloves", "Broken Fang Gloves",
	}
}

var spaces = regexp.MustCompile(`[\s\p{Zs}]+`)

// maxPasses bounds the fixed-point loop in Prettify.
const maxPasses = 8

// Prettifier is immutable after construction and safe for concurrent use.
type Prettifier struct {
	noise    []Rule
	canon    *canon.Canonicalizer
	fused    *regexp.Regexp
	anchored *regexp.Regexp
}

// Option configures a Prettifier.
type Option func(*options)

type options struct {
	noise   []Rule
	catalog []string
	canon   *canon.Canonicalizer
}

// WithNoiseRules replaces the noise-stripping rules.
func WithNoiseRules(rules []Rule) Option {
	return func(o *options) {
		if rules != nil {
			o.noise = rules
		}
	}
}

// WithCatalog replaces the fused-name catalog.
func WithCatalog(names []string) Option {
	return func(o *options) {
		if len(names) > 0 {
			o.catalog = names
		}
	}
}

// WithCanonicalizer sets the weapon canonicalizer.
func WithCanonicalizer(c *canon.Canonicalizer) Option {
	return func(o *options) {
		if c != nil {
			o.canon = c
		}
	}
}

// New compiles a Prettifier.
func New(opts ...Option) *Prettifier {
	o := options{
		noise:   DefaultNoiseRules(),
		catalog: DefaultCatalog(),
		canon:   canon.Default(),
	}
	for _, opt := range opts {
		opt(&o)
	}

	names := append([]string(nil), o.catalog...)
	// longest first so "M9 Bayonet" wins over "Bayonet"
	sort.SliceStable(names, func(i, j int) bool { return len(names[i]) > len(names[j]) })
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = regexp.QuoteMeta(n)
	}
	alt := strings.Join(quoted, "|")

	return &Prettifier{
		noise:    o.noise,
		canon:    o.canon,
		fused:    regexp.MustCompile(`(?i:` + alt + `)`),
		anchored: regexp.MustCompile(`^(?i:(` + alt + `))\s+(.+)$`),
	}
}

var std = New()

// Prettify uses the default Prettifier.
func Prettify(raw string) string { return std.Prettify(raw) }

// Prettify cleans raw and reconstructs a "Weapon | Finish" display form.
// Cleanup is repeated until the string is stable, so applying Prettify to
// its own output returns the same string.
func (p *Prettifier) Prettify(raw string) string {
	s := raw
	for range maxPasses {
		next := p.pass(s)
		if next == s {
			break
		}
		s = next
	}
	return s
}

// pass runs every cleanup step once. Splitting can expose noise that was
// glued to a weapon name, e.g. "KarambitSouvenir", which the next pass strips.
func (p *Prettifier) pass(s string) string {
	for _, r := range p.noise {
		s = r.Pattern.ReplaceAllString(s, r.Replace)
	}
	s = collapse(s)
	s = collapse(p.canon.NormalizeLeading(s))
	s = p.splitFused(s)
	s = p.splitLeading(s)
	return trimSeparators(collapse(p.canon.Canonicalize(s)))
}

// splitFused inserts a separator after catalog names glued to an uppercase
// letter or digit, e.g. "AK-47RedLine".
func (p *Prettifier) splitFused(s string) string {
	locs := p.fused.FindAllStringIndex(s, -1)
	if len(locs) == 0 {
		return s
	}
	var b strings.Builder
	b.Grow(len(s) + 3*len(locs))
	last := 0
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		// a name right after an inserted separator counts as a word start
		if start > 0 && start != last && isAlnum(s[start-1]) {
			continue
		}
		if end >= len(s) || !isUpperOrDigit(s[end]) {
			continue
		}
		b.WriteString(s[last:end])
		b.WriteString(canon.Separator)
		last = end
	}
	b.WriteString(s[last:])
	return b.String()
}

// splitLeading turns "AK-47 Redline" into "AK-47 | Redline".
func (p *Prettifier) splitLeading(s string) string {
	m := p.anchored.FindStringSubmatch(s)
	if m == nil || strings.HasPrefix(m[2], "|") {
		return s
	}
	return m[1] + canon.Separator + m[2]
}

// trimSeparators drops "|" left dangling at either end once the text beside
// it was removed as noise.
func trimSeparators(s string) string {
	return strings.TrimSpace(strings.Trim(s, " |"))
}

func collapse(s string) string {
	return strings.TrimSpace(spaces.ReplaceAllString(s, " "))
}

func isAlnum(ch byte) bool {
	return ch >= 'a' && ch <= 'z' || ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}

func isUpperOrDigit(ch byte) bool {
	return ch >= 'A' && ch <= 'Z' || ch >= '0' && ch <= '9'
}
