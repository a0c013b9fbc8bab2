// Package canon maps loose weapon spellings to their official display form.
package canon

import (
	"regexp"
	"strings"
)

// Separator splits a weapon prefix from its finish.
const Separator = " | "

// Variant absorbs known spacing and hyphenation variants of one weapon name.
type Variant struct {
	Pattern   *regexp.Regexp
	Canonical string
}

// DefaultTable returns the canonical weapon names keyed by lowercase alphanumerics.
func DefaultTable() map[string]string {
	return map[string]string{
		"awp":          "AWP",
		"ak47":         "AK-47",
		"m4a4":         "M4A4",
		"m4a1s":        "M4A1-S",
		"mp9":          "MP9",
		"mp7":          "MP7",
		"mp5sd":        "MP5-SD",
		"ump45":        "UMP-45",
		"p90":          "P90",
		"ppbizon":      "PP-Bizon",
		"sg553":        "SG 553",
		"ssg08":        "SSG 08",
		"g3sg1":        "G3SG1",
		"scar20":       "SCAR-20",
		"aug":          "AUG",
		"famas":        "FAMAS",
		"galilar":      "Galil AR",
		"usps":         "USP-S",
		"p2000":        "P2000",
		"glock18":      "Glock-18",
		"p250":         "P250",
		"cz75auto":     "CZ75-Auto",
		"fiveseven":    "Five-SeveN",
		"tec9":         "Tec-9",
		"deserteagle":  "Desert Eagle",
		"dualberettas": "Dual Berettas",
		"r8revolver":   "R8 Revolver",
		"mac10":        "MAC-10",
		"nova":         "Nova",
		"xm1014":       "XM1014",
		"mag7":         "MAG-7",
		"sawedoff":     "Sawed-Off",
		"negev":        "Negev",
		"m249":         "M249",
	}
}

// DefaultVariants returns the ordered variant rules.
func DefaultVariants() []Variant {
	v := func(expr, canonical string) Variant {
		return Variant{Pattern: regexp.MustCompile(`(?i)\b` + expr + `\b`), Canonical: canonical}
	}
	return []Variant{
		v(`AK[\s-]?47`, "AK-47"),
		v(`M4A1[\s-]?S`, "M4A1-S"),
		v(`MP5[\s-]?SD`, "MP5-SD"),
		v(`UMP[\s-]?45`, "UMP-45"),
		v(`PP[\s-]?Bizon`, "PP-Bizon"),
		v(`SG[\s-]?553`, "SG 553"),
		v(`SSG[\s-]?0?8`, "SSG 08"),
		v(`SCAR[\s-]?20`, "SCAR-20"),
		v(`USP[\s-]?S`, "USP-S"),
		v(`Glock[\s-]?18`, "Glock-18"),
		v(`CZ75[\s-]?Auto`, "CZ75-Auto"),
		v(`Five[\s-]?SeveN`, "Five-SeveN"),
		v(`Tec[\s-]?9`, "Tec-9"),
		v(`R8[\s-]?Revolver`, "R8 Revolver"),
		v(`MAC[\s-]?10`, "MAC-10"),
		v(`XM[\s-]?1014`, "XM1014"),
		v(`MAG[\s-]?7`, "MAG-7"),
		v(`Sawed[\s-]?Off`, "Sawed-Off"),
	}
}

// Canonicalizer is read-only after construction and safe for concurrent use.
type Canonicalizer struct {
	table    map[string]string
	variants []Variant
}

// Option configures a Canonicalizer.
type Option func(*Canonicalizer)

// WithTable replaces the canonical table.
func WithTable(table map[string]string) Option {
	return func(c *Canonicalizer) {
		if len(table) > 0 {
			c.table = make(map[string]string, len(table))
			for k, v := range table {
				c.table[Key(k)] = v
			}
		}
	}
}

// WithVariants replaces the variant rules.
func WithVariants(variants []Variant) Option {
	return func(c *Canonicalizer) {
		if variants != nil {
			c.variants = variants
		}
	}
}

// New builds a Canonicalizer from the default tables plus options.
func New(opts ...Option) *Canonicalizer {
	c := &Canonicalizer{
		table:    DefaultTable(),
		variants: DefaultVariants(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var std = New()

// Default returns the shared Canonicalizer built from the default tables.
func Default() *Canonicalizer { return std }

// Canonicalize uses the default Canonicalizer.
func Canonicalize(s string) string { return std.Canonicalize(s) }

// Key reduces a name to lowercase ASCII letters and digits.
func Key(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= '0' && ch <= '9':
			b.WriteByte(ch)
		case ch >= 'A' && ch <= 'Z':
			b.WriteByte(ch + ('a' - 'A'))
		}
	}
	return b.String()
}

// Weapon returns the official spelling of a bare weapon prefix.
func (c *Canonicalizer) Weapon(prefix string) (string, bool) {
	s := prefix
	for _, v := range c.variants {
		s = v.Pattern.ReplaceAllLiteralString(s, v.Canonical)
	}
	name, ok := c.table[Key(s)]
	return name, ok
}

// Canonicalize rewrites the weapon prefix of "Weapon | Finish" strings.
// Strings without a separator after a non-empty prefix come back unchanged.
func (c *Canonicalizer) Canonicalize(s string) string {
	idx := strings.Index(s, Separator)
	if idx <= 0 {
		return s
	}
	name, ok := c.Weapon(s[:idx])
	if !ok {
		return s
	}
	return name + s[idx:]
}

// NormalizeLeading rewrites a weapon variant found at the very start of s,
// e.g. "Ak 47 Redline" becomes "AK-47 Redline".
func (c *Canonicalizer) NormalizeLeading(s string) string {
	for _, v := range c.variants {
		loc := v.Pattern.FindStringIndex(s)
		if loc != nil && loc[0] == 0 {
			return v.Canonical + s[loc[1]:]
		}
	}
	return s
}
