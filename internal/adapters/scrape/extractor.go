// Package scrape fetches pricing-site pages and extracts item links from them.
package scrape

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/pkg/logger"
	"github.com/xentee/skinticket/pkg/metrics"
)

// RouteTextHeuristic names candidates found by anchor text alone.
const RouteTextHeuristic = "text"

// RawCandidate is an extracted link before prettification.
type RawCandidate struct {
	Label string
	// Identifier is set only when the link encodes the market identifier.
	Identifier string
	Category   model.Category
	Route      string
}

// Extractor scans anchors of an HTML document. It is safe for concurrent use.
type Extractor struct {
	rules  Ruleset
	logger logger.Logger
}

// ExtractorOption configures an Extractor.
type ExtractorOption func(*Extractor)

// WithRuleset replaces the route table.
func WithRuleset(r Ruleset) ExtractorOption {
	return func(e *Extractor) {
		e.rules = r
	}
}

// WithExtractorLogger sets the logger.
func WithExtractorLogger(l logger.Logger) ExtractorOption {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// NewExtractor creates an Extractor with the default ruleset.
func NewExtractor(opts ...ExtractorOption) *Extractor {
	e := &Extractor{
		rules:  DefaultRuleset(),
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns candidates in document order. Links that match no rule
// are ignored.
func (e *Extractor) Extract(r io.Reader) ([]RawCandidate, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}

	var out []RawCandidate
	doc.Find("a[href]").Each(func(_ int, a *goquery.Selection) {
		href, _ := a.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" {
			return
		}
		text := strings.Join(strings.Fields(a.Text()), " ")
		if c, ok := e.classify(href, text); ok {
			metrics.RecordExtracted(c.Route)
			out = append(out, c)
		}
	})

	e.logger.Debug(context.Background(), "extracted candidates", logger.Int("count", len(out)))
	return out, nil
}

func (e *Extractor) classify(href, text string) (RawCandidate, bool) {
	path := linkPath(href)
	if text == "" {
		text = lastSegmentTitle(path)
	}

	for _, rt := range e.rules.Routes {
		m := rt.Pattern.FindStringSubmatch(path)
		if m == nil || rt.Group >= len(m) {
			continue
		}
		segment := m[rt.Group]
		if rt.Legacy {
			id, err := url.PathUnescape(segment)
			if err != nil {
				id = segment
			}
			id = strings.Join(strings.Fields(id), " ")
			label := id
			if label == "" {
				label = text
			}
			if label == "" {
				return RawCandidate{}, false
			}
			return RawCandidate{
				Label:      label,
				Identifier: id,
				Category:   e.rules.InferCategory(label),
				Route:      rt.Name,
			}, true
		}
		if unescaped, err := url.PathUnescape(segment); err == nil {
			segment = unescaped
		}
		label := TitleFromSlug(segment)
		if label == "" {
			return RawCandidate{}, false
		}
		return RawCandidate{Label: label, Category: rt.Category, Route: rt.Name}, true
	}

	if text != "" && e.rules.looksLikeCase(text) {
		return RawCandidate{Label: text, Category: model.CategoryCase, Route: RouteTextHeuristic}, true
	}
	return RawCandidate{}, false
}

// linkPath returns the escaped path of href, which may be absolute or relative.
func linkPath(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		if i := strings.IndexAny(href, "?#"); i >= 0 {
			return href[:i]
		}
		return href
	}
	p := u.EscapedPath()
	if p != "" && !strings.HasPrefix(p, "/") && u.Host == "" {
		p = "/" + p
	}
	return p
}

func lastSegmentTitle(path string) string {
	parts := strings.FieldsFunc(path, func(r rune) bool { return r == '/' })
	if len(parts) == 0 {
		return ""
	}
	last := parts[len(parts)-1]
	if s, err := url.PathUnescape(last); err == nil {
		last = s
	}
	return TitleFromSlug(last)
}
