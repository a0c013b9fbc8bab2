package service

import (
	"bytes"
	"context"
	"strings"
	"time"

	"github.com/xentee/skinticket/internal/adapters/scrape"
	"github.com/xentee/skinticket/internal/domain/dedupe"
	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/internal/domain/prettify"
	"github.com/xentee/skinticket/pkg/logger"
	"github.com/xentee/skinticket/pkg/metrics"
)

// Source fetches the two pricing-site pages a resolve may need.
// *scrape.Fetcher satisfies it.
type Source interface {
	Item(ctx context.Context, query string) ([]byte, error)
	Search(ctx context.Context, query string) ([]byte, error)
}

// Cache remembers resolve results. Implementations must fail open.
type Cache interface {
	Get(ctx context.Context, query string) ([]model.Candidate, bool)
	Set(ctx context.Context, query string, candidates []model.Candidate)
}

// Resolver turns a free-text query into a bounded, deduplicated candidate
// list in discovery order.
type Resolver struct {
	source     Source
	extractor  *scrape.Extractor
	prettifier *prettify.Prettifier
	cache      Cache
	threshold  int
	limit      int
	logger     logger.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithFallbackThreshold sets how many primary results suffice to skip search.
func WithFallbackThreshold(n int) ResolverOption {
	return func(r *Resolver) {
		if n >= 0 {
			r.threshold = n
		}
	}
}

// WithMaxCandidates caps the result size.
func WithMaxCandidates(n int) ResolverOption {
	return func(r *Resolver) {
		if n > 0 {
			r.limit = n
		}
	}
}

// WithCache enables the result cache.
func WithCache(c Cache) ResolverOption {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithExtractor replaces the HTML extractor.
func WithExtractor(e *scrape.Extractor) ResolverOption {
	return func(r *Resolver) {
		if e != nil {
			r.extractor = e
		}
	}
}

// WithPrettifier replaces the name prettifier.
func WithPrettifier(p *prettify.Prettifier) ResolverOption {
	return func(r *Resolver) {
		if p != nil {
			r.prettifier = p
		}
	}
}

// WithResolverLogger sets the logger.
func WithResolverLogger(l logger.Logger) ResolverOption {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// NewResolver creates a Resolver over source.
func NewResolver(source Source, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		source:     source,
		extractor:  scrape.NewExtractor(),
		prettifier: prettify.New(),
		threshold:  3,
		limit:      15,
		logger:     logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve never fails: network, upstream, parse and empty outcomes all
// yield an empty slice and are reported through logs and metrics.
func (r *Resolver) Resolve(ctx context.Context, query string) []model.Candidate {
	start := time.Now()
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	if r.cache != nil {
		if cached, ok := r.cache.Get(ctx, query); ok {
			metrics.RecordResolve(metrics.OutcomeCached, time.Since(start).Seconds())
			return capped(cached, r.limit)
		}
	}

	var (
		acc     []model.Candidate
		lastErr error
	)
	body, err := r.source.Item(ctx, query)
	if err != nil {
		lastErr = err
	}
	acc = r.extract(ctx, scrape.EndpointItem, body, acc)

	if len(acc) < r.threshold {
		body, err = r.source.Search(ctx, query)
		if err != nil {
			lastErr = err
		}
		acc = r.extract(ctx, scrape.EndpointSearch, body, acc)
	}

	out := capped(r.unique(ctx, acc), r.limit)

	outcome := metrics.OutcomeOK
	switch {
	case len(out) == 0 && lastErr != nil:
		outcome = scrape.Classify(ctx, lastErr)
	case len(out) == 0:
		outcome = metrics.OutcomeEmptyResult
	}
	metrics.RecordResolve(outcome, time.Since(start).Seconds())
	metrics.RecordCandidates(len(out))
	r.logger.Debug(ctx, "resolved query",
		logger.String("query", query),
		logger.String("outcome", outcome),
		logger.Int("candidates", len(out)),
		logger.Duration("elapsed", time.Since(start)))

	if r.cache != nil && len(out) > 0 {
		r.cache.Set(ctx, query, out)
	}
	return out
}

func (r *Resolver) extract(ctx context.Context, endpoint string, body []byte, acc []model.Candidate) []model.Candidate {
	if len(body) == 0 {
		return acc
	}
	raws, err := r.extractor.Extract(bytes.NewReader(body))
	if err != nil {
		metrics.RecordErrorByComponent("resolver", "parse")
		r.logger.Warn(ctx, "html parse failed", logger.String("endpoint", endpoint), logger.Error(err))
		return acc
	}
	for _, raw := range raws {
		name := r.prettifier.Prettify(raw.Label)
		if name == "" {
			continue
		}
		id := raw.Identifier
		if id == "" {
			id = name
		}
		acc = append(acc, model.Candidate{Name: name, MarketIdentifier: id, Category: raw.Category})
	}
	return acc
}

// unique keeps the first candidate per case-folded identifier.
func (r *Resolver) unique(ctx context.Context, in []model.Candidate) []model.Candidate {
	seen := dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(0), dedupe.WithKeyFunc(strings.ToLower))
	out := make([]model.Candidate, 0, len(in))
	for _, c := range in {
		id := c.MarketIdentifier
		if id == "" {
			id = c.Name
		}
		if id == "" || seen.SeenAndRecord(ctx, id) {
			continue
		}
		out = append(out, c)
	}
	return out
}

func capped(in []model.Candidate, limit int) []model.Candidate {
	if limit > 0 && len(in) > limit {
		return in[:limit]
	}
	return in
}
