package scrape

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	fhttp "github.com/bogdanfinn/fhttp"
	tls_client "github.com/bogdanfinn/tls-client"
	"github.com/bogdanfinn/tls-client/profiles"
	"golang.org/x/time/rate"

	"github.com/xentee/skinticket/pkg/logger"
	"github.com/xentee/skinticket/pkg/metrics"
)

// Endpoint names used in logs and metrics.
const (
	EndpointItem   = "item"
	EndpointSearch = "search"
)

// Doer sends one request. tls_client.HttpClient satisfies it.
type Doer interface {
	Do(req *fhttp.Request) (*fhttp.Response, error)
}

// Fetcher performs rate-limited GETs against the pricing site.
type Fetcher struct {
	doer       Doer
	limiter    *rate.Limiter
	logger     logger.Logger
	baseURL    string
	appID      string
	userAgent  string
	timeout    time.Duration
	maxRetries int
	forceHTTP1 bool
	proxyURL   string
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithBaseURL sets the site root, e.g. https://pricempire.com.
func WithBaseURL(u string) FetcherOption {
	return func(f *Fetcher) {
		if u != "" {
			f.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithAppID sets the game application id passed to the search endpoint.
func WithAppID(id string) FetcherOption {
	return func(f *Fetcher) {
		if id != "" {
			f.appID = id
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) FetcherOption {
	return func(f *Fetcher) {
		if ua != "" {
			f.userAgent = ua
		}
	}
}

// WithRequestTimeout bounds each individual request.
func WithRequestTimeout(d time.Duration) FetcherOption {
	return func(f *Fetcher) {
		if d > 0 {
			f.timeout = d
		}
	}
}

// WithMaxRetries allows extra attempts after a network failure.
// Upstream status errors are never retried.
func WithMaxRetries(n int) FetcherOption {
	return func(f *Fetcher) {
		if n >= 0 {
			f.maxRetries = n
		}
	}
}

// WithRateLimit sets the shared request rate.
func WithRateLimit(rps float64, burst int) FetcherOption {
	return func(f *Fetcher) {
		if rps > 0 && burst > 0 {
			f.limiter = rate.NewLimiter(rate.Limit(rps), burst)
		}
	}
}

// WithForceHTTP1 disables HTTP/2 negotiation.
func WithForceHTTP1(force bool) FetcherOption {
	return func(f *Fetcher) {
		f.forceHTTP1 = force
	}
}

// WithProxyURL routes requests through a proxy.
func WithProxyURL(u string) FetcherOption {
	return func(f *Fetcher) {
		f.proxyURL = u
	}
}

// WithDoer replaces the HTTP client.
func WithDoer(d Doer) FetcherOption {
	return func(f *Fetcher) {
		if d != nil {
			f.doer = d
		}
	}
}

// WithFetcherLogger sets the logger.
func WithFetcherLogger(l logger.Logger) FetcherOption {
	return func(f *Fetcher) {
		if l != nil {
			f.logger = l
		}
	}
}

// NewFetcher builds a Fetcher. Unless WithDoer is given it creates a
// tls-client with a Chrome fingerprint.
func NewFetcher(opts ...FetcherOption) (*Fetcher, error) {
	f := &Fetcher{
		limiter:   rate.NewLimiter(rate.Limit(2), 2),
		logger:    logger.NewNop(),
		baseURL:   "https://pricempire.com",
		appID:     "730",
		userAgent: "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/121 Safari/537.36",
		timeout:   9 * time.Second,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.doer != nil {
		return f, nil
	}

	seconds := int((f.timeout + time.Second - 1) / time.Second)
	options := []tls_client.HttpClientOption{
		tls_client.WithTimeoutSeconds(seconds),
		tls_client.WithClientProfile(profiles.Chrome_124),
		tls_client.WithCookieJar(tls_client.NewCookieJar()),
	}
	if f.forceHTTP1 {
		options = append(options, tls_client.WithForceHttp1())
	}
	if f.proxyURL != "" {
		options = append(options, tls_client.WithProxyUrl(f.proxyURL))
	}
	client, err := tls_client.NewHttpClient(tls_client.NewNoopLogger(), options...)
	if err != nil {
		return nil, fmt.Errorf("create http client: %w", err)
	}
	f.doer = client
	return f, nil
}

// ItemURL is the direct item lookup for a raw query.
func (f *Fetcher) ItemURL(query string) string {
	return f.baseURL + "/item/" + url.PathEscape(query)
}

// SearchURL is the catalog search for a raw query.
func (f *Fetcher) SearchURL(query string) string {
	v := url.Values{}
	v.Set("app", f.appID)
	v.Set("q", query)
	return f.baseURL + "/search?" + v.Encode()
}

// Item fetches the direct item page.
func (f *Fetcher) Item(ctx context.Context, query string) ([]byte, error) {
	return f.Get(ctx, EndpointItem, f.ItemURL(query))
}

// Search fetches the catalog search page.
func (f *Fetcher) Search(ctx context.Context, query string) ([]byte, error) {
	return f.Get(ctx, EndpointSearch, f.SearchURL(query))
}

// Get fetches rawURL. A non-2xx response yields ErrUpstreamStatus and no body.
func (f *Fetcher) Get(ctx context.Context, endpoint, rawURL string) ([]byte, error) {
	start := time.Now()
	var (
		body []byte
		err  error
	)
	for attempt := 0; attempt <= f.maxRetries; attempt++ {
		if err = f.wait(ctx); err != nil {
			break
		}
		body, err = f.once(ctx, rawURL)
		if err == nil || errors.Is(err, ErrUpstreamStatus) || ctx.Err() != nil {
			break
		}
	}

	outcome := Classify(ctx, err)
	metrics.RecordFetch(endpoint, outcome, time.Since(start).Seconds())
	if err != nil {
		f.logger.Warn(ctx, "fetch failed",
			logger.String("endpoint", endpoint),
			logger.String("outcome", outcome),
			logger.Error(err))
		return nil, err
	}
	f.logger.Debug(ctx, "fetched page",
		logger.String("endpoint", endpoint),
		logger.Int("bytes", len(body)),
		logger.Duration("elapsed", time.Since(start)))
	return body, nil
}

func (f *Fetcher) wait(ctx context.Context) error {
	metrics.AddRateLimiterWaiting(1)
	defer metrics.AddRateLimiterWaiting(-1)
	if err := f.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: rate limiter: %w", ErrNetwork, err)
	}
	return nil
}

func (f *Fetcher) once(ctx context.Context, rawURL string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, f.timeout)
	defer cancel()

	req, err := fhttp.NewRequestWithContext(ctx, fhttp.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: build request: %w", ErrNetwork, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Accept-Encoding", "gzip, br")

	resp, err := f.doer.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %d", ErrUpstreamStatus, resp.StatusCode)
	}
	body, err := decodeBody(resp.Header.Get("Content-Encoding"), resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %w", ErrNetwork, err)
	}
	return body, nil
}

// Classify maps a fetch error to a metrics outcome label.
func Classify(ctx context.Context, err error) string {
	switch {
	case err == nil:
		return metrics.OutcomeOK
	case errors.Is(err, context.DeadlineExceeded), errors.Is(ctx.Err(), context.DeadlineExceeded):
		return metrics.OutcomeTimeout
	case errors.Is(err, ErrUpstreamStatus):
		return metrics.OutcomeUpstreamError
	default:
		return metrics.OutcomeNetworkFailure
	}
}
