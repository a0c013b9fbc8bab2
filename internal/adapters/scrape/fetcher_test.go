package scrape_test

import (
	"bytes"
	"compress/gzip"
	"context"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"github.com/andybalholm/brotli"
	fhttp "github.com/bogdanfinn/fhttp"
	. "github.com/smartystreets/goconvey/convey"
	"github.com/xentee/skinticket/internal/adapters/scrape"
	"github.com/xentee/skinticket/pkg/metrics"
)

type stubDoer struct {
	mu       sync.Mutex
	requests []*fhttp.Request
	respond  func(n int, req *fhttp.Request) (*fhttp.Response, error)
}

func (d *stubDoer) Do(req *fhttp.Request) (*fhttp.Response, error) {
	d.mu.Lock()
	d.requests = append(d.requests, req)
	n := len(d.requests)
	d.mu.Unlock()
	return d.respond(n, req)
}

func (d *stubDoer) calls() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.requests)
}

func response(status int, encoding string, body []byte) *fhttp.Response {
	h := fhttp.Header{}
	if encoding != "" {
		h.Set("Content-Encoding", encoding)
	}
	return &fhttp.Response{StatusCode: status, Header: h, Body: io.NopCloser(bytes.NewReader(body))}
}

func newFetcher(d scrape.Doer, opts ...scrape.FetcherOption) *scrape.Fetcher {
	opts = append([]scrape.FetcherOption{scrape.WithDoer(d), scrape.WithRateLimit(1000, 100)}, opts...)
	f, err := scrape.NewFetcher(opts...)
	So(err, ShouldBeNil)
	return f
}

func TestFetcherURLs(t *testing.T) {
	Convey("Given a fetcher for a custom site", t, func() {
		f := newFetcher(&stubDoer{}, scrape.WithBaseURL("https://example.test/"), scrape.WithAppID("570"))

		Convey("Then the item lookup escapes the query into the path", func() {
			So(f.ItemURL("ak red line"), ShouldEqual, "https://example.test/item/ak%20red%20line")
			So(f.ItemURL("a/b"), ShouldEqual, "https://example.test/item/a%2Fb")
		})

		Convey("Then the search carries the app id and query", func() {
			So(f.SearchURL("karambit tiger"), ShouldEqual, "https://example.test/search?app=570&q=karambit+tiger")
		})
	})
}

func TestFetcherGet(t *testing.T) {
	ctx := context.Background()
	html := []byte(`<a href="/cs2-items/skin/awp-asiimov">AWP</a>`)

	Convey("Given an upstream that answers 200 with plain html", t, func() {
		d := &stubDoer{respond: func(int, *fhttp.Request) (*fhttp.Response, error) {
			return response(200, "", html), nil
		}}
		f := newFetcher(d, scrape.WithUserAgent("test-agent/1.0"))

		body, err := f.Item(ctx, "awp")

		Convey("Then the body is returned and the user agent sent", func() {
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, string(html))
			So(d.calls(), ShouldEqual, 1)
			So(d.requests[0].Header.Get("User-Agent"), ShouldEqual, "test-agent/1.0")
			So(d.requests[0].Method, ShouldEqual, fhttp.MethodGet)
		})
	})

	Convey("Given an upstream that compresses with brotli", t, func() {
		var buf bytes.Buffer
		w := brotli.NewWriter(&buf)
		_, _ = w.Write(html)
		_ = w.Close()
		d := &stubDoer{respond: func(int, *fhttp.Request) (*fhttp.Response, error) {
			return response(200, "br", buf.Bytes()), nil
		}}

		Convey("Then the body is inflated", func() {
			body, err := newFetcher(d).Search(ctx, "awp")
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, string(html))
		})
	})

	Convey("Given an upstream that compresses with gzip", t, func() {
		var buf bytes.Buffer
		w := gzip.NewWriter(&buf)
		_, _ = w.Write(html)
		_ = w.Close()
		d := &stubDoer{respond: func(int, *fhttp.Request) (*fhttp.Response, error) {
			return response(200, "gzip", buf.Bytes()), nil
		}}

		Convey("Then the body is inflated", func() {
			body, err := newFetcher(d).Search(ctx, "awp")
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, string(html))
		})
	})

	Convey("Given an upstream that mislabels plain html as gzip", t, func() {
		d := &stubDoer{respond: func(int, *fhttp.Request) (*fhttp.Response, error) {
			return response(200, "gzip", html), nil
		}}

		Convey("Then the raw body is kept", func() {
			body, err := newFetcher(d).Item(ctx, "awp")
			So(err, ShouldBeNil)
			So(string(body), ShouldEqual, string(html))
		})
	})

	Convey("Given an upstream that answers 503", t, func() {
		d := &stubDoer{respond: func(int, *fhttp.Request) (*fhttp.Response, error) {
			return response(503, "", []byte("busy")), nil
		}}
		f := newFetcher(d, scrape.WithMaxRetries(1))

		body, err := f.Item(ctx, "awp")

		Convey("Then no body is returned and the status is not retried", func() {
			So(body, ShouldBeNil)
			So(errors.Is(err, scrape.ErrUpstreamStatus), ShouldBeTrue)
			So(d.calls(), ShouldEqual, 1)
			So(scrape.Classify(ctx, err), ShouldEqual, metrics.OutcomeUpstreamError)
		})
	})

	Convey("Given an upstream that fails at the network level once", t, func() {
		d := &stubDoer{respond: func(n int, _ *fhttp.Request) (*fhttp.Response, error) {
			if n == 1 {
				return nil, errors.New("connection reset")
			}
			return response(200, "", html), nil
		}}

		Convey("When one retry is allowed", func() {
			body, err := newFetcher(d, scrape.WithMaxRetries(1)).Item(ctx, "awp")

			Convey("Then the second attempt succeeds", func() {
				So(err, ShouldBeNil)
				So(string(body), ShouldEqual, string(html))
				So(d.calls(), ShouldEqual, 2)
			})
		})

		Convey("When retries are disabled", func() {
			_, err := newFetcher(d).Item(ctx, "awp")

			Convey("Then the network error is reported", func() {
				So(errors.Is(err, scrape.ErrNetwork), ShouldBeTrue)
				So(d.calls(), ShouldEqual, 1)
				So(scrape.Classify(ctx, err), ShouldEqual, metrics.OutcomeNetworkFailure)
			})
		})
	})

	Convey("Given a context that is already cancelled", t, func() {
		d := &stubDoer{respond: func(int, *fhttp.Request) (*fhttp.Response, error) {
			return response(200, "", html), nil
		}}
		f := newFetcher(d, scrape.WithRateLimit(0.001, 1))
		_, _ = f.Item(ctx, "drain the single token")

		cctx, cancel := context.WithCancel(ctx)
		cancel()

		Convey("Then the rate limiter gives up without calling upstream", func() {
			_, err := f.Item(cctx, "awp")
			So(errors.Is(err, scrape.ErrNetwork), ShouldBeTrue)
			So(d.calls(), ShouldEqual, 1)
		})
	})

	Convey("Given a deadline that has passed", t, func() {
		dctx, cancel := context.WithTimeout(ctx, time.Nanosecond)
		defer cancel()
		<-dctx.Done()

		Convey("Then errors are classified as timeouts", func() {
			So(scrape.Classify(dctx, errors.New("boom")), ShouldEqual, metrics.OutcomeTimeout)
			So(scrape.Classify(ctx, nil), ShouldEqual, metrics.OutcomeOK)
		})
	})
}
