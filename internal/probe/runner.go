package probe

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/xentee/skinticket/pkg/logger"
)

// Run checks health, then replays cfg.Queries across cfg.Workers goroutines.
// Results keep submission order.
func Run(ctx context.Context, cfg Config, log logger.Logger) (*Report, error) {
	cfg = cfg.withDefaults()
	if log == nil {
		log = logger.NewNop()
	}
	client := NewClient(cfg.BaseURL, cfg.Timeout)

	if err := client.Health(ctx); err != nil {
		return nil, fmt.Errorf("service health check failed: %w", err)
	}

	total := len(cfg.Queries) * cfg.Rounds
	log.Info(ctx, "starting resolve probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", total),
		logger.Int("workers", cfg.Workers))

	start := time.Now()
	results := make([]Result, total)
	jobs := make(chan int, cfg.Workers*2)

	var wg sync.WaitGroup
	for range cfg.Workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range jobs {
				q := cfg.Queries[i%len(cfg.Queries)]
				results[i] = probeOne(ctx, client, q)
				log.Debug(ctx, "probe result",
					logger.String("query", q),
					logger.String("outcome", string(results[i].Outcome)),
					logger.Duration("latency", results[i].Latency))
			}
		}()
	}

feed:
	for i := range total {
		select {
		case <-ctx.Done():
			break feed
		case jobs <- i:
		}
	}
	close(jobs)
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r := summarize(results)
	r.Duration = time.Since(start)
	log.Info(ctx, "probe completed",
		logger.Int("found", r.Found),
		logger.Int("empty", r.Empty),
		logger.Int("rejected", r.Rejected),
		logger.Int("failed", r.Failed),
		logger.Duration("mean", r.Mean),
		logger.Duration("slowest", r.Slowest))
	return r, nil
}

func probeOne(ctx context.Context, client *Client, q string) Result {
	start := time.Now()
	resp, err := client.Resolve(ctx, q)
	res := Result{Query: q, Latency: time.Since(start)}

	var se *StatusError
	switch {
	case errors.As(err, &se) && se.Code == http.StatusBadRequest:
		res.Outcome = OutcomeRejected
	case err != nil:
		res.Outcome = OutcomeFailed
	case len(resp.Candidates) == 0:
		res.Outcome = OutcomeEmpty
	default:
		res.Outcome = OutcomeFound
		res.Candidates = len(resp.Candidates)
		res.Top = resp.Candidates[0].Name
	}
	return res
}

func summarize(results []Result) *Report {
	r := &Report{Sent: len(results), Results: results}
	var sum time.Duration
	for _, res := range results {
		switch res.Outcome {
		case OutcomeFound:
			r.Found++
		case OutcomeEmpty:
			r.Empty++
		case OutcomeRejected:
			r.Rejected++
		case OutcomeFailed:
			r.Failed++
		}
		sum += res.Latency
		r.Slowest = max(r.Slowest, res.Latency)
	}
	if len(results) > 0 {
		r.Mean = sum / time.Duration(len(results))
	}
	return r
}
