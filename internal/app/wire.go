package service

import (
	"github.com/xentee/skinticket/internal/adapters/cache"
	"github.com/xentee/skinticket/internal/adapters/scrape"
	"github.com/xentee/skinticket/internal/config"
	"github.com/xentee/skinticket/pkg/logger"
)

// NewResolverFromConfig builds the fetcher, the optional redis cache and the
// resolver they feed. Nothing is dialed until the first resolve.
func NewResolverFromConfig(cfg *config.Config, log logger.Logger) (*Resolver, error) {
	fetcher, err := scrape.NewFetcher(
		scrape.WithBaseURL(cfg.BaseURL),
		scrape.WithAppID(cfg.AppID),
		scrape.WithUserAgent(cfg.UserAgent),
		scrape.WithRequestTimeout(cfg.RequestTimeout()),
		scrape.WithMaxRetries(cfg.MaxRetries),
		scrape.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
		scrape.WithForceHTTP1(cfg.ForceHTTP1),
		scrape.WithProxyURL(cfg.ProxyURL),
		scrape.WithFetcherLogger(log.Named("scrape")),
	)
	if err != nil {
		return nil, err
	}

	opts := []ResolverOption{
		WithFallbackThreshold(cfg.FallbackThreshold),
		WithMaxCandidates(cfg.MaxCandidates),
		WithResolverLogger(log.Named("resolver")),
	}
	if cfg.RedisAddr != "" {
		opts = append(opts, WithCache(cache.Dial(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB,
			cache.WithTTL(cfg.CacheTTL()),
			cache.WithLogger(log.Named("cache")),
		)))
	}
	return NewResolver(fetcher, opts...), nil
}

// OptionsFromConfig maps the worker and session settings onto Service options.
func OptionsFromConfig(cfg *config.Config, log logger.Logger) []Option {
	return []Option{
		WithLogger(log.Named("service")),
		WithWorkerCount(cfg.WorkerCount),
		WithQueueSize(cfg.QueueSize),
		WithDedupeSize(cfg.DedupeSize),
		WithResolveTimeout(cfg.ResolveTimeout()),
		WithSessionTTL(cfg.SessionTTL()),
	}
}
