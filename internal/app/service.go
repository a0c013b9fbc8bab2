// Package service wires the resolution pipeline, the worker pool and the
// ticket session store behind the API the bot and the admin HTTP server use.
package service

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/xentee/skinticket/internal/adapters/mq/queue"
	workerpool "github.com/xentee/skinticket/internal/adapters/mq/worker"
	"github.com/xentee/skinticket/internal/adapters/repository"
	"github.com/xentee/skinticket/internal/domain/dedupe"
	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/internal/domain/ranking"
	"github.com/xentee/skinticket/internal/domain/types"
	"github.com/xentee/skinticket/pkg/logger"
	"github.com/xentee/skinticket/pkg/metrics"
)

// Service implements the dependencies of the Discord wizard and the admin API.
type Service struct {
	mu sync.RWMutex

	resolver workerpool.Resolver
	ranker   *ranking.Ranker
	sessions *repository.MemoryStore
	deduper  dedupe.Deduper
	queue    queue.Queue
	pool     *workerpool.Pool

	workerCount int
	queueSize   int
	dedupeSize  int
	ceiling     time.Duration
	sessionTTL  time.Duration

	started   bool
	startedAt time.Time
	cancel    context.CancelFunc

	logger logger.Logger
}

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of resolve workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets how many resolve jobs may wait.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets how many interaction IDs are remembered.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithResolveTimeout sets the wall-clock ceiling of one Search.
func WithResolveTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.ceiling = d
		}
	}
}

// WithSessionTTL sets how long an idle ticket session survives.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.sessionTTL = d
		}
	}
}

// WithRanker replaces the candidate ranker.
func WithRanker(r *ranking.Ranker) Option {
	return func(s *Service) {
		if r != nil {
			s.ranker = r
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// New constructs a Service around resolver. Call Start before use.
func New(resolver workerpool.Resolver, opts ...Option) *Service {
	s := &Service{
		resolver:    resolver,
		ranker:      ranking.New(),
		workerCount: 4,
		queueSize:   64,
		dedupeSize:  10000,
		ceiling:     10 * time.Second,
		sessionTTL:  3 * time.Hour,
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start initializes and starts the service components.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}

	runCtx, cancel := context.WithCancel(context.WithoutCancel(ctx))
	s.cancel = cancel

	s.sessions = repository.NewMemoryStore(
		repository.WithTTL(s.sessionTTL),
		repository.WithLogger(s.logger.Named("sessions")),
	)
	s.sessions.StartJanitor(runCtx)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = queue.NewInMemoryQueue(queue.WithCapacity(s.queueSize))
	s.pool = workerpool.NewPool(s.workerCount, s.queue, s.resolver,
		workerpool.WithLogger(s.logger.Named("worker")))
	s.pool.Start(runCtx)

	s.started = true
	s.startedAt = time.Now()
	s.logger.Info(ctx, "ticket service started",
		logger.Int("workers", s.workerCount),
		logger.Int("queueSize", s.queueSize),
		logger.Duration("resolveTimeout", s.ceiling),
		logger.Duration("sessionTTL", s.sessionTTL),
	)
	return nil
}

// Stop drains the worker pool and stops the session janitor.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx := context.Background()
	s.logger.Info(ctx, "stopping ticket service...")

	if err := s.pool.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool did not drain", logger.Error(err))
	}
	_ = s.sessions.Close()
	s.cancel()

	s.started = false
	s.logger.Info(ctx, "ticket service stopped")
}

// Search resolves and ranks query within the configured ceiling. A busy
// queue, an elapsed ceiling or a cancelled ctx all yield an empty slice;
// the abandoned resolve finishes into its buffered reply channel.
func (s *Service) Search(ctx context.Context, query string) []model.Candidate {
	start := time.Now()
	query = strings.TrimSpace(query)
	if query == "" {
		return nil
	}

	s.mu.RLock()
	q, started := s.queue, s.started
	s.mu.RUnlock()
	if !started {
		s.logger.Warn(ctx, "search before start", logger.String("query", query))
		return nil
	}

	job, reply := queue.NewJob(uuid.NewString(), query, start.Add(s.ceiling))
	if err := q.Enqueue(ctx, job); err != nil {
		metrics.RecordResolve(metrics.OutcomeBusy, time.Since(start).Seconds())
		s.logger.Warn(ctx, "resolve queue rejected job",
			logger.String("query", query),
			logger.Error(err))
		return nil
	}

	timer := time.NewTimer(s.ceiling)
	defer timer.Stop()

	select {
	case cands := <-reply:
		return s.ranker.Rank(query, cands)
	case <-timer.C:
		metrics.RecordResolve(metrics.OutcomeTimeout, time.Since(start).Seconds())
		s.logger.Warn(ctx, "resolve exceeded ceiling",
			logger.String("query", query),
			logger.Duration("ceiling", s.ceiling))
		return nil
	case <-ctx.Done():
		return nil
	}
}

// Sessions returns the ticket session store. Nil before Start.
func (s *Service) Sessions() repository.Store {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.sessions == nil {
		return nil
	}
	return s.sessions
}

// SeenAndRecord reports whether an interaction ID was already handled.
func (s *Service) SeenAndRecord(ctx context.Context, id string) bool {
	s.mu.RLock()
	d := s.deduper
	s.mu.RUnlock()
	if d == nil {
		return false
	}
	return d.SeenAndRecord(ctx, id)
}

// Unrecord forgets an interaction ID so a retry is processed.
func (s *Service) Unrecord(ctx context.Context, id string) {
	s.mu.RLock()
	d := s.deduper
	s.mu.RUnlock()
	if d != nil {
		d.Unrecord(ctx, id)
	}
}

// Stats returns a snapshot for monitoring.
func (s *Service) Stats(ctx context.Context) types.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st := types.Stats{
		Started:       s.started,
		Workers:       s.workerCount,
		QueueCapacity: s.queueSize,
	}
	if !s.started {
		return st
	}
	st.ActiveSessions = s.sessions.Len(ctx)
	st.QueueLength = s.queue.Len(ctx)
	st.ActiveWorkers = s.pool.Active()
	st.SeenIDs = s.deduper.Size()
	st.Uptime = time.Since(s.startedAt).Round(time.Second).String()

	metrics.UpdateSessionsActive(st.ActiveSessions)
	return st
}
