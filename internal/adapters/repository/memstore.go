package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/xentee/skinticket/internal/domain/model"
	"github.com/xentee/skinticket/pkg/logger"
	"github.com/xentee/skinticket/pkg/metrics"
)

// MemoryStore is a process-local Store. Sessions are lost on restart.
type MemoryStore struct {
	mu       sync.RWMutex
	sessions map[string]*model.Ticket

	ttl             time.Duration
	janitorInterval time.Duration
	now             func() time.Time
	logger          logger.Logger

	cancel context.CancelFunc
	wg     sync.WaitGroup
}

// NewMemoryStore creates a store. Expiry only happens while the janitor runs.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		sessions:        make(map[string]*model.Ticket),
		ttl:             3 * time.Hour,
		janitorInterval: time.Minute,
		now:             time.Now,
		logger:          logger.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// StartJanitor sweeps expired sessions until ctx is done or Close is called.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	ctx, cancel := context.WithCancel(ctx)
	s.mu.Lock()
	if s.cancel != nil {
		s.mu.Unlock()
		cancel()
		return
	}
	s.cancel = cancel
	s.mu.Unlock()

	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.janitorInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(ctx); n > 0 {
					s.logger.Info(ctx, "expired ticket sessions", logger.Int("count", n))
				}
			}
		}
	}()
}

// Close stops the janitor.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	cancel := s.cancel
	s.mu.Unlock()
	if cancel != nil {
		cancel()
	}
	s.wg.Wait()
	return nil
}

// Sweep removes sessions idle for longer than the TTL and returns how many.
func (s *MemoryStore) Sweep(_ context.Context) int {
	if s.ttl <= 0 {
		return 0
	}
	cutoff := s.now().Add(-s.ttl)

	s.mu.Lock()
	removed := 0
	for id, t := range s.sessions {
		if t.UpdatedAt.Before(cutoff) {
			delete(s.sessions, id)
			removed++
		}
	}
	live := len(s.sessions)
	s.mu.Unlock()

	if removed > 0 {
		metrics.RecordSessionsExpired(removed)
	}
	metrics.UpdateSessionsActive(live)
	return removed
}

func (s *MemoryStore) Create(_ context.Context, t *model.Ticket) error {
	if t == nil || t.ChannelID == "" {
		return fmt.Errorf("%w: missing channel id", ErrInvalidSession)
	}
	now := s.now()
	c := t.Clone()
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	c.UpdatedAt = now

	s.mu.Lock()
	if _, ok := s.sessions[c.ChannelID]; ok {
		s.mu.Unlock()
		return fmt.Errorf("%w: %s", ErrSessionExists, c.ChannelID)
	}
	s.sessions[c.ChannelID] = c
	live := len(s.sessions)
	s.mu.Unlock()

	metrics.UpdateSessionsActive(live)
	return nil
}

func (s *MemoryStore) Get(_ context.Context, channelID string) (*model.Ticket, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.sessions[channelID]
	if !ok || s.expired(t) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, channelID)
	}
	return t.Clone(), nil
}

func (s *MemoryStore) Update(_ context.Context, channelID string, fn func(*model.Ticket) error) (*model.Ticket, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok := s.sessions[channelID]
	if !ok || s.expired(t) {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, channelID)
	}
	work := t.Clone()
	if err := fn(work); err != nil {
		return nil, err
	}
	work.ChannelID = channelID
	work.UpdatedAt = s.now()
	s.sessions[channelID] = work
	return work.Clone(), nil
}

func (s *MemoryStore) Delete(_ context.Context, channelID string) error {
	s.mu.Lock()
	_, ok := s.sessions[channelID]
	delete(s.sessions, channelID)
	live := len(s.sessions)
	s.mu.Unlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, channelID)
	}
	metrics.UpdateSessionsActive(live)
	return nil
}

func (s *MemoryStore) Len(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.sessions)
}

// expired must be called with the lock held.
func (s *MemoryStore) expired(t *model.Ticket) bool {
	return s.ttl > 0 && t.UpdatedAt.Before(s.now().Add(-s.ttl))
}
