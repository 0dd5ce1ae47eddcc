package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/homedeck/internal/logger"
)

// Sweeper removes expired sessions and reports how many were dropped.
type Sweeper interface {
	Sweep(now time.Time) int
}

// SessionSweeper periodically purges expired sessions from a store that has
// no native expiry (the in-memory backend).
type SessionSweeper struct {
	store    Sweeper
	logger   logger.Logger
	interval time.Duration
	now      func() time.Time
	stopCh   chan struct{}
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(store Sweeper, log logger.Logger, interval time.Duration) *SessionSweeper {
	return &SessionSweeper{
		store:    store,
		logger:   log,
		interval: interval,
		now:      time.Now,
		stopCh:   make(chan struct{}),
	}
}

// Start runs one sweep immediately, then one per interval until Stop or ctx
// cancellation.
func (s *SessionSweeper) Start(ctx context.Context) {
	s.Collect()

	ticker := time.NewTicker(s.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				s.Collect()
			case <-s.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()
}

// Stop stops the sweeper
func (s *SessionSweeper) Stop() {
	close(s.stopCh)
}

// Collect runs a single sweep.
func (s *SessionSweeper) Collect() int {
	removed := s.store.Sweep(s.now())
	if removed > 0 {
		s.logger.Info("expired sessions removed", logger.Int("count", removed))
	} else {
		s.logger.Debug("no expired sessions to remove")
	}
	return removed
}
