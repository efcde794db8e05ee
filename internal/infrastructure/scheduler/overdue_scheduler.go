package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/dormsync/backend/internal/domain/billing"
	"go.uber.org/zap"
)

// tickInterval is how often the scheduler checks whether a run is due
const tickInterval = time.Minute

// OverdueSchedulerConfig holds configuration for the overdue payment sweep
type OverdueSchedulerConfig struct {
	// Enabled indicates if the scheduler runs at all
	Enabled bool
	// Hour is the local hour (0-23) of the daily sweep
	Hour int
	// Minute is the minute (0-59) of the daily sweep
	Minute int
	// JobTimeout bounds a single sweep
	JobTimeout time.Duration
}

// DefaultOverdueSchedulerConfig runs the sweep daily at 02:00
func DefaultOverdueSchedulerConfig() OverdueSchedulerConfig {
	return OverdueSchedulerConfig{
		Enabled:    true,
		Hour:       2,
		Minute:     0,
		JobTimeout: 5 * time.Minute,
	}
}

// OverdueScheduler flips pending payments past their due date to overdue
// once a day. Missed ticks (process restarts) are caught up on the next
// run since the sweep is idempotent.
type OverdueScheduler struct {
	config      OverdueSchedulerConfig
	paymentRepo billing.PaymentRepository
	logger      *zap.Logger

	mu      sync.Mutex
	lastRun time.Time
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewOverdueScheduler creates a new overdue payment scheduler
func NewOverdueScheduler(cfg OverdueSchedulerConfig, paymentRepo billing.PaymentRepository, logger *zap.Logger) *OverdueScheduler {
	return &OverdueScheduler{
		config:      cfg,
		paymentRepo: paymentRepo,
		logger:      logger,
	}
}

// Start launches the scheduler loop. It returns immediately; Stop shuts
// the loop down.
func (s *OverdueScheduler) Start() {
	if !s.config.Enabled {
		s.logger.Info("Overdue payment scheduler disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	s.cancel = cancel
	s.done = make(chan struct{})

	go s.run(ctx)

	s.logger.Info("Overdue payment scheduler started",
		zap.Int("hour", s.config.Hour),
		zap.Int("minute", s.config.Minute))
}

// Stop shuts down the scheduler loop and waits for it to exit
func (s *OverdueScheduler) Stop() {
	if s.cancel == nil {
		return
	}
	s.cancel()
	<-s.done
	s.logger.Info("Overdue payment scheduler stopped")
}

func (s *OverdueScheduler) run(ctx context.Context) {
	defer close(s.done)

	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case now := <-ticker.C:
			if s.shouldRun(now) {
				s.Sweep(ctx)
			}
		}
	}
}

// shouldRun reports whether the daily slot has been reached and no sweep
// has happened yet today
func (s *OverdueScheduler) shouldRun(now time.Time) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot := time.Date(now.Year(), now.Month(), now.Day(), s.config.Hour, s.config.Minute, 0, 0, now.Location())
	if now.Before(slot) {
		return false
	}
	if !s.lastRun.Before(slot) {
		return false
	}
	s.lastRun = now
	return true
}

// Sweep runs one overdue pass immediately
func (s *OverdueScheduler) Sweep(ctx context.Context) {
	sweepCtx, cancel := context.WithTimeout(ctx, s.config.JobTimeout)
	defer cancel()

	changed, err := s.paymentRepo.MarkOverdue(sweepCtx, time.Now())
	if err != nil {
		s.logger.Error("Overdue payment sweep failed", zap.Error(err))
		return
	}
	if changed > 0 {
		s.logger.Info("Marked payments overdue", zap.Int64("count", changed))
	}
}
