package scheduler

import (
	"context"
	"testing"
	"time"

	"github.com/dormsync/backend/internal/domain/billing"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type sweepRecorder struct {
	billing.PaymentRepository
	calls   int
	changed int64
	err     error
}

func (r *sweepRecorder) MarkOverdue(ctx context.Context, asOf time.Time) (int64, error) {
	r.calls++
	return r.changed, r.err
}

func TestShouldRunOncePerDay(t *testing.T) {
	s := NewOverdueScheduler(DefaultOverdueSchedulerConfig(), &sweepRecorder{}, zap.NewNop())

	beforeSlot := time.Date(2026, 8, 30, 1, 59, 0, 0, time.UTC)
	atSlot := time.Date(2026, 8, 30, 2, 0, 30, 0, time.UTC)
	laterSameDay := time.Date(2026, 8, 30, 14, 0, 0, 0, time.UTC)
	nextDay := time.Date(2026, 8, 31, 2, 1, 0, 0, time.UTC)

	assert.False(t, s.shouldRun(beforeSlot))
	assert.True(t, s.shouldRun(atSlot))
	assert.False(t, s.shouldRun(laterSameDay))
	assert.True(t, s.shouldRun(nextDay))
}

func TestShouldRunCatchesUpAfterRestart(t *testing.T) {
	// a process started in the afternoon still sweeps that day
	s := NewOverdueScheduler(DefaultOverdueSchedulerConfig(), &sweepRecorder{}, zap.NewNop())

	afternoon := time.Date(2026, 8, 30, 16, 45, 0, 0, time.UTC)
	assert.True(t, s.shouldRun(afternoon))
	assert.False(t, s.shouldRun(afternoon.Add(time.Minute)))
}

func TestSweepCallsRepository(t *testing.T) {
	repo := &sweepRecorder{changed: 3}
	s := NewOverdueScheduler(DefaultOverdueSchedulerConfig(), repo, zap.NewNop())

	s.Sweep(context.Background())

	assert.Equal(t, 1, repo.calls)
}

func TestStartDisabled(t *testing.T) {
	cfg := DefaultOverdueSchedulerConfig()
	cfg.Enabled = false
	s := NewOverdueScheduler(cfg, &sweepRecorder{}, zap.NewNop())

	s.Start()
	// Stop on a never-started scheduler must not block
	s.Stop()
}
