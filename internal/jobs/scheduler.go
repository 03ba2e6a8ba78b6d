package jobs

import (
	"context"
	"first20_backend/pkg/logger"
	"fmt"
	"time"

	"github.com/go-co-op/gocron"
	"go.uber.org/zap"
)

const autoFreezeTimeout = 5 * time.Minute

// FreezeRunner covers missed days with streak freezes.
type FreezeRunner interface {
	AutoFreeze(ctx context.Context) (int, error)
}

// Scheduler runs the nightly maintenance jobs in UTC.
type Scheduler struct {
	scheduler *gocron.Scheduler
	freezes   FreezeRunner
	ctx       context.Context
	cancel    context.CancelFunc
}

func New(freezes FreezeRunner) *Scheduler {
	s := gocron.NewScheduler(time.UTC)
	s.SingletonModeAll()
	ctx, cancel := context.WithCancel(context.Background())
	return &Scheduler{
		scheduler: s,
		freezes:   freezes,
		ctx:       ctx,
		cancel:    cancel,
	}
}

// Start registers the auto-freeze job on cronExpr and starts the scheduler
// without blocking.
func (s *Scheduler) Start(cronExpr string) error {
	if _, err := s.scheduler.Cron(cronExpr).Do(s.RunAutoFreeze); err != nil {
		return fmt.Errorf("schedule auto freeze %q: %w", cronExpr, err)
	}
	s.scheduler.StartAsync()
	logger.Log.Info("Scheduler started", zap.String("freeze_cron", cronExpr))
	return nil
}

// Stop cancels a running job and stops the scheduler.
func (s *Scheduler) Stop() {
	s.cancel()
	s.scheduler.Stop()
}

// RunAutoFreeze applies automatic freezes once.
func (s *Scheduler) RunAutoFreeze() {
	ctx, cancel := context.WithTimeout(s.ctx, autoFreezeTimeout)
	defer cancel()

	start := time.Now()
	applied, err := s.freezes.AutoFreeze(ctx)
	if err != nil {
		logger.Log.Error("auto freeze failed", zap.Error(err))
		return
	}
	logger.Log.Info("auto freeze finished",
		zap.Int("applied", applied),
		zap.Duration("took", time.Since(start)),
	)
}
