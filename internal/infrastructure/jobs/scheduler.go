// Package jobs runs periodic maintenance tasks.
package jobs

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/tenantry/admin-api/internal/api/metrics"
)

const runTimeout = time.Minute

// Reconciler recomputes role user counts.
type Reconciler interface {
	ReconcileUserCounts(ctx context.Context) error
}

type Scheduler struct {
	cron       *cron.Cron
	reconciler Reconciler
	schedule   string
	log        zerolog.Logger
}

// NewScheduler runs reconciler on schedule, a standard cron expression or a
// descriptor such as "@every 5m". An empty schedule disables the job.
func NewScheduler(reconciler Reconciler, schedule string, log zerolog.Logger) *Scheduler {
	return &Scheduler{
		cron:       cron.New(cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger))),
		reconciler: reconciler,
		schedule:   schedule,
		log:        log,
	}
}

func (s *Scheduler) Start() error {
	if s.schedule == "" {
		s.log.Info().Msg("role reconcile job disabled")
		return nil
	}
	if _, err := s.cron.AddFunc(s.schedule, s.reconcileRoles); err != nil {
		return fmt.Errorf("schedule role reconcile %q: %w", s.schedule, err)
	}
	s.cron.Start()
	s.log.Info().Str("schedule", s.schedule).Msg("role reconcile job scheduled")
	return nil
}

// Stop halts the scheduler; the returned context is done once a running job
// has finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

func (s *Scheduler) reconcileRoles() {
	ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
	defer cancel()

	start := time.Now()
	if err := s.reconciler.ReconcileUserCounts(ctx); err != nil {
		metrics.RoleReconcileRunsTotal.WithLabelValues("error").Inc()
		s.log.Error().Err(err).Msg("role reconcile failed")
		return
	}
	metrics.RoleReconcileRunsTotal.WithLabelValues("ok").Inc()
	s.log.Debug().Dur("took", time.Since(start)).Msg("role reconcile done")
}
