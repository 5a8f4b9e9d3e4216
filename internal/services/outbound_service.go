package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/models"
)

type outboundServiceImpl struct {
	logger      zerolog.Logger
	pages       PageUpdater
	store       TaskStore
	interval    time.Duration
	pushTimeout time.Duration
}

func NewOutboundService(
	logger zerolog.Logger,
	pages PageUpdater,
	store TaskStore,
	interval time.Duration,
	pushTimeout time.Duration,
) OutboundService {
	return &outboundServiceImpl{
		logger:      logger,
		pages:       pages,
		store:       store,
		interval:    interval,
		pushTimeout: pushTimeout,
	}
}

// Run ticks until ctx is cancelled. Each cycle runs inline on the
// loop goroutine, so a slow cycle delays the next one instead of
// overlapping it.
func (s *outboundServiceImpl) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.logger.Info().
		Dur("interval", s.interval).
		Msg("started outbound scanner")

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("stopped outbound scanner")
			return
		case <-ticker.C:
			s.RunCycle(ctx)
		}
	}
}

func (s *outboundServiceImpl) RunCycle(ctx context.Context) {
	tasks, err := s.store.ListPendingPush(ctx)
	if err != nil {
		return
	}
	for _, task := range tasks {
		s.pushTask(ctx, task)
	}
}

func (s *outboundServiceImpl) pushTask(ctx context.Context, task *models.Task) {
	ctx, cancel := context.WithTimeout(ctx, s.pushTimeout)
	defer cancel()

	err := s.pages.PushTask(ctx, task)
	if err != nil {
		// Sticky-pending: the 'db' marker stays set, so the row is
		// picked up again on the next cycle. That is the system's
		// only retry mechanism, and it is unbounded.
		s.logger.Warn().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to push task to notion")
		return
	}

	// Commit point. A crash before this line re-pushes the same
	// values next cycle, which Notion treats as a no-op.
	err = s.store.ClearPending(ctx, task.ID)
	if err != nil {
		s.logger.Warn().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to clear pending marker")
		return
	}

	s.logger.Info().
		Str("task_id", task.ID).
		Str("status", strOrEmpty(task.Status)).
		Msg("updated notion from database")
}
