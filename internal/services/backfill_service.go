package services

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/models"
)

type backfillServiceImpl struct {
	logger     zerolog.Logger
	pages      PageLister
	store      TaskStore
	databaseID string
}

func NewBackfillService(
	logger zerolog.Logger,
	pages PageLister,
	store TaskStore,
	databaseID string,
) BackfillService {
	return &backfillServiceImpl{
		logger:     logger,
		pages:      pages,
		store:      store,
		databaseID: databaseID,
	}
}

// Run walks the whole Notion database and upserts every page that is
// not pending an outbound push. Per-page store failures are logged
// and skipped; only a failed database walk aborts the sweep.
func (s *backfillServiceImpl) Run(ctx context.Context) error {
	var synced, skipped, failed int

	err := s.pages.ListTasks(ctx, s.databaseID, func(task *models.Task) error {
		written, err := s.store.UpsertFromNotionUnlessPending(ctx, task)
		if err != nil {
			failed++
			return nil
		}
		if !written {
			s.logger.Debug().
				Str("task_id", task.ID).
				Msg("skipped pending task")
			skipped++
			return nil
		}
		synced++
		return nil
	})
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to query notion database")
		return err
	}

	s.logger.Info().
		Int("synced", synced).
		Int("skipped", skipped).
		Int("failed", failed).
		Msg("completed backfill sweep")
	return nil
}
