package services

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/models"
)

type taskStoreImpl struct {
	logger zerolog.Logger
	pgPool *pgxpool.Pool
}

func NewTaskStore(
	logger zerolog.Logger,
	pgPool *pgxpool.Pool,
) TaskStore {
	return &taskStoreImpl{
		logger: logger,
		pgPool: pgPool,
	}
}

func (s *taskStoreImpl) UpsertFromNotion(ctx context.Context, task *models.Task) error {
	const upsertFromNotionQuery = `
INSERT INTO tasks (id, task_name, status, due_date, updated_from)
VALUES ($1, $2, $3, $4, 'notion')
ON CONFLICT (id)
DO UPDATE SET task_name    = EXCLUDED.task_name,
              status       = EXCLUDED.status,
              due_date     = EXCLUDED.due_date,
              updated_from = 'notion'
`
	_, err := s.pgPool.Exec(
		ctx,
		upsertFromNotionQuery,
		task.ID,
		task.Name,
		task.Status,
		task.DueDate,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to upsert task from notion")
		return err
	}
	s.logger.Debug().
		Str("task_id", task.ID).
		Msg("upserted task from notion")
	return nil
}

func (s *taskStoreImpl) UpsertFromNotionUnlessPending(ctx context.Context, task *models.Task) (bool, error) {
	// The DO UPDATE guard leaves rows alone while their 'db' marker
	// is set; the outbound scanner owns those until it clears them.
	const upsertUnlessPendingQuery = `
INSERT INTO tasks (id, task_name, status, due_date, updated_from)
VALUES ($1, $2, $3, $4, 'notion')
ON CONFLICT (id)
DO UPDATE SET task_name    = EXCLUDED.task_name,
              status       = EXCLUDED.status,
              due_date     = EXCLUDED.due_date,
              updated_from = 'notion'
WHERE tasks.updated_from IS DISTINCT FROM 'db'
`
	tag, err := s.pgPool.Exec(
		ctx,
		upsertUnlessPendingQuery,
		task.ID,
		task.Name,
		task.Status,
		task.DueDate,
	)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", task.ID).
			Msg("failed to upsert task from notion")
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (s *taskStoreImpl) ListPendingPush(ctx context.Context) ([]*models.Task, error) {
	const selectPendingPushQuery = `
SELECT id, task_name, status, due_date
FROM tasks
WHERE updated_from = 'db'
ORDER BY id
`
	rows, err := s.pgPool.Query(ctx, selectPendingPushQuery)
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to select pending tasks")
		return nil, err
	}
	defer rows.Close()

	var tasks []*models.Task
	for rows.Next() {
		task := &models.Task{Origin: models.OriginDB}
		err = rows.Scan(
			&task.ID,
			&task.Name,
			&task.Status,
			&task.DueDate,
		)
		if err != nil {
			s.logger.Error().
				Err(err).
				Msg("failed to scan task")
			return nil, err
		}
		tasks = append(tasks, task)
	}

	err = rows.Err()
	if err != nil {
		s.logger.Error().
			Err(err).
			Msg("failed to iterate over rows")
		return nil, err
	}
	return tasks, nil
}

func (s *taskStoreImpl) ClearPending(ctx context.Context, id string) error {
	const clearPendingQuery = `
UPDATE tasks
SET updated_from = NULL
WHERE id = $1
`
	tag, err := s.pgPool.Exec(ctx, clearPendingQuery, id)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("task_id", id).
			Msg("failed to clear pending marker")
		return err
	}
	if tag.RowsAffected() == 0 {
		s.logger.Error().
			Str("task_id", id).
			Msg("task not found")
		return ErrTaskNotFound
	}
	s.logger.Debug().
		Str("task_id", id).
		Msg("cleared pending marker")
	return nil
}
