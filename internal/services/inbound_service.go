package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

type inboundServiceImpl struct {
	logger  zerolog.Logger
	pages   PageFetcher
	store   TaskStore
	timeout time.Duration
}

func NewInboundService(
	logger zerolog.Logger,
	pages PageFetcher,
	store TaskStore,
	timeout time.Duration,
) InboundService {
	return &inboundServiceImpl{
		logger:  logger,
		pages:   pages,
		store:   store,
		timeout: timeout,
	}
}

func (s *inboundServiceImpl) HandlePageEvent(ctx context.Context, event PageEvent) error {
	if event.Type != EventPageCreated && event.Type != EventPagePropertiesUpdated {
		s.logger.Debug().
			Str("type", event.Type).
			Msg("ignored event kind")
		return nil
	}
	if event.EntityID == "" {
		s.logger.Debug().
			Str("type", event.Type).
			Msg("no page id found in event")
		return ErrNoEntityID
	}

	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	// The event only names the page; fetch the full current state
	// instead of applying a delta, so out-of-order delivery is safe.
	task, err := s.pages.FetchTask(ctx, event.EntityID)
	if err != nil {
		s.logger.Error().
			Err(err).
			Str("page_id", event.EntityID).
			Msg("failed to fetch page from notion")
		return err
	}

	// Stamps 'notion', never 'db': an inbound write must not
	// schedule its own outbound echo.
	err = s.store.UpsertFromNotion(ctx, task)
	if err != nil {
		return err
	}

	s.logger.Info().
		Str("page_id", task.ID).
		Str("status", strOrEmpty(task.Status)).
		Msg("updated database from notion")
	return nil
}

func strOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
