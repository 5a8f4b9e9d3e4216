package app

import (
	"context"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/config"
	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/services"
)

var (
	globalTaskStore      services.TaskStore
	globalInboundService services.InboundService

	outboundCancel context.CancelFunc
	outboundDone   chan struct{}
)

func InitSyncServices() {
	cfg := config.Global()

	globalTaskStore = services.NewTaskStore(globalLogger, globalPostgresPool)
	globalInboundService = services.NewInboundService(
		globalLogger,
		globalNotionClient,
		globalTaskStore,
		cfg.Notion.RequestTimeout,
	)
	globalLogger.Info().Msg("initialized sync services")
}

// RunBackfillIfEnabled performs the one-shot full reconcile sweep of
// the Notion database before the pipelines start. It recovers inbound
// changes missed while the webhook endpoint was down; a failed sweep
// is logged and does not stop the process.
func RunBackfillIfEnabled() {
	cfg := config.Global()
	if !cfg.Sync.BackfillOnStart {
		return
	}
	if cfg.Notion.DatabaseID == "" {
		globalLogger.Warn().
			Msg("backfill enabled but no notion database id configured")
		return
	}

	backfill := services.NewBackfillService(
		globalLogger,
		globalNotionClient,
		globalTaskStore,
		cfg.Notion.DatabaseID,
	)
	err := backfill.Run(context.Background())
	if err != nil {
		globalLogger.Error().
			Err(err).
			Msg("backfill sweep failed")
	}
}

func StartOutboundScanner() {
	cfg := config.Global()

	outbound := services.NewOutboundService(
		globalLogger,
		globalNotionClient,
		globalTaskStore,
		cfg.Sync.ScanInterval,
		cfg.Notion.RequestTimeout,
	)

	ctx, cancel := context.WithCancel(context.Background())
	outboundCancel = cancel
	outboundDone = make(chan struct{})

	go func() {
		defer close(outboundDone)
		outbound.Run(ctx)
	}()
}

func StopOutboundScanner() {
	outboundCancel()
	<-outboundDone
}
