package app

import (
	"net/http"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/config"
	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/notion"
)

var globalNotionClient *notion.Client

func InitNotionClient() {
	cfg := config.Global().Notion

	globalNotionClient = notion.NewClient(
		globalLogger,
		cfg.Token,
		&http.Client{Timeout: cfg.RequestTimeout},
	)
	globalLogger.Info().Msg("initialized notion client")
}
