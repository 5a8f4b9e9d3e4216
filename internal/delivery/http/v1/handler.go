package v1

import (
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/services"
)

type Handler interface {
	HandleNotionWebhook(c *gin.Context)
}

type handlerImpl struct {
	logger  zerolog.Logger
	inbound services.InboundService
}

func New(
	logger zerolog.Logger,
	inboundService services.InboundService,
) Handler {
	return &handlerImpl{
		logger:  logger,
		inbound: inboundService,
	}
}
