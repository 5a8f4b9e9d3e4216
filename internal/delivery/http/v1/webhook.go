package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/services"
)

type webhookEventRequest struct {
	Type   string `json:"type"`
	Entity struct {
		ID string `json:"id"`
	} `json:"entity"`
}

// HandleNotionWebhook always acknowledges with 200 so that Notion
// never retry-storms the endpoint. Failures are logged, not surfaced
// to the caller.
func (h *handlerImpl) HandleNotionWebhook(c *gin.Context) {
	var event webhookEventRequest
	err := c.ShouldBindJSON(&event)
	if err != nil {
		h.logger.Error().
			Err(err).
			Msg("failed to bind json")
		c.String(http.StatusOK, "Ignored")
		return
	}

	h.logger.Info().
		Str("type", event.Type).
		Msg("webhook received")

	err = h.inbound.HandlePageEvent(c.Request.Context(), services.PageEvent{
		Type:     event.Type,
		EntityID: event.Entity.ID,
	})
	switch {
	case err == nil:
		c.String(http.StatusOK, "OK")
	case errors.Is(err, services.ErrNoEntityID):
		c.String(http.StatusOK, "Ignored")
	default:
		h.logger.Error().
			Err(err).
			Str("page_id", event.Entity.ID).
			Msg("failed to process webhook event")
		c.String(http.StatusOK, "Error handled")
	}
}
