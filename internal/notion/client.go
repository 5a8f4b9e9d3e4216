package notion

import (
	"context"
	"net/http"

	"github.com/jomei/notionapi"
	"github.com/rs/zerolog"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/models"
)

// Client wraps the Notion API behind the three operations the sync
// pipelines need: fetch one page as a task, push a task's properties
// back to its page, and walk a whole database for the backfill sweep.
type Client struct {
	logger zerolog.Logger
	api    *notionapi.Client
}

func NewClient(logger zerolog.Logger, token string, httpClient *http.Client) *Client {
	opts := []notionapi.ClientOption{}
	if httpClient != nil {
		opts = append(opts, notionapi.WithHTTPClient(httpClient))
	}
	return &Client{
		logger: logger,
		api:    notionapi.NewClient(notionapi.Token(token), opts...),
	}
}

// FetchTask retrieves the full current page state and translates it.
// The webhook payload only carries identity, so callers always re-fetch
// instead of trusting partial event data.
func (c *Client) FetchTask(ctx context.Context, pageID string) (*models.Task, error) {
	page, err := c.api.Page.Get(ctx, notionapi.PageID(pageID))
	if err != nil {
		return nil, err
	}
	return taskFromPage(page), nil
}

// PushTask writes the task's status and due date to its Notion page.
// A nil due date clears the date property. Pushing the same values
// twice is a no-op on the Notion side, which the outbound scanner
// relies on for safe retries.
func (c *Client) PushTask(ctx context.Context, task *models.Task) error {
	_, err := c.api.Page.Update(ctx, notionapi.PageID(task.ID), &notionapi.PageUpdateRequest{
		Properties: updateProperties(task),
	})
	return err
}

// ListTasks walks every page of the configured database, translating
// each and handing it to fn. Pagination follows the API cursor until
// has_more is false. A non-nil error from fn stops the walk.
func (c *Client) ListTasks(ctx context.Context, databaseID string, fn func(*models.Task) error) error {
	req := &notionapi.DatabaseQueryRequest{}
	for {
		resp, err := c.api.Database.Query(ctx, notionapi.DatabaseID(databaseID), req)
		if err != nil {
			return err
		}
		c.logger.Debug().
			Int("count", len(resp.Results)).
			Bool("has_more", resp.HasMore).
			Msg("fetched notion database page")

		for i := range resp.Results {
			err = fn(taskFromPage(&resp.Results[i]))
			if err != nil {
				return err
			}
		}

		if !resp.HasMore {
			return nil
		}
		req = &notionapi.DatabaseQueryRequest{StartCursor: resp.NextCursor}
	}
}
