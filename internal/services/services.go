package services

import (
	"context"
	"errors"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/models"
)

// Webhook event kinds that carry a page change. Everything else is
// acknowledged and dropped.
const (
	EventPageCreated           = "page.created"
	EventPagePropertiesUpdated = "page.properties_updated"
)

var (
	ErrTaskNotFound = errors.New("task not found")

	// ErrNoEntityID reports a page-change event that names no page.
	// The drop is deliberate, not a failure; the webhook layer maps
	// it to its own acknowledgement body.
	ErrNoEntityID = errors.New("no entity id in event")
)

// PageEvent is an inbound change notification. It carries identity
// only; the current field values are always re-fetched from Notion.
type PageEvent struct {
	Type     string
	EntityID string
}

// TaskStore is the relational side of the sync. Both pipelines meet
// here, and the origin marker on each row is the whole coordination
// protocol between them:
//
//   - A Notion-originated write stamps 'notion' and never 'db', so an
//     inbound change can never schedule its own outbound echo.
//   - Some other local process stamps 'db' to request propagation; the
//     outbound scanner is the only consumer of that marker and the
//     only writer that clears it, and it clears it only after a
//     successful push.
//
// Whichever write lands last in the store wins the whole field set;
// there is no per-field merge and no timestamp comparison.
type TaskStore interface {
	// UpsertFromNotion writes a Notion-originated task state,
	// stamping origin 'notion'. Overwrites a pending-outbound row
	// if one exists (last writer wins).
	UpsertFromNotion(ctx context.Context, task *models.Task) error

	// UpsertFromNotionUnlessPending is the backfill variant: it
	// leaves a row alone while its 'db' marker is still set, since
	// the scanner owns that row until the push is acknowledged.
	// Reports whether the row was written.
	UpsertFromNotionUnlessPending(ctx context.Context, task *models.Task) (bool, error)

	// ListPendingPush returns every row whose origin marker is 'db',
	// in a stable order within one call.
	ListPendingPush(ctx context.Context) ([]*models.Task, error)

	// ClearPending resets the row's origin marker to NULL. Called by
	// the outbound scanner after a successful push, never before.
	//
	// It returns ErrTaskNotFound if no row with the given id exists.
	ClearPending(ctx context.Context, id string) error
}

// PageFetcher retrieves the full current state of one Notion page.
type PageFetcher interface {
	FetchTask(ctx context.Context, pageID string) (*models.Task, error)
}

// PageUpdater pushes a task's status and due date to its Notion page.
// Pushes must be idempotent; the scanner retries by re-pushing.
type PageUpdater interface {
	PushTask(ctx context.Context, task *models.Task) error
}

// PageLister walks every page of a Notion database.
type PageLister interface {
	ListTasks(ctx context.Context, databaseID string, fn func(*models.Task) error) error
}

// InboundService applies document-side changes to the relational
// store. It never marks rows pending-outbound.
type InboundService interface {
	HandlePageEvent(ctx context.Context, event PageEvent) error
}

// OutboundService periodically pushes pending relational-side changes
// to Notion. Cycles run inline on one goroutine and never overlap.
type OutboundService interface {
	Run(ctx context.Context)
	RunCycle(ctx context.Context)
}

// BackfillService reconciles the whole Notion database into the
// relational store once, recovering changes missed while the webhook
// endpoint was down.
type BackfillService interface {
	Run(ctx context.Context) error
}
