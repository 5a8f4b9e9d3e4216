package notion

import (
	"time"

	"github.com/jomei/notionapi"

	"github.com/MikkiMyers/notion-postgres-bidirectional-sync/internal/models"
)

// Property names of the synced Notion database. The mapping is fixed;
// the schema is not discovered at runtime.
const (
	propTaskName = "Task Name"
	propStatus   = "Status"
	propDueDate  = "Due Date"
)

// taskFromPage translates a Notion page into a task record. A property
// that is missing or not of the expected type maps to nil instead of
// failing the whole translation.
func taskFromPage(page *notionapi.Page) *models.Task {
	task := &models.Task{ID: page.ID.String()}
	if page.Properties == nil {
		return task
	}

	if title, ok := page.Properties[propTaskName].(*notionapi.TitleProperty); ok {
		if len(title.Title) > 0 && title.Title[0].PlainText != "" {
			name := title.Title[0].PlainText
			task.Name = &name
		}
	}

	if status, ok := page.Properties[propStatus].(*notionapi.StatusProperty); ok {
		if status.Status.Name != "" {
			name := status.Status.Name
			task.Status = &name
		}
	}

	if date, ok := page.Properties[propDueDate].(*notionapi.DateProperty); ok {
		if date.Date != nil && date.Date.Start != nil {
			start := time.Time(*date.Date.Start)
			due := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
			task.DueDate = &due
		}
	}

	return task
}

// statusValueProperty marshals the status as {"status":{"name":...}},
// or {"status":null} to clear it.
type statusValueProperty struct {
	Status *statusValue `json:"status"`
}

type statusValue struct {
	Name string `json:"name"`
}

func (p statusValueProperty) GetID() string { return "" }

func (p statusValueProperty) GetType() notionapi.PropertyType {
	return notionapi.PropertyTypeStatus
}

// dueDateProperty marshals the date start as a calendar-date string
// ("2024-05-01"). The library's Date type always serializes a full
// RFC3339 timestamp, which would turn the Notion property into a
// date-with-time.
type dueDateProperty struct {
	Date *dueDateValue `json:"date"`
}

type dueDateValue struct {
	Start string `json:"start"`
}

func (p dueDateProperty) GetID() string { return "" }

func (p dueDateProperty) GetType() notionapi.PropertyType {
	return notionapi.PropertyTypeDate
}

// updateProperties builds the partial property map pushed outbound.
// Both properties are always set so that a nil value clears the field
// on the Notion side.
func updateProperties(task *models.Task) notionapi.Properties {
	statusProp := statusValueProperty{}
	if task.Status != nil {
		statusProp.Status = &statusValue{Name: *task.Status}
	}

	dateProp := dueDateProperty{}
	if task.DueDate != nil {
		dateProp.Date = &dueDateValue{Start: task.DueDate.Format(time.DateOnly)}
	}

	return notionapi.Properties{
		propStatus:  statusProp,
		propDueDate: dateProp,
	}
}
