package models

import "time"

// Origin marks which side most recently wrote a task row and still
// has to be propagated to the other side. OriginNone (stored as NULL)
// means the row is in sync.
const (
	OriginNotion = "notion"
	OriginDB     = "db"
	OriginNone   = ""
)

// Task is the synchronized unit: one row per Notion page, the page id
// doubles as the relational primary key. Nil pointers are real nulls
// (e.g. a cleared due date), not "unknown".
type Task struct {
	ID      string
	Name    *string
	Status  *string
	DueDate *time.Time
	Origin  string
}
