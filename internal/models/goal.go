package models

import (
	"time"

	"github.com/google/uuid"
)

// Goal is a per-project backlink target with a due date.
type Goal struct {
	ID        uuid.UUID  `json:"id"`
	ProjectID uuid.UUID  `json:"project_id"`
	Title     string     `json:"title"`
	Target    int        `json:"target"`
	DueDate   *time.Time `json:"due_date"`
	CreatedAt time.Time  `json:"created_at"`
}

// Due reports whether the goal's due date has passed while progress is
// still short of the target.
func (g *Goal) Due(progress int, now time.Time) bool {
	if g.DueDate == nil {
		return false
	}
	return !g.DueDate.After(now) && progress < g.Target
}
