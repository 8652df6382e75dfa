package models

import (
	"time"

	"github.com/google/uuid"
)

// Backlink status constants
const (
	StatusNotStarted  = "not_started"
	StatusUnderReview = "under_review"
	StatusCompleted   = "completed"
	StatusError       = "error"
)

// Health status constants for published URL checks
const (
	HealthUnknown   = "unknown"
	HealthHealthy   = "healthy"
	HealthUnhealthy = "unhealthy"
)

// Backlink represents one placement in the global backlinks_all collection.
// The website field is trimmed and lowercased and acts as the
// case-insensitive identity key for duplicate detection.
type Backlink struct {
	ID              uuid.UUID  `json:"id"`
	Website         string     `json:"website"`
	Categories      []string   `json:"categories"`
	DA              string     `json:"da"`
	SpamScore       string     `json:"spam_score"`
	DR              string     `json:"dr"`
	Traffic         string     `json:"traffic"`
	Email           string     `json:"email"`
	Price           string     `json:"price"`
	Niche           string     `json:"niche"`
	PublishedURL    string     `json:"published_url"`
	Status          string     `json:"status"`
	Notes           string     `json:"notes"`
	Deleted         bool       `json:"deleted"`
	RestoredAt      *time.Time `json:"restored_at,omitempty"`
	HealthStatus    string     `json:"health_status"`
	HealthCheckedAt *time.Time `json:"health_checked_at"`
	HealthError     *string    `json:"health_error"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// HasCategory reports whether the backlink is tagged with the given
// canonical category.
func (b *Backlink) HasCategory(category string) bool {
	for _, c := range b.Categories {
		if c == category {
			return true
		}
	}
	return false
}

// SharesCategory reports whether the backlink shares at least one category
// with the given set.
func (b *Backlink) SharesCategory(categories []string) bool {
	for _, c := range categories {
		if b.HasCategory(c) {
			return true
		}
	}
	return false
}

// ValidStatus reports whether status is one of the workflow statuses.
func ValidStatus(status string) bool {
	switch status {
	case StatusNotStarted, StatusUnderReview, StatusCompleted, StatusError:
		return true
	}
	return false
}

// ProjectBacklink represents a backlink stored under a project+category
// path. GlobalID links back to the backlinks_all record when one exists.
type ProjectBacklink struct {
	ID         uuid.UUID  `json:"id"`
	ProjectID  uuid.UUID  `json:"project_id"`
	Category   string     `json:"category"`
	GlobalID   *uuid.UUID `json:"global_id"`
	Date       string     `json:"date"`
	Website    string     `json:"website"`
	DA         string     `json:"da"`
	SpamScore  string     `json:"spam_score"`
	Username   string     `json:"username"`
	Password   string     `json:"password"`
	Link       string     `json:"link"`
	Notes      string     `json:"notes"`
	RestoredAt *time.Time `json:"restored_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
