package models

import (
	"time"

	"github.com/google/uuid"
)

// BacklinkTrashRecord is a copy of a backlink at the time it was trashed.
// ProjectID and Category are set when the record came from a project
// subcollection; a record without a ProjectID restores to the global
// collection.
type BacklinkTrashRecord struct {
	ID           uuid.UUID  `json:"id"`
	ProjectID    *uuid.UUID `json:"project_id"`
	Category     *string    `json:"category"`
	GlobalID     *uuid.UUID `json:"global_id"`
	Website      string     `json:"website"`
	Categories   []string   `json:"categories"`
	Date         string     `json:"date"`
	DA           string     `json:"da"`
	SpamScore    string     `json:"spam_score"`
	DR           string     `json:"dr"`
	Traffic      string     `json:"traffic"`
	Email        string     `json:"email"`
	Price        string     `json:"price"`
	Niche        string     `json:"niche"`
	PublishedURL string     `json:"published_url"`
	Username     string     `json:"username"`
	Password     string     `json:"password"`
	Link         string     `json:"link"`
	Status       string     `json:"status"`
	Notes        string     `json:"notes"`
	DeletedAt    time.Time  `json:"deleted_at"`

	// Populated via JOIN for display
	ProjectTitle string `json:"project_title,omitempty"`
}

// ProjectTrashRecord is a copy of a project at the time it was trashed.
type ProjectTrashRecord struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Website     string     `json:"website"`
	WebsiteURL  string     `json:"website_url"`
	Description string     `json:"description"`
	Keyword     string     `json:"keyword"`
	Email       string     `json:"email"`
	OfficeEmail string     `json:"office_email"`
	Phone       string     `json:"phone"`
	Location    string     `json:"location"`
	ZipCode     string     `json:"zip_code"`
	Facebook    string     `json:"facebook"`
	Instagram   string     `json:"instagram"`
	Twitter     string     `json:"twitter"`
	LinkedIn    string     `json:"linkedin"`
	CreatedBy   *uuid.UUID `json:"created_by"`
	DeletedAt   time.Time  `json:"deleted_at"`
}
