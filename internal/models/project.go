package models

import (
	"time"

	"github.com/google/uuid"
)

// Project represents a website being promoted through link building.
type Project struct {
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
	IsDeleted   bool       `json:"is_deleted"`
	CreatedBy   *uuid.UUID `json:"created_by"`
	RestoredAt  *time.Time `json:"restored_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
