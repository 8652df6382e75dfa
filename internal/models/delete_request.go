package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Delete request type constants
const (
	DeleteTypeBacklink = "backlink"
	DeleteTypeProject  = "project"
)

// StatusPendingAdmin is the only persisted delete request state. Approval
// and rejection both remove the request row.
const StatusPendingAdmin = "Pending_Admin"

// DeleteRequest captures an editor's intent to delete an item. The live
// item is untouched until an admin approves the request.
type DeleteRequest struct {
	ID          uuid.UUID       `json:"id"`
	Type        string          `json:"type"` // backlink, project
	ItemID      uuid.UUID       `json:"item_id"`
	ProjectID   *uuid.UUID      `json:"project_id"`
	Category    *string         `json:"category"`
	Status      string          `json:"status"`
	RequestedBy *uuid.UUID      `json:"requested_by"`
	Snapshot    json.RawMessage `json:"snapshot"` // item data at request time
	CreatedAt   time.Time       `json:"created_at"`

	// Populated via JOIN for display
	RequesterName  string `json:"requester_name,omitempty"`
	RequesterEmail string `json:"requester_email,omitempty"`
	ProjectTitle   string `json:"project_title,omitempty"`
}
