package db

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"linkledger/internal/models"
)

func createTestUser(t *testing.T, db *DB, sub, role string) *models.User {
	t.Helper()
	ctx := context.Background()

	user := &models.User{Sub: sub, Email: sub + "@example.com", Name: "Test " + sub}
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if role != models.RoleViewer {
		if err := db.UpdateUserRole(ctx, user.ID, role); err != nil {
			t.Fatalf("UpdateUserRole failed: %v", err)
		}
		user.Role = role
	}
	return user
}

func TestDeleteRequestDefersDeletion(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	editor := createTestUser(t, db, "editor-1", models.RoleEditor)
	project := createTestProject(t, db, "acme")

	backlink := &models.ProjectBacklink{
		ProjectID: project.ID,
		Category:  "Guest Posting",
		Website:   "example.com",
	}
	if err := db.CreateProjectBacklink(ctx, backlink); err != nil {
		t.Fatalf("CreateProjectBacklink failed: %v", err)
	}

	snapshot, _ := json.Marshal(backlink)
	req := &models.DeleteRequest{
		Type:        models.DeleteTypeBacklink,
		ItemID:      backlink.ID,
		ProjectID:   &project.ID,
		Category:    &backlink.Category,
		RequestedBy: &editor.ID,
		Snapshot:    snapshot,
	}
	if err := db.CreateDeleteRequest(ctx, req); err != nil {
		t.Fatalf("CreateDeleteRequest failed: %v", err)
	}

	if req.Status != models.StatusPendingAdmin {
		t.Errorf("Status = %q, want %q", req.Status, models.StatusPendingAdmin)
	}

	// Item untouched while the request is pending
	if _, err := db.GetProjectBacklinkByID(ctx, backlink.ID); err != nil {
		t.Fatalf("backlink should remain live while request pending: %v", err)
	}

	pending, err := db.GetPendingDeleteRequests(ctx)
	if err != nil {
		t.Fatalf("GetPendingDeleteRequests failed: %v", err)
	}
	if len(pending) != 1 {
		t.Fatalf("pending requests = %d, want 1", len(pending))
	}
	if pending[0].RequesterEmail != editor.Email {
		t.Errorf("RequesterEmail = %q, want %q", pending[0].RequesterEmail, editor.Email)
	}
	if pending[0].ProjectTitle != "acme" {
		t.Errorf("ProjectTitle = %q, want acme", pending[0].ProjectTitle)
	}
}

func TestApproveDeleteRequestMovesItemToTrash(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	editor := createTestUser(t, db, "editor-1", models.RoleEditor)
	project := createTestProject(t, db, "acme")

	backlink := &models.ProjectBacklink{
		ProjectID: project.ID,
		Category:  "Guest Posting",
		Website:   "example.com",
	}
	if err := db.CreateProjectBacklink(ctx, backlink); err != nil {
		t.Fatalf("CreateProjectBacklink failed: %v", err)
	}

	snapshot, _ := json.Marshal(backlink)
	req := &models.DeleteRequest{
		Type:        models.DeleteTypeBacklink,
		ItemID:      backlink.ID,
		ProjectID:   &project.ID,
		Category:    &backlink.Category,
		RequestedBy: &editor.ID,
		Snapshot:    snapshot,
	}
	if err := db.CreateDeleteRequest(ctx, req); err != nil {
		t.Fatalf("CreateDeleteRequest failed: %v", err)
	}

	if err := db.ApproveDeleteRequest(ctx, req.ID); err != nil {
		t.Fatalf("ApproveDeleteRequest failed: %v", err)
	}

	// Item moved to trash, request gone
	if _, err := db.GetProjectBacklinkByID(ctx, backlink.ID); !errors.Is(err, ErrProjectBacklinkNotFound) {
		t.Errorf("backlink after approval = %v, want ErrProjectBacklinkNotFound", err)
	}

	trashed, err := db.GetTrashedBacklinks(ctx)
	if err != nil {
		t.Fatalf("GetTrashedBacklinks failed: %v", err)
	}
	if len(trashed) != 1 {
		t.Fatalf("trashed backlinks = %d, want 1", len(trashed))
	}

	if _, err := db.GetDeleteRequestByID(ctx, req.ID); !errors.Is(err, ErrDeleteRequestNotFound) {
		t.Errorf("request after approval = %v, want ErrDeleteRequestNotFound", err)
	}
}

func TestApproveDeleteRequestFallsBackToSnapshot(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	editor := createTestUser(t, db, "editor-1", models.RoleEditor)
	project := createTestProject(t, db, "acme")

	backlink := &models.ProjectBacklink{
		ProjectID: project.ID,
		Category:  "Guest Posting",
		Website:   "example.com",
		Notes:     "from snapshot",
	}
	if err := db.CreateProjectBacklink(ctx, backlink); err != nil {
		t.Fatalf("CreateProjectBacklink failed: %v", err)
	}

	snapshot, _ := json.Marshal(backlink)
	req := &models.DeleteRequest{
		Type:        models.DeleteTypeBacklink,
		ItemID:      backlink.ID,
		ProjectID:   &project.ID,
		Category:    &backlink.Category,
		RequestedBy: &editor.ID,
		Snapshot:    snapshot,
	}
	if err := db.CreateDeleteRequest(ctx, req); err != nil {
		t.Fatalf("CreateDeleteRequest failed: %v", err)
	}

	// The live item vanishes before the admin acts
	if _, err := db.Pool.Exec(ctx, "DELETE FROM project_backlinks WHERE id = $1", backlink.ID); err != nil {
		t.Fatalf("failed to remove backlink: %v", err)
	}

	if err := db.ApproveDeleteRequest(ctx, req.ID); err != nil {
		t.Fatalf("ApproveDeleteRequest failed: %v", err)
	}

	trashed, err := db.GetTrashedBacklinks(ctx)
	if err != nil {
		t.Fatalf("GetTrashedBacklinks failed: %v", err)
	}
	if len(trashed) != 1 {
		t.Fatalf("trashed backlinks = %d, want 1", len(trashed))
	}
	if trashed[0].Notes != "from snapshot" {
		t.Errorf("trash record notes = %q, want snapshot data", trashed[0].Notes)
	}
}

func TestApproveGlobalDeleteRequestFallsBackToSnapshot(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	editor := createTestUser(t, db, "editor-1", models.RoleEditor)

	backlink := &models.Backlink{
		Website:    "example.com",
		Categories: []string{"Guest Posting", "Micro Blogging"},
		DA:         "45",
		DR:         "70",
		Status:     models.StatusCompleted,
		Notes:      "from snapshot",
	}
	if err := db.CreateBacklink(ctx, backlink); err != nil {
		t.Fatalf("CreateBacklink failed: %v", err)
	}

	snapshot, _ := json.Marshal(backlink)
	req := &models.DeleteRequest{
		Type:        models.DeleteTypeBacklink,
		ItemID:      backlink.ID,
		RequestedBy: &editor.ID,
		Snapshot:    snapshot,
	}
	if err := db.CreateDeleteRequest(ctx, req); err != nil {
		t.Fatalf("CreateDeleteRequest failed: %v", err)
	}

	// The live row vanishes before the admin acts
	if _, err := db.Pool.Exec(ctx, "DELETE FROM backlinks_all WHERE id = $1", backlink.ID); err != nil {
		t.Fatalf("failed to remove backlink: %v", err)
	}

	if err := db.ApproveDeleteRequest(ctx, req.ID); err != nil {
		t.Fatalf("ApproveDeleteRequest failed: %v", err)
	}

	// The trash record keeps the full global row shape
	trashed, err := db.GetTrashedBacklinks(ctx)
	if err != nil {
		t.Fatalf("GetTrashedBacklinks failed: %v", err)
	}
	if len(trashed) != 1 {
		t.Fatalf("trashed backlinks = %d, want 1", len(trashed))
	}
	rec := trashed[0]
	if rec.ProjectID != nil {
		t.Errorf("ProjectID = %v, want nil for a global record", rec.ProjectID)
	}
	if len(rec.Categories) != 2 {
		t.Errorf("Categories = %v, want both from the snapshot", rec.Categories)
	}
	if rec.Status != models.StatusCompleted {
		t.Errorf("Status = %q, want %q", rec.Status, models.StatusCompleted)
	}
	if rec.DR != "70" {
		t.Errorf("DR = %q, want 70", rec.DR)
	}
	if rec.Notes != "from snapshot" {
		t.Errorf("Notes = %q, want snapshot data", rec.Notes)
	}
}

func TestRejectDeleteRequestLeavesItemAlone(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	editor := createTestUser(t, db, "editor-1", models.RoleEditor)
	project := createTestProject(t, db, "acme")

	snapshot, _ := json.Marshal(project)
	req := &models.DeleteRequest{
		Type:        models.DeleteTypeProject,
		ItemID:      project.ID,
		ProjectID:   &project.ID,
		RequestedBy: &editor.ID,
		Snapshot:    snapshot,
	}
	if err := db.CreateDeleteRequest(ctx, req); err != nil {
		t.Fatalf("CreateDeleteRequest failed: %v", err)
	}

	if err := db.RejectDeleteRequest(ctx, req.ID); err != nil {
		t.Fatalf("RejectDeleteRequest failed: %v", err)
	}

	// Project still live, request gone, trash empty
	projects, err := db.GetProjects(ctx, "")
	if err != nil {
		t.Fatalf("GetProjects failed: %v", err)
	}
	if len(projects) != 1 {
		t.Errorf("live projects = %d, want 1", len(projects))
	}

	trashed, err := db.GetTrashedProjects(ctx)
	if err != nil {
		t.Fatalf("GetTrashedProjects failed: %v", err)
	}
	if len(trashed) != 0 {
		t.Errorf("trashed projects = %d, want 0", len(trashed))
	}

	if err := db.RejectDeleteRequest(ctx, req.ID); !errors.Is(err, ErrDeleteRequestNotFound) {
		t.Errorf("second reject = %v, want ErrDeleteRequestNotFound", err)
	}
}

func TestApproveProjectDeleteRequest(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	editor := createTestUser(t, db, "editor-1", models.RoleEditor)
	project := createTestProject(t, db, "acme")

	snapshot, _ := json.Marshal(project)
	req := &models.DeleteRequest{
		Type:        models.DeleteTypeProject,
		ItemID:      project.ID,
		ProjectID:   &project.ID,
		RequestedBy: &editor.ID,
		Snapshot:    snapshot,
	}
	if err := db.CreateDeleteRequest(ctx, req); err != nil {
		t.Fatalf("CreateDeleteRequest failed: %v", err)
	}

	if err := db.ApproveDeleteRequest(ctx, req.ID); err != nil {
		t.Fatalf("ApproveDeleteRequest failed: %v", err)
	}

	projects, err := db.GetProjects(ctx, "")
	if err != nil {
		t.Fatalf("GetProjects failed: %v", err)
	}
	if len(projects) != 0 {
		t.Errorf("live projects after approval = %d, want 0", len(projects))
	}

	trashed, err := db.GetTrashedProjects(ctx)
	if err != nil {
		t.Fatalf("GetTrashedProjects failed: %v", err)
	}
	if len(trashed) != 1 {
		t.Errorf("trashed projects = %d, want 1", len(trashed))
	}
}
