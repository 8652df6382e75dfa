package db

import (
	"context"
	"testing"

	"linkledger/internal/models"
)

func TestUpsertUserPreservesRole(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	user := &models.User{Sub: "sub-1", Email: "a@example.com", Name: "A"}
	if err := db.UpsertUser(ctx, user); err != nil {
		t.Fatalf("UpsertUser failed: %v", err)
	}
	if user.Role != models.RoleViewer {
		t.Errorf("new user role = %q, want %q", user.Role, models.RoleViewer)
	}

	if err := db.UpdateUserRole(ctx, user.ID, models.RoleAdmin); err != nil {
		t.Fatalf("UpdateUserRole failed: %v", err)
	}

	// Re-login must not reset the promoted role
	again := &models.User{Sub: "sub-1", Email: "a2@example.com", Name: "A2"}
	if err := db.UpsertUser(ctx, again); err != nil {
		t.Fatalf("second UpsertUser failed: %v", err)
	}
	if again.Role != models.RoleAdmin {
		t.Errorf("role after re-login = %q, want %q", again.Role, models.RoleAdmin)
	}
	if again.Email != "a2@example.com" {
		t.Errorf("email not refreshed: %q", again.Email)
	}
	if again.ID != user.ID {
		t.Error("upsert created a second user for the same sub")
	}
}

func TestGetAdminEmails(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()
	ctx := context.Background()

	createTestUser(t, db, "admin-1", models.RoleAdmin)
	createTestUser(t, db, "editor-1", models.RoleEditor)
	createTestUser(t, db, "viewer-1", models.RoleViewer)

	emails, err := db.GetAdminEmails(ctx)
	if err != nil {
		t.Fatalf("GetAdminEmails failed: %v", err)
	}
	if len(emails) != 1 || emails[0] != "admin-1@example.com" {
		t.Errorf("GetAdminEmails = %v, want [admin-1@example.com]", emails)
	}
}
