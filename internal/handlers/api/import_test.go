package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gofiber/fiber/v3"

	"linkledger/internal/models"
	"linkledger/internal/testutil"
)

func skipIfNoTestDB(t *testing.T) {
	t.Helper()
	if os.Getenv("TEST_DATABASE_URL") == "" && os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}
}

// asUser injects a fixed user the way the auth middleware would.
func asUser(user *models.User) fiber.Handler {
	return func(c fiber.Ctx) error {
		c.Locals("user", user)
		return c.Next()
	}
}

func multipartCSV(t *testing.T, csv string) (*bytes.Buffer, string) {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", "import.csv")
	if err != nil {
		t.Fatalf("failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("failed to write form file: %v", err)
	}
	w.Close()

	return &body, w.FormDataContentType()
}

func TestImportUpload(t *testing.T) {
	skipIfNoTestDB(t)

	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	testutil.CreateTestBacklink(t, database, "taken.com", []string{"Guest Posting"})

	app := fiber.New()
	handler := NewImportHandler(database)
	app.Post("/api/backlinks/import", asUser(&models.User{Role: models.RoleEditor}), handler.Upload)

	csv := "Website,DA,SpamScore,Notes,Status,Categories\n" +
		"fresh.com,40,2,,under_review,Guest Posting\n" +
		"taken.com,50,1,,,guest posting\n" +
		"fresh.com,40,2,,,Guest Posting\n" +
		",10,1,,,Guest Posting\n"

	body, contentType := multipartCSV(t, csv)
	req := httptest.NewRequest("POST", "/api/backlinks/import", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	raw, _ := io.ReadAll(resp.Body)
	var envelope struct {
		Status string `json:"status"`
		Data   struct {
			Added   int `json:"added"`
			Skipped int `json:"skipped"`
			Skips   []struct {
				Website string `json:"website"`
				Reason  string `json:"reason"`
			} `json:"skips"`
		} `json:"data"`
	}
	if err := json.Unmarshal(raw, &envelope); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if envelope.Data.Added != 1 {
		t.Errorf("added = %d, want 1", envelope.Data.Added)
	}
	if envelope.Data.Skipped != 3 {
		t.Errorf("skipped = %d, want 3", envelope.Data.Skipped)
	}

	// The accepted row landed in the database
	links, err := database.GetLiveBacklinks(context.Background())
	if err != nil {
		t.Fatalf("GetLiveBacklinks failed: %v", err)
	}
	if len(links) != 2 {
		t.Errorf("live backlinks = %d, want 2 (seed + imported)", len(links))
	}
}

func TestImportUploadMissingColumnsAborts(t *testing.T) {
	skipIfNoTestDB(t)

	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	app := fiber.New()
	handler := NewImportHandler(database)
	app.Post("/api/backlinks/import", asUser(&models.User{Role: models.RoleEditor}), handler.Upload)

	csv := "Website,DA\nfresh.com,40\n"
	body, contentType := multipartCSV(t, csv)
	req := httptest.NewRequest("POST", "/api/backlinks/import", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("request failed: %v", err)
	}
	if resp.StatusCode != fiber.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}

	// Nothing imported
	links, err := database.GetLiveBacklinks(context.Background())
	if err != nil {
		t.Fatalf("GetLiveBacklinks failed: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("live backlinks = %d, want 0 after aborted import", len(links))
	}
}
