package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"linkledger/internal/config"
	"linkledger/internal/testutil"
)

// fakeOIDCServer serves just enough of the discovery document for the
// auth handler to initialize without a real identity provider.
func fakeOIDCServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	ts := httptest.NewServer(mux)
	mux.HandleFunc("/.well-known/openid-configuration", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"issuer":                 ts.URL,
			"authorization_endpoint": ts.URL + "/auth",
			"token_endpoint":         ts.URL + "/token",
			"jwks_uri":               ts.URL + "/keys",
		})
	})
	t.Cleanup(ts.Close)
	return ts
}

// loginAs establishes a session for the given user sub via a test-only
// route and returns the session cookies to replay on later requests.
func loginAs(t *testing.T, app *fiber.App, sub string) []*http.Cookie {
	t.Helper()

	req, _ := http.NewRequest("POST", "/test-login/"+sub, nil)
	resp, err := app.Test(req)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	if resp.StatusCode != 200 {
		t.Fatalf("login request: expected 200, got %d", resp.StatusCode)
	}
	cookies := resp.Cookies()
	if len(cookies) == 0 {
		t.Fatal("login request: no session cookies returned")
	}
	return cookies
}

func TestGlobalBacklinkWritesRequireAdminRole(t *testing.T) {
	if os.Getenv("TEST_DATABASE_URL") == "" && os.Getenv("RUN_INTEGRATION_TESTS") == "" {
		t.Skip("Skipping integration test: TEST_DATABASE_URL not set")
	}

	database, cleanup := testutil.TestDB(t)
	defer cleanup()

	oidc := fakeOIDCServer(t)
	cfg := &config.Config{
		Env:           "development",
		BaseURL:       "http://localhost:3000",
		SessionSecret: "test-secret-that-is-long-enough-for-production",
		OIDCIssuer:    oidc.URL,
		OIDCClientID:  "test-client",
	}

	srv := New(cfg)
	if err := srv.RegisterRoutes(context.Background(), database, nil); err != nil {
		t.Fatalf("RegisterRoutes failed: %v", err)
	}
	srv.App.Post("/test-login/:sub", func(c fiber.Ctx) error {
		sess := session.FromContext(c)
		if sess == nil {
			return c.Status(500).SendString("no session")
		}
		sess.Set("user_sub", c.Params("sub"))
		return c.SendString("ok")
	})

	testutil.CreateTestUser(t, database, "editor-1", "editor@example.com", "editor")
	testutil.CreateTestUser(t, database, "admin-1", "admin@example.com", "admin")

	editorCookies := loginAs(t, srv.App, "editor-1")
	adminCookies := loginAs(t, srv.App, "admin-1")

	adminOnly := []struct {
		method, path string
	}{
		{"POST", "/api/backlinks"},
		{"PUT", "/api/backlinks/00000000-0000-0000-0000-000000000001"},
		{"POST", "/api/backlinks/import"},
	}

	for _, route := range adminOnly {
		req, _ := http.NewRequest(route.method, route.path, strings.NewReader("{}"))
		req.Header.Set("Content-Type", "application/json")
		for _, c := range editorCookies {
			req.AddCookie(c)
		}
		resp, err := srv.App.Test(req)
		if err != nil {
			t.Fatalf("%s %s as editor failed: %v", route.method, route.path, err)
		}
		if resp.StatusCode != fiber.StatusForbidden {
			t.Errorf("%s %s as editor = %d, want 403", route.method, route.path, resp.StatusCode)
		}
	}

	// An admin passes the role gate; this request fails on validation,
	// not authorization.
	req, _ := http.NewRequest("POST", "/api/backlinks", strings.NewReader("{}"))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range adminCookies {
		req.AddCookie(c)
	}
	resp, err := srv.App.Test(req)
	if err != nil {
		t.Fatalf("POST /api/backlinks as admin failed: %v", err)
	}
	if resp.StatusCode == fiber.StatusForbidden || resp.StatusCode == fiber.StatusUnauthorized {
		t.Errorf("POST /api/backlinks as admin = %d, want role gate passed", resp.StatusCode)
	}
}
