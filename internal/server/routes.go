package server

import (
	"context"
	"log"

	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"linkledger/internal/db"
	"linkledger/internal/email"
	"linkledger/internal/handlers"
	"linkledger/internal/handlers/api"
	"linkledger/internal/middleware"
)

// RegisterRoutes registers all application routes.
func (s *Server) RegisterRoutes(ctx context.Context, database *db.DB, notifier *email.Notifier) error {
	authMiddleware := middleware.NewAuthMiddleware(database)

	probeHandler := handlers.NewProbeHandler(database)
	projectHandler := api.NewProjectHandler(database, notifier)
	backlinkHandler := api.NewBacklinkHandler(database, notifier)
	projectBacklinkHandler := api.NewProjectBacklinkHandler(database, notifier)
	trashHandler := api.NewTrashHandler(database)
	deleteRequestHandler := api.NewDeleteRequestHandler(database, notifier)
	userHandler := api.NewUserHandler(database)
	goalHandler := api.NewGoalHandler(database)
	importHandler := api.NewImportHandler(database)
	exportHandler := api.NewExportHandler(database)

	// Auth routes - OIDC is always required for API access
	if s.Cfg.OIDCIssuer == "" {
		log.Fatal("OIDC_ISSUER is required. All users must be authenticated.")
	}

	authHandler, err := handlers.NewAuthHandler(ctx, s.Cfg, database)
	if err != nil {
		return err
	}

	s.App.Get("/auth/login", authHandler.Login)
	s.App.Get("/auth/callback", authHandler.Callback)
	s.App.Get("/auth/logout", authHandler.Logout)

	// Probes and metrics
	s.App.Get("/healthz", probeHandler.Liveness)
	s.App.Get("/readyz", probeHandler.Readiness)
	s.App.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	// Current user
	s.App.Get("/api/me", authMiddleware.RequireAuth, userHandler.Me)

	// Global backlinks
	s.App.Get("/api/backlinks", authMiddleware.RequireAuth, backlinkHandler.List)
	s.App.Get("/api/backlinks/export", authMiddleware.RequireAuth, exportHandler.Download)
	s.App.Get("/api/backlinks/:id", authMiddleware.RequireAuth, backlinkHandler.Get)
	s.App.Post("/api/backlinks", authMiddleware.RequireAdmin, backlinkHandler.Create)
	s.App.Put("/api/backlinks/:id", authMiddleware.RequireAdmin, backlinkHandler.Update)
	s.App.Delete("/api/backlinks/:id", authMiddleware.RequireEditor, backlinkHandler.Delete)

	// Spreadsheet import
	s.App.Post("/api/backlinks/import", authMiddleware.RequireAdmin, importHandler.Upload)

	// Projects
	s.App.Get("/api/projects", authMiddleware.RequireAuth, projectHandler.List)
	s.App.Get("/api/projects/:id", authMiddleware.RequireAuth, projectHandler.Get)
	s.App.Post("/api/projects", authMiddleware.RequireEditor, projectHandler.Create)
	s.App.Put("/api/projects/:id", authMiddleware.RequireEditor, projectHandler.Update)
	s.App.Delete("/api/projects/:id", authMiddleware.RequireEditor, projectHandler.Delete)

	// Project backlinks, grouped by category
	s.App.Get("/api/projects/:id/backlinks", authMiddleware.RequireAuth, projectBacklinkHandler.List)
	s.App.Post("/api/projects/:id/backlinks", authMiddleware.RequireEditor, projectBacklinkHandler.Create)
	s.App.Delete("/api/projects/:id/backlinks/:backlinkID", authMiddleware.RequireEditor, projectBacklinkHandler.Delete)

	// Project goals
	s.App.Get("/api/projects/:id/goals", authMiddleware.RequireAuth, goalHandler.List)
	s.App.Post("/api/projects/:id/goals", authMiddleware.RequireEditor, goalHandler.Create)
	s.App.Delete("/api/projects/:id/goals/:goalID", authMiddleware.RequireEditor, goalHandler.Delete)

	// Trash (admin only)
	s.App.Get("/api/trash", authMiddleware.RequireAdmin, trashHandler.List)
	s.App.Post("/api/trash/backlinks/:id/restore", authMiddleware.RequireAdmin, trashHandler.RestoreBacklink)
	s.App.Post("/api/trash/projects/:id/restore", authMiddleware.RequireAdmin, trashHandler.RestoreProject)
	s.App.Delete("/api/trash/backlinks/:id", authMiddleware.RequireAdmin, trashHandler.PermanentDeleteBacklink)
	s.App.Delete("/api/trash/projects/:id", authMiddleware.RequireAdmin, trashHandler.PermanentDeleteProject)

	// Delete requests (admin only)
	s.App.Get("/api/delete-requests", authMiddleware.RequireAdmin, deleteRequestHandler.List)
	s.App.Post("/api/delete-requests/:id/approve", authMiddleware.RequireAdmin, deleteRequestHandler.Approve)
	s.App.Post("/api/delete-requests/:id/reject", authMiddleware.RequireAdmin, deleteRequestHandler.Reject)

	// User management (admin only)
	s.App.Get("/api/users", authMiddleware.RequireAdmin, userHandler.List)
	s.App.Post("/api/users/:id/role", authMiddleware.RequireAdmin, userHandler.UpdateRole)

	return nil
}
