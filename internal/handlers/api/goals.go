package api

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"linkledger/internal/db"
	"linkledger/internal/models"
)

// GoalHandler handles per-project backlink goals.
type GoalHandler struct {
	db *db.DB
}

// NewGoalHandler creates a new goal handler.
func NewGoalHandler(database *db.DB) *GoalHandler {
	return &GoalHandler{db: database}
}

// goalView pairs a goal with its current progress.
type goalView struct {
	models.Goal
	Progress int  `json:"progress"`
	Met      bool `json:"met"`
	Overdue  bool `json:"overdue"`
}

// List returns a project's goals with progress computed from its current
// backlink count.
func (h *GoalHandler) List(c fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	goals, err := h.db.GetGoals(c.Context(), projectID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to fetch goals")
	}

	progress, err := h.db.CountProjectBacklinks(c.Context(), projectID)
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to count backlinks")
	}

	now := time.Now()
	views := make([]goalView, 0, len(goals))
	for _, g := range goals {
		views = append(views, goalView{
			Goal:     g,
			Progress: progress,
			Met:      progress >= g.Target,
			Overdue:  g.Due(progress, now),
		})
	}

	return jsonSuccess(c, views)
}

// Create adds a goal to a project.
func (h *GoalHandler) Create(c fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid project id")
	}

	var body struct {
		Title   string `json:"title"`
		Target  int    `json:"target"`
		DueDate string `json:"due_date"` // YYYY-MM-DD
	}
	if err := json.Unmarshal(c.Body(), &body); err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid request body")
	}

	if body.Title == "" {
		return jsonError(c, fiber.StatusBadRequest, "title is required")
	}
	if body.Target <= 0 {
		return jsonError(c, fiber.StatusBadRequest, "target must be positive")
	}

	goal := &models.Goal{
		ProjectID: projectID,
		Title:     body.Title,
		Target:    body.Target,
	}

	if body.DueDate != "" {
		due, err := time.Parse("2006-01-02", body.DueDate)
		if err != nil {
			return jsonError(c, fiber.StatusBadRequest, "due_date must be YYYY-MM-DD")
		}
		goal.DueDate = &due
	}

	if err := h.db.CreateGoal(c.Context(), goal); err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to create goal")
	}

	return jsonSuccess(c, goal)
}

// Delete removes a goal.
func (h *GoalHandler) Delete(c fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("goalID"))
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "invalid goal id")
	}

	if err := h.db.DeleteGoal(c.Context(), id); err != nil {
		if errors.Is(err, db.ErrGoalNotFound) {
			return jsonError(c, fiber.StatusNotFound, "goal not found")
		}
		return jsonError(c, fiber.StatusInternalServerError, "failed to delete goal")
	}

	return jsonSuccess(c, fiber.Map{"message": "goal deleted"})
}
