package db

import (
	"context"

	"github.com/google/uuid"

	"linkledger/internal/models"
)

// CreateGoal inserts a new goal for a project.
func (d *DB) CreateGoal(ctx context.Context, g *models.Goal) error {
	query := `
		INSERT INTO project_goals (project_id, title, target, due_date)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`
	return d.Pool.QueryRow(ctx, query,
		g.ProjectID,
		g.Title,
		g.Target,
		g.DueDate,
	).Scan(&g.ID, &g.CreatedAt)
}

// GetGoals retrieves all goals for a project.
func (d *DB) GetGoals(ctx context.Context, projectID uuid.UUID) ([]models.Goal, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, project_id, title, target, due_date, created_at
		FROM project_goals
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var goals []models.Goal
	for rows.Next() {
		var g models.Goal
		if err := rows.Scan(&g.ID, &g.ProjectID, &g.Title, &g.Target, &g.DueDate, &g.CreatedAt); err != nil {
			return nil, err
		}
		goals = append(goals, g)
	}
	return goals, rows.Err()
}

// DeleteGoal removes a goal.
func (d *DB) DeleteGoal(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `DELETE FROM project_goals WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrGoalNotFound
	}
	return nil
}
