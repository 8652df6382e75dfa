package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"linkledger/internal/models"
)

const projectBacklinkColumns = `id, project_id, category, global_id, date, website,
	da, spam_score, username, password, link, notes, restored_at, created_at`

func scanProjectBacklink(row pgx.Row) (*models.ProjectBacklink, error) {
	var b models.ProjectBacklink
	err := row.Scan(
		&b.ID,
		&b.ProjectID,
		&b.Category,
		&b.GlobalID,
		&b.Date,
		&b.Website,
		&b.DA,
		&b.SpamScore,
		&b.Username,
		&b.Password,
		&b.Link,
		&b.Notes,
		&b.RestoredAt,
		&b.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectBacklinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

// CreateProjectBacklink inserts a backlink under a project+category path.
func (d *DB) CreateProjectBacklink(ctx context.Context, b *models.ProjectBacklink) error {
	query := `
		INSERT INTO project_backlinks (project_id, category, global_id, date, website,
			da, spam_score, username, password, link, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at
	`
	return d.Pool.QueryRow(ctx, query,
		b.ProjectID,
		b.Category,
		b.GlobalID,
		b.Date,
		b.Website,
		b.DA,
		b.SpamScore,
		b.Username,
		b.Password,
		b.Link,
		b.Notes,
	).Scan(&b.ID, &b.CreatedAt)
}

// GetProjectBacklinkByID retrieves a project-scoped backlink by ID.
func (d *DB) GetProjectBacklinkByID(ctx context.Context, id uuid.UUID) (*models.ProjectBacklink, error) {
	query := `SELECT ` + projectBacklinkColumns + ` FROM project_backlinks WHERE id = $1`
	return scanProjectBacklink(d.Pool.QueryRow(ctx, query, id))
}

// GetProjectBacklinks retrieves a project's backlinks, grouped per
// canonical category. Every category is present in the result map.
func (d *DB) GetProjectBacklinks(ctx context.Context, projectID uuid.UUID) (map[string][]models.ProjectBacklink, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT `+projectBacklinkColumns+`
		FROM project_backlinks
		WHERE project_id = $1
		ORDER BY created_at ASC
	`, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	grouped := make(map[string][]models.ProjectBacklink, len(models.Categories))
	for _, cat := range models.Categories {
		grouped[cat] = []models.ProjectBacklink{}
	}

	for rows.Next() {
		var b models.ProjectBacklink
		if err := rows.Scan(
			&b.ID,
			&b.ProjectID,
			&b.Category,
			&b.GlobalID,
			&b.Date,
			&b.Website,
			&b.DA,
			&b.SpamScore,
			&b.Username,
			&b.Password,
			&b.Link,
			&b.Notes,
			&b.RestoredAt,
			&b.CreatedAt,
		); err != nil {
			return nil, err
		}
		grouped[b.Category] = append(grouped[b.Category], b)
	}
	return grouped, rows.Err()
}

// CountProjectBacklinks returns the total backlink count for a project
// across all categories, used for goal progress.
func (d *DB) CountProjectBacklinks(ctx context.Context, projectID uuid.UUID) (int, error) {
	var count int
	err := d.Pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM project_backlinks WHERE project_id = $1
	`, projectID).Scan(&count)
	return count, err
}
