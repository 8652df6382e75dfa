package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"linkledger/internal/models"
)

const backlinkColumns = `id, website, categories, da, spam_score, dr, traffic,
	email, price, niche, published_url, status, notes, deleted, restored_at,
	health_status, health_checked_at, health_error, created_at, updated_at`

func scanBacklink(row pgx.Row) (*models.Backlink, error) {
	var b models.Backlink
	err := row.Scan(
		&b.ID,
		&b.Website,
		&b.Categories,
		&b.DA,
		&b.SpamScore,
		&b.DR,
		&b.Traffic,
		&b.Email,
		&b.Price,
		&b.Niche,
		&b.PublishedURL,
		&b.Status,
		&b.Notes,
		&b.Deleted,
		&b.RestoredAt,
		&b.HealthStatus,
		&b.HealthCheckedAt,
		&b.HealthError,
		&b.CreatedAt,
		&b.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrBacklinkNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func scanBacklinks(rows pgx.Rows) ([]models.Backlink, error) {
	defer rows.Close()

	var links []models.Backlink
	for rows.Next() {
		var b models.Backlink
		if err := rows.Scan(
			&b.ID,
			&b.Website,
			&b.Categories,
			&b.DA,
			&b.SpamScore,
			&b.DR,
			&b.Traffic,
			&b.Email,
			&b.Price,
			&b.Niche,
			&b.PublishedURL,
			&b.Status,
			&b.Notes,
			&b.Deleted,
			&b.RestoredAt,
			&b.HealthStatus,
			&b.HealthCheckedAt,
			&b.HealthError,
			&b.CreatedAt,
			&b.UpdatedAt,
		); err != nil {
			return nil, err
		}
		links = append(links, b)
	}
	return links, rows.Err()
}

// CreateBacklink inserts a new global backlink. The caller is responsible
// for normalizing the website and running the duplicate check first.
func (d *DB) CreateBacklink(ctx context.Context, b *models.Backlink) error {
	status := b.Status
	if status == "" {
		status = models.StatusNotStarted
	}

	query := `
		INSERT INTO backlinks_all (website, categories, da, spam_score, dr, traffic,
			email, price, niche, published_url, status, notes)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, deleted, health_status, created_at, updated_at
	`
	err := d.Pool.QueryRow(ctx, query,
		b.Website,
		b.Categories,
		b.DA,
		b.SpamScore,
		b.DR,
		b.Traffic,
		b.Email,
		b.Price,
		b.Niche,
		b.PublishedURL,
		status,
		b.Notes,
	).Scan(&b.ID, &b.Deleted, &b.HealthStatus, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return err
	}

	b.Status = status
	return nil
}

// GetBacklinkByID retrieves a global backlink by ID, deleted or not.
func (d *DB) GetBacklinkByID(ctx context.Context, id uuid.UUID) (*models.Backlink, error) {
	query := `SELECT ` + backlinkColumns + ` FROM backlinks_all WHERE id = $1`
	return scanBacklink(d.Pool.QueryRow(ctx, query, id))
}

// GetLiveBacklinks retrieves all non-deleted global backlinks. The importer
// loads this once per batch rather than querying per row.
func (d *DB) GetLiveBacklinks(ctx context.Context) ([]models.Backlink, error) {
	query := `
		SELECT ` + backlinkColumns + `
		FROM backlinks_all
		WHERE NOT deleted
		ORDER BY created_at DESC
	`
	rows, err := d.Pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanBacklinks(rows)
}

// SearchBacklinks retrieves non-deleted global backlinks filtered by an
// optional category tab and a website search term.
func (d *DB) SearchBacklinks(ctx context.Context, category, search string) ([]models.Backlink, error) {
	sql := `SELECT ` + backlinkColumns + ` FROM backlinks_all WHERE NOT deleted`
	var args []any

	if category != "" {
		args = append(args, category)
		sql += ` AND $1 = ANY(categories)`
	}
	if search != "" {
		args = append(args, "%"+search+"%")
		if len(args) == 1 {
			sql += ` AND website ILIKE $1`
		} else {
			sql += ` AND website ILIKE $2`
		}
	}
	sql += ` ORDER BY created_at DESC`

	rows, err := d.Pool.Query(ctx, sql, args...)
	if err != nil {
		return nil, err
	}
	return scanBacklinks(rows)
}

// BacklinkExists reports whether a non-deleted global backlink exists with
// the given normalized website and at least one of the given categories.
// Uniqueness is global only; project-scoped copies are not consulted.
func (d *DB) BacklinkExists(ctx context.Context, website string, categories []string) (bool, error) {
	var exists bool
	err := d.Pool.QueryRow(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM backlinks_all
			WHERE NOT deleted AND website = $1 AND categories && $2
		)
	`, website, categories).Scan(&exists)
	return exists, err
}

// UpdateBacklink updates a global backlink's editable row fields.
func (d *DB) UpdateBacklink(ctx context.Context, b *models.Backlink) error {
	query := `
		UPDATE backlinks_all
		SET website = $1, categories = $2, da = $3, spam_score = $4, dr = $5,
			traffic = $6, email = $7, price = $8, niche = $9, published_url = $10,
			status = $11, notes = $12, updated_at = NOW()
		WHERE id = $13 AND NOT deleted
		RETURNING updated_at
	`
	err := d.Pool.QueryRow(ctx, query,
		b.Website, b.Categories, b.DA, b.SpamScore, b.DR,
		b.Traffic, b.Email, b.Price, b.Niche, b.PublishedURL,
		b.Status, b.Notes, b.ID,
	).Scan(&b.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrBacklinkNotFound
	}
	return err
}

// CountBacklinksByCategory returns non-deleted backlink counts per
// canonical category, for the metrics collector.
func (d *DB) CountBacklinksByCategory(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT c, COUNT(*)
		FROM backlinks_all, UNNEST(categories) AS c
		WHERE NOT deleted
		GROUP BY c
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var category string
		var count int64
		if err := rows.Scan(&category, &count); err != nil {
			return nil, err
		}
		counts[category] = count
	}
	return counts, rows.Err()
}

// CountBacklinksByStatus returns non-deleted backlink counts per workflow
// status, for the metrics collector.
func (d *DB) CountBacklinksByStatus(ctx context.Context) (map[string]int64, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT status, COUNT(*)
		FROM backlinks_all
		WHERE NOT deleted
		GROUP BY status
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}

// GetBacklinksNeedingHealthCheck retrieves backlinks with a published URL
// whose health has not been checked within maxAge.
func (d *DB) GetBacklinksNeedingHealthCheck(ctx context.Context, maxAgeHours int, limit int) ([]models.Backlink, error) {
	query := `
		SELECT ` + backlinkColumns + `
		FROM backlinks_all
		WHERE NOT deleted AND published_url <> ''
			AND (health_checked_at IS NULL OR health_checked_at < NOW() - make_interval(hours => $1))
		ORDER BY health_checked_at NULLS FIRST
		LIMIT $2
	`
	rows, err := d.Pool.Query(ctx, query, maxAgeHours, limit)
	if err != nil {
		return nil, err
	}
	return scanBacklinks(rows)
}

// UpdateBacklinkHealthStatus updates the health fields for a backlink.
func (d *DB) UpdateBacklinkHealthStatus(ctx context.Context, id uuid.UUID, status string, errorMsg *string) error {
	result, err := d.Pool.Exec(ctx, `
		UPDATE backlinks_all
		SET health_status = $1, health_checked_at = NOW(), health_error = $2
		WHERE id = $3
	`, status, errorMsg, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrBacklinkNotFound
	}
	return nil
}
