package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"linkledger/internal/models"
)

const projectColumns = `id, title, website, website_url, description, keyword,
	email, office_email, phone, location, zip_code,
	facebook, instagram, twitter, linkedin,
	is_deleted, created_by, restored_at, created_at, updated_at`

func scanProject(row pgx.Row) (*models.Project, error) {
	var p models.Project
	err := row.Scan(
		&p.ID,
		&p.Title,
		&p.Website,
		&p.WebsiteURL,
		&p.Description,
		&p.Keyword,
		&p.Email,
		&p.OfficeEmail,
		&p.Phone,
		&p.Location,
		&p.ZipCode,
		&p.Facebook,
		&p.Instagram,
		&p.Twitter,
		&p.LinkedIn,
		&p.IsDeleted,
		&p.CreatedBy,
		&p.RestoredAt,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func scanProjects(rows pgx.Rows) ([]models.Project, error) {
	defer rows.Close()

	var projects []models.Project
	for rows.Next() {
		var p models.Project
		if err := rows.Scan(
			&p.ID,
			&p.Title,
			&p.Website,
			&p.WebsiteURL,
			&p.Description,
			&p.Keyword,
			&p.Email,
			&p.OfficeEmail,
			&p.Phone,
			&p.Location,
			&p.ZipCode,
			&p.Facebook,
			&p.Instagram,
			&p.Twitter,
			&p.LinkedIn,
			&p.IsDeleted,
			&p.CreatedBy,
			&p.RestoredAt,
			&p.CreatedAt,
			&p.UpdatedAt,
		); err != nil {
			return nil, err
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// CreateProject creates a new project.
func (d *DB) CreateProject(ctx context.Context, p *models.Project) error {
	query := `
		INSERT INTO projects (title, website, website_url, description, keyword, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, is_deleted, created_at, updated_at
	`
	return d.Pool.QueryRow(ctx, query,
		p.Title,
		p.Website,
		p.WebsiteURL,
		p.Description,
		p.Keyword,
		p.CreatedBy,
	).Scan(&p.ID, &p.IsDeleted, &p.CreatedAt, &p.UpdatedAt)
}

// GetProjectByID retrieves a project by ID, trashed or not.
func (d *DB) GetProjectByID(ctx context.Context, id uuid.UUID) (*models.Project, error) {
	query := `SELECT ` + projectColumns + ` FROM projects WHERE id = $1`
	return scanProject(d.Pool.QueryRow(ctx, query, id))
}

// GetProjects retrieves all live projects, optionally filtered by a search
// term matched against title and website.
func (d *DB) GetProjects(ctx context.Context, search string) ([]models.Project, error) {
	var rows pgx.Rows
	var err error

	if search == "" {
		rows, err = d.Pool.Query(ctx, `
			SELECT `+projectColumns+`
			FROM projects
			WHERE NOT is_deleted
			ORDER BY created_at DESC
		`)
	} else {
		pattern := "%" + search + "%"
		rows, err = d.Pool.Query(ctx, `
			SELECT `+projectColumns+`
			FROM projects
			WHERE NOT is_deleted AND (title ILIKE $1 OR website ILIKE $1)
			ORDER BY created_at DESC
		`, pattern)
	}
	if err != nil {
		return nil, err
	}
	return scanProjects(rows)
}

// UpdateProject updates a project's editable fields.
func (d *DB) UpdateProject(ctx context.Context, p *models.Project) error {
	query := `
		UPDATE projects
		SET title = $1, website = $2, website_url = $3, description = $4, keyword = $5,
			email = $6, office_email = $7, phone = $8, location = $9, zip_code = $10,
			facebook = $11, instagram = $12, twitter = $13, linkedin = $14,
			updated_at = NOW()
		WHERE id = $15 AND NOT is_deleted
		RETURNING updated_at
	`
	err := d.Pool.QueryRow(ctx, query,
		p.Title, p.Website, p.WebsiteURL, p.Description, p.Keyword,
		p.Email, p.OfficeEmail, p.Phone, p.Location, p.ZipCode,
		p.Facebook, p.Instagram, p.Twitter, p.LinkedIn,
		p.ID,
	).Scan(&p.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrProjectNotFound
	}
	return err
}
