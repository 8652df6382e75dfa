package db

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"linkledger/internal/models"
)

// Trash coordination. Every move runs inside one transaction: the trash
// copy is written before the original is removed, and a failure at any
// step rolls the whole move back. A record is never both live and trashed.

const backlinkTrashColumns = `id, project_id, category, global_id, website, categories,
	date, da, spam_score, dr, traffic, email, price, niche, published_url,
	username, password, link, status, notes, deleted_at`

func scanBacklinkTrash(row pgx.Row) (*models.BacklinkTrashRecord, error) {
	var t models.BacklinkTrashRecord
	err := row.Scan(
		&t.ID,
		&t.ProjectID,
		&t.Category,
		&t.GlobalID,
		&t.Website,
		&t.Categories,
		&t.Date,
		&t.DA,
		&t.SpamScore,
		&t.DR,
		&t.Traffic,
		&t.Email,
		&t.Price,
		&t.Niche,
		&t.PublishedURL,
		&t.Username,
		&t.Password,
		&t.Link,
		&t.Status,
		&t.Notes,
		&t.DeletedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrTrashRecordNotFound
	}
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// MoveBacklinkToTrash copies a global backlink into backlinks_trash, then
// flags the original as deleted so it disappears from live listings.
func (d *DB) MoveBacklinkToTrash(ctx context.Context, id uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `
		INSERT INTO backlinks_trash (id, global_id, website, categories, da, spam_score,
			dr, traffic, email, price, niche, published_url, status, notes, deleted_at)
		SELECT id, id, website, categories, da, spam_score,
			dr, traffic, email, price, niche, published_url, status, notes, NOW()
		FROM backlinks_all
		WHERE id = $1 AND NOT deleted
	`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrBacklinkNotFound
	}

	if _, err := tx.Exec(ctx, `
		UPDATE backlinks_all SET deleted = TRUE, updated_at = NOW() WHERE id = $1
	`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// MoveProjectBacklinkToTrash copies a project-scoped backlink into
// backlinks_trash with its project and category path, then removes the
// original row.
func (d *DB) MoveProjectBacklinkToTrash(ctx context.Context, id uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := moveProjectBacklinkToTrashTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func moveProjectBacklinkToTrashTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	result, err := tx.Exec(ctx, `
		INSERT INTO backlinks_trash (id, project_id, category, global_id, website,
			date, da, spam_score, username, password, link, notes, deleted_at)
		SELECT id, project_id, category, global_id, website,
			date, da, spam_score, username, password, link, notes, NOW()
		FROM project_backlinks
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrProjectBacklinkNotFound
	}

	_, err = tx.Exec(ctx, `DELETE FROM project_backlinks WHERE id = $1`, id)
	return err
}

// MoveProjectToTrash copies a project into projects_trash and flags the
// original is_deleted so default listings hide it. The project's
// subcollection backlinks stay in place for a later restore.
func (d *DB) MoveProjectToTrash(ctx context.Context, id uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if err := moveProjectToTrashTx(ctx, tx, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func moveProjectToTrashTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
	result, err := tx.Exec(ctx, `
		INSERT INTO projects_trash (id, title, website, website_url, description, keyword,
			email, office_email, phone, location, zip_code,
			facebook, instagram, twitter, linkedin, created_by, deleted_at)
		SELECT id, title, website, website_url, description, keyword,
			email, office_email, phone, location, zip_code,
			facebook, instagram, twitter, linkedin, created_by, NOW()
		FROM projects
		WHERE id = $1 AND NOT is_deleted
	`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrProjectNotFound
	}

	_, err = tx.Exec(ctx, `
		UPDATE projects SET is_deleted = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	return err
}

// GetTrashedBacklinks retrieves all trashed backlinks with the owning
// project's title resolved for display.
func (d *DB) GetTrashedBacklinks(ctx context.Context) ([]models.BacklinkTrashRecord, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT t.id, t.project_id, t.category, t.global_id, t.website, t.categories,
			t.date, t.da, t.spam_score, t.dr, t.traffic, t.email, t.price, t.niche,
			t.published_url, t.username, t.password, t.link, t.status, t.notes,
			t.deleted_at, COALESCE(p.title, '')
		FROM backlinks_trash t
		LEFT JOIN projects p ON p.id = t.project_id
		ORDER BY t.deleted_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.BacklinkTrashRecord
	for rows.Next() {
		var t models.BacklinkTrashRecord
		if err := rows.Scan(
			&t.ID, &t.ProjectID, &t.Category, &t.GlobalID, &t.Website, &t.Categories,
			&t.Date, &t.DA, &t.SpamScore, &t.DR, &t.Traffic, &t.Email, &t.Price, &t.Niche,
			&t.PublishedURL, &t.Username, &t.Password, &t.Link, &t.Status, &t.Notes,
			&t.DeletedAt, &t.ProjectTitle,
		); err != nil {
			return nil, err
		}
		records = append(records, t)
	}
	return records, rows.Err()
}

// GetTrashedBacklinkByID retrieves one backlink trash record.
func (d *DB) GetTrashedBacklinkByID(ctx context.Context, id uuid.UUID) (*models.BacklinkTrashRecord, error) {
	query := `SELECT ` + backlinkTrashColumns + ` FROM backlinks_trash WHERE id = $1`
	return scanBacklinkTrash(d.Pool.QueryRow(ctx, query, id))
}

// GetTrashedProjects retrieves all trashed projects.
func (d *DB) GetTrashedProjects(ctx context.Context) ([]models.ProjectTrashRecord, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT id, title, website, website_url, description, keyword,
			email, office_email, phone, location, zip_code,
			facebook, instagram, twitter, linkedin, created_by, deleted_at
		FROM projects_trash
		ORDER BY deleted_at DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var records []models.ProjectTrashRecord
	for rows.Next() {
		var t models.ProjectTrashRecord
		if err := rows.Scan(
			&t.ID, &t.Title, &t.Website, &t.WebsiteURL, &t.Description, &t.Keyword,
			&t.Email, &t.OfficeEmail, &t.Phone, &t.Location, &t.ZipCode,
			&t.Facebook, &t.Instagram, &t.Twitter, &t.LinkedIn, &t.CreatedBy, &t.DeletedAt,
		); err != nil {
			return nil, err
		}
		records = append(records, t)
	}
	return records, rows.Err()
}

// RestoreBacklink returns a trashed backlink to exactly one live location
// and removes the trash entry. A record whose project is missing (or that
// never had one) is restored to the global collection.
func (d *DB) RestoreBacklink(ctx context.Context, id uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	t, err := scanBacklinkTrash(tx.QueryRow(ctx,
		`SELECT `+backlinkTrashColumns+` FROM backlinks_trash WHERE id = $1`, id))
	if err != nil {
		return err
	}

	restoreToProject := false
	if t.ProjectID != nil {
		var exists bool
		if err := tx.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM projects WHERE id = $1 AND NOT is_deleted)`,
			*t.ProjectID).Scan(&exists); err != nil {
			return err
		}
		restoreToProject = exists
	}

	if restoreToProject {
		category := "Uncategorized"
		if t.Category != nil && *t.Category != "" {
			category = *t.Category
		}
		if _, err := tx.Exec(ctx, `
			INSERT INTO project_backlinks (id, project_id, category, global_id, date, website,
				da, spam_score, username, password, link, notes, restored_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		`, t.ID, *t.ProjectID, category, t.GlobalID, t.Date, t.Website,
			t.DA, t.SpamScore, t.Username, t.Password, t.Link, t.Notes); err != nil {
			return err
		}
	} else {
		// Global restore: unflag the original if it is still present,
		// otherwise re-create it from the trash copy.
		categories := t.Categories
		if len(categories) == 0 && t.Category != nil && *t.Category != "" {
			categories = []string{*t.Category}
		}
		status := t.Status
		if status == "" {
			status = models.StatusNotStarted
		}
		result, err := tx.Exec(ctx, `
			UPDATE backlinks_all SET deleted = FALSE, restored_at = NOW(), updated_at = NOW()
			WHERE id = $1
		`, t.ID)
		if err != nil {
			return err
		}
		if result.RowsAffected() == 0 {
			if _, err := tx.Exec(ctx, `
				INSERT INTO backlinks_all (id, website, categories, da, spam_score, dr,
					traffic, email, price, niche, published_url, status, notes, restored_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
			`, t.ID, t.Website, categories, t.DA, t.SpamScore, t.DR,
				t.Traffic, t.Email, t.Price, t.Niche, t.PublishedURL, status, t.Notes); err != nil {
				return err
			}
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM backlinks_trash WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RestoreProject returns a trashed project to the projects collection and
// removes the trash entry.
func (d *DB) RestoreProject(ctx context.Context, id uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var exists bool
	if err := tx.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM projects_trash WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrTrashRecordNotFound
	}

	// The flagged original normally still exists; re-create it from the
	// trash copy if it was removed out of band.
	result, err := tx.Exec(ctx, `
		UPDATE projects SET is_deleted = FALSE, restored_at = NOW(), updated_at = NOW()
		WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		if _, err := tx.Exec(ctx, `
			INSERT INTO projects (id, title, website, website_url, description, keyword,
				email, office_email, phone, location, zip_code,
				facebook, instagram, twitter, linkedin, created_by, is_deleted, restored_at)
			SELECT id, title, website, website_url, description, keyword,
				email, office_email, phone, location, zip_code,
				facebook, instagram, twitter, linkedin, created_by, FALSE, NOW()
			FROM projects_trash
			WHERE id = $1
		`, id); err != nil {
			return err
		}
	}

	if _, err := tx.Exec(ctx, `DELETE FROM projects_trash WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// PermanentDeleteBacklink removes a backlink trash record for good, along
// with the flagged global original when one remains.
func (d *DB) PermanentDeleteBacklink(ctx context.Context, id uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM backlinks_trash WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTrashRecordNotFound
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM backlinks_all WHERE id = $1 AND deleted
	`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// PermanentDeleteProject removes a project trash record for good. The
// flagged original and its subcollection backlinks go with it.
func (d *DB) PermanentDeleteProject(ctx context.Context, id uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	result, err := tx.Exec(ctx, `DELETE FROM projects_trash WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrTrashRecordNotFound
	}

	if _, err := tx.Exec(ctx, `
		DELETE FROM projects WHERE id = $1 AND is_deleted
	`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
