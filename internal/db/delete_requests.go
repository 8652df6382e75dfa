package db

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"linkledger/internal/models"
)

// CreateDeleteRequest records an editor's intent to delete an item. The
// live item is not touched; snapshot carries its data at request time so
// approval can proceed even if the item changes or vanishes.
func (d *DB) CreateDeleteRequest(ctx context.Context, req *models.DeleteRequest) error {
	snapshot := req.Snapshot
	if len(snapshot) == 0 {
		snapshot = json.RawMessage(`{}`)
	}

	query := `
		INSERT INTO delete_requests (type, item_id, project_id, category, requested_by, snapshot)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, status, created_at
	`
	return d.Pool.QueryRow(ctx, query,
		req.Type,
		req.ItemID,
		req.ProjectID,
		req.Category,
		req.RequestedBy,
		snapshot,
	).Scan(&req.ID, &req.Status, &req.CreatedAt)
}

// GetDeleteRequestByID retrieves a delete request with requester info.
func (d *DB) GetDeleteRequestByID(ctx context.Context, id uuid.UUID) (*models.DeleteRequest, error) {
	query := `
		SELECT r.id, r.type, r.item_id, r.project_id, r.category, r.status,
			r.requested_by, r.snapshot, r.created_at,
			COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(p.title, '')
		FROM delete_requests r
		LEFT JOIN users u ON u.id = r.requested_by
		LEFT JOIN projects p ON p.id = r.project_id
		WHERE r.id = $1
	`
	var req models.DeleteRequest
	err := d.Pool.QueryRow(ctx, query, id).Scan(
		&req.ID, &req.Type, &req.ItemID, &req.ProjectID, &req.Category, &req.Status,
		&req.RequestedBy, &req.Snapshot, &req.CreatedAt,
		&req.RequesterName, &req.RequesterEmail, &req.ProjectTitle,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrDeleteRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return &req, nil
}

// GetPendingDeleteRequests returns all requests awaiting admin review.
func (d *DB) GetPendingDeleteRequests(ctx context.Context) ([]models.DeleteRequest, error) {
	rows, err := d.Pool.Query(ctx, `
		SELECT r.id, r.type, r.item_id, r.project_id, r.category, r.status,
			r.requested_by, r.snapshot, r.created_at,
			COALESCE(u.name, ''), COALESCE(u.email, ''), COALESCE(p.title, '')
		FROM delete_requests r
		LEFT JOIN users u ON u.id = r.requested_by
		LEFT JOIN projects p ON p.id = r.project_id
		WHERE r.status = $1
		ORDER BY r.created_at ASC
	`, models.StatusPendingAdmin)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var requests []models.DeleteRequest
	for rows.Next() {
		var req models.DeleteRequest
		if err := rows.Scan(
			&req.ID, &req.Type, &req.ItemID, &req.ProjectID, &req.Category, &req.Status,
			&req.RequestedBy, &req.Snapshot, &req.CreatedAt,
			&req.RequesterName, &req.RequesterEmail, &req.ProjectTitle,
		); err != nil {
			return nil, err
		}
		requests = append(requests, req)
	}
	return requests, rows.Err()
}

// ApproveDeleteRequest performs the trash move for the referenced item and
// removes the request, all in one transaction. The freshest copy of the
// item is preferred; if it is gone, the snapshot embedded in the request
// is trashed instead so the approval still lands somewhere recoverable.
func (d *DB) ApproveDeleteRequest(ctx context.Context, id uuid.UUID) error {
	tx, err := d.Pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	var req models.DeleteRequest
	err = tx.QueryRow(ctx, `
		SELECT id, type, item_id, project_id, category, snapshot
		FROM delete_requests
		WHERE id = $1 AND status = $2
	`, id, models.StatusPendingAdmin).Scan(
		&req.ID, &req.Type, &req.ItemID, &req.ProjectID, &req.Category, &req.Snapshot,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrDeleteRequestNotFound
	}
	if err != nil {
		return err
	}

	switch req.Type {
	case models.DeleteTypeProject:
		err = moveProjectToTrashTx(ctx, tx, req.ItemID)
		if errors.Is(err, ErrProjectNotFound) {
			err = trashProjectSnapshotTx(ctx, tx, &req)
		}
	case models.DeleteTypeBacklink:
		if req.ProjectID != nil {
			err = moveProjectBacklinkToTrashTx(ctx, tx, req.ItemID)
			if errors.Is(err, ErrProjectBacklinkNotFound) {
				err = trashProjectBacklinkSnapshotTx(ctx, tx, &req)
			}
		} else {
			err = moveGlobalBacklinkToTrashTx(ctx, tx, req.ItemID)
			if errors.Is(err, ErrBacklinkNotFound) {
				err = trashGlobalBacklinkSnapshotTx(ctx, tx, &req)
			}
		}
	default:
		err = errors.New("unknown delete request type: " + req.Type)
	}
	if err != nil {
		return err
	}

	if _, err := tx.Exec(ctx, `DELETE FROM delete_requests WHERE id = $1`, id); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// RejectDeleteRequest removes the request with no data side effect.
func (d *DB) RejectDeleteRequest(ctx context.Context, id uuid.UUID) error {
	result, err := d.Pool.Exec(ctx, `
		DELETE FROM delete_requests WHERE id = $1 AND status = $2
	`, id, models.StatusPendingAdmin)
	if err != nil {
		return err
	}
	if result.RowsAffected() == 0 {
		return ErrDeleteRequestNotFound
	}
	return nil
}

func moveGlobalBacklinkToTrashTx(ctx context.Context, tx pgx.Tx, id uuid.UUID) error {
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

	_, err = tx.Exec(ctx, `
		UPDATE backlinks_all SET deleted = TRUE, updated_at = NOW() WHERE id = $1
	`, id)
	return err
}

// trashGlobalBacklinkSnapshotTx writes a trash record from the snapshot
// taken at request time, used when the live global backlink has already
// disappeared. The snapshot carries the full row, categories and status
// included, so a later restore loses nothing.
func trashGlobalBacklinkSnapshotTx(ctx context.Context, tx pgx.Tx, req *models.DeleteRequest) error {
	var snap models.Backlink
	if err := json.Unmarshal(req.Snapshot, &snap); err != nil {
		return err
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO backlinks_trash (id, global_id, website, categories, da, spam_score,
			dr, traffic, email, price, niche, published_url, status, notes, deleted_at)
		VALUES ($1, $1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, NOW())
		ON CONFLICT (id) DO NOTHING
	`, req.ItemID, snap.Website, snap.Categories, snap.DA, snap.SpamScore,
		snap.DR, snap.Traffic, snap.Email, snap.Price, snap.Niche,
		snap.PublishedURL, snap.Status, snap.Notes)
	return err
}

// trashProjectBacklinkSnapshotTx writes a trash record from the snapshot
// taken at request time, used when the live project-scoped backlink has
// already disappeared.
func trashProjectBacklinkSnapshotTx(ctx context.Context, tx pgx.Tx, req *models.DeleteRequest) error {
	var snap models.ProjectBacklink
	if err := json.Unmarshal(req.Snapshot, &snap); err != nil {
		return err
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO backlinks_trash (id, project_id, category, global_id, website,
			date, da, spam_score, username, password, link, notes, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, NOW())
		ON CONFLICT (id) DO NOTHING
	`, req.ItemID, req.ProjectID, req.Category, snap.GlobalID, snap.Website,
		snap.Date, snap.DA, snap.SpamScore, snap.Username, snap.Password, snap.Link, snap.Notes)
	return err
}

// trashProjectSnapshotTx writes a project trash record from the request
// snapshot, used when the live project has already disappeared.
func trashProjectSnapshotTx(ctx context.Context, tx pgx.Tx, req *models.DeleteRequest) error {
	var snap models.Project
	if err := json.Unmarshal(req.Snapshot, &snap); err != nil {
		return err
	}

	_, err := tx.Exec(ctx, `
		INSERT INTO projects_trash (id, title, website, website_url, description, keyword,
			email, office_email, phone, location, zip_code,
			facebook, instagram, twitter, linkedin, created_by, deleted_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW())
		ON CONFLICT (id) DO NOTHING
	`, req.ItemID, snap.Title, snap.Website, snap.WebsiteURL, snap.Description, snap.Keyword,
		snap.Email, snap.OfficeEmail, snap.Phone, snap.Location, snap.ZipCode,
		snap.Facebook, snap.Instagram, snap.Twitter, snap.LinkedIn, snap.CreatedBy)
	return err
}
