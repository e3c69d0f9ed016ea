package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/google/uuid"
)

func (r *SQLiteRepo) CreateInspection(ctx context.Context, i *models.Inspection) (string, error) {
	if i == nil {
		return "", fmt.Errorf("inspection is nil")
	}
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	if i.Status == "" {
		i.Status = "pending"
	}
	i.Created = now()

	_, err := r.conn.Exec(ctx,
		`INSERT INTO inspections (id, project_id, title, status, notes, inspector_id, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		i.ID, i.ProjectID, i.Title, i.Status, i.Notes, nullable(i.InspectorID), i.Created)
	if err != nil {
		return "", mapErr(err)
	}

	return i.ID, nil
}

func (r *SQLiteRepo) GetInspectionByID(ctx context.Context, id string) (*models.Inspection, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, project_id, title, status, notes, inspector_id, created FROM inspections WHERE id = ?`, id)
	i, err := scanInspection(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return i, nil
}

func (r *SQLiteRepo) ListInspections(ctx context.Context) ([]models.Inspection, error) {
	return r.listInspections(ctx, `SELECT id, project_id, title, status, notes, inspector_id, created FROM inspections`)
}

func (r *SQLiteRepo) ListInspectionsByProject(ctx context.Context, projectID string) ([]models.Inspection, error) {
	return r.listInspections(ctx, `SELECT id, project_id, title, status, notes, inspector_id, created FROM inspections WHERE project_id = ?`, projectID)
}

func (r *SQLiteRepo) listInspections(ctx context.Context, query string, args ...any) ([]models.Inspection, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Inspection
	for rows.Next() {
		i, err := scanInspection(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *i)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateInspection(ctx context.Context, i *models.Inspection) error {
	if i == nil {
		return fmt.Errorf("inspection is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM inspections WHERE id = ?`, i.ID).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE inspections SET title = ?, status = ?, notes = ? WHERE id = ?`,
			i.Title, i.Status, i.Notes, i.ID)
		return mapErr(err)
	})
}

func (r *SQLiteRepo) DeleteInspection(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM inspections WHERE id = ?`, id)
	if err != nil {
		return mapErr(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func scanInspection(scan func(dest ...any) error) (*models.Inspection, error) {
	var i models.Inspection
	var notes, inspectorID sql.NullString
	if err := scan(&i.ID, &i.ProjectID, &i.Title, &i.Status, &notes, &inspectorID, &i.Created); err != nil {
		return nil, err
	}
	i.Notes = notes.String
	i.InspectorID = inspectorID.String
	return &i, nil
}
