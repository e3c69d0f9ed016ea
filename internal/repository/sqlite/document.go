package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/google/uuid"
)

func (r *SQLiteRepo) CreateDocument(ctx context.Context, d *models.Document) (string, error) {
	if d == nil {
		return "", fmt.Errorf("document is nil")
	}
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	if d.Type == "" {
		d.Type = "other"
	}
	if d.Version == "" {
		d.Version = "v1.0"
	}
	d.Created = now()

	_, err := r.conn.Exec(ctx,
		`INSERT INTO documents (id, project_id, name, type, version, uploaded_by, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		d.ID, d.ProjectID, d.Name, d.Type, d.Version, nullable(d.UploadedBy), d.Created)
	if err != nil {
		return "", mapErr(err)
	}

	return d.ID, nil
}

func (r *SQLiteRepo) GetDocumentByID(ctx context.Context, id string) (*models.Document, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, project_id, name, type, version, uploaded_by, created FROM documents WHERE id = ?`, id)
	d, err := scanDocument(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return d, nil
}

func (r *SQLiteRepo) ListDocuments(ctx context.Context) ([]models.Document, error) {
	return r.listDocuments(ctx, `SELECT id, project_id, name, type, version, uploaded_by, created FROM documents`)
}

func (r *SQLiteRepo) ListDocumentsByProject(ctx context.Context, projectID string) ([]models.Document, error) {
	return r.listDocuments(ctx, `SELECT id, project_id, name, type, version, uploaded_by, created FROM documents WHERE project_id = ?`, projectID)
}

func (r *SQLiteRepo) listDocuments(ctx context.Context, query string, args ...any) ([]models.Document, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Document
	for rows.Next() {
		d, err := scanDocument(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateDocument(ctx context.Context, d *models.Document) error {
	if d == nil {
		return fmt.Errorf("document is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM documents WHERE id = ?`, d.ID).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE documents SET name = ?, type = ?, version = ? WHERE id = ?`,
			d.Name, d.Type, d.Version, d.ID)
		return mapErr(err)
	})
}

func (r *SQLiteRepo) DeleteDocument(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM documents WHERE id = ?`, id)
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

func scanDocument(scan func(dest ...any) error) (*models.Document, error) {
	var d models.Document
	var uploadedBy sql.NullString
	if err := scan(&d.ID, &d.ProjectID, &d.Name, &d.Type, &d.Version, &uploadedBy, &d.Created); err != nil {
		return nil, err
	}
	d.UploadedBy = uploadedBy.String
	return &d, nil
}
