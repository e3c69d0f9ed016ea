package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/google/uuid"
)

func (r *SQLiteRepo) CreateBid(ctx context.Context, b *models.Bid) (string, error) {
	if b == nil {
		return "", fmt.Errorf("bid is nil")
	}
	if b.ID == "" {
		b.ID = uuid.NewString()
	}
	if b.Status == "" {
		b.Status = "draft"
	}
	b.Created = now()

	_, err := r.conn.Exec(ctx,
		`INSERT INTO bids (id, project_id, title, status, amount_cents, created_by, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		b.ID, b.ProjectID, b.Title, b.Status, cents(b.Amount), nullable(b.CreatedBy), b.Created)
	if err != nil {
		return "", mapErr(err)
	}

	return b.ID, nil
}

func (r *SQLiteRepo) GetBidByID(ctx context.Context, id string) (*models.Bid, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, project_id, title, status, amount_cents, created_by, created FROM bids WHERE id = ?`, id)
	b, err := scanBid(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return b, nil
}

func (r *SQLiteRepo) ListBids(ctx context.Context) ([]models.Bid, error) {
	return r.listBids(ctx, `SELECT id, project_id, title, status, amount_cents, created_by, created FROM bids`)
}

func (r *SQLiteRepo) ListBidsByProject(ctx context.Context, projectID string) ([]models.Bid, error) {
	return r.listBids(ctx, `SELECT id, project_id, title, status, amount_cents, created_by, created FROM bids WHERE project_id = ?`, projectID)
}

func (r *SQLiteRepo) listBids(ctx context.Context, query string, args ...any) ([]models.Bid, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Bid
	for rows.Next() {
		b, err := scanBid(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateBid(ctx context.Context, b *models.Bid) error {
	if b == nil {
		return fmt.Errorf("bid is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM bids WHERE id = ?`, b.ID).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE bids SET title = ?, status = ?, amount_cents = ? WHERE id = ?`,
			b.Title, b.Status, cents(b.Amount), b.ID)
		return mapErr(err)
	})
}

func (r *SQLiteRepo) DeleteBid(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM bids WHERE id = ?`, id)
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

// scanBid reads a NULL amount as 0.
func scanBid(scan func(dest ...any) error) (*models.Bid, error) {
	var b models.Bid
	var amountCents sql.NullInt64
	var createdBy sql.NullString
	if err := scan(&b.ID, &b.ProjectID, &b.Title, &b.Status, &amountCents, &createdBy, &b.Created); err != nil {
		return nil, err
	}
	if amountCents.Valid {
		b.Amount = amount(amountCents.Int64)
	}
	b.CreatedBy = createdBy.String
	return &b, nil
}
