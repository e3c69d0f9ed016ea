package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/google/uuid"
)

func (r *SQLiteRepo) CreateChangeOrder(ctx context.Context, c *models.ChangeOrder) (string, error) {
	if c == nil {
		return "", fmt.Errorf("change order is nil")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Status == "" {
		c.Status = "pending"
	}
	c.Created = now()

	_, err := r.conn.Exec(ctx,
		`INSERT INTO change_orders (id, project_id, title, amount_cents, status, submitted_by, created)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.ProjectID, c.Title, cents(c.Amount), c.Status, nullable(c.SubmittedBy), c.Created)
	if err != nil {
		return "", mapErr(err)
	}

	return c.ID, nil
}

func (r *SQLiteRepo) GetChangeOrderByID(ctx context.Context, id string) (*models.ChangeOrder, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, project_id, title, amount_cents, status, submitted_by, created FROM change_orders WHERE id = ?`, id)
	c, err := scanChangeOrder(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *SQLiteRepo) ListChangeOrders(ctx context.Context) ([]models.ChangeOrder, error) {
	return r.listChangeOrders(ctx, `SELECT id, project_id, title, amount_cents, status, submitted_by, created FROM change_orders`)
}

func (r *SQLiteRepo) ListChangeOrdersByProject(ctx context.Context, projectID string) ([]models.ChangeOrder, error) {
	return r.listChangeOrders(ctx, `SELECT id, project_id, title, amount_cents, status, submitted_by, created FROM change_orders WHERE project_id = ?`, projectID)
}

func (r *SQLiteRepo) listChangeOrders(ctx context.Context, query string, args ...any) ([]models.ChangeOrder, error) {
	rows, err := r.conn.QueryRows(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.ChangeOrder
	for rows.Next() {
		c, err := scanChangeOrder(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateChangeOrder(ctx context.Context, c *models.ChangeOrder) error {
	if c == nil {
		return fmt.Errorf("change order is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM change_orders WHERE id = ?`, c.ID).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE change_orders SET title = ?, status = ?, amount_cents = ? WHERE id = ?`,
			c.Title, c.Status, cents(c.Amount), c.ID)
		return mapErr(err)
	})
}

func (r *SQLiteRepo) DeleteChangeOrder(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM change_orders WHERE id = ?`, id)
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

func scanChangeOrder(scan func(dest ...any) error) (*models.ChangeOrder, error) {
	var c models.ChangeOrder
	var amountCents int64
	var submittedBy sql.NullString
	if err := scan(&c.ID, &c.ProjectID, &c.Title, &amountCents, &c.Status, &submittedBy, &c.Created); err != nil {
		return nil, err
	}
	c.Amount = amount(amountCents)
	c.SubmittedBy = submittedBy.String
	return &c, nil
}
