package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/google/uuid"
)

func (r *SQLiteRepo) CreateCompany(ctx context.Context, c *models.Company) (string, error) {
	if c == nil {
		return "", fmt.Errorf("company is nil")
	}
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	if c.Type == "" {
		c.Type = "contractor"
	}
	ts := now()
	c.Created, c.Updated = ts, ts

	_, err := r.conn.Exec(ctx,
		`INSERT INTO companies (id, name, type, address, phone, email, website, created, updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, c.Name, c.Type, c.Address, c.Phone, c.Email, c.Website, c.Created, c.Updated)
	if err != nil {
		return "", mapErr(err)
	}

	return c.ID, nil
}

func (r *SQLiteRepo) GetCompanyByID(ctx context.Context, id string) (*models.Company, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, name, type, address, phone, email, website, created, updated FROM companies WHERE id = ?`, id)
	c, err := scanCompany(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return c, nil
}

func (r *SQLiteRepo) ListCompanies(ctx context.Context) ([]models.Company, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, name, type, address, phone, email, website, created, updated FROM companies`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Company
	for rows.Next() {
		c, err := scanCompany(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *c)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateCompany(ctx context.Context, c *models.Company) error {
	if c == nil {
		return fmt.Errorf("company is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM companies WHERE id = ?`, c.ID).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE companies SET name = ?, type = ?, address = ?, phone = ?, email = ?, website = ?, updated = ? WHERE id = ?`,
			c.Name, c.Type, c.Address, c.Phone, c.Email, c.Website, now(), c.ID)
		return mapErr(err)
	})
}

func scanCompany(scan func(dest ...any) error) (*models.Company, error) {
	var c models.Company
	var address, phone, email, website sql.NullString
	if err := scan(&c.ID, &c.Name, &c.Type, &address, &phone, &email, &website, &c.Created, &c.Updated); err != nil {
		return nil, err
	}
	c.Address = address.String
	c.Phone = phone.String
	c.Email = email.String
	c.Website = website.String
	return &c, nil
}
