package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/google/uuid"
)

func (r *SQLiteRepo) CreateProfile(ctx context.Context, p *models.Profile) (string, error) {
	if p == nil {
		return "", fmt.Errorf("profile is nil")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Role == "" {
		p.Role = "field_team"
	}
	ts := now()
	p.Created, p.Updated = ts, ts

	_, err := r.conn.Exec(ctx,
		`INSERT INTO profiles (id, email, full_name, password_hash, role, company_id, created, updated)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Email, p.FullName, p.PasswordHash, p.Role, p.CompanyID, p.Created, p.Updated)
	if err != nil {
		return "", mapErr(err)
	}

	return p.ID, nil
}

func (r *SQLiteRepo) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, role, company_id, created, updated FROM profiles WHERE id = ?`, id)
	p, err := scanProfile(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteRepo) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, email, full_name, password_hash, role, company_id, created, updated FROM profiles WHERE email = ?`, email)
	p, err := scanProfile(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteRepo) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, email, full_name, password_hash, role, company_id, created, updated FROM profiles`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Profile
	for rows.Next() {
		p, err := scanProfile(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *SQLiteRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if p == nil {
		return fmt.Errorf("profile is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM profiles WHERE id = ?`, p.ID).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE profiles SET email = ?, full_name = ?, password_hash = ?, role = ?, company_id = ?, updated = ? WHERE id = ?`,
			p.Email, p.FullName, p.PasswordHash, p.Role, p.CompanyID, now(), p.ID)
		return mapErr(err)
	})
}

func scanProfile(scan func(dest ...any) error) (*models.Profile, error) {
	var p models.Profile
	var companyID sql.NullString
	if err := scan(&p.ID, &p.Email, &p.FullName, &p.PasswordHash, &p.Role, &companyID, &p.Created, &p.Updated); err != nil {
		return nil, err
	}
	if companyID.Valid {
		p.CompanyID = &companyID.String
	}
	return &p, nil
}
