package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/google/uuid"
)

func (r *SQLiteRepo) CreateProject(ctx context.Context, p *models.Project) (string, error) {
	if p == nil {
		return "", fmt.Errorf("project is nil")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = "planning"
	}
	if p.Phase == "" {
		p.Phase = "Planning"
	}

	_, err := r.conn.Exec(ctx,
		`INSERT INTO projects (id, name, description, status, start_date, end_date, budget_cents, actual_cost_cents, progress, location, phase)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		p.ID, p.Name, p.Description, p.Status, p.StartDate, p.EndDate,
		cents(p.Budget), cents(p.ActualCost), p.Progress, p.Location, p.Phase)
	if err != nil {
		return "", mapErr(err)
	}

	return p.ID, nil
}

func (r *SQLiteRepo) GetProjectByID(ctx context.Context, id string) (*models.Project, error) {
	row := r.conn.QueryRow(ctx,
		`SELECT id, name, description, status, start_date, end_date, budget_cents, actual_cost_cents, progress, location, phase
		 FROM projects WHERE id = ?`, id)
	p, err := scanProject(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return p, nil
}

func (r *SQLiteRepo) ListProjects(ctx context.Context) ([]models.Project, error) {
	rows, err := r.conn.QueryRows(ctx,
		`SELECT id, name, description, status, start_date, end_date, budget_cents, actual_cost_cents, progress, location, phase
		 FROM projects ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []models.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

// UpdateProject persists the full merged entity inside one transaction
// so the existence check and the write are a single unit of work.
func (r *SQLiteRepo) UpdateProject(ctx context.Context, p *models.Project) error {
	if p == nil {
		return fmt.Errorf("project is nil")
	}

	return r.conn.WithTx(ctx, func(tx *sql.Tx) error {
		var count int
		if err := tx.QueryRowContext(ctx, `SELECT COUNT(1) FROM projects WHERE id = ?`, p.ID).Scan(&count); err != nil {
			return err
		}
		if count == 0 {
			return repository.ErrNotFound
		}

		_, err := tx.ExecContext(ctx,
			`UPDATE projects SET name = ?, description = ?, status = ?, start_date = ?, end_date = ?, budget_cents = ?, actual_cost_cents = ?, progress = ?, location = ?, phase = ?
			 WHERE id = ?`,
			p.Name, p.Description, p.Status, p.StartDate, p.EndDate,
			cents(p.Budget), cents(p.ActualCost), p.Progress, p.Location, p.Phase, p.ID)
		return mapErr(err)
	})
}

// DeleteProject removes the project; documents, bids, inspections and
// change orders follow via ON DELETE CASCADE.
func (r *SQLiteRepo) DeleteProject(ctx context.Context, id string) error {
	res, err := r.conn.Exec(ctx, `DELETE FROM projects WHERE id = ?`, id)
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

func scanProject(scan func(dest ...any) error) (*models.Project, error) {
	var p models.Project
	var description, startDate, endDate, location sql.NullString
	var budget, actualCost int64
	if err := scan(&p.ID, &p.Name, &description, &p.Status, &startDate, &endDate, &budget, &actualCost, &p.Progress, &location, &p.Phase); err != nil {
		return nil, err
	}
	p.Description = description.String
	p.Location = location.String
	if startDate.Valid {
		p.StartDate = &startDate.String
	}
	if endDate.Valid {
		p.EndDate = &endDate.String
	}
	p.Budget = amount(budget)
	p.ActualCost = amount(actualCost)
	return &p, nil
}
