// Command seed provisions a database with sample data: two companies,
// three profiles, and a project with documents, bids, inspections and
// change orders. It is idempotent and not part of the runtime contract.
package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"time"

	migrations "github.com/garnizeh/buildsite/db"
	"github.com/garnizeh/buildsite/internal/auth"
	"github.com/garnizeh/buildsite/internal/db"
	"github.com/google/uuid"
)

func main() {
	var dsn = flag.String("db", "buildsite.db", "Path to the SQLite database")
	flag.Parse()

	ctx := context.Background()

	database, err := db.New(ctx, *dsn)
	if err != nil {
		log.Fatalf("Failed to open DB: %v", err)
	}
	defer database.Close()

	if err := db.Migrate(ctx, database, migrations.Migrations); err != nil {
		log.Fatalf("Failed to migrate DB: %v", err)
	}

	var seeded int
	row := database.QueryRow(ctx, `SELECT COUNT(1) FROM profiles WHERE email = ?`, "admin@buildsite.dev")
	if err := row.Scan(&seeded); err != nil {
		log.Fatalf("Failed to check seed marker: %v", err)
	}
	if seeded > 0 {
		log.Println("Database already seeded, nothing to do")
		return
	}

	svc := auth.NewService("seed-only")
	hash, err := svc.HashPassword("password123")
	if err != nil {
		log.Fatalf("Failed to hash sample password: %v", err)
	}

	now := time.Now().UTC().UnixMilli()

	// all sample rows land in one transaction: either the full data
	// set exists afterwards or none of it does
	err = database.WithTx(ctx, func(tx *sql.Tx) error {
		ownerCo := uuid.NewString()
		gcCo := uuid.NewString()
		for _, c := range [][]any{
			{ownerCo, "Skyline Holdings", "owner", "100 Main St", "555-0100", "contact@skyline.example", "https://skyline.example"},
			{gcCo, "Fuller Construction", "general_contractor", "200 Iron Ave", "555-0200", "office@fuller.example", "https://fuller.example"},
		} {
			args := append(c, now, now)
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO companies (id, name, type, address, phone, email, website, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
				args...); err != nil {
				return err
			}
		}

		admin := uuid.NewString()
		foreman := uuid.NewString()
		inspector := uuid.NewString()
		for _, p := range [][]any{
			{admin, "admin@buildsite.dev", "Ada Marsh", "owner", ownerCo},
			{foreman, "foreman@buildsite.dev", "Ray Ortiz", "general_contractor", gcCo},
			{inspector, "inspector@buildsite.dev", "Lena Koch", "field_team", gcCo},
		} {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO profiles (id, email, full_name, password_hash, role, company_id, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
				p[0], p[1], p[2], hash, p[3], p[4], now, now); err != nil {
				return err
			}
		}

		project := uuid.NewString()
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO projects (id, name, description, status, start_date, end_date, budget_cents, actual_cost_cents, progress, location, phase)
			 VALUES (?, ?, ?, 'active', '2026-03-01', '2027-09-30', ?, ?, 35, 'Riverside District', 'Foundation')`,
			project, "Riverside Tower", "Twelve-story mixed-use development", int64(450000000), int64(9825000)); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO documents (id, project_id, name, type, version, uploaded_by, created) VALUES (?, ?, 'Structural drawings', 'blueprint', 'v2.1', ?, ?)`,
			uuid.NewString(), project, foreman, now); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO bids (id, project_id, title, status, amount_cents, created_by, created) VALUES (?, ?, 'Electrical rough-in', 'submitted', ?, ?, ?)`,
			uuid.NewString(), project, int64(12500000), foreman, now); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO inspections (id, project_id, title, status, notes, inspector_id, created) VALUES (?, ?, 'Footing inspection', 'passed', 'Rebar spacing verified', ?, ?)`,
			uuid.NewString(), project, inspector, now); err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO change_orders (id, project_id, title, amount_cents, status, submitted_by, created) VALUES (?, ?, 'Credit for unused conduit', ?, 'approved', ?, ?)`,
			uuid.NewString(), project, int64(-340000), foreman, now); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		log.Fatalf("Failed to seed database: %v", err)
	}

	log.Println("Seed data inserted")
}
