package sqlite

import (
	"fmt"
	"math"
	"strings"
	"time"

	"log/slog"

	"github.com/garnizeh/buildsite/internal/db"
	"github.com/garnizeh/buildsite/pkg/repository"
)

// SQLiteRepo implements the repository interfaces using the internal
// DB wrapper.
type SQLiteRepo struct {
	conn   *db.DB
	logger *slog.Logger
}

// Ensure SQLiteRepo implements the public interfaces.
var _ repository.CompanyRepo = (*SQLiteRepo)(nil)
var _ repository.ProfileRepo = (*SQLiteRepo)(nil)
var _ repository.ProjectRepo = (*SQLiteRepo)(nil)
var _ repository.DocumentRepo = (*SQLiteRepo)(nil)
var _ repository.BidRepo = (*SQLiteRepo)(nil)
var _ repository.InspectionRepo = (*SQLiteRepo)(nil)
var _ repository.ChangeOrderRepo = (*SQLiteRepo)(nil)

func New(conn *db.DB, logger *slog.Logger) *SQLiteRepo {
	if logger == nil {
		logger = slog.Default()
	}
	return &SQLiteRepo{conn: conn, logger: logger}
}

func now() int64 {
	return time.Now().UTC().UnixMilli()
}

// cents converts an API-level amount to the fixed-point column value.
func cents(v float64) int64 {
	return int64(math.Round(v * 100))
}

// amount converts a fixed-point column value back to an API-level float.
func amount(c int64) float64 {
	return float64(c) / 100
}

// nullable stores an empty string as NULL so optional profile
// references don't trip the foreign key.
func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}

// mapErr translates driver constraint failures into the repository
// sentinel errors.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "UNIQUE constraint failed"):
		return fmt.Errorf("%w: %v", repository.ErrConflict, err)
	case strings.Contains(msg, "CHECK constraint failed"),
		strings.Contains(msg, "FOREIGN KEY constraint failed"):
		return fmt.Errorf("%w: %v", repository.ErrConstraint, err)
	}
	return err
}
