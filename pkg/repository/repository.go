package repository

import (
	"context"
	"errors"

	"github.com/garnizeh/buildsite/pkg/models"
)

// Repository interfaces for domain entities. These are the public contracts
// consumers should depend on; concrete implementations live under internal/.

// Sentinel errors implementations wrap so callers can map them to
// transport-level failures with errors.Is.
var (
	// ErrNotFound is returned by updates and deletes that matched no row.
	// Lookups return (nil, nil) for a missing id instead.
	ErrNotFound = errors.New("not found")
	// ErrConflict signals a unique-constraint violation (duplicate email).
	ErrConflict = errors.New("conflict")
	// ErrConstraint signals any other integrity failure (CHECK, foreign key).
	ErrConstraint = errors.New("constraint violation")
)

// CompanyRepo has no delete: companies are never removed by this system.
type CompanyRepo interface {
	CreateCompany(ctx context.Context, c *models.Company) (string, error)
	GetCompanyByID(ctx context.Context, id string) (*models.Company, error)
	ListCompanies(ctx context.Context) ([]models.Company, error)
	UpdateCompany(ctx context.Context, c *models.Company) error
}

// ProfileRepo has no delete: profiles are never removed by this system.
type ProfileRepo interface {
	CreateProfile(ctx context.Context, p *models.Profile) (string, error)
	GetProfileByID(ctx context.Context, id string) (*models.Profile, error)
	GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error)
	ListProfiles(ctx context.Context) ([]models.Profile, error)
	UpdateProfile(ctx context.Context, p *models.Profile) error
}

type ProjectRepo interface {
	CreateProject(ctx context.Context, p *models.Project) (string, error)
	GetProjectByID(ctx context.Context, id string) (*models.Project, error)
	// ListProjects returns projects ordered by name.
	ListProjects(ctx context.Context) ([]models.Project, error)
	UpdateProject(ctx context.Context, p *models.Project) error
	// DeleteProject cascades to the project's documents, bids,
	// inspections and change orders.
	DeleteProject(ctx context.Context, id string) error
}

type DocumentRepo interface {
	CreateDocument(ctx context.Context, d *models.Document) (string, error)
	GetDocumentByID(ctx context.Context, id string) (*models.Document, error)
	ListDocuments(ctx context.Context) ([]models.Document, error)
	ListDocumentsByProject(ctx context.Context, projectID string) ([]models.Document, error)
	UpdateDocument(ctx context.Context, d *models.Document) error
	DeleteDocument(ctx context.Context, id string) error
}

type BidRepo interface {
	CreateBid(ctx context.Context, b *models.Bid) (string, error)
	GetBidByID(ctx context.Context, id string) (*models.Bid, error)
	ListBids(ctx context.Context) ([]models.Bid, error)
	ListBidsByProject(ctx context.Context, projectID string) ([]models.Bid, error)
	UpdateBid(ctx context.Context, b *models.Bid) error
	DeleteBid(ctx context.Context, id string) error
}

type InspectionRepo interface {
	CreateInspection(ctx context.Context, i *models.Inspection) (string, error)
	GetInspectionByID(ctx context.Context, id string) (*models.Inspection, error)
	ListInspections(ctx context.Context) ([]models.Inspection, error)
	ListInspectionsByProject(ctx context.Context, projectID string) ([]models.Inspection, error)
	UpdateInspection(ctx context.Context, i *models.Inspection) error
	DeleteInspection(ctx context.Context, id string) error
}

type ChangeOrderRepo interface {
	CreateChangeOrder(ctx context.Context, c *models.ChangeOrder) (string, error)
	GetChangeOrderByID(ctx context.Context, id string) (*models.ChangeOrder, error)
	ListChangeOrders(ctx context.Context) ([]models.ChangeOrder, error)
	ListChangeOrdersByProject(ctx context.Context, projectID string) ([]models.ChangeOrder, error)
	UpdateChangeOrder(ctx context.Context, c *models.ChangeOrder) error
	DeleteChangeOrder(ctx context.Context, id string) error
}
