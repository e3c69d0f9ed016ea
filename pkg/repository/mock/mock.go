package mock

import (
	"context"

	"github.com/garnizeh/buildsite/pkg/models"
	"github.com/garnizeh/buildsite/pkg/repository"
	"github.com/google/uuid"
)

// Test helpers and mocks
type Mocks struct {
	ProfileRepo *ProfileRepo
}

func NewMocks() *Mocks {
	return &Mocks{
		ProfileRepo: &ProfileRepo{},
	}
}

// ProfileRepo is an in-memory ProfileRepo for handler tests.
type ProfileRepo struct {
	Stored    *models.Profile
	CreateErr error
}

var _ repository.ProfileRepo = (*ProfileRepo)(nil)

func (m *ProfileRepo) CreateProfile(ctx context.Context, p *models.Profile) (string, error) {
	if m.CreateErr != nil {
		return "", m.CreateErr
	}
	if m.Stored != nil && m.Stored.Email == p.Email {
		return "", repository.ErrConflict
	}
	stored := *p
	if stored.ID == "" {
		stored.ID = uuid.NewString()
	}
	if stored.Role == "" {
		stored.Role = "field_team"
	}
	m.Stored = &stored
	return stored.ID, nil
}

func (m *ProfileRepo) GetProfileByID(ctx context.Context, id string) (*models.Profile, error) {
	if m.Stored != nil && m.Stored.ID == id {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *ProfileRepo) GetProfileByEmail(ctx context.Context, email string) (*models.Profile, error) {
	if m.Stored != nil && m.Stored.Email == email {
		return m.Stored, nil
	}
	return nil, nil
}

func (m *ProfileRepo) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	if m.Stored == nil {
		return nil, nil
	}
	return []models.Profile{*m.Stored}, nil
}

func (m *ProfileRepo) UpdateProfile(ctx context.Context, p *models.Profile) error {
	if m.Stored == nil || m.Stored.ID != p.ID {
		return repository.ErrNotFound
	}
	m.Stored = p
	return nil
}
