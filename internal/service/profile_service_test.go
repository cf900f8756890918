package service

import (
	"context"
	"testing"

	"promptstash/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// profileRepoStub is a stub for repository.ProfileRepository.
type profileRepoStub struct {
	getByIDFn    func(context.Context, uint) (*models.Profile, error)
	getByEmailFn func(context.Context, string) (*models.Profile, error)
	createFn     func(context.Context, *models.Profile) error
	updateFn     func(context.Context, *models.Profile) error
	listFn       func(context.Context, int, int) ([]models.Profile, error)
}

func (s *profileRepoStub) GetByID(ctx context.Context, id uint) (*models.Profile, error) {
	return s.getByIDFn(ctx, id)
}
func (s *profileRepoStub) GetByEmail(ctx context.Context, email string) (*models.Profile, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *profileRepoStub) Create(ctx context.Context, profile *models.Profile) error {
	return s.createFn(ctx, profile)
}
func (s *profileRepoStub) Update(ctx context.Context, profile *models.Profile) error {
	return s.updateFn(ctx, profile)
}
func (s *profileRepoStub) List(ctx context.Context, limit, offset int) ([]models.Profile, error) {
	return s.listFn(ctx, limit, offset)
}

func noopProfileRepo() *profileRepoStub {
	return &profileRepoStub{
		getByIDFn: func(_ context.Context, id uint) (*models.Profile, error) {
			return &models.Profile{ID: id, Name: "Someone", Role: models.RoleUser}, nil
		},
		getByEmailFn: func(_ context.Context, _ string) (*models.Profile, error) { return nil, nil },
		createFn:     func(_ context.Context, _ *models.Profile) error { return nil },
		updateFn:     func(_ context.Context, _ *models.Profile) error { return nil },
		listFn:       func(_ context.Context, _, _ int) ([]models.Profile, error) { return nil, nil },
	}
}

func TestUpdateProfile_Name(t *testing.T) {
	t.Parallel()

	repo := noopProfileRepo()
	var saved *models.Profile
	repo.updateFn = func(_ context.Context, p *models.Profile) error {
		saved = p
		return nil
	}

	svc := NewProfileService(repo)
	got, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: "  New Name  "})
	require.NoError(t, err)
	assert.Equal(t, "New Name", got.Name)
	require.NotNil(t, saved)
	assert.Equal(t, "New Name", saved.Name)
}

func TestUpdateProfile_RejectsShortName(t *testing.T) {
	t.Parallel()

	svc := NewProfileService(noopProfileRepo())
	_, err := svc.UpdateProfile(context.Background(), UpdateProfileInput{UserID: 1, Name: "x"})
	assertValidationError(t, err)
}

func TestSetRole(t *testing.T) {
	t.Parallel()

	repo := noopProfileRepo()
	updates := 0
	repo.updateFn = func(_ context.Context, _ *models.Profile) error {
		updates++
		return nil
	}

	svc := NewProfileService(repo)

	got, err := svc.SetRole(context.Background(), 1, models.RoleAdmin)
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, got.Role)
	assert.Equal(t, 1, updates)

	// Setting the role the profile already holds is a no-op.
	got, err = svc.SetRole(context.Background(), 1, models.RoleUser)
	require.NoError(t, err)
	assert.Equal(t, models.RoleUser, got.Role)
	assert.Equal(t, 1, updates)

	_, err = svc.SetRole(context.Background(), 1, "overlord")
	assertValidationError(t, err)
}
