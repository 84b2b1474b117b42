package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/domain"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
)

type profileRepo struct {
	store *Store
}

func NewProfileRepo(store *Store) repository.ProfileRepository {
	return &profileRepo{store: store}
}

func (r *profileRepo) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	p := *profile
	r.store.profiles[profile.UserID] = &p

	return nil
}

func (r *profileRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	profile, ok := r.store.profiles[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	p := *profile

	return &p, nil
}

func (r *profileRepo) GetProfilesByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*models.Profile, error) {
	var profiles []*models.Profile

	for _, id := range userIDs {
		if profile, ok := r.store.profiles[id]; ok {
			p := *profile
			profiles = append(profiles, &p)
		}
	}

	return profiles, nil
}

func (r *profileRepo) UpsertPreference(ctx context.Context, pref *models.Preference) error {
	p := *pref
	r.store.preferences[pref.UserID] = &p

	return nil
}

func (r *profileRepo) GetPreference(ctx context.Context, userID uuid.UUID) (*models.Preference, error) {
	pref, ok := r.store.preferences[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}

	p := *pref

	return &p, nil
}
