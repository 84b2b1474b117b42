package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/meetu-app/meetu-server/internal/domain"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres"
)

type ProfileRepository interface {
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)
	GetProfilesByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*models.Profile, error)

	UpsertPreference(ctx context.Context, pref *models.Preference) error
	GetPreference(ctx context.Context, userID uuid.UUID) (*models.Preference, error)
}

type profileRepo struct {
	db *sqlx.DB
}

func NewProfileRepo(db *sqlx.DB) ProfileRepository {
	return &profileRepo{db: db}
}

func (r *profileRepo) UpsertProfile(ctx context.Context, profile *models.Profile) error {
	query := `
		INSERT INTO profiles (user_id, nickname, university, major, age, height, gender, mbti, hobbies, charms, profile_image_url)
		VALUES (:user_id, :nickname, :university, :major, :age, :height, :gender, :mbti, :hobbies, :charms, :profile_image_url)
		ON CONFLICT (user_id) DO UPDATE SET
			nickname = EXCLUDED.nickname,
			university = EXCLUDED.university,
			major = EXCLUDED.major,
			age = EXCLUDED.age,
			height = EXCLUDED.height,
			gender = EXCLUDED.gender,
			mbti = EXCLUDED.mbti,
			hobbies = EXCLUDED.hobbies,
			charms = EXCLUDED.charms,
			profile_image_url = EXCLUDED.profile_image_url
	`

	_, err := sqlx.NamedExecContext(ctx, postgres.Queryer(ctx, r.db), query, profile)
	if err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}

	return nil
}

func (r *profileRepo) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile

	query := "SELECT * FROM profiles WHERE user_id = $1"

	err := sqlx.GetContext(ctx, postgres.Queryer(ctx, r.db), &profile, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &profile, nil
}

func (r *profileRepo) GetProfilesByUserIDs(ctx context.Context, userIDs []uuid.UUID) ([]*models.Profile, error) {
	if len(userIDs) == 0 {
		return nil, nil
	}

	query, args, err := sqlx.In("SELECT * FROM profiles WHERE user_id IN (?)", userIDs)
	if err != nil {
		return nil, fmt.Errorf("build profiles query: %w", err)
	}

	var profiles []*models.Profile

	q := postgres.Queryer(ctx, r.db)

	err = sqlx.SelectContext(ctx, q, &profiles, q.Rebind(query), args...)
	if err != nil {
		return nil, err
	}

	return profiles, nil
}

func (r *profileRepo) UpsertPreference(ctx context.Context, pref *models.Preference) error {
	query := `
		INSERT INTO preferences (user_id, pref_age_min, pref_age_max, pref_univ_group, avoid_traits, core_values, tags)
		VALUES (:user_id, :pref_age_min, :pref_age_max, :pref_univ_group, :avoid_traits, :core_values, :tags)
		ON CONFLICT (user_id) DO UPDATE SET
			pref_age_min = EXCLUDED.pref_age_min,
			pref_age_max = EXCLUDED.pref_age_max,
			pref_univ_group = EXCLUDED.pref_univ_group,
			avoid_traits = EXCLUDED.avoid_traits,
			core_values = EXCLUDED.core_values,
			tags = EXCLUDED.tags
	`

	_, err := sqlx.NamedExecContext(ctx, postgres.Queryer(ctx, r.db), query, pref)
	if err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}

	return nil
}

func (r *profileRepo) GetPreference(ctx context.Context, userID uuid.UUID) (*models.Preference, error) {
	var pref models.Preference

	query := "SELECT * FROM preferences WHERE user_id = $1"

	err := sqlx.GetContext(ctx, postgres.Queryer(ctx, r.db), &pref, query, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &pref, nil
}
