package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/domain/input"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
)

type ProfileUsecase interface {
	UpsertProfile(ctx context.Context, in *input.UpsertProfileInput) (*models.Profile, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error)

	UpsertPreference(ctx context.Context, in *input.UpsertPreferenceInput) (*models.Preference, error)
	GetPreference(ctx context.Context, userID uuid.UUID) (*models.Preference, error)
}

type profileUsecase struct {
	txm         repository.TxManager
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

func NewProfileUsecase(
	txm repository.TxManager,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
) ProfileUsecase {
	return &profileUsecase{
		txm:         txm,
		userRepo:    userRepo,
		profileRepo: profileRepo,
	}
}

func (uc *profileUsecase) UpsertProfile(ctx context.Context, in *input.UpsertProfileInput) (*models.Profile, error) {
	profile := &models.Profile{
		UserID:          in.UserID,
		Nickname:        in.Nickname,
		University:      in.University,
		Major:           in.Major,
		Age:             in.Age,
		Height:          in.Height,
		Gender:          in.Gender,
		MBTI:            in.MBTI,
		Hobbies:         in.Hobbies,
		Charms:          in.Charms,
		ProfileImageURL: in.ProfileImageURL,
	}

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		if _, err := uc.userRepo.GetUserByID(ctx, in.UserID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		return uc.profileRepo.UpsertProfile(ctx, profile)
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (uc *profileUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile *models.Profile

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		var err error
		profile, err = uc.profileRepo.GetProfile(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return profile, nil
}

func (uc *profileUsecase) UpsertPreference(ctx context.Context, in *input.UpsertPreferenceInput) (*models.Preference, error) {
	pref := &models.Preference{
		UserID:        in.UserID,
		PrefAgeMin:    in.PrefAgeMin,
		PrefAgeMax:    in.PrefAgeMax,
		PrefUnivGroup: in.PrefUnivGroup,
		AvoidTraits:   in.AvoidTraits,
		CoreValues:    in.CoreValues,
		Tags:          in.Tags,
	}

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		if _, err := uc.userRepo.GetUserByID(ctx, in.UserID); err != nil {
			return fmt.Errorf("get user: %w", err)
		}

		return uc.profileRepo.UpsertPreference(ctx, pref)
	})
	if err != nil {
		return nil, err
	}

	return pref, nil
}

func (uc *profileUsecase) GetPreference(ctx context.Context, userID uuid.UUID) (*models.Preference, error) {
	var pref *models.Preference

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		var err error
		pref, err = uc.profileRepo.GetPreference(ctx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}

	return pref, nil
}
