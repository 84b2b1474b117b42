package memory

import (
	"context"

	"github.com/google/uuid"

	"github.com/meetu-app/meetu-server/internal/domain"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
)

type userRepo struct {
	store *Store
}

func NewUserRepo(store *Store) repository.UserRepository {
	return &userRepo{store: store}
}

func (r *userRepo) CreateUser(ctx context.Context, user *models.User) error {
	u := *user
	r.store.users[user.ID] = &u

	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, ok := r.store.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}

	u := *user

	return &u, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	for _, user := range r.store.users {
		if user.Email == email {
			u := *user
			return &u, nil
		}
	}

	return nil, domain.ErrNotFound
}

func (r *userRepo) IncrementExitCount(ctx context.Context, id uuid.UUID) error {
	user, ok := r.store.users[id]
	if !ok {
		return domain.ErrNotFound
	}

	user.ExitCount++

	return nil
}

func (r *userRepo) SubmitStudentCard(ctx context.Context, id uuid.UUID, cardURL string) error {
	user, ok := r.store.users[id]
	if !ok {
		return domain.ErrNotFound
	}

	user.StudentCardURL = &cardURL
	user.VerifyStatus = models.VerifyPending

	return nil
}

func (r *userRepo) SetVerifyStatus(ctx context.Context, id uuid.UUID, status models.VerifyStatus) error {
	user, ok := r.store.users[id]
	if !ok {
		return domain.ErrNotFound
	}

	user.VerifyStatus = status

	return nil
}

func (r *userRepo) ListByVerifyStatus(ctx context.Context, status models.VerifyStatus) ([]*models.User, error) {
	var users []*models.User

	for _, user := range r.store.users {
		if user.VerifyStatus == status {
			u := *user
			users = append(users, &u)
		}
	}

	return users, nil
}
