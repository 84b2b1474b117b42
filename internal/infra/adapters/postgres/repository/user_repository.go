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

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	// IncrementExitCount charges one voluntary room exit. The counter is
	// never decremented.
	IncrementExitCount(ctx context.Context, id uuid.UUID) error

	SubmitStudentCard(ctx context.Context, id uuid.UUID, cardURL string) error
	SetVerifyStatus(ctx context.Context, id uuid.UUID, status models.VerifyStatus) error
	ListByVerifyStatus(ctx context.Context, status models.VerifyStatus) ([]*models.User, error)
}

type userRepo struct {
	db *sqlx.DB
}

func NewUserRepo(db *sqlx.DB) UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) CreateUser(ctx context.Context, user *models.User) error {
	query := `
		INSERT INTO users (id, email, password, oauth_provider, oauth_id, verify_status, role, points, exit_count)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`

	res, err := postgres.Queryer(ctx, r.db).ExecContext(
		ctx,
		query,
		user.ID,
		user.Email,
		user.Password,
		user.OAuthProvider,
		user.OAuthID,
		user.VerifyStatus,
		user.Role,
		user.Points,
		user.ExitCount,
	)
	if err != nil {
		return fmt.Errorf("create user: %w", err)
	}

	if aff, err := res.RowsAffected(); aff == 0 || err != nil {
		return fmt.Errorf("create user no rows affected: %w", err)
	}

	return nil
}

func (r *userRepo) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user models.User

	query := "SELECT * FROM users WHERE id = $1"

	err := sqlx.GetContext(ctx, postgres.Queryer(ctx, r.db), &user, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (r *userRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User

	query := "SELECT * FROM users WHERE email = $1"

	err := sqlx.GetContext(ctx, postgres.Queryer(ctx, r.db), &user, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}

		return nil, err
	}

	return &user, nil
}

func (r *userRepo) IncrementExitCount(ctx context.Context, id uuid.UUID) error {
	query := "UPDATE users SET exit_count = exit_count + 1, updated_at = now() WHERE id = $1"

	res, err := postgres.Queryer(ctx, r.db).ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("increment exit count: %w", err)
	}

	if aff, err := res.RowsAffected(); aff == 0 || err != nil {
		return domain.ErrNotFound
	}

	return nil
}

func (r *userRepo) SubmitStudentCard(ctx context.Context, id uuid.UUID, cardURL string) error {
	query := "UPDATE users SET student_card_url = $1, verify_status = $2, updated_at = now() WHERE id = $3"

	res, err := postgres.Queryer(ctx, r.db).ExecContext(ctx, query, cardURL, models.VerifyPending, id)
	if err != nil {
		return fmt.Errorf("submit student card: %w", err)
	}

	if aff, err := res.RowsAffected(); aff == 0 || err != nil {
		return domain.ErrNotFound
	}

	return nil
}

func (r *userRepo) SetVerifyStatus(ctx context.Context, id uuid.UUID, status models.VerifyStatus) error {
	query := "UPDATE users SET verify_status = $1, updated_at = now() WHERE id = $2"

	res, err := postgres.Queryer(ctx, r.db).ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("set verify status: %w", err)
	}

	if aff, err := res.RowsAffected(); aff == 0 || err != nil {
		return domain.ErrNotFound
	}

	return nil
}

func (r *userRepo) ListByVerifyStatus(ctx context.Context, status models.VerifyStatus) ([]*models.User, error) {
	var users []*models.User

	query := "SELECT * FROM users WHERE verify_status = $1 ORDER BY created_at"

	err := sqlx.SelectContext(ctx, postgres.Queryer(ctx, r.db), &users, query, status)
	if err != nil {
		return nil, err
	}

	return users, nil
}
