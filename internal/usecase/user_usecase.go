package usecase

import (
	"context"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/meetu-app/meetu-server/internal/domain"
	"github.com/meetu-app/meetu-server/internal/domain/models"
	"github.com/meetu-app/meetu-server/internal/infra/adapters/postgres/repository"
)

type UserUsecase interface {
	CreateUser(ctx context.Context, email, password string, provider models.AuthProvider) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	ValidateCredentials(ctx context.Context, email, password string) (*models.User, error)
	GenerateJWT(user *models.User) (string, error)

	// Verification workflow: the user submits a student card, an admin
	// approves or rejects it.
	SubmitStudentCard(ctx context.Context, userID uuid.UUID, cardURL string) error
	ListPendingVerifications(ctx context.Context) ([]*models.User, error)
	ReviewVerification(ctx context.Context, userID uuid.UUID, approved bool) error
}

type userUsecase struct {
	jwtSecret []byte

	txm      repository.TxManager
	userRepo repository.UserRepository
}

func NewUserUsecase(jwtSecret []byte, txm repository.TxManager, userRepo repository.UserRepository) UserUsecase {
	return &userUsecase{
		jwtSecret: jwtSecret,
		txm:       txm,
		userRepo:  userRepo,
	}
}

func (uc *userUsecase) CreateUser(ctx context.Context, email, password string, provider models.AuthProvider) (*models.User, error) {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := models.NewUser()
	user.Email = email
	user.Password = string(hashedPassword)

	if provider != "" {
		user.OAuthProvider = provider
	}

	err = uc.txm.RunTx(ctx, func(ctx context.Context) error {
		return uc.userRepo.CreateUser(ctx, user)
	})
	if err != nil {
		return nil, err
	}

	user.Password = ""

	return user, nil
}

func (uc *userUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	var user *models.User

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.userRepo.GetUserByID(ctx, id)
		return err
	})
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (uc *userUsecase) ValidateCredentials(ctx context.Context, email, password string) (*models.User, error) {
	var user *models.User

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		var err error
		user, err = uc.userRepo.GetUserByEmail(ctx, email)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, err
	}

	user.Password = ""

	return user, nil
}

func (uc *userUsecase) GenerateJWT(user *models.User) (string, error) {
	claims := &jwt.RegisteredClaims{
		Subject:   user.ID.String(),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(uc.jwtSecret)
}

func (uc *userUsecase) SubmitStudentCard(ctx context.Context, userID uuid.UUID, cardURL string) error {
	return uc.txm.RunTx(ctx, func(ctx context.Context) error {
		return uc.userRepo.SubmitStudentCard(ctx, userID, cardURL)
	})
}

func (uc *userUsecase) ListPendingVerifications(ctx context.Context) ([]*models.User, error) {
	var users []*models.User

	err := uc.txm.RunTx(ctx, func(ctx context.Context) error {
		var err error
		users, err = uc.userRepo.ListByVerifyStatus(ctx, models.VerifyPending)
		return err
	})
	if err != nil {
		return nil, err
	}

	for _, u := range users {
		u.Password = ""
	}

	return users, nil
}

func (uc *userUsecase) ReviewVerification(ctx context.Context, userID uuid.UUID, approved bool) error {
	status := models.VerifyRejected
	if approved {
		status = models.VerifyApproved
	}

	return uc.txm.RunTx(ctx, func(ctx context.Context) error {
		user, err := uc.userRepo.GetUserByID(ctx, userID)
		if err != nil {
			return err
		}

		if user.StudentCardURL == nil {
			return domain.ErrNotFound
		}

		return uc.userRepo.SetVerifyStatus(ctx, userID, status)
	})
}
