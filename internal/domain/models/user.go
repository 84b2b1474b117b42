package models

import (
	"time"

	"github.com/google/uuid"
)

type AuthProvider string

const (
	ProviderKakao  AuthProvider = "kakao"
	ProviderGoogle AuthProvider = "google"
	ProviderEmail  AuthProvider = "email"
)

type VerifyStatus string

const (
	VerifyPending  VerifyStatus = "pending"
	VerifyApproved VerifyStatus = "approved"
	VerifyRejected VerifyStatus = "rejected"
)

type UserRole string

const (
	RoleUser  UserRole = "user"
	RoleAdmin UserRole = "admin"
)

type User struct {
	ID             uuid.UUID    `json:"id" db:"id"`
	Email          string       `json:"email" db:"email"`
	Password       string       `json:"-" db:"password"`
	OAuthProvider  AuthProvider `json:"oauth_provider" db:"oauth_provider"`
	OAuthID        *string      `json:"oauth_id,omitempty" db:"oauth_id"`
	StudentCardURL *string      `json:"student_card_url,omitempty" db:"student_card_url"`
	VerifyStatus   VerifyStatus `json:"verify_status" db:"verify_status"`
	Role           UserRole     `json:"role" db:"role"`
	Points         int          `json:"points" db:"points"`
	ExitCount      int          `json:"exit_count" db:"exit_count"`
	CreatedAt      time.Time    `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at" db:"updated_at"`
}

func NewUser() *User {
	now := time.Now()

	return &User{
		ID:            uuid.New(),
		OAuthProvider: ProviderEmail,
		VerifyStatus:  VerifyPending,
		Role:          RoleUser,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
}
