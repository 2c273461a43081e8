package domain

import (
	"context"
	"time"
)

const (
	MsgRegistrationLocked = "Registration locked. An administrator already exists for this portal."
	MsgAdminCreated       = "Admin account created successfully!"
	MsgInvalidCredentials = "Invalid email or password"
)

// Account is the portal administrator. Only one can ever exist.
type Account struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"isAdmin"`
	CreatedAt    time.Time `json:"createdAt"`
}

type RegisterRequest struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginResult struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Token string `json:"token"`
}

type AccountRepository interface {
	Count(ctx context.Context) (int, error)
	// Create fails with a Forbidden AppError when an account already exists.
	Create(ctx context.Context, account *Account) error
	// GetByEmail returns nil, nil when no account matches.
	GetByEmail(ctx context.Context, email string) (*Account, error)
}

type AuthUsecase interface {
	Register(ctx context.Context, req RegisterRequest) error
	Login(ctx context.Context, req LoginRequest) (*LoginResult, error)
}
