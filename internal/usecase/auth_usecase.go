package usecase

import (
	"context"
	"errors"
	"net/http"

	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"
	"candidate-voting-backend/pkg/audit"
	"candidate-voting-backend/pkg/auth"
	"candidate-voting-backend/pkg/validation"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

type authUsecase struct {
	repo     domain.AccountRepository
	tokens   *auth.TokenManager
	validate *validator.Validate
	audit    *audit.Logger
}

func NewAuthUsecase(repo domain.AccountRepository, tokens *auth.TokenManager, validate *validator.Validate, auditLog *audit.Logger) domain.AuthUsecase {
	return &authUsecase{
		repo:     repo,
		tokens:   tokens,
		validate: validate,
		audit:    auditLog,
	}
}

// Register checks the lock before looking at the request, so every attempt
// after the first admin gets 403 whatever its body. The unique singleton
// column still decides any race between concurrent first registrations.
func (u *authUsecase) Register(ctx context.Context, req domain.RegisterRequest) error {
	n, err := u.repo.Count(ctx)
	if err != nil {
		return err
	}
	if n > 0 {
		u.audit.RegistrationLocked(ctx, req.Email)
		return apperror.Forbidden(domain.MsgRegistrationLocked)
	}

	if err := u.validate.Struct(req); err != nil {
		return apperror.BadRequest(validation.Message(err))
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperror.Internal(err)
	}

	account := &domain.Account{
		ID:           uuid.NewString(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		IsAdmin:      true,
	}
	if err := u.repo.Create(ctx, account); err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) && appErr.Code == http.StatusForbidden {
			u.audit.RegistrationLocked(ctx, req.Email)
		}
		return err
	}

	u.audit.AdminRegistered(ctx, account.ID, account.Email)
	return nil
}

func (u *authUsecase) Login(ctx context.Context, req domain.LoginRequest) (*domain.LoginResult, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(validation.Message(err))
	}

	account, err := u.repo.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if account == nil {
		u.audit.LoginFailed(ctx, req.Email, "unknown_email")
		return nil, apperror.Unauthorized(domain.MsgInvalidCredentials)
	}
	if !auth.CheckPassword(account.PasswordHash, req.Password) {
		u.audit.LoginFailed(ctx, req.Email, "password_mismatch")
		return nil, apperror.Unauthorized(domain.MsgInvalidCredentials)
	}

	token, err := u.tokens.Issue(account.ID, account.IsAdmin)
	if err != nil {
		return nil, apperror.Internal(err)
	}

	u.audit.LoginSucceeded(ctx, account.ID, account.Email)
	return &domain.LoginResult{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
		Token: token,
	}, nil
}
