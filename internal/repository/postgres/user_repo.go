package postgres

import (
	"context"
	"errors"

	"candidate-voting-backend/internal/domain"
	"candidate-voting-backend/pkg/apperror"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgreSQL error codes
const (
	pgUniqueViolation = "23505"
)

type accountRepo struct {
	db *pgxpool.Pool
}

func NewAccountRepository(db *pgxpool.Pool) domain.AccountRepository {
	return &accountRepo{db: db}
}

func (r *accountRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, apperror.Internal(err)
	}
	return n, nil
}

func (r *accountRepo) Create(ctx context.Context, account *domain.Account) error {
	query := `INSERT INTO users (id, name, email, password_hash, is_admin)
              VALUES ($1, $2, $3, $4, $5)
              RETURNING created_at`
	err := r.db.QueryRow(ctx, query,
		account.ID, account.Name, account.Email, account.PasswordHash, account.IsAdmin,
	).Scan(&account.CreatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return apperror.Forbidden(domain.MsgRegistrationLocked)
		}
		return apperror.Internal(err)
	}
	return nil
}

func (r *accountRepo) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	query := `SELECT id, name, email, password_hash, is_admin, created_at FROM users WHERE email = $1`
	var a domain.Account
	err := r.db.QueryRow(ctx, query, email).Scan(
		&a.ID, &a.Name, &a.Email, &a.PasswordHash, &a.IsAdmin, &a.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, apperror.Internal(err)
	}
	return &a, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation
}
