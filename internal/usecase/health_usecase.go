package usecase

import (
	"context"
	"time"

	"candidate-voting-backend/internal/domain"
)

// Pinger is satisfied by *pgxpool.Pool.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthUsecase struct {
	db Pinger
}

func NewHealthUsecase(db Pinger) domain.HealthUsecase {
	return &healthUsecase{db: db}
}

// Check reports overall status and whether the service is healthy.
func (u *healthUsecase) Check(ctx context.Context) (map[string]string, bool) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	if u.db == nil || u.db.Ping(ctx) != nil {
		return map[string]string{"status": "degraded", "database": "down"}, false
	}
	return map[string]string{"status": "ok", "database": "up"}, true
}
