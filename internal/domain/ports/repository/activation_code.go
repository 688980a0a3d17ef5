package repository

import (
	"context"
	"time"

	"account-pool-service/internal/domain/model"
)

type ActivationCodeRepository interface {
	Save(ctx context.Context, tx Tx, code *model.ActivationCode) error
	// FindByCode matches regardless of status; used for duplicate checks.
	FindByCode(ctx context.Context, tx Tx, code string) (*model.ActivationCode, error)
	// FindActiveByCodeForUpdate matches only active codes and locks the row
	// so the used_count check and increment see a consistent value.
	FindActiveByCodeForUpdate(ctx context.Context, tx Tx, code string) (*model.ActivationCode, error)
	// IncrementUsed bumps used_count and records the activation timestamp.
	IncrementUsed(ctx context.Context, tx Tx, id string, at time.Time) error
}
