package repository

import (
	"context"
	"time"

	"account-pool-service/internal/domain/model"
)

type UserRepository interface {
	Save(ctx context.Context, tx Tx, u *model.User) error
	FindByID(ctx context.Context, tx Tx, id string) (*model.User, error)
	// FindByIDForUpdate locks the user row for the remainder of the
	// transaction. Callers must pass a live tx.
	FindByIDForUpdate(ctx context.Context, tx Tx, id string) (*model.User, error)
	FindByEmail(ctx context.Context, tx Tx, email string) (*model.User, error)
	FindByUsername(ctx context.Context, tx Tx, username string) (*model.User, error)
	UpdatePassword(ctx context.Context, tx Tx, id, passwordHash string) error
	// ApplyActivation writes the recomputed entitlement fields.
	ApplyActivation(ctx context.Context, tx Tx, id string, level int, expireTime time.Time, totalCount int) error
	// IncrementUsed bumps used_count by one.
	IncrementUsed(ctx context.Context, tx Tx, id string) error
}
