package repository

import (
	"context"
	"time"

	"account-pool-service/internal/domain/model"
)

type PoolAccountRepository interface {
	Save(ctx context.Context, tx Tx, a *model.PoolAccount) error
	FindByAccount(ctx context.Context, tx Tx, account string) (*model.PoolAccount, error)
	// FindActiveByAccountForUpdate returns the named account only when its
	// status is active, locking the row.
	FindActiveByAccountForUpdate(ctx context.Context, tx Tx, account string) (*model.PoolAccount, error)
	// FindLeastUsedForUpdate returns the active account with the lowest
	// usage_count (ties broken by insertion order), locking the row.
	FindLeastUsedForUpdate(ctx context.Context, tx Tx) (*model.PoolAccount, error)
	// RecordDistribution bumps usage_count and refreshes distributed_time.
	RecordDistribution(ctx context.Context, tx Tx, id string, at time.Time) error
}
