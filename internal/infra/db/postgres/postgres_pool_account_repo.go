package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/repository"
)

var _ repository.PoolAccountRepository = (*PoolAccountRepo)(nil)

type PoolAccountRepo struct {
	pool *pgxpool.Pool
}

func NewPoolAccountRepo(pool *pgxpool.Pool) *PoolAccountRepo {
	return &PoolAccountRepo{pool: pool}
}

const poolAccountColumns = `id, account, password, token, notes, status, usage_count, distributed_time, created_at, updated_at`

func (r *PoolAccountRepo) Save(ctx context.Context, tx repository.Tx, a *model.PoolAccount) error {
	const q = `
INSERT INTO pool_accounts (id, account, password, token, notes, status, usage_count, distributed_time, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  password=$3, token=$4, notes=$5, status=$6, updated_at=now();
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, a.ID, a.Account, a.Password, a.Token, a.Notes, a.Status, a.UsageCount, a.DistributedTime, a.CreatedAt, a.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

func scanPoolAccount(row pgx.Row) (*model.PoolAccount, error) {
	var a model.PoolAccount
	err := row.Scan(&a.ID, &a.Account, &a.Password, &a.Token, &a.Notes, &a.Status, &a.UsageCount, &a.DistributedTime, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan pool account: %w", err)
	}
	return &a, nil
}

func (r *PoolAccountRepo) FindByAccount(ctx context.Context, tx repository.Tx, account string) (*model.PoolAccount, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanPoolAccount(ex.QueryRow(ctx,
		`SELECT `+poolAccountColumns+` FROM pool_accounts WHERE account=$1;`, account))
}

func (r *PoolAccountRepo) FindActiveByAccountForUpdate(ctx context.Context, tx repository.Tx, account string) (*model.PoolAccount, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanPoolAccount(ex.QueryRow(ctx,
		`SELECT `+poolAccountColumns+` FROM pool_accounts WHERE account=$1 AND status=1 FOR UPDATE;`, account))
}

// FindLeastUsedForUpdate locks the selected row so concurrent distributions
// serialize on the same account instead of double-selecting it.
func (r *PoolAccountRepo) FindLeastUsedForUpdate(ctx context.Context, tx repository.Tx) (*model.PoolAccount, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	const q = `
SELECT ` + poolAccountColumns + `
  FROM pool_accounts
 WHERE status=1
 ORDER BY usage_count ASC, created_at ASC
 LIMIT 1
 FOR UPDATE;
`
	return scanPoolAccount(ex.QueryRow(ctx, q))
}

func (r *PoolAccountRepo) RecordDistribution(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	ct, err := ex.Exec(ctx,
		`UPDATE pool_accounts SET usage_count=usage_count+1, distributed_time=$2, updated_at=now() WHERE id=$1;`,
		id, at)
	if err != nil {
		return fmt.Errorf("record distribution: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
