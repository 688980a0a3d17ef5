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

// Ensure implementation satisfies the interface.
var _ repository.ActivationCodeRepository = (*activationCodeRepo)(nil)

type activationCodeRepo struct {
	pool *pgxpool.Pool
}

func NewActivationCodeRepo(pool *pgxpool.Pool) repository.ActivationCodeRepository {
	return &activationCodeRepo{pool: pool}
}

const activationCodeColumns = `id, code, type, name, level, duration, quota, max_uses, used_count, status, expired_at, activated_at, notes, created_at`

func (r *activationCodeRepo) Save(ctx context.Context, tx repository.Tx, code *model.ActivationCode) error {
	const q = `
INSERT INTO activation_codes (id, code, type, name, level, duration, quota, max_uses, used_count, status, expired_at, activated_at, notes, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
ON CONFLICT (id) DO UPDATE SET
  used_count = EXCLUDED.used_count,
  status     = EXCLUDED.status,
  activated_at = EXCLUDED.activated_at;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q,
		code.ID, code.Code, code.Type, code.Name, code.Level, code.Duration, code.Quota,
		code.MaxUses, code.UsedCount, code.Status, code.ExpiredAt, code.ActivatedAt, code.Notes, code.CreatedAt,
	)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

func scanActivationCode(row pgx.Row) (*model.ActivationCode, error) {
	var c model.ActivationCode
	err := row.Scan(
		&c.ID, &c.Code, &c.Type, &c.Name, &c.Level, &c.Duration, &c.Quota,
		&c.MaxUses, &c.UsedCount, &c.Status, &c.ExpiredAt, &c.ActivatedAt, &c.Notes, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan activation code: %w", err)
	}
	return &c, nil
}

func (r *activationCodeRepo) FindByCode(ctx context.Context, tx repository.Tx, code string) (*model.ActivationCode, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanActivationCode(ex.QueryRow(ctx,
		`SELECT `+activationCodeColumns+` FROM activation_codes WHERE code=$1;`, code))
}

// FindActiveByCodeForUpdate is the redemption-path lookup: active status
// only, row locked so the used_count check and increment stay consistent
// under concurrent redemptions.
func (r *activationCodeRepo) FindActiveByCodeForUpdate(ctx context.Context, tx repository.Tx, code string) (*model.ActivationCode, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return scanActivationCode(ex.QueryRow(ctx,
		`SELECT `+activationCodeColumns+` FROM activation_codes WHERE code=$1 AND status=1 FOR UPDATE;`, code))
}

func (r *activationCodeRepo) IncrementUsed(ctx context.Context, tx repository.Tx, id string, at time.Time) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	ct, err := ex.Exec(ctx,
		`UPDATE activation_codes SET used_count=used_count+1, activated_at=$2 WHERE id=$1;`,
		id, at)
	if err != nil {
		return fmt.Errorf("increment code used_count: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
