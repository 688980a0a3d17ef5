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

var _ repository.VerificationCodeRepository = (*verificationCodeRepo)(nil)

type verificationCodeRepo struct {
	pool *pgxpool.Pool
}

func NewVerificationCodeRepo(pool *pgxpool.Pool) repository.VerificationCodeRepository {
	return &verificationCodeRepo{pool: pool}
}

func (r *verificationCodeRepo) Save(ctx context.Context, tx repository.Tx, c *model.VerificationCode) error {
	const q = `
INSERT INTO email_verification_codes (id, email, code, type, expires_at, used, created_at)
VALUES ($1,$2,$3,$4,$5,$6,$7);
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, c.ID, c.Email, c.Code, c.Type, c.ExpiresAt, c.Used, c.CreatedAt)
	return err
}

func (r *verificationCodeRepo) FindLatestUnused(ctx context.Context, tx repository.Tx, email, code, codeType string) (*model.VerificationCode, error) {
	const q = `
SELECT id, email, code, type, expires_at, used, created_at
  FROM email_verification_codes
 WHERE email=$1 AND code=$2 AND type=$3 AND used=FALSE
 ORDER BY created_at DESC
 LIMIT 1;
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	var c model.VerificationCode
	err = ex.QueryRow(ctx, q, email, code, codeType).
		Scan(&c.ID, &c.Email, &c.Code, &c.Type, &c.ExpiresAt, &c.Used, &c.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan verification code: %w", err)
	}
	return &c, nil
}

// Consume is a conditional update rather than a read-then-write: of two
// concurrent validations only one sees RowsAffected == 1.
func (r *verificationCodeRepo) Consume(ctx context.Context, tx repository.Tx, id string) (bool, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return false, err
	}
	ct, err := ex.Exec(ctx,
		`UPDATE email_verification_codes SET used=TRUE WHERE id=$1 AND used=FALSE;`, id)
	if err != nil {
		return false, fmt.Errorf("consume verification code: %w", err)
	}
	return ct.RowsAffected() == 1, nil
}

func (r *verificationCodeRepo) DeleteExpired(ctx context.Context, before time.Time) (int, error) {
	ct, err := r.pool.Exec(ctx,
		`DELETE FROM email_verification_codes WHERE expires_at < $1;`, before)
	if err != nil {
		return 0, fmt.Errorf("delete expired verification codes: %w", err)
	}
	return int(ct.RowsAffected()), nil
}
