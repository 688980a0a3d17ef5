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

var _ repository.UserRepository = (*UserRepo)(nil)

type UserRepo struct {
	pool *pgxpool.Pool
}

func NewUserRepo(pool *pgxpool.Pool) *UserRepo {
	return &UserRepo{pool: pool}
}

const userColumns = `id, email, username, password_hash, level, total_count, used_count, expire_time, created_at, updated_at`

func (r *UserRepo) Save(ctx context.Context, tx repository.Tx, u *model.User) error {
	const q = `
INSERT INTO users (id, email, username, password_hash, level, total_count, used_count, expire_time, created_at, updated_at)
VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
ON CONFLICT (id) DO UPDATE SET
  email=$2, username=$3, password_hash=$4, level=$5,
  total_count=$6, used_count=$7, expire_time=$8, updated_at=now();
`
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx, q, u.ID, u.Email, u.Username, u.PasswordHash, u.Level, u.TotalCount, u.UsedCount, u.ExpireTime, u.CreatedAt, u.UpdatedAt)
	if isUniqueViolation(err) {
		return domain.ErrAlreadyExists
	}
	return err
}

func (r *UserRepo) scanUser(row pgx.Row) (*model.User, error) {
	var u model.User
	err := row.Scan(&u.ID, &u.Email, &u.Username, &u.PasswordHash, &u.Level, &u.TotalCount, &u.UsedCount, &u.ExpireTime, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}
	return &u, nil
}

func (r *UserRepo) FindByID(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return r.scanUser(ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1;`, id))
}

func (r *UserRepo) FindByIDForUpdate(ctx context.Context, tx repository.Tx, id string) (*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return r.scanUser(ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id=$1 FOR UPDATE;`, id))
}

func (r *UserRepo) FindByEmail(ctx context.Context, tx repository.Tx, email string) (*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return r.scanUser(ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email=$1;`, email))
}

func (r *UserRepo) FindByUsername(ctx context.Context, tx repository.Tx, username string) (*model.User, error) {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	return r.scanUser(ex.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE username=$1;`, username))
}

func (r *UserRepo) UpdatePassword(ctx context.Context, tx repository.Tx, id, passwordHash string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	ct, err := ex.Exec(ctx, `UPDATE users SET password_hash=$2, updated_at=now() WHERE id=$1;`, id, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) ApplyActivation(ctx context.Context, tx repository.Tx, id string, level int, expireTime time.Time, totalCount int) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	ct, err := ex.Exec(ctx,
		`UPDATE users SET level=$2, expire_time=$3, total_count=$4, updated_at=now() WHERE id=$1;`,
		id, level, expireTime, totalCount)
	if err != nil {
		return fmt.Errorf("apply activation: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *UserRepo) IncrementUsed(ctx context.Context, tx repository.Tx, id string) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	ct, err := ex.Exec(ctx, `UPDATE users SET used_count=used_count+1, updated_at=now() WHERE id=$1;`, id)
	if err != nil {
		return fmt.Errorf("increment used_count: %w", err)
	}
	if ct.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
