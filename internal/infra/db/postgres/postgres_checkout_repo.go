package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v4/pgxpool"

	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/repository"
)

var _ repository.CheckoutRepository = (*checkoutRepo)(nil)

type checkoutRepo struct {
	pool *pgxpool.Pool
}

func NewCheckoutRepo(pool *pgxpool.Pool) repository.CheckoutRepository {
	return &checkoutRepo{pool: pool}
}

func (r *checkoutRepo) Save(ctx context.Context, tx repository.Tx, c *model.Checkout) error {
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return err
	}
	_, err = ex.Exec(ctx,
		`INSERT INTO account_checkouts (id, user_id, account_id, issued_at) VALUES ($1,$2,$3,$4);`,
		c.ID, c.UserID, c.AccountID, c.IssuedAt)
	return err
}

func (r *checkoutRepo) ListByUser(ctx context.Context, tx repository.Tx, userID string, limit int) ([]*model.Checkout, error) {
	if limit <= 0 {
		limit = 50
	}
	ex, err := getExecutor(r.pool, tx)
	if err != nil {
		return nil, err
	}
	rows, err := ex.Query(ctx, `
SELECT id, user_id, account_id, issued_at
  FROM account_checkouts
 WHERE user_id=$1
 ORDER BY issued_at DESC
 LIMIT $2;`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list checkouts: %w", err)
	}
	defer rows.Close()
	var out []*model.Checkout
	for rows.Next() {
		var c model.Checkout
		if err := rows.Scan(&c.ID, &c.UserID, &c.AccountID, &c.IssuedAt); err != nil {
			return nil, err
		}
		out = append(out, &c)
	}
	return out, rows.Err()
}
