package repository

import (
	"context"

	"account-pool-service/internal/domain/model"
)

type CheckoutRepository interface {
	Save(ctx context.Context, tx Tx, c *model.Checkout) error
	ListByUser(ctx context.Context, tx Tx, userID string, limit int) ([]*model.Checkout, error)
}
