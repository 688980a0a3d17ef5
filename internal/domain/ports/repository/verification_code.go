package repository

import (
	"context"
	"time"

	"account-pool-service/internal/domain/model"
)

type VerificationCodeRepository interface {
	Save(ctx context.Context, tx Tx, c *model.VerificationCode) error
	// FindLatestUnused returns the newest unused row matching all three
	// fields, or ErrNotFound.
	FindLatestUnused(ctx context.Context, tx Tx, email, code, codeType string) (*model.VerificationCode, error)
	// Consume marks the row used if and only if it is still unused, and
	// reports whether this call won. A compare-and-set: two concurrent
	// validations of the same code cannot both succeed.
	Consume(ctx context.Context, tx Tx, id string) (bool, error)
	// DeleteExpired purges rows whose expiry is before the cutoff and
	// returns the number removed.
	DeleteExpired(ctx context.Context, before time.Time) (int, error)
}
