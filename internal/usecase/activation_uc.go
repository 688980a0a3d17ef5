package usecase

import (
	"context"
	"strconv"
	"strings"
	"time"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/ports/repository"
	"account-pool-service/internal/infra/logging"
	"account-pool-service/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// Compile-time check
var _ ActivationUseCase = (*activationUC)(nil)

// ActivationUseCase redeems activation codes against user entitlements.
type ActivationUseCase interface {
	Activate(ctx context.Context, userID, code string) error
}

type activationUC struct {
	users repository.UserRepository
	codes repository.ActivationCodeRepository
	tm    repository.TransactionManager
	log   *zerolog.Logger
}

func NewActivationUseCase(
	users repository.UserRepository,
	codes repository.ActivationCodeRepository,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *activationUC {
	return &activationUC{users: users, codes: codes, tm: tm, log: logger}
}

// Activate applies a code to the caller's entitlement. The code and user
// rows are locked for the whole transaction so the exhaustion check and the
// counter increment see the same state under concurrent redemptions.
func (a *activationUC) Activate(ctx context.Context, userID, code string) error {
	defer logging.TraceDuration(a.log, "ActivationUC.Activate")()

	code = strings.TrimSpace(code)
	if code == "" {
		return domain.ErrInvalidArgument
	}

	var grantedLevel int
	txOpts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	err := a.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		ac, err := a.codes.FindActiveByCodeForUpdate(ctx, tx, code)
		if err != nil {
			if err == domain.ErrNotFound {
				return domain.ErrCodeInvalid
			}
			return err
		}

		now := time.Now()
		if ac.Exhausted() {
			return domain.ErrCodeExhausted
		}
		if ac.Expired(now) {
			return domain.ErrCodeExpired
		}

		user, err := a.users.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		// Stacking: an unexpired entitlement extends from its current
		// expiry, an expired one restarts from now.
		base := now
		if user.ExpireTime != nil && user.ExpireTime.After(now) {
			base = *user.ExpireTime
		}
		newExpire := base.AddDate(0, 0, ac.DurationDays())

		newLevel := user.Level
		if ac.Level > newLevel {
			newLevel = ac.Level
		}
		newTotal := user.TotalCount + ac.Quota

		if err := a.users.ApplyActivation(ctx, tx, user.ID, newLevel, newExpire, newTotal); err != nil {
			return err
		}
		if err := a.codes.IncrementUsed(ctx, tx, ac.ID, now); err != nil {
			return err
		}
		grantedLevel = newLevel
		return nil
	})
	if err != nil {
		return err
	}

	metrics.IncActivation(strconv.Itoa(grantedLevel))
	return nil
}
