package usecase

import (
	"context"
	"time"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/repository"
	"account-pool-service/internal/infra/logging"
	"account-pool-service/internal/infra/metrics"

	"github.com/jackc/pgx/v4"
	"github.com/rs/zerolog"
)

// AccountInfo is the credential payload handed to an entitled caller. The
// secret material is plaintext on purpose; the pool exists to be handed out.
type AccountInfo struct {
	ID              string     `json:"id"`
	Account         string     `json:"account"`
	Password        string     `json:"password"`
	Token           string     `json:"token"`
	UsageCount      int        `json:"usage_count"`
	Status          int        `json:"status"`
	CreateTime      time.Time  `json:"create_time"`
	DistributedTime *time.Time `json:"distributed_time"`
	UpdateTime      time.Time  `json:"update_time"`
}

// Compile-time check
var _ PoolUseCase = (*poolUC)(nil)

// PoolUseCase distributes pooled credentials to entitled users.
type PoolUseCase interface {
	// GetAccount hands out one credential. requestedAccount narrows the
	// selection to a specific pool entry; empty means least-used.
	GetAccount(ctx context.Context, userID, requestedAccount string) (*AccountInfo, error)
}

type poolUC struct {
	users     repository.UserRepository
	pool      repository.PoolAccountRepository
	checkouts repository.CheckoutRepository
	tm        repository.TransactionManager
	log       *zerolog.Logger
}

func NewPoolUseCase(
	users repository.UserRepository,
	pool repository.PoolAccountRepository,
	checkouts repository.CheckoutRepository,
	tm repository.TransactionManager,
	logger *zerolog.Logger,
) *poolUC {
	return &poolUC{users: users, pool: pool, checkouts: checkouts, tm: tm, log: logger}
}

// GetAccount runs the whole check-select-increment sequence inside one
// transaction with the user and pool rows locked, so two concurrent
// requests cannot both pick the same least-used account or overdraw a
// quota with one remaining unit.
func (p *poolUC) GetAccount(ctx context.Context, userID, requestedAccount string) (*AccountInfo, error) {
	defer logging.TraceDuration(p.log, "PoolUC.GetAccount")()

	var info *AccountInfo
	txOpts := pgx.TxOptions{IsoLevel: pgx.ReadCommitted}
	err := p.tm.WithTx(ctx, txOpts, func(ctx context.Context, tx repository.Tx) error {
		user, err := p.users.FindByIDForUpdate(ctx, tx, userID)
		if err != nil {
			return err
		}

		now := time.Now()
		if user.IsExpired(now) {
			metrics.IncQuotaDenied("expired")
			return domain.ErrAccountExpired
		}
		if user.QuotaExhausted() {
			metrics.IncQuotaDenied("quota")
			return domain.ErrQuotaExceeded
		}

		var account *model.PoolAccount
		if requestedAccount != "" {
			account, err = p.pool.FindActiveByAccountForUpdate(ctx, tx, requestedAccount)
		} else {
			account, err = p.pool.FindLeastUsedForUpdate(ctx, tx)
		}
		if err != nil {
			if err == domain.ErrNotFound {
				metrics.IncQuotaDenied("empty_pool")
				return domain.ErrNoAvailableAccounts
			}
			return err
		}

		if err := p.pool.RecordDistribution(ctx, tx, account.ID, now); err != nil {
			return err
		}
		if err := p.users.IncrementUsed(ctx, tx, user.ID); err != nil {
			return err
		}
		if err := p.checkouts.Save(ctx, tx, model.NewCheckout(user.ID, account.ID)); err != nil {
			return err
		}

		info = &AccountInfo{
			ID:              account.ID,
			Account:         account.Account,
			Password:        account.Password,
			Token:           account.Token,
			UsageCount:      account.UsageCount + 1,
			Status:          account.Status,
			CreateTime:      account.CreatedAt,
			DistributedTime: &now,
			UpdateTime:      now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	metrics.IncAccountDistributed()
	return info, nil
}
