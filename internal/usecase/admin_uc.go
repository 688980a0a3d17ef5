package usecase

import (
	"context"
	"time"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/repository"
	"account-pool-service/internal/infra/logging"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// CreateActivationCodeInput carries the administrative code parameters.
// Code may be empty; a random one is generated then.
type CreateActivationCodeInput struct {
	Code     string
	Type     string
	Name     string
	Level    int
	Duration int
	Quota    int
	MaxUses  int
	Notes    string
}

// Compile-time check
var _ AdminUseCase = (*adminUC)(nil)

// AdminUseCase covers the API-key-gated administrative writes.
type AdminUseCase interface {
	CreateAccount(ctx context.Context, account, password, token, notes string) (*model.PoolAccount, error)
	CreateActivationCode(ctx context.Context, in CreateActivationCodeInput) (*model.ActivationCode, error)
}

type adminUC struct {
	pool  repository.PoolAccountRepository
	codes repository.ActivationCodeRepository
	log   *zerolog.Logger
}

func NewAdminUseCase(
	pool repository.PoolAccountRepository,
	codes repository.ActivationCodeRepository,
	logger *zerolog.Logger,
) *adminUC {
	return &adminUC{pool: pool, codes: codes, log: logger}
}

func (a *adminUC) CreateAccount(ctx context.Context, account, password, token, notes string) (*model.PoolAccount, error) {
	defer logging.TraceDuration(a.log, "AdminUC.CreateAccount")()

	pa, err := model.NewPoolAccount(account, password, token, notes)
	if err != nil {
		return nil, err
	}
	if err := a.pool.Save(ctx, repository.NoTX, pa); err != nil {
		return nil, err
	}
	return pa, nil
}

func (a *adminUC) CreateActivationCode(ctx context.Context, in CreateActivationCodeInput) (*model.ActivationCode, error) {
	defer logging.TraceDuration(a.log, "AdminUC.CreateActivationCode")()

	if in.Type == "" {
		return nil, domain.ErrInvalidArgument
	}

	code := in.Code
	if code == "" {
		var err error
		code, err = generateActivationCode()
		if err != nil {
			return nil, err
		}
	}

	if _, err := a.codes.FindByCode(ctx, repository.NoTX, code); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	maxUses := in.MaxUses
	if maxUses <= 0 {
		maxUses = 1
	}

	now := time.Now()
	var expiredAt *time.Time
	if in.Duration > 0 {
		t := now.AddDate(0, 0, in.Duration)
		expiredAt = &t
	}

	ac := &model.ActivationCode{
		ID:        uuid.NewString(),
		Code:      code,
		Type:      in.Type,
		Name:      in.Name,
		Level:     in.Level,
		Duration:  in.Duration,
		Quota:     in.Quota,
		MaxUses:   maxUses,
		Status:    model.StatusActive,
		ExpiredAt: expiredAt,
		Notes:     in.Notes,
		CreatedAt: now,
	}
	if err := a.codes.Save(ctx, repository.NoTX, ac); err != nil {
		return nil, err
	}
	return ac, nil
}
