package usecase

import (
	"context"
	"fmt"
	"time"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/adapter"
	"account-pool-service/internal/domain/ports/repository"
	"account-pool-service/internal/infra/logging"
	"account-pool-service/internal/infra/metrics"

	"github.com/rs/zerolog"
)

// Compile-time check
var _ VerificationUseCase = (*verificationUC)(nil)

// VerificationUseCase issues and validates short-lived email codes.
type VerificationUseCase interface {
	// IssueCode persists a fresh code and delivers it through the mailer.
	// The row survives a delivery failure; that failure is reported as
	// domain.ErrDeliveryFailed.
	IssueCode(ctx context.Context, email, codeType string) error
	// ValidateCode checks the newest unused matching code and consumes it.
	// Expiry and absence are reported distinctly.
	ValidateCode(ctx context.Context, email, code, codeType string) error
}

type verificationUC struct {
	codes  repository.VerificationCodeRepository
	users  repository.UserRepository
	mailer adapter.Mailer
	log    *zerolog.Logger
}

func NewVerificationUseCase(
	codes repository.VerificationCodeRepository,
	users repository.UserRepository,
	mailer adapter.Mailer,
	logger *zerolog.Logger,
) *verificationUC {
	return &verificationUC{codes: codes, users: users, mailer: mailer, log: logger}
}

func (u *verificationUC) IssueCode(ctx context.Context, email, codeType string) error {
	defer logging.TraceDuration(u.log, "VerificationUC.IssueCode")()

	if email == "" {
		return domain.ErrInvalidArgument
	}

	switch codeType {
	case model.CodeTypeRegister:
		// Registration codes only go to addresses that are still free.
		if _, err := u.users.FindByEmail(ctx, repository.NoTX, email); err == nil {
			return domain.ErrAlreadyExists
		} else if err != domain.ErrNotFound {
			return err
		}
	case model.CodeTypeReset:
		if _, err := u.users.FindByEmail(ctx, repository.NoTX, email); err != nil {
			return err
		}
	default:
		return domain.ErrInvalidArgument
	}

	code, err := generateVerificationCode()
	if err != nil {
		return err
	}

	vc := model.NewVerificationCode(email, code, codeType)
	if err := u.codes.Save(ctx, repository.NoTX, vc); err != nil {
		return err
	}
	metrics.IncVerificationCode(codeType)

	subject := "Your verification code"
	body := fmt.Sprintf("Your verification code is %s. It expires in 10 minutes.", code)
	if err := u.mailer.Send(ctx, email, subject, body); err != nil {
		// The code row stays valid; only delivery failed.
		u.log.Warn().Err(err).Str("email", email).Msg("verification code delivery failed")
		return domain.ErrDeliveryFailed
	}
	return nil
}

func (u *verificationUC) ValidateCode(ctx context.Context, email, code, codeType string) error {
	defer logging.TraceDuration(u.log, "VerificationUC.ValidateCode")()

	if email == "" || code == "" {
		return domain.ErrVerificationInvalid
	}

	vc, err := u.codes.FindLatestUnused(ctx, repository.NoTX, email, code, codeType)
	if err != nil {
		if err == domain.ErrNotFound {
			return domain.ErrVerificationInvalid
		}
		return err
	}
	if vc.Expired(time.Now()) {
		return domain.ErrVerificationExpired
	}

	won, err := u.codes.Consume(ctx, repository.NoTX, vc.ID)
	if err != nil {
		return err
	}
	if !won {
		// Someone else consumed it between the read and the update.
		return domain.ErrVerificationInvalid
	}
	return nil
}
