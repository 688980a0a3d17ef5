package usecase

import (
	"context"
	"time"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/model"
	"account-pool-service/internal/domain/ports/repository"
	"account-pool-service/internal/infra/logging"
	"account-pool-service/internal/infra/metrics"
	"account-pool-service/internal/infra/security"

	"github.com/rs/zerolog"
)

const minPasswordLen = 6

// TokenIssuer signs a session token for an authenticated user.
type TokenIssuer interface {
	Mint(u *model.User) (string, error)
}

// UserSummary is the public view of an account returned alongside tokens.
type UserSummary struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	Username  string `json:"username"`
	Level     int    `json:"level"`
	Tier      string `json:"tier"`
	IsExpired bool   `json:"isExpired"`
}

// AuthResult bundles a signed token with the account summary.
type AuthResult struct {
	Token string      `json:"token"`
	User  UserSummary `json:"user"`
}

// Compile-time check
var _ AuthUseCase = (*authUC)(nil)

// AuthUseCase covers the unauthenticated identity flows.
type AuthUseCase interface {
	CheckUser(ctx context.Context, email string) (bool, error)
	SendEmailCode(ctx context.Context, email, codeType string) error
	Register(ctx context.Context, email, username, password, code string) (*AuthResult, error)
	Login(ctx context.Context, email, password string) (*AuthResult, error)
	ResetPassword(ctx context.Context, email, code, newPassword string) error
}

type authUC struct {
	users        repository.UserRepository
	verification VerificationUseCase
	hasher       *security.PasswordHasher
	tokens       TokenIssuer
	log          *zerolog.Logger
}

func NewAuthUseCase(
	users repository.UserRepository,
	verification VerificationUseCase,
	hasher *security.PasswordHasher,
	tokens TokenIssuer,
	logger *zerolog.Logger,
) *authUC {
	return &authUC{
		users:        users,
		verification: verification,
		hasher:       hasher,
		tokens:       tokens,
		log:          logger,
	}
}

func summarize(u *model.User) UserSummary {
	return UserSummary{
		ID:        u.ID,
		Email:     u.Email,
		Username:  u.Username,
		Level:     u.Level,
		Tier:      u.TierLabel(),
		IsExpired: u.IsExpired(time.Now()),
	}
}

func (a *authUC) CheckUser(ctx context.Context, email string) (bool, error) {
	defer logging.TraceDuration(a.log, "AuthUC.CheckUser")()

	if email == "" {
		return false, domain.ErrInvalidArgument
	}
	_, err := a.users.FindByEmail(ctx, repository.NoTX, email)
	if err == domain.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (a *authUC) SendEmailCode(ctx context.Context, email, codeType string) error {
	defer logging.TraceDuration(a.log, "AuthUC.SendEmailCode")()
	return a.verification.IssueCode(ctx, email, codeType)
}

func (a *authUC) Register(ctx context.Context, email, username, password, code string) (*AuthResult, error) {
	defer logging.TraceDuration(a.log, "AuthUC.Register")()

	if email == "" || username == "" || code == "" {
		return nil, domain.ErrInvalidArgument
	}
	if len(password) < minPasswordLen {
		return nil, domain.ErrInvalidArgument
	}

	if _, err := a.users.FindByEmail(ctx, repository.NoTX, email); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if err != domain.ErrNotFound {
		return nil, err
	}
	if _, err := a.users.FindByUsername(ctx, repository.NoTX, username); err == nil {
		return nil, domain.ErrAlreadyExists
	} else if err != domain.ErrNotFound {
		return nil, err
	}

	if err := a.verification.ValidateCode(ctx, email, code, model.CodeTypeRegister); err != nil {
		return nil, err
	}

	hash, err := a.hasher.Hash(password)
	if err != nil {
		return nil, err
	}
	user, err := model.NewUser(email, username, hash)
	if err != nil {
		return nil, err
	}
	if err := a.users.Save(ctx, repository.NoTX, user); err != nil {
		return nil, err
	}
	metrics.IncRegistration()

	token, err := a.tokens.Mint(user)
	if err != nil {
		return nil, err
	}
	return &AuthResult{Token: token, User: summarize(user)}, nil
}

func (a *authUC) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	defer logging.TraceDuration(a.log, "AuthUC.Login")()

	user, err := a.users.FindByEmail(ctx, repository.NoTX, email)
	if err != nil {
		if err == domain.ErrNotFound {
			// Uniform failure: do not reveal which field was wrong.
			metrics.IncLogin(false)
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}
	if !a.hasher.Compare(user.PasswordHash, password) {
		metrics.IncLogin(false)
		return nil, domain.ErrInvalidCredentials
	}

	token, err := a.tokens.Mint(user)
	if err != nil {
		return nil, err
	}
	metrics.IncLogin(true)
	return &AuthResult{Token: token, User: summarize(user)}, nil
}

func (a *authUC) ResetPassword(ctx context.Context, email, code, newPassword string) error {
	defer logging.TraceDuration(a.log, "AuthUC.ResetPassword")()

	if len(newPassword) < minPasswordLen {
		return domain.ErrInvalidArgument
	}

	user, err := a.users.FindByEmail(ctx, repository.NoTX, email)
	if err != nil {
		return err
	}

	if err := a.verification.ValidateCode(ctx, email, code, model.CodeTypeReset); err != nil {
		return err
	}

	hash, err := a.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return a.users.UpdatePassword(ctx, repository.NoTX, user.ID, hash)
}
