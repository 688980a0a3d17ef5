package usecase

import (
	"context"

	"account-pool-service/internal/domain"
	"account-pool-service/internal/domain/ports/repository"
	"account-pool-service/internal/infra/logging"
	"account-pool-service/internal/infra/security"

	"github.com/rs/zerolog"
)

// ModelUsage mirrors the quota shape the desktop client expects.
type ModelUsage struct {
	NumRequests      int `json:"numRequests"`
	NumRequestsTotal int `json:"numRequestsTotal"`
	NumTokens        int `json:"numTokens"`
	MaxRequestUsage  int `json:"maxRequestUsage"`
	MaxTokenUsage    int `json:"maxTokenUsage"`
}

// UserInfo is the authenticated entitlement summary payload.
type UserInfo struct {
	Models []ModelUsage `json:"models"`
}

// Compile-time check
var _ UserUseCase = (*userUC)(nil)

// UserUseCase exposes operations on the authenticated account.
type UserUseCase interface {
	Info(ctx context.Context, userID string) (*UserInfo, error)
	UpdatePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error
}

type userUC struct {
	users  repository.UserRepository
	hasher *security.PasswordHasher
	log    *zerolog.Logger
}

func NewUserUseCase(users repository.UserRepository, hasher *security.PasswordHasher, logger *zerolog.Logger) *userUC {
	return &userUC{users: users, hasher: hasher, log: logger}
}

func (u *userUC) Info(ctx context.Context, userID string) (*UserInfo, error) {
	defer logging.TraceDuration(u.log, "UserUC.Info")()

	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return nil, err
	}

	// Token accounting is not tracked; only request counts are.
	return &UserInfo{Models: []ModelUsage{{
		NumRequests:      user.UsedCount,
		NumRequestsTotal: user.TotalCount,
		MaxRequestUsage:  user.TotalCount,
	}}}, nil
}

func (u *userUC) UpdatePassword(ctx context.Context, userID, oldPassword, newPassword, confirmPassword string) error {
	defer logging.TraceDuration(u.log, "UserUC.UpdatePassword")()

	if oldPassword == "" || newPassword == "" || confirmPassword == "" {
		return domain.ErrInvalidArgument
	}
	if newPassword != confirmPassword {
		return domain.ErrInvalidArgument
	}
	if len(newPassword) < minPasswordLen {
		return domain.ErrInvalidArgument
	}

	user, err := u.users.FindByID(ctx, repository.NoTX, userID)
	if err != nil {
		return err
	}
	if !u.hasher.Compare(user.PasswordHash, oldPassword) {
		return domain.ErrWrongPassword
	}

	hash, err := u.hasher.Hash(newPassword)
	if err != nil {
		return err
	}
	return u.users.UpdatePassword(ctx, repository.NoTX, user.ID, hash)
}
