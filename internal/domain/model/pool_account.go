package model

import (
	"time"

	"account-pool-service/internal/domain"

	"github.com/google/uuid"
)

// PoolAccount is a shared third-party credential held in the pool. Every
// distribution bumps UsageCount and refreshes DistributedTime; the status
// flag gates eligibility.
type PoolAccount struct {
	ID              string
	Account         string
	Password        string
	Token           string
	Notes           string
	Status          int
	UsageCount      int
	DistributedTime *time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

func NewPoolAccount(account, password, token, notes string) (*PoolAccount, error) {
	if account == "" || password == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &PoolAccount{
		ID:        uuid.NewString(),
		Account:   account,
		Password:  password,
		Token:     token,
		Notes:     notes,
		Status:    StatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

func (a *PoolAccount) Active() bool { return a.Status == StatusActive }
