package model

import (
	"time"

	"account-pool-service/internal/domain"

	"github.com/google/uuid"
)

// Entitlement tiers. Level is ordinal and only ever moves up.
const (
	LevelFree = iota
	LevelBasic
	LevelPro
	LevelPremium
)

// User is an account holder with an entitlement: a quota ceiling
// (TotalCount), consumed units (UsedCount) and an expiry date after which
// the entitlement is inactive.
type User struct {
	ID           string
	Email        string
	Username     string
	PasswordHash string
	Level        int
	TotalCount   int
	UsedCount    int
	ExpireTime   *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// NewUser creates a fresh account with no entitlement: level 0, zero quota,
// expire_time set to now so the account starts expired until activated.
func NewUser(email, username, passwordHash string) (*User, error) {
	if email == "" || username == "" || passwordHash == "" {
		return nil, domain.ErrInvalidArgument
	}
	now := time.Now()
	return &User{
		ID:           uuid.NewString(),
		Email:        email,
		Username:     username,
		PasswordHash: passwordHash,
		Level:        LevelFree,
		ExpireTime:   &now,
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

// IsExpired reports whether the entitlement is inactive. A missing expiry is
// treated as expired.
func (u *User) IsExpired(now time.Time) bool {
	return u.ExpireTime == nil || now.After(*u.ExpireTime)
}

func (u *User) QuotaExhausted() bool { return u.UsedCount >= u.TotalCount }

// TierLabel returns the human-readable name for the ordinal level.
func (u *User) TierLabel() string {
	switch u.Level {
	case LevelFree:
		return "Free"
	case LevelBasic:
		return "Basic"
	case LevelPro:
		return "Pro"
	default:
		return "Premium"
	}
}
