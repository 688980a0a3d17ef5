package model

import "time"

// Record status flag shared by pool accounts, activation codes and articles.
const (
	StatusInactive = 0
	StatusActive   = 1
)

const defaultDurationDays = 30

// ActivationCode is a redeemable grant: applying it extends a user's expiry
// by Duration days, raises the level to at most Level and adds Quota to the
// quota ceiling. A code may be redeemed up to MaxUses times.
type ActivationCode struct {
	ID          string
	Code        string
	Type        string
	Name        string
	Level       int
	Duration    int // days; 0 means the default of 30
	Quota       int
	MaxUses     int
	UsedCount   int
	Status      int
	ExpiredAt   *time.Time
	ActivatedAt *time.Time
	Notes       string
	CreatedAt   time.Time
}

func (c *ActivationCode) Exhausted() bool { return c.UsedCount >= c.MaxUses }

// Expired reports whether the code is inert due to its expiry date,
// regardless of status.
func (c *ActivationCode) Expired(now time.Time) bool {
	return c.ExpiredAt != nil && now.After(*c.ExpiredAt)
}

// DurationDays returns the grant duration, defaulting when unset.
func (c *ActivationCode) DurationDays() int {
	if c.Duration <= 0 {
		return defaultDurationDays
	}
	return c.Duration
}
