package model

import (
	"time"

	"github.com/google/uuid"
)

// Verification code purposes.
const (
	CodeTypeRegister = "register"
	CodeTypeReset    = "reset"
)

// VerificationCodeTTL is how long an issued code stays valid.
const VerificationCodeTTL = 10 * time.Minute

// VerificationCode is a short-lived numeric code bound to (email, type).
// Several codes for the same pair may coexist; validation always considers
// the newest unused one and consumes it exactly once.
type VerificationCode struct {
	ID        string
	Email     string
	Code      string
	Type      string
	ExpiresAt time.Time
	Used      bool
	CreatedAt time.Time
}

func NewVerificationCode(email, code, codeType string) *VerificationCode {
	now := time.Now()
	return &VerificationCode{
		ID:        uuid.NewString(),
		Email:     email,
		Code:      code,
		Type:      codeType,
		ExpiresAt: now.Add(VerificationCodeTTL),
		CreatedAt: now,
	}
}

func (c *VerificationCode) Expired(now time.Time) bool { return now.After(c.ExpiresAt) }
