package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound        = errors.New("entity not found")
	ErrAlreadyExists   = errors.New("entity already exists")
	ErrInvalidArgument = errors.New("invalid argument")

	// Identity
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrWrongPassword      = errors.New("old password is incorrect")

	// Entitlement
	ErrAccountExpired = errors.New("account expired")
	ErrQuotaExceeded  = errors.New("quota exceeded")

	// Activation codes
	ErrCodeInvalid   = errors.New("invalid or inactive activation code")
	ErrCodeExhausted = errors.New("activation code has reached maximum usage")
	ErrCodeExpired   = errors.New("activation code has expired")

	// Verification codes
	ErrVerificationInvalid = errors.New("invalid or expired verification code")
	ErrVerificationExpired = errors.New("verification code has expired")

	// Account pool
	ErrNoAvailableAccounts = errors.New("no available accounts in pool")

	// Delivery of a verification code failed after the code row was
	// persisted. The code itself is still valid.
	ErrDeliveryFailed = errors.New("verification code delivery failed")

	// Storage plumbing
	ErrInvalidExecContext = errors.New("invalid transaction handle")
)
