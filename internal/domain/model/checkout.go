package model

import (
	"time"

	"github.com/google/uuid"
)

// Checkout is the ledger record of one credential hand-out: which user
// received which pool account, and when. The aggregate counters on users
// and pool accounts stay authoritative for quota decisions; the ledger
// exists so the question "which account did user X receive" has an answer.
type Checkout struct {
	ID        string
	UserID    string
	AccountID string
	IssuedAt  time.Time
}

func NewCheckout(userID, accountID string) *Checkout {
	return &Checkout{
		ID:        uuid.NewString(),
		UserID:    userID,
		AccountID: accountID,
		IssuedAt:  time.Now(),
	}
}
