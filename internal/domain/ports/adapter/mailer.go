package adapter

import "context"

// Mailer delivers a message out-of-band. Implementations must not block
// longer than the caller's context allows.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}
