package repository

import (
	"context"
	"time"
)

// MagicLinkToken is the single-use credential mailed to the user. Tokens
// live only in the token store for their TTL; there is no durable record.
type MagicLinkToken struct {
	ID         string    // opaque token id, the value embedded in the link
	Email      string    // address the link was issued for
	RedirectTo string    // post-verification destination
	IssuedAt   time.Time
}

// MagicLinkTokenRepository stores pending magic-link tokens.
type MagicLinkTokenRepository interface {
	// Store saves the token under its ID for ttl.
	Store(ctx context.Context, tok *MagicLinkToken, ttl time.Duration) error

	// Consume atomically fetches and deletes the token, enforcing single
	// use. Returns domain.ErrTokenInvalid when the id is unknown or expired.
	Consume(ctx context.Context, id string) (*MagicLinkToken, error)
}
