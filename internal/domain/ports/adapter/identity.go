package adapter

import (
	"context"
	"fmt"
)

// IdentityErrorCode is the closed set of failure categories the identity
// provider is allowed to surface. Anything outside this vocabulary must be
// returned as a plain error and is treated as unclassified by callers.
type IdentityErrorCode string

const (
	// IdentityErrAccountNotLinked: the email belongs to an account created
	// through a different sign-in method.
	IdentityErrAccountNotLinked IdentityErrorCode = "account_not_linked"
	// IdentityErrDeliveryFailed: the provider accepted the request but could
	// not hand the message to the mail transport.
	IdentityErrDeliveryFailed IdentityErrorCode = "delivery_failed"
	// IdentityErrRateLimited: too many link requests for this address.
	IdentityErrRateLimited IdentityErrorCode = "rate_limited"
)

// IdentityError is returned (not panicked) by IdentityGateway
// implementations for recognized failure categories. Call sites match on
// Code exhaustively.
type IdentityError struct {
	Code  IdentityErrorCode
	Cause error
}

func (e *IdentityError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("identity: %s: %v", e.Code, e.Cause)
	}
	return fmt.Sprintf("identity: %s", e.Code)
}

func (e *IdentityError) Unwrap() error { return e.Cause }

// IdentityGateway is the hex port for the passwordless identity provider.
type IdentityGateway interface {
	Name() string

	// SendMagicLink issues a one-time sign-in link for email and delivers it
	// by mail. redirectTo is where the user lands after the link is
	// consumed. Recognized failures come back as *IdentityError.
	SendMagicLink(ctx context.Context, email, redirectTo string) error
}
