package domain

import "errors"

var (
	// Common domain errors
	ErrNotFound              = errors.New("entity not found")
	ErrInvalidArgument       = errors.New("invalid argument")
	ErrUnauthenticated       = errors.New("authentication required")
	ErrSubscriptionNotFound  = errors.New("subscription not found")
	ErrInvoiceNotFound       = errors.New("subscription has no latest invoice")
	ErrPaymentIntentNotFound = errors.New("invoice has no payment intent")
	ErrAlreadySubscribed     = errors.New("user already has an active subscription")
	ErrCheckoutInFlight      = errors.New("checkout already in progress")
	ErrTokenInvalid          = errors.New("magic link token is invalid or expired")
	ErrTokenUsed             = errors.New("magic link token already used")
	ErrRateLimited           = errors.New("too many requests")
)
