package adapter

import (
	"context"

	"notes-saas-billing/internal/domain/model"
)

// BillingGateway is the hex port for the billing provider (Stripe in
// production). It is the only shared mutable resource this service touches;
// implementations must be safe for concurrent use.
type BillingGateway interface {
	Name() string

	// GetSubscription fetches a subscription by id.
	// Returns domain.ErrSubscriptionNotFound when the provider has no such id.
	GetSubscription(ctx context.Context, subscriptionID string) (*model.Subscription, error)

	// GetInvoice dereferences an invoice id to the full invoice object.
	GetInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error)

	// CreateRefund reverses the charge behind the given payment intent.
	// Exactly one provider-side refund is created per successful call; the
	// caller must not retry on failure.
	CreateRefund(ctx context.Context, paymentIntentID string) (model.RefundResult, error)

	// CreateCheckoutSession opens a provider-hosted purchase flow and
	// returns its session id. Returns domain.ErrAlreadySubscribed when the
	// provider already holds an active subscription for the requester.
	CreateCheckoutSession(ctx context.Context, req model.CheckoutRequest) (sessionID string, err error)
}
