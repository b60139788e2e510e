// File: internal/usecase/refund_uc.go
package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"notes-saas-billing/internal/domain"
	"notes-saas-billing/internal/domain/model"
	"notes-saas-billing/internal/domain/ports/adapter"
)

// Compile-time check
var _ RefundUseCase = (*refundUC)(nil)

type RefundUseCase interface {
	// Refund walks subscription -> latest invoice -> payment intent and
	// reverses that charge. Exactly zero or one payment intent resolves per
	// subscription; the pipeline never guesses among several.
	Refund(ctx context.Context, subscriptionID string) (model.RefundResult, error)
}

type refundUC struct {
	gateway adapter.BillingGateway
	log     *zerolog.Logger
}

func NewRefundUseCase(gateway adapter.BillingGateway, logger *zerolog.Logger) *refundUC {
	return &refundUC{gateway: gateway, log: logger}
}

// Refund resolves the charge strictly in order: subscription, latest
// invoice, payment intent, refund. Each step short-circuits on a miss; a
// miss is an expected terminal state, not a fault. Failures are never
// retried here — a refund must not be silently re-attempted.
func (u *refundUC) Refund(ctx context.Context, subscriptionID string) (model.RefundResult, error) {
	var zero model.RefundResult

	if strings.TrimSpace(subscriptionID) == "" {
		return zero, fmt.Errorf("%w: subscription id is required", domain.ErrInvalidArgument)
	}

	sub, err := u.gateway.GetSubscription(ctx, subscriptionID)
	if err != nil {
		if errors.Is(err, domain.ErrSubscriptionNotFound) {
			u.log.Warn().Str("subscription_id", subscriptionID).Msg("refund: subscription not found")
			return zero, err
		}
		u.log.Error().Err(err).Str("subscription_id", subscriptionID).Str("step", "fetch_subscription").Msg("refund: provider error")
		return zero, fmt.Errorf("cannot resolve payment intent for %s: %w", subscriptionID, err)
	}

	ref := sub.LatestInvoice
	if ref == nil || ref.InvoiceID() == "" {
		u.log.Warn().Str("subscription_id", subscriptionID).Msg("refund: subscription has no latest invoice")
		return zero, domain.ErrInvoiceNotFound
	}

	// The reference may already carry the full invoice; only dereference
	// when it does not.
	inv := ref.Invoice
	if !ref.Resolved() {
		inv, err = u.gateway.GetInvoice(ctx, ref.InvoiceID())
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) || errors.Is(err, domain.ErrInvoiceNotFound) {
				u.log.Warn().Str("subscription_id", subscriptionID).Str("invoice_id", ref.InvoiceID()).Msg("refund: invoice not found")
				return zero, domain.ErrInvoiceNotFound
			}
			u.log.Error().Err(err).Str("subscription_id", subscriptionID).Str("step", "fetch_invoice").Msg("refund: provider error")
			return zero, fmt.Errorf("cannot resolve payment intent for %s: %w", subscriptionID, err)
		}
	}

	intentID := inv.PaymentIntent.IntentID()
	if intentID == "" {
		u.log.Warn().Str("subscription_id", subscriptionID).Str("invoice_id", inv.ID).Msg("refund: invoice has no payment intent")
		return zero, domain.ErrPaymentIntentNotFound
	}

	res, err := u.gateway.CreateRefund(ctx, intentID)
	if err != nil {
		// No local compensation: nothing was persisted, the failure just
		// propagates to the caller.
		u.log.Error().Err(err).Str("subscription_id", subscriptionID).Str("payment_intent_id", intentID).Str("step", "create_refund").Msg("refund: provider refused refund")
		return zero, err
	}

	u.log.Info().
		Str("subscription_id", subscriptionID).
		Str("payment_intent_id", intentID).
		Str("refund_id", res.ID).
		Str("status", res.Status).
		Msg("refund created")
	return res, nil
}
