// File: internal/infra/billing/stripe_gateway.go
package billing

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	stripe "github.com/stripe/stripe-go/v74"
	"github.com/stripe/stripe-go/v74/client"

	"notes-saas-billing/internal/config"
	"notes-saas-billing/internal/domain"
	"notes-saas-billing/internal/domain/model"
	"notes-saas-billing/internal/domain/ports/adapter"
)

var _ adapter.BillingGateway = (*StripeGateway)(nil)

// StripeGateway implements BillingGateway against the Stripe API. The
// client is constructed explicitly and injected everywhere it is needed;
// there is no package-global key.
type StripeGateway struct {
	api        *client.API
	successURL string
	cancelURL  string
}

func NewStripeGateway(cfg config.StripeConfig) *StripeGateway {
	sc := &client.API{}
	sc.Init(cfg.SecretKey, nil)
	return &StripeGateway{
		api:        sc,
		successURL: cfg.SuccessURL,
		cancelURL:  cfg.CancelURL,
	}
}

// NewStripeGatewayWithClient injects a pre-built client. Tests point it at
// an httptest server through a custom backend.
func NewStripeGatewayWithClient(api *client.API, cfg config.StripeConfig) *StripeGateway {
	return &StripeGateway{api: api, successURL: cfg.SuccessURL, cancelURL: cfg.CancelURL}
}

func (g *StripeGateway) Name() string { return "stripe" }

func (g *StripeGateway) GetSubscription(ctx context.Context, subscriptionID string) (*model.Subscription, error) {
	s, err := g.api.Subscriptions.Get(subscriptionID, &stripe.SubscriptionParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, notFoundOr(err, domain.ErrSubscriptionNotFound)
	}

	sub := &model.Subscription{ID: s.ID}
	if s.LatestInvoice != nil {
		ref := &model.InvoiceRef{ID: s.LatestInvoice.ID}
		// Status is only populated when Stripe embedded the full invoice;
		// an unexpanded reference carries the id alone.
		if s.LatestInvoice.Status != "" {
			ref.Invoice = toInvoice(s.LatestInvoice)
		}
		sub.LatestInvoice = ref
	}
	return sub, nil
}

func (g *StripeGateway) GetInvoice(ctx context.Context, invoiceID string) (*model.Invoice, error) {
	inv, err := g.api.Invoices.Get(invoiceID, &stripe.InvoiceParams{
		Params: stripe.Params{Context: ctx},
	})
	if err != nil {
		return nil, notFoundOr(err, domain.ErrNotFound)
	}
	return toInvoice(inv), nil
}

func (g *StripeGateway) CreateRefund(ctx context.Context, paymentIntentID string) (model.RefundResult, error) {
	r, err := g.api.Refunds.New(&stripe.RefundParams{
		Params:        stripe.Params{Context: ctx},
		PaymentIntent: stripe.String(paymentIntentID),
	})
	if err != nil {
		return model.RefundResult{}, fmt.Errorf("stripe: create refund: %w", err)
	}
	return model.RefundResult{ID: r.ID, Status: string(r.Status)}, nil
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, req model.CheckoutRequest) (string, error) {
	cust, err := g.findCustomer(ctx, req.Email)
	if err != nil {
		return "", fmt.Errorf("stripe: look up customer: %w", err)
	}
	if cust != nil && hasLiveSubscription(cust) {
		return "", domain.ErrAlreadySubscribed
	}

	params := &stripe.CheckoutSessionParams{
		Params:            stripe.Params{Context: ctx},
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		SuccessURL:        stripe.String(g.successURL),
		CancelURL:         stripe.String(g.cancelURL),
		ClientReferenceID: stripe.String(req.UserID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Price:    stripe.String(req.PriceID),
				Quantity: stripe.Int64(1),
			},
		},
	}
	if cust != nil {
		params.Customer = stripe.String(cust.ID)
	} else {
		params.CustomerEmail = stripe.String(req.Email)
	}
	params.AddMetadata("product_id", req.ProductID)
	params.AddMetadata("user_id", req.UserID)

	sess, err := g.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("stripe: create checkout session: %w", err)
	}
	return sess.ID, nil
}

// findCustomer returns the most recent customer for email, with
// subscriptions expanded, or nil when none exists.
func (g *StripeGateway) findCustomer(ctx context.Context, email string) (*stripe.Customer, error) {
	listParams := &stripe.CustomerListParams{
		Email: stripe.String(email),
	}
	listParams.Context = ctx
	listParams.Limit = stripe.Int64(1)
	listParams.AddExpand("data.subscriptions")

	iter := g.api.Customers.List(listParams)
	if iter.Next() {
		return iter.Customer(), nil
	}
	return nil, iter.Err()
}

func hasLiveSubscription(c *stripe.Customer) bool {
	if c.Subscriptions == nil {
		return false
	}
	for _, s := range c.Subscriptions.Data {
		if s.Status == stripe.SubscriptionStatusActive || s.Status == stripe.SubscriptionStatusTrialing {
			return true
		}
	}
	return false
}

func toInvoice(in *stripe.Invoice) *model.Invoice {
	inv := &model.Invoice{ID: in.ID}
	if in.PaymentIntent != nil {
		ref := &model.PaymentIntentRef{ID: in.PaymentIntent.ID}
		if in.PaymentIntent.Status != "" {
			ref.Intent = &model.PaymentIntent{
				ID:     in.PaymentIntent.ID,
				Status: string(in.PaymentIntent.Status),
			}
		}
		inv.PaymentIntent = ref
	}
	return inv
}

// notFoundOr maps Stripe's resource_missing class to the given domain
// sentinel; anything else passes through for the caller to wrap.
func notFoundOr(err error, notFound error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) {
		if stripeErr.Code == stripe.ErrorCodeResourceMissing || stripeErr.HTTPStatusCode == http.StatusNotFound {
			return notFound
		}
	}
	return err
}
