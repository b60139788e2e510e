// File: internal/usecase/mocks_test.go
package usecase_test

import (
	"context"
	"io"
	"sync"

	"github.com/rs/zerolog"

	"notes-saas-billing/internal/domain"
	"notes-saas-billing/internal/domain/model"
)

func newTestLogger() *zerolog.Logger {
	l := zerolog.New(io.Discard)
	return &l
}

// MockBillingGateway is an in-memory billing provider for unit tests. Each
// method can be overridden per test via its Func field; otherwise calls are
// served from the Subs map.
type MockBillingGateway struct {
	mu sync.Mutex

	Subs     map[string]*model.Subscription
	Invoices map[string]*model.Invoice

	GetSubscriptionFunc       func(ctx context.Context, id string) (*model.Subscription, error)
	GetInvoiceFunc            func(ctx context.Context, id string) (*model.Invoice, error)
	CreateRefundFunc          func(ctx context.Context, paymentIntentID string) (model.RefundResult, error)
	CreateCheckoutSessionFunc func(ctx context.Context, req model.CheckoutRequest) (string, error)

	// Call records, for asserting what reached the provider.
	GetSubscriptionCalls []string
	GetInvoiceCalls      []string
	RefundCalls          []string
	CheckoutCalls        []model.CheckoutRequest
}

func NewMockBillingGateway() *MockBillingGateway {
	return &MockBillingGateway{
		Subs:     make(map[string]*model.Subscription),
		Invoices: make(map[string]*model.Invoice),
	}
}

func (m *MockBillingGateway) Name() string { return "mock" }

func (m *MockBillingGateway) GetSubscription(ctx context.Context, id string) (*model.Subscription, error) {
	m.mu.Lock()
	m.GetSubscriptionCalls = append(m.GetSubscriptionCalls, id)
	m.mu.Unlock()
	if m.GetSubscriptionFunc != nil {
		return m.GetSubscriptionFunc(ctx, id)
	}
	s, ok := m.Subs[id]
	if !ok {
		return nil, domain.ErrSubscriptionNotFound
	}
	cp := *s
	return &cp, nil
}

func (m *MockBillingGateway) GetInvoice(ctx context.Context, id string) (*model.Invoice, error) {
	m.mu.Lock()
	m.GetInvoiceCalls = append(m.GetInvoiceCalls, id)
	m.mu.Unlock()
	if m.GetInvoiceFunc != nil {
		return m.GetInvoiceFunc(ctx, id)
	}
	inv, ok := m.Invoices[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *inv
	return &cp, nil
}

func (m *MockBillingGateway) CreateRefund(ctx context.Context, paymentIntentID string) (model.RefundResult, error) {
	m.mu.Lock()
	m.RefundCalls = append(m.RefundCalls, paymentIntentID)
	m.mu.Unlock()
	if m.CreateRefundFunc != nil {
		return m.CreateRefundFunc(ctx, paymentIntentID)
	}
	return model.RefundResult{ID: "re_" + paymentIntentID, Status: "succeeded"}, nil
}

func (m *MockBillingGateway) CreateCheckoutSession(ctx context.Context, req model.CheckoutRequest) (string, error) {
	m.mu.Lock()
	m.CheckoutCalls = append(m.CheckoutCalls, req)
	m.mu.Unlock()
	if m.CreateCheckoutSessionFunc != nil {
		return m.CreateCheckoutSessionFunc(ctx, req)
	}
	return "cs_test_1", nil
}

// MockIdentityGateway records magic-link requests and returns SendErr.
type MockIdentityGateway struct {
	mu      sync.Mutex
	SendErr error
	Sends   []string // emails, in order
}

func (m *MockIdentityGateway) Name() string { return "mock" }

func (m *MockIdentityGateway) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	m.mu.Lock()
	m.Sends = append(m.Sends, email)
	m.mu.Unlock()
	return m.SendErr
}
