//go:build !integration

package web

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"notes-saas-billing/internal/config"
	"notes-saas-billing/internal/domain/model"
	"notes-saas-billing/internal/domain/ports/repository"
	"notes-saas-billing/internal/usecase"
)

// ===== Use case mocks =====

type MockRefundUC struct {
	RefundFunc func(ctx context.Context, subscriptionID string) (model.RefundResult, error)
	Calls      []string
}

func (m *MockRefundUC) Refund(ctx context.Context, subscriptionID string) (model.RefundResult, error) {
	m.Calls = append(m.Calls, subscriptionID)
	if m.RefundFunc != nil {
		return m.RefundFunc(ctx, subscriptionID)
	}
	return model.RefundResult{ID: "re_1", Status: "succeeded"}, nil
}

type MockCheckoutUC struct {
	InitiateFunc func(ctx context.Context, user *model.UserIdentity, plan model.Plan) model.CheckoutOutcome
}

func (m *MockCheckoutUC) Initiate(ctx context.Context, user *model.UserIdentity, plan model.Plan) model.CheckoutOutcome {
	if m.InitiateFunc != nil {
		return m.InitiateFunc(ctx, user, plan)
	}
	return model.CheckoutOutcome{State: model.CheckoutAwaitingRedirect, SessionID: "cs_1"}
}

type MockSignInUC struct {
	SubmitFunc func(ctx context.Context, email string) model.SignInState
	Emails     []string
}

func (m *MockSignInUC) Submit(ctx context.Context, email string) model.SignInState {
	m.Emails = append(m.Emails, email)
	if m.SubmitFunc != nil {
		return m.SubmitFunc(ctx, email)
	}
	return model.SignInSuccessState("Check your inbox for a magic link to continue.")
}

type MockVerifier struct {
	VerifyFunc func(ctx context.Context, tokenID string) (*repository.MagicLinkToken, error)
	Tokens     []string
}

func (m *MockVerifier) Verify(ctx context.Context, tokenID string) (*repository.MagicLinkToken, error) {
	m.Tokens = append(m.Tokens, tokenID)
	if m.VerifyFunc != nil {
		return m.VerifyFunc(ctx, tokenID)
	}
	return &repository.MagicLinkToken{ID: tokenID, Email: "u@example.com", RedirectTo: "/app"}, nil
}

// ===== Test server plumbing =====

type testServer struct {
	srv      *Server
	refund   *MockRefundUC
	checkout *MockCheckoutUC
	signIn   *MockSignInUC
	verifier *MockVerifier
	sessions *SessionManager
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	return newTestServerTo(t, io.Discard)
}

// newTestServerTo routes the server's log output to out, for tests that
// assert on what gets logged.
func newTestServerTo(t *testing.T, out io.Writer) *testServer {
	t.Helper()

	logger := zerolog.New(out)
	sessions := NewSessionManager(config.SessionConfig{
		Secret: "test-secret",
		TTL:    time.Hour,
	})

	ts := &testServer{
		refund:   &MockRefundUC{},
		checkout: &MockCheckoutUC{},
		signIn:   &MockSignInUC{},
		verifier: &MockVerifier{},
		sessions: sessions,
	}
	ts.srv = NewServer(
		config.ServerConfig{Port: 0},
		ts.refund,
		usecase.NewCheckoutRegistry(ts.checkout),
		ts.signIn,
		ts.verifier,
		sessions,
		&logger,
	)
	return ts
}

func (ts *testServer) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	ts.srv.routes().ServeHTTP(rec, req)
	return rec
}

// signedAs attaches a valid session for the given user to the request.
func (ts *testServer) signedAs(t *testing.T, req *http.Request, user model.UserIdentity) {
	t.Helper()
	rec := httptest.NewRecorder()
	token, err := ts.sessions.Issue(rec, user)
	if err != nil {
		t.Fatalf("failed to mint session: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)
}
