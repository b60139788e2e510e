// File: internal/usecase/checkout_uc.go
package usecase

import (
	"context"
	"errors"
	"net/url"
	"sync"
	"sync/atomic"

	"github.com/rs/zerolog"

	"notes-saas-billing/internal/domain"
	"notes-saas-billing/internal/domain/model"
	"notes-saas-billing/internal/domain/ports/adapter"
)

// In-app destinations the checkout flow navigates to without touching the
// billing provider.
const (
	signInPath    = "/auth/signin"
	freeTierPath  = "/app/notes"
	profilePath   = "/app/profile"
	alreadyNotice = "You are already subscribed"
	failedNotice  = "Something went wrong"
)

// Compile-time check
var _ CheckoutUseCase = (*checkoutUC)(nil)

type CheckoutUseCase interface {
	// Initiate runs one checkout attempt for the given (possibly absent)
	// identity and plan, and resolves it to exactly one outcome state.
	Initiate(ctx context.Context, user *model.UserIdentity, plan model.Plan) model.CheckoutOutcome
}

type checkoutUC struct {
	gateway adapter.BillingGateway
	log     *zerolog.Logger
}

func NewCheckoutUseCase(gateway adapter.BillingGateway, logger *zerolog.Logger) *checkoutUC {
	return &checkoutUC{gateway: gateway, log: logger}
}

// Initiate evaluates the branches in fixed precedence order: no session,
// free tier, then the provider round-trip. Only the last branch ever sends
// a checkout-session request.
func (u *checkoutUC) Initiate(ctx context.Context, user *model.UserIdentity, plan model.Plan) model.CheckoutOutcome {
	if user == nil || user.ID == "" {
		q := url.Values{"redirect_to": {profilePath}}
		return model.CheckoutOutcome{
			State:     model.CheckoutUnauthenticated,
			SignInURL: signInPath + "?" + q.Encode(),
		}
	}

	if plan.Free() {
		return model.CheckoutOutcome{
			State:       model.CheckoutFreeTierSelected,
			RedirectURL: freeTierPath,
		}
	}

	req := model.CheckoutRequest{
		PriceID:   plan.PriceID,
		ProductID: plan.ProductID,
		UserID:    user.ID,
		Email:     user.Email,
	}

	sessionID, err := u.gateway.CreateCheckoutSession(ctx, req)
	switch {
	case err == nil:
		return model.CheckoutOutcome{
			State:     model.CheckoutAwaitingRedirect,
			SessionID: sessionID,
		}
	case errors.Is(err, domain.ErrAlreadySubscribed):
		return model.CheckoutOutcome{
			State:       model.CheckoutAlreadySubscribed,
			RedirectURL: profilePath,
			Notice:      alreadyNotice,
		}
	default:
		u.log.Error().Err(err).Str("user_id", user.ID).Str("price_id", plan.PriceID).Msg("checkout: session creation failed")
		return model.CheckoutOutcome{
			State:  model.CheckoutFailed,
			Notice: failedNotice,
		}
	}
}

// CheckoutMachine guards one checkout surface (one buy button) with a busy
// flag so rapid repeated triggers cannot create duplicate sessions. The
// flag is the only mutable state shared between attempts.
type CheckoutMachine struct {
	uc   CheckoutUseCase
	busy atomic.Bool
}

func NewCheckoutMachine(uc CheckoutUseCase) *CheckoutMachine {
	return &CheckoutMachine{uc: uc}
}

// Busy reports whether an attempt is in flight or a redirect is pending.
func (m *CheckoutMachine) Busy() bool { return m.busy.Load() }

// Initiate runs one attempt unless one is already active. AwaitingRedirect
// is terminal: navigation leaves the flow, so the flag stays held and any
// further trigger on this machine is ignored.
func (m *CheckoutMachine) Initiate(ctx context.Context, user *model.UserIdentity, plan model.Plan) (model.CheckoutOutcome, error) {
	if !m.busy.CompareAndSwap(false, true) {
		return model.CheckoutOutcome{}, domain.ErrCheckoutInFlight
	}

	out := m.uc.Initiate(ctx, user, plan)
	if out.State != model.CheckoutAwaitingRedirect {
		m.busy.Store(false)
	}
	return out, nil
}

// CheckoutRegistry hands each signed-in principal its own machine, so one
// user's in-flight attempt never blocks anyone else's. An entry only lives
// for the duration of one attempt: delivering the outcome ends the surface
// the machine was guarding, so the next request gets a fresh machine.
type CheckoutRegistry struct {
	uc       CheckoutUseCase
	mu       sync.Mutex
	machines map[string]*CheckoutMachine
}

func NewCheckoutRegistry(uc CheckoutUseCase) *CheckoutRegistry {
	return &CheckoutRegistry{uc: uc, machines: make(map[string]*CheckoutMachine)}
}

func (r *CheckoutRegistry) Initiate(ctx context.Context, user *model.UserIdentity, plan model.Plan) (model.CheckoutOutcome, error) {
	if user == nil || user.ID == "" {
		// Resolves locally to the sign-in branch; nothing to deduplicate.
		return r.uc.Initiate(ctx, user, plan), nil
	}

	r.mu.Lock()
	m, ok := r.machines[user.ID]
	if !ok {
		m = NewCheckoutMachine(r.uc)
		r.machines[user.ID] = m
	}
	r.mu.Unlock()

	out, err := m.Initiate(ctx, user, plan)
	if err == nil {
		r.mu.Lock()
		delete(r.machines, user.ID)
		r.mu.Unlock()
	}
	return out, err
}
