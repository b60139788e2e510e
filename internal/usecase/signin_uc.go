// File: internal/usecase/signin_uc.go
package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"notes-saas-billing/internal/domain/model"
	"notes-saas-billing/internal/domain/ports/adapter"
)

// User-facing copy for the sign-in form. The controller never leaks
// provider detail past these messages.
const (
	msgInvalidEmail     = "Please enter a valid email address to receive a login link."
	msgAccountNotLinked = "Please sign in using the same provider you used previously."
	msgClassifiedRetry  = "We couldn't sign you in. Please try again."
	msgUnclassified     = "Something went wrong. Please try again in a moment."
	msgCheckInbox       = "Check your inbox for a magic link to continue."
)

// Post-verification landing page for freshly signed-in users.
const signInRedirectTo = "/app"

// Compile-time check
var _ SignInUseCase = (*signInUC)(nil)

type SignInUseCase interface {
	// Submit runs one sign-in form submission. It always returns a terminal
	// SignInState and never an error: every provider failure is caught and
	// classified here.
	Submit(ctx context.Context, email string) model.SignInState
}

type signInUC struct {
	identity adapter.IdentityGateway
	log      *zerolog.Logger
}

func NewSignInUseCase(identity adapter.IdentityGateway, logger *zerolog.Logger) *signInUC {
	return &signInUC{identity: identity, log: logger}
}

func (u *signInUC) Submit(ctx context.Context, email string) model.SignInState {
	email = strings.TrimSpace(email)
	if email == "" {
		// Short-circuit: the provider is never contacted for blank input.
		return model.SignInErrorState(msgInvalidEmail)
	}

	err := u.identity.SendMagicLink(ctx, email, signInRedirectTo)
	if err == nil {
		// Success only means the provider accepted the request; whether the
		// mail actually arrives is not knowable here.
		return model.SignInSuccessState(msgCheckInbox)
	}

	var identityErr *adapter.IdentityError
	if errors.As(err, &identityErr) {
		u.log.Warn().Str("code", string(identityErr.Code)).Msg("sign-in: provider rejected request")
		switch identityErr.Code {
		case adapter.IdentityErrAccountNotLinked:
			return model.SignInErrorState(msgAccountNotLinked)
		case adapter.IdentityErrDeliveryFailed, adapter.IdentityErrRateLimited:
			return model.SignInErrorState(msgClassifiedRetry)
		default:
			return model.SignInErrorState(msgClassifiedRetry)
		}
	}

	u.log.Error().Err(err).Msg("sign-in: unclassified failure")
	return model.SignInErrorState(msgUnclassified)
}
