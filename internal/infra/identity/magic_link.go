// File: internal/infra/identity/magic_link.go
package identity

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"notes-saas-billing/internal/domain/ports/adapter"
	"notes-saas-billing/internal/domain/ports/repository"
	"notes-saas-billing/internal/infra/logging"
	red "notes-saas-billing/internal/infra/redis"
)

// LoginLimiter caps how often one address may request a link.
type LoginLimiter interface {
	Allow(ctx context.Context, key string, limit int, window time.Duration) (bool, error)
}

var _ adapter.IdentityGateway = (*MagicLinkService)(nil)

// MagicLinkService is the passwordless identity provider: it mints a
// single-use token, stores it with a TTL and mails the sign-in link.
// Whether the mail actually arrives is out of its hands.
type MagicLinkService struct {
	tokens  repository.MagicLinkTokenRepository
	limiter LoginLimiter
	mailer  Mailer
	baseURL string
	ttl     time.Duration
	limit   int
	window  time.Duration
	log     *zerolog.Logger
}

func NewMagicLinkService(
	tokens repository.MagicLinkTokenRepository,
	limiter LoginLimiter,
	mailer Mailer,
	baseURL string,
	ttl time.Duration,
	limit int,
	window time.Duration,
	logger *zerolog.Logger,
) *MagicLinkService {
	return &MagicLinkService{
		tokens:  tokens,
		limiter: limiter,
		mailer:  mailer,
		baseURL: strings.TrimRight(baseURL, "/"),
		ttl:     ttl,
		limit:   limit,
		window:  window,
		log:     logger,
	}
}

func (s *MagicLinkService) Name() string { return "magic-link" }

func (s *MagicLinkService) SendMagicLink(ctx context.Context, email, redirectTo string) error {
	allowed, err := s.limiter.Allow(ctx, red.MagicLinkKey(email), s.limit, s.window)
	if err != nil {
		return fmt.Errorf("magic link: rate limiter: %w", err)
	}
	if !allowed {
		return &adapter.IdentityError{Code: adapter.IdentityErrRateLimited}
	}

	tok := &repository.MagicLinkToken{
		ID:         ulid.Make().String(),
		Email:      email,
		RedirectTo: redirectTo,
		IssuedAt:   time.Now(),
	}
	if err := s.tokens.Store(ctx, tok, s.ttl); err != nil {
		return fmt.Errorf("magic link: store token: %w", err)
	}

	link := fmt.Sprintf("%s/auth/verify?token=%s", s.baseURL, tok.ID)
	if err := s.mailer.SendMagicLinkEmail(ctx, email, link); err != nil {
		s.log.Warn().Err(err).Str("email", logging.Redact(email, false)).Msg("magic link: mail delivery failed")
		return &adapter.IdentityError{Code: adapter.IdentityErrDeliveryFailed, Cause: err}
	}
	return nil
}

// Verify consumes a token exactly once and returns what it was issued for.
func (s *MagicLinkService) Verify(ctx context.Context, tokenID string) (*repository.MagicLinkToken, error) {
	return s.tokens.Consume(ctx, tokenID)
}
