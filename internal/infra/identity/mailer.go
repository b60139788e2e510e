// File: internal/infra/identity/mailer.go
package identity

import (
	"context"
	"fmt"

	"github.com/mrz1836/postmark"
	"github.com/rs/zerolog"

	"notes-saas-billing/internal/config"
)

// Mailer delivers a ready-made sign-in link to an address.
type Mailer interface {
	SendMagicLinkEmail(ctx context.Context, to, link string) error
}

var _ Mailer = (*PostmarkMailer)(nil)

// PostmarkMailer sends magic-link mail through Postmark's transactional API.
type PostmarkMailer struct {
	client *postmark.Client
	sender string
}

func NewPostmarkMailer(cfg config.PostmarkConfig) (*PostmarkMailer, error) {
	if cfg.ServerToken == "" {
		return nil, fmt.Errorf("postmark: server token is required")
	}
	if cfg.SenderEmail == "" {
		return nil, fmt.Errorf("postmark: sender email is required")
	}
	return &PostmarkMailer{
		client: postmark.NewClient(cfg.ServerToken, cfg.AccountToken),
		sender: cfg.SenderEmail,
	}, nil
}

func (m *PostmarkMailer) SendMagicLinkEmail(ctx context.Context, to, link string) error {
	resp, err := m.client.SendEmail(ctx, postmark.Email{
		From:     m.sender,
		To:       to,
		Subject:  "Sign in to Notes",
		Tag:      "magic-link",
		TextBody: fmt.Sprintf("Use this link to sign in: %s\n\nThe link is valid once and expires shortly.", link),
		HTMLBody: fmt.Sprintf(`<p>Use this link to sign in:</p><p><a href="%s">Sign in</a></p><p>The link is valid once and expires shortly.</p>`, link),
	})
	if err != nil {
		return err
	}
	if resp.ErrorCode > 0 {
		return fmt.Errorf("postmark: error %d: %s", resp.ErrorCode, resp.Message)
	}
	return nil
}

var _ Mailer = (*DevMailer)(nil)

// DevMailer logs the link instead of sending mail. Dev mode only.
type DevMailer struct {
	log *zerolog.Logger
}

func NewDevMailer(logger *zerolog.Logger) *DevMailer {
	return &DevMailer{log: logger}
}

func (m *DevMailer) SendMagicLinkEmail(ctx context.Context, to, link string) error {
	m.log.Info().Str("to", to).Str("link", link).Msg("dev mailer: magic link")
	return nil
}
