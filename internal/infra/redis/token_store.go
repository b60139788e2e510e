package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"

	"notes-saas-billing/internal/domain"
	"notes-saas-billing/internal/domain/ports/repository"
)

var _ repository.MagicLinkTokenRepository = (*TokenStore)(nil)

// TokenStore keeps pending magic-link tokens in Redis. Tokens expire with
// the key TTL and are deleted on first consume, which is what enforces
// single use.
type TokenStore struct {
	client RedisClient
}

func NewTokenStore(client RedisClient) *TokenStore {
	return &TokenStore{client: client}
}

func (s *TokenStore) tokenKey(id string) string {
	return fmt.Sprintf("magic_link:%s", id)
}

func (s *TokenStore) Store(ctx context.Context, tok *repository.MagicLinkToken, ttl time.Duration) error {
	data, err := json.Marshal(tok)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, s.tokenKey(tok.ID), data, ttl)
}

func (s *TokenStore) Consume(ctx context.Context, id string) (*repository.MagicLinkToken, error) {
	// GETDEL makes fetch+invalidate one atomic step, so two racing clicks
	// on the same link cannot both succeed.
	data, err := s.client.GetDel(ctx, s.tokenKey(id))
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return nil, domain.ErrTokenInvalid
		}
		return nil, err
	}

	var tok repository.MagicLinkToken
	if err := json.Unmarshal([]byte(data), &tok); err != nil {
		return nil, err
	}
	return &tok, nil
}
