// File: internal/config/config.go
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type RuntimeConfig struct {
	Dev bool
}

type ServerConfig struct {
	Port    int    `yaml:"port"`
	BaseURL string `yaml:"base_url"` // public origin used in magic links, e.g. https://notes.example.com
}

type LogConfig struct {
	Level    string `yaml:"level"`    // trace|debug|info|warn|error
	Format   string `yaml:"format"`   // json|console
	Sampling bool   `yaml:"sampling"` // enable sampling in prod
}

type RedisConfig struct {
	URL      string `yaml:"url"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type StripeConfig struct {
	SecretKey  string `yaml:"secret_key"`
	SuccessURL string `yaml:"success_url"` // where the hosted checkout returns on success
	CancelURL  string `yaml:"cancel_url"`
}

type SessionConfig struct {
	Secret       string        `yaml:"secret"` // HMAC key for session cookies
	CookieDomain string        `yaml:"cookie_domain"`
	Secure       bool          `yaml:"secure"`
	TTL          time.Duration `yaml:"ttl"`
}

type MagicLinkConfig struct {
	TokenTTL       time.Duration `yaml:"token_ttl"`
	RateLimit      int           `yaml:"rate_limit"`       // link requests per address per window
	RateLimitEvery time.Duration `yaml:"rate_limit_every"` // window size
}

type PostmarkConfig struct {
	ServerToken  string `yaml:"server_token"`
	AccountToken string `yaml:"account_token"`
	SenderEmail  string `yaml:"sender_email"`
}

type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Log       LogConfig       `yaml:"log"`
	Redis     RedisConfig     `yaml:"redis"`
	Stripe    StripeConfig    `yaml:"stripe"`
	Session   SessionConfig   `yaml:"session"`
	MagicLink MagicLinkConfig `yaml:"magic_link"`
	Postmark  PostmarkConfig  `yaml:"postmark"`

	Runtime RuntimeConfig `yaml:"-"`
}

func LoadConfig(path string, dev bool) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	// defaults
	if cfg.Server.Port <= 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = fmt.Sprintf("http://localhost:%d", cfg.Server.Port)
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}
	if cfg.Session.TTL <= 0 {
		cfg.Session.TTL = 30 * 24 * time.Hour
	}
	if cfg.MagicLink.TokenTTL <= 0 {
		cfg.MagicLink.TokenTTL = 15 * time.Minute
	}
	if cfg.MagicLink.RateLimit <= 0 {
		cfg.MagicLink.RateLimit = 5
	}
	if cfg.MagicLink.RateLimitEvery <= 0 {
		cfg.MagicLink.RateLimitEvery = time.Hour
	}

	// Minimal validation
	if cfg.Stripe.SecretKey == "" {
		return nil, errors.New("stripe.secret_key is required")
	}
	if cfg.Session.Secret == "" {
		return nil, errors.New("session.secret is required")
	}
	if cfg.Redis.URL == "" {
		return nil, errors.New("redis.url is required")
	}
	if cfg.Postmark.ServerToken == "" && !dev {
		return nil, errors.New("postmark.server_token is required outside dev mode")
	}

	cfg.Runtime.Dev = dev
	return &cfg, nil
}
