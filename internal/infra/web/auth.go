package web

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"notes-saas-billing/internal/config"
	"notes-saas-billing/internal/domain/model"
)

// ===== Session/JWT primitives =====

const sessionCookieName = "notes_session"

type SessionManager struct {
	secret       []byte
	cookieDomain string
	secure       bool
	ttl          time.Duration
}

func NewSessionManager(cfg config.SessionConfig) *SessionManager {
	return &SessionManager{
		secret:       []byte(cfg.Secret),
		cookieDomain: cfg.CookieDomain, // "" is fine if you want host-only cookie
		secure:       cfg.Secure,       // true in prod (TLS)
		ttl:          cfg.TTL,
	}
}

type SessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issue mints a signed session for the user and sets it as a cookie.
func (m *SessionManager) Issue(w http.ResponseWriter, user model.UserIdentity) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			Subject:   user.ID,
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", err
	}

	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    signed,
		Path:     "/",
		Domain:   m.cookieDomain,
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return signed, nil
}

func (m *SessionManager) Clear(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Domain:   m.cookieDomain,
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   m.secure,
		SameSite: http.SameSiteLaxMode,
	})
}

// CurrentUser resolves the caller's identity from the request, if any.
// The session is read fresh on every request, never cached.
func (m *SessionManager) CurrentUser(r *http.Request) (model.UserIdentity, bool) {
	claims, err := m.parseFromRequest(r)
	if err != nil {
		return model.UserIdentity{}, false
	}
	return model.UserIdentity{ID: claims.Subject, Email: claims.Email}, true
}

func (m *SessionManager) parseFromRequest(r *http.Request) (*SessionClaims, error) {
	// Authorization: Bearer <jwt>
	if hdr := r.Header.Get("Authorization"); hdr != "" {
		if strings.HasPrefix(strings.ToLower(hdr), "bearer ") {
			return m.parse(strings.TrimSpace(hdr[7:]))
		}
	}
	// Cookie
	if c, err := r.Cookie(sessionCookieName); err == nil {
		return m.parse(c.Value)
	}
	return nil, errors.New("missing token")
}

func (m *SessionManager) parse(tok string) (*SessionClaims, error) {
	claims := &SessionClaims{}
	tkn, err := jwt.ParseWithClaims(tok, claims, func(t *jwt.Token) (any, error) {
		return m.secret, nil
	})
	if err != nil || !tkn.Valid {
		return nil, errors.New("invalid token")
	}
	return claims, nil
}
