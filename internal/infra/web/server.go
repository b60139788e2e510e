package web

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"notes-saas-billing/internal/config"
	"notes-saas-billing/internal/domain/ports/repository"
	"notes-saas-billing/internal/infra/logging"
	"notes-saas-billing/internal/usecase"
)

// MagicLinkVerifier consumes a pending sign-in token exactly once.
type MagicLinkVerifier interface {
	Verify(ctx context.Context, tokenID string) (*repository.MagicLinkToken, error)
}

type Server struct {
	cfg      config.ServerConfig
	refundUC usecase.RefundUseCase
	checkout *usecase.CheckoutRegistry
	signInUC usecase.SignInUseCase
	verifier MagicLinkVerifier
	sessions *SessionManager
	server   *http.Server
	log      *zerolog.Logger
}

func NewServer(
	cfg config.ServerConfig,
	refundUC usecase.RefundUseCase,
	checkout *usecase.CheckoutRegistry,
	signInUC usecase.SignInUseCase,
	verifier MagicLinkVerifier,
	sessions *SessionManager,
	logger *zerolog.Logger,
) *Server {
	return &Server{
		cfg:      cfg,
		refundUC: refundUC,
		checkout: checkout,
		signInUC: signInUC,
		verifier: verifier,
		sessions: sessions,
		log:      logger,
	}
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.traceMiddleware)

	r.Route("/api", func(r chi.Router) {
		r.Post("/refund", s.handleRefund)
		r.Post("/checkout", s.handleCheckout)
	})

	r.Route("/auth", func(r chi.Router) {
		r.Post("/signin", s.handleSignIn)
		r.Get("/verify", s.handleVerify)
		r.Post("/signout", s.handleSignOut)
	})

	r.Get("/health", s.handleHealth)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	return r
}

func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	s.log.Info().Int("port", s.cfg.Port).Msg("HTTP server listening")
	return s.server.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.server == nil {
		return nil
	}
	return s.server.Shutdown(ctx)
}

// traceMiddleware stamps every request with a trace id so log lines
// from one request can be correlated.
func (s *Server) traceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		traceID := r.Header.Get("X-Request-Id")
		if traceID == "" {
			traceID = uuid.NewString()
		}
		ctx := logging.WithTraceID(r.Context(), traceID)
		w.Header().Set("X-Request-Id", traceID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	fmt.Fprint(w, "OK")
}
