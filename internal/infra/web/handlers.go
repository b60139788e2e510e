package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"

	"notes-saas-billing/internal/domain"
	"notes-saas-billing/internal/domain/model"
	"notes-saas-billing/internal/infra/logging"
	"notes-saas-billing/internal/infra/metrics"
)

type refundRequest struct {
	SubscriptionID string `json:"subscriptionId"`
}

func (s *Server) handleRefund(w http.ResponseWriter, r *http.Request) {
	user, ok := s.sessions.CurrentUser(r)
	if !ok || user.ID == "" {
		// Client errors on this route are plain-text reasons; only the 500
		// carries the JSON envelope.
		http.Error(w, "User ID is required", http.StatusBadRequest)
		return
	}

	var req refundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	ctx := logging.WithUserID(r.Context(), user.ID)
	res, err := s.refundUC.Refund(ctx, req.SubscriptionID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidArgument):
			metrics.IncRefund("invalid")
			http.Error(w, "Subscription ID is required", http.StatusBadRequest)
		case errors.Is(err, domain.ErrSubscriptionNotFound),
			errors.Is(err, domain.ErrInvoiceNotFound),
			errors.Is(err, domain.ErrPaymentIntentNotFound):
			metrics.IncRefund("not_found")
			http.Error(w, "Payment for subscription not found", http.StatusBadRequest)
		default:
			metrics.IncRefund("failed")
			logging.With(ctx, s.log).Error().Err(err).Msg("refund failed")
			writeError(w, http.StatusInternalServerError, "Failed to process refund")
		}
		return
	}

	metrics.IncRefund("succeeded")
	writeJSON(w, http.StatusOK, struct {
		Refund model.RefundResult `json:"refund"`
	}{Refund: res})
}

func (s *Server) handleCheckout(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var body struct {
		PriceID   string `json:"priceId"`
		ProductID string `json:"productId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	plan := model.Plan{PriceID: body.PriceID, ProductID: body.ProductID}

	var user *model.UserIdentity
	if u, ok := s.sessions.CurrentUser(r); ok {
		user = &u
		ctx = logging.WithUserID(ctx, u.ID)
	}

	out, err := s.checkout.Initiate(ctx, user, plan)
	if err != nil {
		if errors.Is(err, domain.ErrCheckoutInFlight) {
			writeError(w, http.StatusConflict, "A checkout is already in progress")
			return
		}
		logging.With(ctx, s.log).Error().Err(err).Msg("checkout failed")
		writeError(w, http.StatusInternalServerError, "Failed to start checkout")
		return
	}

	metrics.IncCheckout(string(out.State))
	writeJSON(w, checkoutStatus(out.State), out)
}

func checkoutStatus(state model.CheckoutState) int {
	switch state {
	case model.CheckoutUnauthenticated:
		return http.StatusUnauthorized
	case model.CheckoutAlreadySubscribed:
		return http.StatusBadRequest
	case model.CheckoutFailed:
		return http.StatusInternalServerError
	default:
		return http.StatusOK
	}
}

func (s *Server) handleSignIn(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid form body")
		return
	}
	email := r.PostFormValue("email")

	state := s.signInUC.Submit(r.Context(), email)
	metrics.IncSignIn(string(state.Kind))
	writeJSON(w, http.StatusOK, state)
}

func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	tokenID := r.URL.Query().Get("token")

	tok, err := s.verifier.Verify(ctx, tokenID)
	if err != nil {
		logging.With(ctx, s.log).Warn().Err(err).Msg("magic link verification failed")
		http.Redirect(w, r, "/auth/signin?error=invalid_link", http.StatusSeeOther)
		return
	}

	user := model.UserIdentity{
		ID:    uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+tok.Email)).String(),
		Email: tok.Email,
	}
	if _, err := s.sessions.Issue(w, user); err != nil {
		logging.With(ctx, s.log).Error().Err(err).Msg("session mint failed")
		writeError(w, http.StatusInternalServerError, "Failed to sign in")
		return
	}
	logging.With(ctx, s.log).Info().
		Str("email", logging.Redact(tok.Email, false)).
		Str("user_id", user.ID).
		Msg("magic link verified")

	dest := tok.RedirectTo
	if dest == "" {
		dest = "/app"
	}
	http.Redirect(w, r, dest, http.StatusSeeOther)
}

func (s *Server) handleSignOut(w http.ResponseWriter, r *http.Request) {
	s.sessions.Clear(w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, struct {
		Message string `json:"message"`
	}{Message: msg})
}
