package model

// Plan identifies what the user is buying. An empty PriceID denotes the
// free tier: no checkout session is ever created for it.
type Plan struct {
	PriceID   string
	ProductID string
}

// Free reports whether the plan is the free tier.
func (p Plan) Free() bool { return p.PriceID == "" }

// CheckoutRequest is the payload sent to the billing provider when a new
// checkout session is created. Built fresh per attempt, never persisted.
type CheckoutRequest struct {
	PriceID   string `json:"priceId"`
	ProductID string `json:"productId"`
	UserID    string `json:"userId"`
	Email     string `json:"email"`
}

type CheckoutState string

const (
	CheckoutUnauthenticated   CheckoutState = "unauthenticated"
	CheckoutFreeTierSelected  CheckoutState = "free_tier_selected"
	CheckoutSubmitting        CheckoutState = "submitting"
	CheckoutAwaitingRedirect  CheckoutState = "awaiting_redirect"
	CheckoutAlreadySubscribed CheckoutState = "already_subscribed"
	CheckoutFailed            CheckoutState = "failed"
)

// CheckoutOutcome is what one initiation attempt resolves to. Exactly one
// of SessionID / RedirectURL / SignInURL is meaningful, depending on State.
type CheckoutOutcome struct {
	State       CheckoutState `json:"state"`
	SessionID   string        `json:"sessionId,omitempty"`   // AwaitingRedirect: hand to the provider's redirect
	RedirectURL string        `json:"redirectUrl,omitempty"` // FreeTierSelected / AlreadySubscribed
	SignInURL   string        `json:"signInUrl,omitempty"`   // Unauthenticated: where to go to authenticate
	Notice      string        `json:"notice,omitempty"`      // non-blocking user message, if any
}
