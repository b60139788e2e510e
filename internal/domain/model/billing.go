// File: internal/domain/model/billing.go
package model

// The billing provider owns subscriptions, invoices, payment intents and
// refunds. We only keep transient views of them while resolving a refund;
// nothing below is persisted locally.

// Subscription is the provider's subscription object, reduced to what the
// refund chain needs. LatestInvoice is nil for subscriptions that never
// completed a billing cycle; callers treat that as a normal miss.
type Subscription struct {
	ID            string
	LatestInvoice *InvoiceRef
}

// InvoiceRef is the provider's expandable invoice reference: either a bare
// id or a full embedded invoice, depending on how the parent object was
// fetched. Exactly one of the two representations is meaningful.
type InvoiceRef struct {
	ID      string
	Invoice *Invoice // non-nil when the provider embedded the full object
}

// Resolved reports whether the reference already carries the full invoice,
// so no dereferencing fetch is needed.
func (r *InvoiceRef) Resolved() bool { return r != nil && r.Invoice != nil }

// InvoiceID normalizes both representations to the bare id.
func (r *InvoiceRef) InvoiceID() string {
	if r == nil {
		return ""
	}
	if r.Invoice != nil && r.Invoice.ID != "" {
		return r.Invoice.ID
	}
	return r.ID
}

// Invoice is the provider's invoice object, reduced to the refund target
// pointer.
type Invoice struct {
	ID            string
	PaymentIntent *PaymentIntentRef
}

// PaymentIntentRef mirrors the provider's payment_intent field, which shows
// up either as a bare id string or as an embedded object. The refund chain
// only ever needs the id, so IntentID is the single normalization point.
type PaymentIntentRef struct {
	ID     string
	Intent *PaymentIntent // non-nil when the provider embedded the object
}

// IntentID normalizes both representations to the bare id.
func (r *PaymentIntentRef) IntentID() string {
	if r == nil {
		return ""
	}
	if r.Intent != nil && r.Intent.ID != "" {
		return r.Intent.ID
	}
	return r.ID
}

// PaymentIntent is the provider's representation of a single attempted
// charge; the unit a refund targets.
type PaymentIntent struct {
	ID     string
	Status string
}

// RefundResult is the provider's refund confirmation, returned to the
// caller verbatim. The caller owns delivery; we do not store it.
type RefundResult struct {
	ID     string `json:"id"`
	Status string `json:"status"`
}
