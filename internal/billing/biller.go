package billing

import (
	"context"
	"errors"
)

var (
	// ErrNotConfigured indicates the payment processor credential is absent.
	ErrNotConfigured = errors.New("payment processor not configured")
	// ErrUnknownPlan indicates the requested plan identifier does not exist.
	ErrUnknownPlan = errors.New("unknown plan")
)

// CheckoutRequest describes a hosted-checkout session to create.
type CheckoutRequest struct {
	UserID     string
	PlanID     string
	Email      string
	SuccessURL string
	CancelURL  string
	TrialDays  int
}

// Biller creates hosted checkout sessions with the payment processor.
type Biller interface {
	CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error)
}
