package billing

import (
	"context"
	"fmt"

	stripe "github.com/stripe/stripe-go/v76"
	stripeclient "github.com/stripe/stripe-go/v76/client"
)

// StripeBiller creates checkout sessions through the Stripe API.
type StripeBiller struct {
	api        *stripeclient.API
	configured bool
}

// NewStripeBiller constructs a biller with its own Stripe client so no global
// key state is shared with other components.
func NewStripeBiller(secretKey string) *StripeBiller {
	api := &stripeclient.API{}
	api.Init(secretKey, nil)
	return &StripeBiller{api: api, configured: secretKey != ""}
}

// CreateCheckout creates a subscription-mode checkout session for the plan and
// returns the hosted checkout URL.
func (b *StripeBiller) CreateCheckout(ctx context.Context, req CheckoutRequest) (string, error) {
	if !b.configured {
		return "", ErrNotConfigured
	}

	plan, ok := PlanByID(req.PlanID)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPlan, req.PlanID)
	}

	params := &stripe.CheckoutSessionParams{
		Mode:              stripe.String(string(stripe.CheckoutSessionModeSubscription)),
		CustomerEmail:     stripe.String(req.Email),
		SuccessURL:        stripe.String(req.SuccessURL),
		CancelURL:         stripe.String(req.CancelURL),
		ClientReferenceID: stripe.String(req.UserID),
		LineItems: []*stripe.CheckoutSessionLineItemParams{
			{
				Quantity: stripe.Int64(1),
				PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
					Currency:   stripe.String("usd"),
					UnitAmount: stripe.Int64(plan.PriceCents),
					Recurring: &stripe.CheckoutSessionLineItemPriceDataRecurringParams{
						Interval: stripe.String("month"),
					},
					ProductData: &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
						Name: stripe.String(fmt.Sprintf("TubeAutomator %s", plan.Name)),
					},
				},
			},
		},
	}
	params.Context = ctx

	if req.TrialDays > 0 {
		params.SubscriptionData = &stripe.CheckoutSessionSubscriptionDataParams{
			TrialPeriodDays: stripe.Int64(int64(req.TrialDays)),
		}
	}

	session, err := b.api.CheckoutSessions.New(params)
	if err != nil {
		return "", fmt.Errorf("create checkout session: %w", err)
	}

	return session.URL, nil
}
