package billing

import (
	"context"
	"fmt"
)

// MockBiller returns deterministic checkout URLs without contacting any
// payment processor.
type MockBiller struct{}

// CreateCheckout validates the plan and returns a placeholder checkout URL.
func (MockBiller) CreateCheckout(_ context.Context, req CheckoutRequest) (string, error) {
	if _, ok := PlanByID(req.PlanID); !ok {
		return "", fmt.Errorf("%w: %s", ErrUnknownPlan, req.PlanID)
	}
	return fmt.Sprintf("https://checkout.tubeautomator.local/session/%s/%s", req.PlanID, req.UserID), nil
}
