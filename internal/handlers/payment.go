package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tubeautomator/backend/internal/billing"
	"github.com/tubeautomator/backend/internal/models"
	"github.com/tubeautomator/backend/internal/repositories"
)

const defaultTrialDays = 7

// PaymentHandler implements the billing gateway.
type PaymentHandler struct {
	Subscriptions SubscriptionStore
	Biller        Biller

	NowFunc func() time.Time
}

type paymentRequest struct {
	Action     string `json:"action"`
	UserID     string `json:"userId"`
	PlanID     string `json:"planId"`
	Email      string `json:"email"`
	SuccessURL string `json:"successUrl"`
	CancelURL  string `json:"cancelUrl"`
	TrialDays  int    `json:"trialDays"`
}

// Handle dispatches POST /api/v1/payment.
func (h PaymentHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req paymentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body", CodeBadRequest)
		return
	}

	switch req.Action {
	case "":
		respondError(ctx, w, http.StatusBadRequest, msgActionRequired, CodeBadRequest)
	case "get-plans":
		respondSuccess(ctx, w, map[string]any{"plans": billing.Plans()})
	case "get-subscription":
		h.getSubscription(ctx, w, req)
	case "create-checkout":
		h.createCheckout(ctx, w, req)
	case "start-trial":
		h.startTrial(ctx, w, req)
	case "update-subscription":
		h.updateSubscription(ctx, w, req)
	default:
		respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, CodeBadRequest)
	}
}

// getSubscription reads the persisted record. Users without one are reported
// as free-tier rather than an error so the dashboard renders without a guard.
func (h PaymentHandler) getSubscription(ctx context.Context, w http.ResponseWriter, req paymentRequest) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID is required", CodeBadRequest)
		return
	}

	sub, err := h.Subscriptions.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			now := h.now()
			respondSuccess(ctx, w, map[string]any{"subscription": models.Subscription{
				UserID:    userID,
				PlanID:    billing.PlanFree,
				Status:    models.SubscriptionStatusActive,
				Limits:    billing.LimitsFor(billing.PlanFree),
				PeriodEnd: now.AddDate(0, 1, 0),
				CreatedAt: now,
				UpdatedAt: now,
			}})
			return
		}
		respondInternal(ctx, w, fmt.Errorf("load subscription: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"subscription": sub})
}

func (h PaymentHandler) createCheckout(ctx context.Context, w http.ResponseWriter, req paymentRequest) {
	if strings.TrimSpace(req.UserID) == "" || strings.TrimSpace(req.PlanID) == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID and plan ID are required", CodeBadRequest)
		return
	}
	if _, ok := billing.PlanByID(req.PlanID); !ok {
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Unknown plan %q", req.PlanID), CodeBadRequest)
		return
	}

	checkoutURL, err := h.Biller.CreateCheckout(ctx, billing.CheckoutRequest{
		UserID:     req.UserID,
		PlanID:     req.PlanID,
		Email:      req.Email,
		SuccessURL: req.SuccessURL,
		CancelURL:  req.CancelURL,
	})
	if err != nil {
		if errors.Is(err, billing.ErrNotConfigured) {
			respondError(ctx, w, http.StatusBadRequest, "Payments are not configured", CodeNotConfigured)
			return
		}
		if errors.Is(err, billing.ErrUnknownPlan) {
			respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Unknown plan %q", req.PlanID), CodeBadRequest)
			return
		}
		respondInternal(ctx, w, fmt.Errorf("create checkout: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"checkoutUrl": checkoutURL})
}

func (h PaymentHandler) startTrial(ctx context.Context, w http.ResponseWriter, req paymentRequest) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID is required", CodeBadRequest)
		return
	}

	planID := req.PlanID
	if planID == "" {
		planID = billing.PlanPro
	}
	if _, ok := billing.PlanByID(planID); !ok {
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Unknown plan %q", planID), CodeBadRequest)
		return
	}

	days := req.TrialDays
	if days <= 0 {
		days = defaultTrialDays
	}

	now := h.now()
	sub := models.Subscription{
		ID:        uuid.NewString(),
		UserID:    userID,
		PlanID:    planID,
		Status:    models.SubscriptionStatusTrialing,
		Limits:    billing.LimitsFor(planID),
		PeriodEnd: now.AddDate(0, 0, days),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := h.Subscriptions.Upsert(ctx, sub); err != nil {
		respondInternal(ctx, w, fmt.Errorf("start trial: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"subscription": sub})
}

func (h PaymentHandler) updateSubscription(ctx context.Context, w http.ResponseWriter, req paymentRequest) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" || strings.TrimSpace(req.PlanID) == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID and plan ID are required", CodeBadRequest)
		return
	}
	if _, ok := billing.PlanByID(req.PlanID); !ok {
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Unknown plan %q", req.PlanID), CodeBadRequest)
		return
	}

	now := h.now()
	sub, err := h.Subscriptions.FindByUser(ctx, userID)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			respondInternal(ctx, w, fmt.Errorf("load subscription: %w", err))
			return
		}
		sub = models.Subscription{
			ID:        uuid.NewString(),
			UserID:    userID,
			CreatedAt: now,
		}
	}

	sub.PlanID = req.PlanID
	sub.Status = models.SubscriptionStatusActive
	sub.Limits = billing.LimitsFor(req.PlanID)
	sub.PeriodEnd = now.AddDate(0, 1, 0)
	sub.UpdatedAt = now

	if err := h.Subscriptions.Upsert(ctx, sub); err != nil {
		respondInternal(ctx, w, fmt.Errorf("update subscription: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"subscription": sub})
}

func (h PaymentHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
