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
	"github.com/tubeautomator/backend/internal/logging"
	"github.com/tubeautomator/backend/internal/models"
	"github.com/tubeautomator/backend/internal/repositories"
)

// ChannelHandler implements the channel creation gateway. Channel creation is
// a saga: branding, then the external channel, then persistence. A failure at
// any step names that step so support can tell a branding outage from a
// database one.
type ChannelHandler struct {
	Channels      ChannelStore
	Subscriptions SubscriptionStore
	Brand         BrandService
	Platform      VideoPlatform
	Keys          APIKeyStore

	NowFunc func() time.Time
}

type channelRequest struct {
	Action      string `json:"action"`
	UserID      string `json:"userId"`
	Email       string `json:"email"`
	ChannelName string `json:"channelName"`
	Niche       string `json:"niche"`
	// Plan is accepted for wire compatibility but never trusted; entitlement
	// comes from the persisted subscription.
	Plan string `json:"plan"`
}

// Handle dispatches POST /api/v1/youtube-channel.
func (h ChannelHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req channelRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body", CodeBadRequest)
		return
	}

	switch req.Action {
	case "":
		respondError(ctx, w, http.StatusBadRequest, msgActionRequired, CodeBadRequest)
	case "create-channel":
		h.createChannel(ctx, w, req)
	case "get-channel":
		h.getChannel(ctx, w, req)
	default:
		respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, CodeBadRequest)
	}
}

func (h ChannelHandler) createChannel(ctx context.Context, w http.ResponseWriter, req channelRequest) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID is required", CodeBadRequest)
		return
	}

	name := strings.TrimSpace(req.ChannelName)
	if name == "" {
		respondError(ctx, w, http.StatusBadRequest, "Channel name is required", CodeBadRequest)
		return
	}

	// The plan gate runs before any collaborator call so a free-tier request
	// never spends image-generation quota.
	plan, err := h.planFor(ctx, userID)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("load subscription: %w", err))
		return
	}
	if !billing.IsPremium(plan) {
		respondError(ctx, w, http.StatusForbidden, "Premium subscription required", CodeForbidden)
		return
	}

	niche := strings.TrimSpace(req.Niche)

	ctx, span := logging.StartSpan(ctx, "create-channel")
	defer span.End()

	pkg, err := h.Brand.BrandPackage(ctx, name, niche)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError,
			fmt.Sprintf("Channel branding failed: %v", err), CodeInternal)
		return
	}

	external, err := h.Platform.CreateChannel(ctx, name, niche)
	if err != nil {
		respondError(ctx, w, http.StatusInternalServerError,
			fmt.Sprintf("Channel provisioning failed: %v", err), CodeInternal)
		return
	}

	now := h.now()

	// The channel gets its own credential record so per-channel quota can be
	// tracked separately from the user's personal keys. The channel row goes
	// in first: a conflict there must not leave a credential row behind.
	apiKeyRecord := models.APIKeyRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Service:   "youtube",
		Key:       "ta-" + uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	channel := models.Channel{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       name,
		Niche:      niche,
		PlatformID: external.ID,
		LogoURL:    pkg.LogoURL,
		BannerURL:  pkg.BannerURL,
		Palette:    pkg.Palette,
		APIKeyID:   apiKeyRecord.ID,
		CreatedAt:  now,
	}
	if err := h.Channels.Create(ctx, channel); err != nil {
		if errors.Is(err, repositories.ErrConflict) {
			respondError(ctx, w, http.StatusConflict, "A channel already exists for this user", CodeBadRequest)
			return
		}
		respondError(ctx, w, http.StatusInternalServerError,
			fmt.Sprintf("Channel persistence failed: %v", err), CodeInternal)
		return
	}

	if err := h.Keys.Upsert(ctx, apiKeyRecord); err != nil {
		respondError(ctx, w, http.StatusInternalServerError,
			fmt.Sprintf("Channel persistence failed: %v", err), CodeInternal)
		return
	}

	respondSuccess(ctx, w, map[string]any{"channel": channel})
}

func (h ChannelHandler) getChannel(ctx context.Context, w http.ResponseWriter, req channelRequest) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID is required", CodeBadRequest)
		return
	}

	channel, err := h.Channels.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			respondSuccess(ctx, w, map[string]any{"hasChannel": false})
			return
		}
		respondInternal(ctx, w, fmt.Errorf("load channel: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{
		"hasChannel": true,
		"channel":    channel,
	})
}

// planFor reads the persisted subscription. The request's plan field is never
// consulted: entitlement comes from the server-side record only, and users
// without one are free-tier.
func (h ChannelHandler) planFor(ctx context.Context, userID string) (string, error) {
	sub, err := h.Subscriptions.FindByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return billing.PlanFree, nil
		}
		return "", err
	}
	return sub.PlanID, nil
}

func (h ChannelHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
