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

	"github.com/tubeautomator/backend/internal/models"
	"github.com/tubeautomator/backend/internal/platform"
)

// Services for which users may store their own credentials.
var knownServices = []string{"openai", "elevenlabs", "youtube", "stripe", "sendgrid", "s3"}

// APIKeyHandler implements the per-user credential gateway.
type APIKeyHandler struct {
	Keys     APIKeyStore
	Platform VideoPlatform

	NowFunc func() time.Time
}

type apiKeyRequest struct {
	Action  string `json:"action"`
	APIKey  string `json:"apiKey"`
	Service string `json:"service"`
	UserID  string `json:"userId"`
}

// Handle dispatches POST /api/v1/api-keys.
func (h APIKeyHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req apiKeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body", CodeBadRequest)
		return
	}

	switch req.Action {
	case "":
		respondError(ctx, w, http.StatusBadRequest, msgActionRequired, CodeBadRequest)
	case "validate-key":
		h.validateKey(ctx, w, req)
	case "get-key-status":
		h.keyStatus(ctx, w, req)
	case "save":
		h.save(ctx, w, req)
	default:
		respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, CodeBadRequest)
	}
}

// validateKey probes the video platform with the supplied key. A rejected key
// is a success response with isValid=false, not an error.
func (h APIKeyHandler) validateKey(ctx context.Context, w http.ResponseWriter, req apiKeyRequest) {
	apiKey := strings.TrimSpace(req.APIKey)
	if apiKey == "" {
		respondError(ctx, w, http.StatusBadRequest, "API key is required", CodeBadRequest)
		return
	}

	valid, err := h.Platform.ValidateKey(ctx, apiKey)
	if err != nil {
		if errors.Is(err, platform.ErrNotConfigured) {
			respondError(ctx, w, http.StatusBadRequest, "Key validation is not configured", CodeNotConfigured)
			return
		}
		respondInternal(ctx, w, fmt.Errorf("validate key: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"isValid": valid})
}

func (h APIKeyHandler) keyStatus(ctx context.Context, w http.ResponseWriter, req apiKeyRequest) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID is required", CodeBadRequest)
		return
	}

	stored, err := h.Keys.StatusForUser(ctx, userID)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("key status: %w", err))
		return
	}

	// Report every known service so the settings page renders a full table.
	status := make(map[string]bool, len(knownServices))
	for _, service := range knownServices {
		status[service] = stored[service]
	}

	respondSuccess(ctx, w, map[string]any{"keyStatus": status})
}

func (h APIKeyHandler) save(ctx context.Context, w http.ResponseWriter, req apiKeyRequest) {
	userID := strings.TrimSpace(req.UserID)
	service := strings.ToLower(strings.TrimSpace(req.Service))
	apiKey := strings.TrimSpace(req.APIKey)

	if userID == "" || service == "" || apiKey == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID, service and API key are required", CodeBadRequest)
		return
	}
	if !knownService(service) {
		respondError(ctx, w, http.StatusBadRequest, fmt.Sprintf("Unknown service %q", service), CodeBadRequest)
		return
	}

	now := h.now()
	if err := h.Keys.Upsert(ctx, models.APIKeyRecord{
		ID:        uuid.NewString(),
		UserID:    userID,
		Service:   service,
		Key:       apiKey,
		CreatedAt: now,
		UpdatedAt: now,
	}); err != nil {
		respondInternal(ctx, w, fmt.Errorf("save key: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"service": service})
}

func knownService(service string) bool {
	for _, s := range knownServices {
		if s == service {
			return true
		}
	}
	return false
}

func (h APIKeyHandler) now() time.Time {
	if h.NowFunc != nil {
		return h.NowFunc()
	}
	return time.Now().UTC()
}
