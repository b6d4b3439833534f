package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/tubeautomator/backend/internal/branding"
)

// BrandHandler implements the branding asset gateway.
type BrandHandler struct {
	Brand BrandService
}

type brandRequest struct {
	Action string `json:"action"`
	Name   string `json:"name"`
	Title  string `json:"title"`
	Niche  string `json:"niche"`
	Style  string `json:"style"`
}

// Handle dispatches POST /api/v1/brand.
func (h BrandHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req brandRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body", CodeBadRequest)
		return
	}

	switch req.Action {
	case "":
		respondError(ctx, w, http.StatusBadRequest, msgActionRequired, CodeBadRequest)
	case "generate-logo":
		h.image(ctx, w, req, h.Brand.Logo, "logoUrl", req.Name, "Name is required")
	case "generate-banner":
		h.image(ctx, w, req, h.Brand.Banner, "bannerUrl", req.Name, "Name is required")
	case "generate-thumbnail":
		h.image(ctx, w, req, h.Brand.Thumbnail, "thumbnailUrl", req.Title, "Title is required")
	case "generate-brand-package":
		h.brandPackage(ctx, w, req)
	default:
		respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, CodeBadRequest)
	}
}

type imageFunc func(ctx context.Context, subject, niche, style string) (string, error)

func (h BrandHandler) image(ctx context.Context, w http.ResponseWriter, req brandRequest, generate imageFunc, field, subject, missing string) {
	subject = strings.TrimSpace(subject)
	if subject == "" {
		respondError(ctx, w, http.StatusBadRequest, missing, CodeBadRequest)
		return
	}

	url, err := generate(ctx, subject, req.Niche, req.Style)
	if err != nil {
		if errors.Is(err, branding.ErrNotConfigured) {
			respondError(ctx, w, http.StatusBadRequest, "Image generation is not configured", CodeNotConfigured)
			return
		}
		respondInternal(ctx, w, fmt.Errorf("generate image: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{field: url})
}

func (h BrandHandler) brandPackage(ctx context.Context, w http.ResponseWriter, req brandRequest) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		respondError(ctx, w, http.StatusBadRequest, "Name is required", CodeBadRequest)
		return
	}

	pkg, err := h.Brand.BrandPackage(ctx, name, req.Niche)
	if err != nil {
		if errors.Is(err, branding.ErrNotConfigured) {
			respondError(ctx, w, http.StatusBadRequest, "Image generation is not configured", CodeNotConfigured)
			return
		}
		respondInternal(ctx, w, fmt.Errorf("generate brand package: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"brandPackage": pkg})
}
