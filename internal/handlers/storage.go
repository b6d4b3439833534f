package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/tubeautomator/backend/internal/storage"
)

// StorageHandler implements the object storage gateway.
type StorageHandler struct {
	Store ObjectStore
}

type storageRequest struct {
	Action   string `json:"action"`
	Key      string `json:"key"`
	UserID   string `json:"userId"`
	FileType string `json:"fileType"`
	Prefix   string `json:"prefix"`
}

// Handle dispatches POST /api/v1/storage.
func (h StorageHandler) Handle(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req storageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(ctx, w, http.StatusBadRequest, "Invalid request body", CodeBadRequest)
		return
	}

	switch req.Action {
	case "":
		respondError(ctx, w, http.StatusBadRequest, msgActionRequired, CodeBadRequest)
	case "get-upload-url":
		h.uploadURL(ctx, w, req)
	case "get-download-url":
		h.downloadURL(ctx, w, req)
	case "delete-file":
		h.deleteFile(ctx, w, req)
	case "list-files":
		h.listFiles(ctx, w, req)
	case "get-storage-usage":
		h.usage(ctx, w, req)
	default:
		respondError(ctx, w, http.StatusBadRequest, msgInvalidAction, CodeBadRequest)
	}
}

func (h StorageHandler) uploadURL(ctx context.Context, w http.ResponseWriter, req storageRequest) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		respondError(ctx, w, http.StatusBadRequest, "Key is required", CodeBadRequest)
		return
	}

	contentType := req.FileType
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	url, err := h.Store.PresignPut(ctx, key, contentType, storage.DefaultSignedURLTTL)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("presign upload: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"url": url, "key": key})
}

func (h StorageHandler) downloadURL(ctx context.Context, w http.ResponseWriter, req storageRequest) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		respondError(ctx, w, http.StatusBadRequest, "Key is required", CodeBadRequest)
		return
	}

	url, err := h.Store.PresignGet(ctx, key, storage.DefaultSignedURLTTL)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("presign download: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"url": url})
}

func (h StorageHandler) deleteFile(ctx context.Context, w http.ResponseWriter, req storageRequest) {
	key := strings.TrimSpace(req.Key)
	if key == "" {
		respondError(ctx, w, http.StatusBadRequest, "Key is required", CodeBadRequest)
		return
	}

	if err := h.Store.Delete(ctx, key); err != nil {
		respondInternal(ctx, w, fmt.Errorf("delete object: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"key": key})
}

func (h StorageHandler) listFiles(ctx context.Context, w http.ResponseWriter, req storageRequest) {
	prefix := req.Prefix
	if prefix == "" && req.UserID != "" {
		prefix = storage.UserPrefix(req.UserID)
	}
	if prefix == "" {
		respondError(ctx, w, http.StatusBadRequest, "Prefix or user ID is required", CodeBadRequest)
		return
	}

	objects, err := h.Store.List(ctx, prefix)
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("list objects: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"objects": objects})
}

func (h StorageHandler) usage(ctx context.Context, w http.ResponseWriter, req storageRequest) {
	userID := strings.TrimSpace(req.UserID)
	if userID == "" {
		respondError(ctx, w, http.StatusBadRequest, "User ID is required", CodeBadRequest)
		return
	}

	objects, err := h.Store.List(ctx, storage.UserPrefix(userID))
	if err != nil {
		respondInternal(ctx, w, fmt.Errorf("list objects for usage: %w", err))
		return
	}

	respondSuccess(ctx, w, map[string]any{"usage": storage.ComputeUsage(objects)})
}
