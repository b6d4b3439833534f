package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/tubeautomator/backend/internal/logging"
)

// Error codes carried in the error envelope.
const (
	CodeBadRequest    = "BAD_REQUEST"
	CodeUnauthorized  = "UNAUTHORIZED"
	CodeForbidden     = "FORBIDDEN"
	CodeNotConfigured = "NOT_CONFIGURED"
	CodeParseError    = "PARSE_ERROR"
	CodeInternal      = "INTERNAL_SERVER_ERROR"
)

// Messages shared by every gateway's dispatch step.
const (
	msgActionRequired = "Action is required"
	msgInvalidAction  = "Invalid action"
)

func respondJSON(ctx context.Context, w http.ResponseWriter, status int, payload map[string]any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(payload); err != nil {
		logging.FromContext(ctx).Error("encode response body", "status", status, "error", err)
		return
	}

	logger := logging.FromContext(ctx)
	switch {
	case status >= http.StatusInternalServerError:
		logger.Error("request failed", "status", status, "response", payload)
	case status >= http.StatusBadRequest:
		logger.Warn("request returned client error", "status", status, "response", payload)
	}
}

// respondSuccess writes the success envelope with the operation-specific fields.
func respondSuccess(ctx context.Context, w http.ResponseWriter, fields map[string]any) {
	payload := map[string]any{"success": true}
	for k, v := range fields {
		payload[k] = v
	}
	respondJSON(ctx, w, http.StatusOK, payload)
}

// respondError writes the error envelope. The success boolean is authoritative
// for clients; the status code mirrors it for conventional tooling.
func respondError(ctx context.Context, w http.ResponseWriter, status int, message, code string) {
	payload := map[string]any{
		"success": false,
		"error":   message,
	}
	if code != "" {
		payload["code"] = code
	}
	respondJSON(ctx, w, status, payload)
}

// respondInternal hides the cause behind a generic envelope and logs it for operators.
func respondInternal(ctx context.Context, w http.ResponseWriter, err error) {
	logging.FromContext(ctx).Error("internal error", "error", err)
	respondError(ctx, w, http.StatusInternalServerError, "An unexpected error occurred", CodeInternal)
}
