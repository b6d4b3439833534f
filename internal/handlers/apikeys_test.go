package handlers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/tubeautomator/backend/internal/platform"
)

func newAPIKeyHandler() APIKeyHandler {
	return APIKeyHandler{
		Keys:     newFakeAPIKeyStore(),
		Platform: platform.MockPlatform{},
	}
}

func TestAPIKeyHandlerMissingAction(t *testing.T) {
	handler := newAPIKeyHandler()

	rec := postJSON(t, handler.Handle, "/api/v1/api-keys", map[string]any{"userId": "u1"})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
	envelope := decodeEnvelope(t, rec)
	if msg, _ := envelope["error"].(string); !strings.Contains(msg, "Action is required") {
		t.Fatalf("expected missing-action error, got %q", msg)
	}
}

func TestAPIKeyHandlerValidateKey(t *testing.T) {
	handler := newAPIKeyHandler()

	cases := []struct {
		name    string
		apiKey  string
		isValid bool
	}{
		{name: "well-formed key", apiKey: "AIzaSyA1234567890abcdefghijklmnop", isValid: true},
		{name: "malformed key", apiKey: "not-a-key", isValid: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := postJSON(t, handler.Handle, "/api/v1/api-keys", map[string]any{
				"action": "validate-key",
				"apiKey": tc.apiKey,
			})

			if rec.Code != http.StatusOK {
				t.Fatalf("expected status %d got %d: %s", http.StatusOK, rec.Code, rec.Body.String())
			}
			envelope := decodeEnvelope(t, rec)
			if envelope["isValid"] != tc.isValid {
				t.Fatalf("expected isValid=%v, got %v", tc.isValid, envelope["isValid"])
			}
		})
	}
}

func TestAPIKeyHandlerSaveAndStatus(t *testing.T) {
	handler := newAPIKeyHandler()

	save := postJSON(t, handler.Handle, "/api/v1/api-keys", map[string]any{
		"action":  "save",
		"userId":  "user-1",
		"service": "openai",
		"apiKey":  "sk-something",
	})
	if save.Code != http.StatusOK {
		t.Fatalf("save: status %d: %s", save.Code, save.Body.String())
	}

	rec := postJSON(t, handler.Handle, "/api/v1/api-keys", map[string]any{
		"action": "get-key-status",
		"userId": "user-1",
	})

	envelope := decodeEnvelope(t, rec)
	status, ok := envelope["keyStatus"].(map[string]any)
	if !ok {
		t.Fatalf("expected keyStatus, got %v", envelope["keyStatus"])
	}
	if status["openai"] != true {
		t.Fatalf("expected openai configured, got %v", status["openai"])
	}
	if status["elevenlabs"] != false {
		t.Fatalf("expected elevenlabs unconfigured, got %v", status["elevenlabs"])
	}

	// Key material must never appear in the status payload.
	if strings.Contains(rec.Body.String(), "sk-something") {
		t.Fatal("key material leaked into status response")
	}
}

func TestAPIKeyHandlerSaveRejectsUnknownService(t *testing.T) {
	handler := newAPIKeyHandler()

	rec := postJSON(t, handler.Handle, "/api/v1/api-keys", map[string]any{
		"action":  "save",
		"userId":  "user-1",
		"service": "fax-machine",
		"apiKey":  "abc",
	})

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected status %d got %d", http.StatusBadRequest, rec.Code)
	}
}
