package speech

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const defaultBaseURL = "https://api.elevenlabs.io"

// ElevenLabsSynthesizer calls the ElevenLabs text-to-speech HTTP API.
type ElevenLabsSynthesizer struct {
	APIKey  string
	BaseURL string
	Client  *http.Client
	Timeout time.Duration
}

// NewElevenLabsSynthesizer constructs a synthesizer for the hosted ElevenLabs API.
func NewElevenLabsSynthesizer(apiKey string, timeout time.Duration) *ElevenLabsSynthesizer {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &ElevenLabsSynthesizer{
		APIKey:  apiKey,
		BaseURL: defaultBaseURL,
		Client:  &http.Client{},
		Timeout: timeout,
	}
}

type synthesisRequest struct {
	Text          string         `json:"text"`
	ModelID       string         `json:"model_id"`
	VoiceSettings map[string]any `json:"voice_settings,omitempty"`
}

// Synthesize converts the text to speech using the requested voice and returns
// the MP3 bytes. ElevenLabs does not report a duration, so Result.Duration is
// always zero here and callers fall back to EstimateDuration.
func (s *ElevenLabsSynthesizer) Synthesize(ctx context.Context, text, voiceID string) (Result, error) {
	if s == nil || s.APIKey == "" {
		return Result{}, ErrNotConfigured
	}

	reqCtx, cancel := context.WithTimeout(ctx, s.Timeout)
	defer cancel()

	payload, err := json.Marshal(synthesisRequest{
		Text:    text,
		ModelID: "eleven_monolingual_v1",
	})
	if err != nil {
		return Result{}, fmt.Errorf("encode synthesis request: %w", err)
	}

	url := fmt.Sprintf("%s/v1/text-to-speech/%s", s.BaseURL, voiceID)
	req, err := http.NewRequestWithContext(reqCtx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return Result{}, fmt.Errorf("build synthesis request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "audio/mpeg")
	req.Header.Set("xi-api-key", s.APIKey)

	client := s.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("synthesis call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return Result{}, fmt.Errorf("synthesis call returned %d: %s", resp.StatusCode, string(body))
	}

	audio, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("read synthesis response: %w", err)
	}

	return Result{Audio: audio}, nil
}
