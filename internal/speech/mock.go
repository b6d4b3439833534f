package speech

import "context"

// MockSynthesizer returns a fixed silent audio payload, keeping environments
// without a TTS credential functional.
type MockSynthesizer struct{}

// mockAudio is a minimal valid MP3 frame header followed by silence padding.
var mockAudio = append([]byte{0xFF, 0xFB, 0x90, 0x00}, make([]byte, 412)...)

// Synthesize returns the canned audio payload for any input.
func (MockSynthesizer) Synthesize(_ context.Context, text, _ string) (Result, error) {
	return Result{Audio: mockAudio, Duration: EstimateDuration(text)}, nil
}
