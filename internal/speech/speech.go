package speech

import (
	"context"
	"errors"
	"regexp"
	"strings"
)

var (
	// ErrNotConfigured indicates no TTS credential is available.
	ErrNotConfigured = errors.New("speech synthesizer not configured")
)

// Result is the output of a synthesis call. Audio holds the raw bytes; Duration
// is in seconds and may be zero when the synthesizer does not report one.
type Result struct {
	Audio    []byte
	Duration int
}

// Synthesizer converts cleaned script text to speech audio.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, voiceID string) (Result, error)
}

var (
	visualNoteLine = regexp.MustCompile(`(?m)^.*\[VISUAL NOTES\].*$\n?`)
	blankRuns      = regexp.MustCompile(`\n{3,}`)
)

// CleanScript strips [VISUAL NOTES] lines and collapses runs of blank lines so
// that stage directions are never narrated.
func CleanScript(script string) string {
	cleaned := visualNoteLine.ReplaceAllString(script, "")
	cleaned = blankRuns.ReplaceAllString(cleaned, "\n\n")
	return strings.TrimSpace(cleaned)
}

// EstimateDuration approximates narration length in seconds for the provided
// text, used when the synthesizer reports no duration of its own.
func EstimateDuration(text string) int {
	if len(text) == 0 {
		return 0
	}
	// Roughly 15 characters of narration per second.
	return (len(text) + 14) / 15
}
