package textgen

import (
	"context"
	"errors"

	"github.com/tubeautomator/backend/internal/models"
)

var (
	// ErrNotConfigured indicates no language-model credential is available.
	ErrNotConfigured = errors.New("text generator not configured")
	// ErrParse indicates the model response could not be parsed into structured fields.
	ErrParse = errors.New("unable to parse generated content")
)

// Script length presets mapped to target word counts.
const (
	LengthShort  = "short"
	LengthMedium = "medium"
	LengthLong   = "long"
)

// Script style presets.
const (
	StyleEducational  = "educational"
	StyleEntertaining = "entertaining"
	StyleNews         = "news"
	StyleTutorial     = "tutorial"
)

// ScriptRequest describes a script-generation call.
type ScriptRequest struct {
	Topic  string
	Style  string
	Length string
}

// Generator produces long-form text content from a language model.
type Generator interface {
	GenerateScript(ctx context.Context, req ScriptRequest) (string, error)
	GenerateTopics(ctx context.Context, category string, count int) ([]models.TopicIdea, error)
	GenerateMetadata(ctx context.Context, title, excerpt string) (models.VideoMetadata, error)
}

// WordsFor maps a length preset to its target word count. Unknown values fall
// back to the medium preset.
func WordsFor(length string) int {
	switch length {
	case LengthShort:
		return 300
	case LengthLong:
		return 1000
	default:
		return 600
	}
}

// TokenBudget computes the completion token limit for a target word count.
func TokenBudget(targetWords int) int {
	budget := targetWords * 2
	if budget < 1000 {
		return 1000
	}
	return budget
}

// ValidStyle reports whether the style is one of the supported presets.
func ValidStyle(style string) bool {
	switch style {
	case StyleEducational, StyleEntertaining, StyleNews, StyleTutorial:
		return true
	}
	return false
}

// ValidLength reports whether the length is one of the supported presets.
func ValidLength(length string) bool {
	switch length {
	case LengthShort, LengthMedium, LengthLong:
		return true
	}
	return false
}
