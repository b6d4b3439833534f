package textgen

import (
	"fmt"
	"strings"

	"github.com/tubeautomator/backend/internal/models"
)

const (
	markerTitle       = "Title:"
	markerDescription = "Description:"
	markerKeywords    = "Keywords:"
	markerTags        = "Tags:"
	markerCategory    = "Category:"
	markerTimestamps  = "Timestamps:"
)

const defaultCategory = "Education"

// ParseTopicIdeas extracts topic suggestions from a marker-delimited text block.
// Each idea starts at a Title: line; Description: and Keywords: lines attach to
// the most recent title. A reply containing no Title: marker is a parse failure.
func ParseTopicIdeas(text string) ([]models.TopicIdea, error) {
	var ideas []models.TopicIdea

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*0123456789. "))

		switch {
		case strings.HasPrefix(line, markerTitle):
			ideas = append(ideas, models.TopicIdea{
				Title:    strings.TrimSpace(strings.TrimPrefix(line, markerTitle)),
				Keywords: []string{},
			})
		case strings.HasPrefix(line, markerDescription):
			if len(ideas) == 0 {
				continue
			}
			ideas[len(ideas)-1].Description = strings.TrimSpace(strings.TrimPrefix(line, markerDescription))
		case strings.HasPrefix(line, markerKeywords):
			if len(ideas) == 0 {
				continue
			}
			ideas[len(ideas)-1].Keywords = splitList(strings.TrimPrefix(line, markerKeywords))
		}
	}

	if len(ideas) == 0 {
		return nil, fmt.Errorf("%w: no topic markers found", ErrParse)
	}

	return ideas, nil
}

// ParseMetadata extracts upload metadata from a marker-delimited text block.
// Missing fields default to the empty string, an empty tag list, or the
// Education category; metadata parsing never fails a request.
func ParseMetadata(text string) models.VideoMetadata {
	meta := models.VideoMetadata{
		Tags:     []string{},
		Category: defaultCategory,
	}

	var timestamps []string
	inTimestamps := false

	for _, line := range strings.Split(text, "\n") {
		trimmed := strings.TrimSpace(line)

		switch {
		case strings.HasPrefix(trimmed, markerDescription):
			meta.Description = strings.TrimSpace(strings.TrimPrefix(trimmed, markerDescription))
			inTimestamps = false
		case strings.HasPrefix(trimmed, markerTags):
			meta.Tags = splitList(strings.TrimPrefix(trimmed, markerTags))
			inTimestamps = false
		case strings.HasPrefix(trimmed, markerCategory):
			if category := strings.TrimSpace(strings.TrimPrefix(trimmed, markerCategory)); category != "" {
				meta.Category = category
			}
			inTimestamps = false
		case strings.HasPrefix(trimmed, markerTimestamps):
			inTimestamps = true
			if rest := strings.TrimSpace(strings.TrimPrefix(trimmed, markerTimestamps)); rest != "" {
				timestamps = append(timestamps, rest)
			}
		case inTimestamps && trimmed != "":
			timestamps = append(timestamps, trimmed)
		}
	}

	meta.Timestamps = strings.Join(timestamps, "\n")
	return meta
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
