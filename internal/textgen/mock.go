package textgen

import (
	"context"
	"fmt"
	"strings"

	"github.com/tubeautomator/backend/internal/models"
)

// MockGenerator returns deterministic content without calling any external
// service. It keeps environments without a language-model credential functional.
type MockGenerator struct{}

// GenerateScript returns a fixed script embedding the requested topic.
func (MockGenerator) GenerateScript(_ context.Context, req ScriptRequest) (string, error) {
	targetWords := WordsFor(req.Length)

	var b strings.Builder
	fmt.Fprintf(&b, "Welcome back to the channel! Today we are diving into %s.\n\n", req.Topic)
	b.WriteString("[VISUAL NOTES] Channel intro animation\n\n")

	paragraph := fmt.Sprintf(
		"Let's explore what makes %s so interesting. There is a lot to cover, so stay with me as we break it down step by step in a %s style. ",
		req.Topic, req.Style,
	)
	for b.Len() < targetWords*5 {
		b.WriteString(paragraph)
	}

	fmt.Fprintf(&b, "\n\nThat wraps up our look at %s. If you enjoyed this video, subscribe for more!", req.Topic)
	return b.String(), nil
}

// GenerateTopics returns fixed topic ideas derived from the category.
func (MockGenerator) GenerateTopics(_ context.Context, category string, count int) ([]models.TopicIdea, error) {
	if count <= 0 {
		count = 5
	}

	ideas := make([]models.TopicIdea, 0, count)
	for i := 1; i <= count; i++ {
		ideas = append(ideas, models.TopicIdea{
			Title:       fmt.Sprintf("%s Deep Dive #%d", category, i),
			Description: fmt.Sprintf("An in-depth look at a trending %s topic.", category),
			Keywords:    []string{category, "trending", fmt.Sprintf("idea %d", i)},
		})
	}
	return ideas, nil
}

// GenerateMetadata returns fixed metadata derived from the title.
func (MockGenerator) GenerateMetadata(_ context.Context, title, _ string) (models.VideoMetadata, error) {
	return models.VideoMetadata{
		Description: fmt.Sprintf("%s - everything you need to know, explained simply.", title),
		Tags:        []string{"youtube", "tutorial", strings.ToLower(title)},
		Category:    defaultCategory,
		Timestamps:  "00:00 Introduction\n01:00 Main content\n05:00 Conclusion",
	}, nil
}
