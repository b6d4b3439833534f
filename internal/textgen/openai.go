package textgen

import (
	"context"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"github.com/tubeautomator/backend/internal/models"
)

const scriptTemperature = 0.7

// OpenAIGenerator produces content through the OpenAI chat completion API.
type OpenAIGenerator struct {
	client     *openai.Client
	model      string
	configured bool
}

// NewOpenAIGenerator constructs a generator backed by the OpenAI API.
func NewOpenAIGenerator(apiKey string) *OpenAIGenerator {
	return &OpenAIGenerator{
		client:     openai.NewClient(apiKey),
		model:      openai.GPT4oMini,
		configured: apiKey != "",
	}
}

// GenerateScript asks the model for a full video script honouring the topic,
// style and length constraints of the request.
func (g *OpenAIGenerator) GenerateScript(ctx context.Context, req ScriptRequest) (string, error) {
	if !g.configured {
		return "", ErrNotConfigured
	}

	targetWords := WordsFor(req.Length)

	prompt := fmt.Sprintf(
		"Write a %s YouTube video script about %q. "+
			"Target approximately %d words. "+
			"Structure it with a hook, main sections, and a call to action. "+
			"Mark any visual directions on their own lines as [VISUAL NOTES] followed by the direction.",
		req.Style, req.Topic, targetWords,
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   TokenBudget(targetWords),
		Temperature: scriptTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: "You are a professional YouTube scriptwriter."},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("openai script completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai script completion: empty response")
	}

	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// GenerateTopics asks the model for topic ideas and parses the marker-delimited reply.
func (g *OpenAIGenerator) GenerateTopics(ctx context.Context, category string, count int) ([]models.TopicIdea, error) {
	if !g.configured {
		return nil, ErrNotConfigured
	}

	prompt := fmt.Sprintf(
		"Suggest %d YouTube video ideas in the %q category. "+
			"For each idea output exactly three lines:\n"+
			"Title: <title>\nDescription: <one sentence>\nKeywords: <comma separated keywords>",
		count, category,
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   1000,
		Temperature: scriptTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return nil, fmt.Errorf("openai topic completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai topic completion: empty response")
	}

	ideas, err := ParseTopicIdeas(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}
	if len(ideas) > count {
		ideas = ideas[:count]
	}
	return ideas, nil
}

// GenerateMetadata asks the model for upload metadata given a title and script excerpt.
func (g *OpenAIGenerator) GenerateMetadata(ctx context.Context, title, excerpt string) (models.VideoMetadata, error) {
	if !g.configured {
		return models.VideoMetadata{}, ErrNotConfigured
	}

	prompt := fmt.Sprintf(
		"Generate YouTube upload metadata for a video titled %q. Script excerpt:\n%s\n\n"+
			"Output these lines:\n"+
			"Description: <two sentence description>\n"+
			"Tags: <comma separated tags>\n"+
			"Category: <single category name>\n"+
			"Timestamps: <chapter timestamps>",
		title, excerpt,
	)

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       g.model,
		MaxTokens:   1000,
		Temperature: scriptTemperature,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return models.VideoMetadata{}, fmt.Errorf("openai metadata completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return models.VideoMetadata{}, fmt.Errorf("openai metadata completion: empty response")
	}

	return ParseMetadata(resp.Choices[0].Message.Content), nil
}
