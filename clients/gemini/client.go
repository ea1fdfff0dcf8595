package gemini

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"jarvis/clients"
)

const defaultModel = "gemini-2.0-flash"

// GeminiClient implements the clients.GenerativeClient interface on top of
// the Gemini API.
type GeminiClient struct {
	client *genai.Client
	model  string
}

// NewGeminiClient creates a new Gemini client for the given API key. The
// model is configurable and defaults to gemini-2.0-flash.
func NewGeminiClient(ctx context.Context, apiKey, model string) (clients.GenerativeClient, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	return &GeminiClient{client: client, model: model}, nil
}

// GenerateText sends a single prompt and returns the model's text output.
func (c *GeminiClient) GenerateText(ctx context.Context, prompt string) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(prompt, genai.RoleUser),
	}

	result, err := c.client.Models.GenerateContent(ctx, c.model, contents, nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate failed: %w", err)
	}

	text := result.Text()
	if text == "" {
		return "", fmt.Errorf("gemini returned no text output")
	}

	return text, nil
}
