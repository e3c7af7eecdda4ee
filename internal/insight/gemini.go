package insight

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

type GeminiGenerator struct {
	client *genai.Client
	model  string
}

func NewGeminiGenerator(ctx context.Context, apiKey, model string) (*GeminiGenerator, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GeminiGenerator{client: client, model: model}, nil
}

func (g *GeminiGenerator) GenerateTips(ctx context.Context, habitName, completionData string) (string, error) {
	prompt := fmt.Sprintf(`You are a habit improvement coach. Analyze the following habit completion data and provide personalized tips for improving consistency.

Habit Name: %s
Completion Data: %s

Tips:`, habitName, completionData)

	result, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("GenAI generation failed: %w", err)
	}

	tips := result.Text()
	if tips == "" {
		return "", fmt.Errorf("no tips returned")
	}
	return tips, nil
}
