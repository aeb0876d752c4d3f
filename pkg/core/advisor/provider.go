package advisor

import (
	"context"
)

// Provider is the interface for all LLM providers backing the advisor.
type Provider interface {
	GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error)
	// AdaptInstructions transforms raw instructions into model-specific formats
	AdaptInstructions(rawInstructions string) string
}

type OpenAIProvider struct{}

func (p *OpenAIProvider) GenerateResponse(ctx context.Context, prompt string, systemPrompt string, options map[string]interface{}) (string, error) {
	// OpenAI specific API call logic
	return "Not implemented: OpenAI Response", nil
}

func (p *OpenAIProvider) AdaptInstructions(raw string) string {
	return "OpenAI Style: " + raw // Template for GPT-specific prompting
}
