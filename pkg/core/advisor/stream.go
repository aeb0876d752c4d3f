package advisor

import (
	"context"
	"fmt"
	"os"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

// StreamAgent streams advisor summaries chunk by chunk for the SSE endpoint.
// It talks to Gemini directly through the streaming SDK rather than the
// Provider interface, which is request/response only.
type StreamAgent struct {
	modelName string
	client    *genai.Client
}

func NewStreamAgent(ctx context.Context) (*StreamAgent, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY environment variable not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(apiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %v", err)
	}

	return &StreamAgent{
		modelName: "gemini-2.0-flash-exp",
		client:    client,
	}, nil
}

// GenerateStream sends the prompt and invokes emit for each text chunk as it
// arrives. Returns after the final chunk or on the first emit/stream error.
func (a *StreamAgent) GenerateStream(ctx context.Context, prompt string, emit func(chunk string) error) error {
	model := a.client.GenerativeModel(a.modelName)
	model.SetTemperature(0.2)

	fullPrompt := fmt.Sprintf("%s\n\nTask: %s", summarySystemPrompt, prompt)

	iter := model.GenerateContentStream(ctx, genai.Text(fullPrompt))
	for {
		resp, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return fmt.Errorf("gemini stream failed: %w", err)
		}

		if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil {
			continue
		}
		for _, part := range resp.Candidates[0].Content.Parts {
			if txt, ok := part.(genai.Text); ok {
				if err := emit(string(txt)); err != nil {
					return err
				}
			}
		}
	}
}

// Close releases the underlying client
func (a *StreamAgent) Close() error {
	return a.client.Close()
}
