package llm

import (
	"context"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
	"github.com/cohere-ai/cohere-go/v2/option"
)

type CohereClient struct {
	client *cohereclient.Client
}

func NewCohereClient(apiKey, baseURL string) *CohereClient {
	opts := []option.RequestOption{
		option.WithToken(apiKey),
		option.WithMaxAttempts(1),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}

	return &CohereClient{
		client: cohereclient.NewClient(opts...),
	}
}

func (c *CohereClient) Name() string {
	return ProviderCohere
}

// Generate calls the chat endpoint. Cohere answers with a flat text field,
// so only GenerateResponse.Text is filled.
func (c *CohereClient) Generate(ctx context.Context, params GenerateParams) (*GenerateResponse, error) {
	model := params.Model
	maxTokens := params.MaxTokens
	temperature := params.Temperature

	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Model:       &model,
		Message:     params.Prompt,
		MaxTokens:   &maxTokens,
		Temperature: &temperature,
	})
	if err != nil {
		return nil, err
	}

	if resp == nil {
		return &GenerateResponse{}, nil
	}

	return &GenerateResponse{Text: resp.Text}, nil
}
