package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/inglify/inglify"
	"github.com/sashabaranov/go-openai"
)

// Public messages reported by the OpenAI backend.
const (
	msgOpenAINotConfigured = "OpenAI API key not configured"
	msgOpenAIFailed        = "Failed to get translation from OpenAI API"
	msgOpenAIInvalid       = "Invalid response from OpenAI API"
)

// DefaultOpenAIModel is the model used when none is configured.
const DefaultOpenAIModel = "gpt-4o-mini"

// OpenAIProvider implements ModelProvider using OpenAI's chat completions API.
type OpenAIProvider struct {
	client     *openai.Client
	model      string
	configured bool
}

// OpenAIConfig holds configuration for the OpenAI provider.
type OpenAIConfig struct {
	APIKey  string // OpenAI API key
	Model   string // Model to use (default: "gpt-4o-mini")
	BaseURL string // Custom base URL (optional)
}

// NewOpenAIProvider creates a new OpenAI provider.
func NewOpenAIProvider(cfg OpenAIConfig) *OpenAIProvider {
	config := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		config.BaseURL = cfg.BaseURL
	}

	model := cfg.Model
	if model == "" {
		model = DefaultOpenAIModel
	}

	return &OpenAIProvider{
		client:     openai.NewClientWithConfig(config),
		model:      model,
		configured: cfg.APIKey != "",
	}
}

// Generate sends the prompt as a single user message and returns the reply.
// The prompt already carries the output contract, so no system message is
// added.
func (p *OpenAIProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if !p.configured {
		return "", &inglify.ConfigurationError{Message: msgOpenAINotConfigured}
	}

	resp, err := p.client.CreateChatCompletion(ctx, p.buildRequest(req))
	if err != nil {
		return "", &inglify.UpstreamError{
			Message:    msgOpenAIFailed,
			Cause:      err,
			StatusCode: statusOf(err),
		}
	}

	if len(resp.Choices) == 0 {
		return "", &inglify.UpstreamError{
			Message: msgOpenAIInvalid,
			Cause:   fmt.Errorf("openai: no choices in response"),
		}
	}

	return resp.Choices[0].Message.Content, nil
}

// Model returns the configured model name.
func (p *OpenAIProvider) Model() string {
	return p.model
}

func (p *OpenAIProvider) buildRequest(req GenerateRequest) openai.ChatCompletionRequest {
	return openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: req.Prompt},
		},
		Temperature: req.Config.Temperature,
		TopP:        req.Config.TopP,
		MaxTokens:   req.Config.MaxOutputTokens,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	}
}

// statusOf returns the HTTP status carried by a go-openai error, or 0.
func statusOf(err error) int {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.HTTPStatusCode
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return reqErr.HTTPStatusCode
	}
	return 0
}

// Verify OpenAIProvider implements ModelProvider
var _ ModelProvider = (*OpenAIProvider)(nil)
