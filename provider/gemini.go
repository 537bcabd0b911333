package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/inglify/inglify"
)

const (
	// DefaultGeminiModel is the model used when none is configured.
	DefaultGeminiModel = "gemini-2.5-flash-lite-preview-06-17"

	// DefaultGeminiBaseURL is the Generative Language API root.
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta"

	defaultGeminiTimeout = 60 * time.Second
	maxErrorBody         = 4 << 10
)

// GeminiProvider implements ModelProvider using the Gemini generateContent
// REST endpoint.
type GeminiProvider struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

// GeminiConfig holds configuration for the Gemini provider.
type GeminiConfig struct {
	APIKey     string        // API key, sent as the key query parameter
	Model      string        // Model to use (default: DefaultGeminiModel)
	BaseURL    string        // API root (default: DefaultGeminiBaseURL)
	HTTPClient *http.Client  // Custom client (optional)
	Timeout    time.Duration // Per-request timeout when HTTPClient is nil (default: 60s)
}

// NewGeminiProvider creates a new Gemini provider. An empty APIKey is
// accepted; every Generate call then fails with a ConfigurationError.
func NewGeminiProvider(cfg GeminiConfig) *GeminiProvider {
	model := cfg.Model
	if model == "" {
		model = DefaultGeminiModel
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = DefaultGeminiBaseURL
	}

	client := cfg.HTTPClient
	if client == nil {
		timeout := cfg.Timeout
		if timeout <= 0 {
			timeout = defaultGeminiTimeout
		}
		client = &http.Client{Timeout: timeout}
	}

	return &GeminiProvider{
		apiKey:  cfg.APIKey,
		model:   model,
		baseURL: baseURL,
		client:  client,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

type geminiGenerationConfig struct {
	Temperature     float32 `json:"temperature"`
	TopK            int     `json:"topK"`
	TopP            float32 `json:"topP"`
	MaxOutputTokens int     `json:"maxOutputTokens"`
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
}

// Generate sends the prompt to Gemini and returns the first candidate's text.
func (p *GeminiProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if p.apiKey == "" {
		return "", &inglify.ConfigurationError{Message: inglify.MsgNotConfigured}
	}

	body, err := json.Marshal(buildGeminiRequest(req))
	if err != nil {
		return "", &inglify.UpstreamError{Message: inglify.MsgUpstreamFailed, Cause: err}
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint(), bytes.NewReader(body))
	if err != nil {
		return "", &inglify.UpstreamError{Message: inglify.MsgUpstreamFailed, Cause: err}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("User-Agent", inglify.UserAgent())

	resp, err := p.client.Do(httpReq)
	if err != nil {
		return "", &inglify.UpstreamError{Message: inglify.MsgUpstreamFailed, Cause: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", &inglify.UpstreamError{
			Message:    inglify.MsgUpstreamFailed,
			Cause:      fmt.Errorf("gemini: %s", bytes.TrimSpace(detail)),
			StatusCode: resp.StatusCode,
		}
	}

	var parsed geminiResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &inglify.UpstreamError{Message: inglify.MsgInvalidReply, Cause: err}
	}

	return extractGeminiText(parsed)
}

// Model returns the configured model name.
func (p *GeminiProvider) Model() string {
	return p.model
}

func (p *GeminiProvider) endpoint() string {
	return fmt.Sprintf("%s/models/%s:generateContent?key=%s", p.baseURL, url.PathEscape(p.model), url.QueryEscape(p.apiKey))
}

func buildGeminiRequest(req GenerateRequest) geminiRequest {
	return geminiRequest{
		Contents: []geminiContent{{Parts: []geminiPart{{Text: req.Prompt}}}},
		GenerationConfig: geminiGenerationConfig{
			Temperature:     req.Config.Temperature,
			TopK:            req.Config.TopK,
			TopP:            req.Config.TopP,
			MaxOutputTokens: req.Config.MaxOutputTokens,
		},
	}
}

func extractGeminiText(resp geminiResponse) (string, error) {
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", &inglify.UpstreamError{
			Message: inglify.MsgInvalidReply,
			Cause:   fmt.Errorf("gemini: reply has no candidate content"),
		}
	}
	return resp.Candidates[0].Content.Parts[0].Text, nil
}

var _ ModelProvider = (*GeminiProvider)(nil)
