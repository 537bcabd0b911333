package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/inglify/inglify"
)

// MockProvider is a mock model provider for testing and offline use.
// It answers every prompt with one translation per tone, wrapped in prose
// the way real models often reply.
type MockProvider struct {
	Reply       string           // Fixed reply; when empty a six-tone reply is generated
	Err         error            // Returned instead of a reply when set
	CallCount   int              // Number of times Generate was called
	LastRequest *GenerateRequest // Last request received

	mu sync.Mutex
}

// NewMockProvider creates a new mock provider with generated replies.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

// Generate returns the mock reply.
func (m *MockProvider) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	m.mu.Lock()
	m.CallCount++
	m.LastRequest = &req
	reply, err := m.Reply, m.Err
	m.mu.Unlock()

	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if reply != "" {
		return reply, nil
	}
	return MockReply(promptText(req.Prompt)), nil
}

// Calls returns the number of Generate calls so far.
func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// Reset resets the call count and last request.
func (m *MockProvider) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CallCount = 0
	m.LastRequest = nil
}

// MockReply renders a model-style reply with a bracketed translation of
// text for every tone.
func MockReply(text string) string {
	results := make([]inglify.TranslationResult, len(inglify.TranslationTones))
	for i, tone := range inglify.TranslationTones {
		results[i] = inglify.TranslationResult{
			Tone:        tone.Name,
			Translation: fmt.Sprintf("[%s] %s", tone.Name, text),
		}
	}
	data, _ := json.Marshal(map[string]any{"results": results})
	return "Here are the translations:\n" + string(data) + "\n"
}

// promptText recovers the quoted source text from a built prompt.
func promptText(prompt string) string {
	const marker = "Original Indonesian text: \""
	start := strings.Index(prompt, marker)
	if start < 0 {
		return prompt
	}
	rest := prompt[start+len(marker):]
	end := strings.Index(rest, "\"\n")
	if end < 0 {
		return rest
	}
	return rest[:end]
}

// Verify MockProvider implements ModelProvider
var _ ModelProvider = (*MockProvider)(nil)
