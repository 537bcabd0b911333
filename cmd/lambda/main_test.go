package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"sync"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	lambdasdk "github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/inglify/inglify"
	"github.com/inglify/inglify/provider"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInvoker struct {
	mu     sync.Mutex
	inputs []*lambdasdk.InvokeInput
	err    error
}

func (f *fakeInvoker) Invoke(ctx context.Context, in *lambdasdk.InvokeInput, _ ...func(*lambdasdk.Options)) (*lambdasdk.InvokeOutput, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.inputs = append(f.inputs, in)
	return &lambdasdk.InvokeOutput{}, f.err
}

func newTestHandler(p inglify.ModelProvider, inv *fakeInvoker) *handler {
	return &handler{
		translator: inglify.NewGateway(p),
		logger:     zap.NewNop(),
		invoker: func(context.Context) (invoker, error) {
			if inv == nil {
				return nil, errors.New("no credentials")
			}
			return inv, nil
		},
	}
}

func proxyEvent(t *testing.T, req events.APIGatewayProxyRequest) json.RawMessage {
	t.Helper()
	data, err := json.Marshal(req)
	require.NoError(t, err)
	return data
}

func invoke(t *testing.T, h *handler, req events.APIGatewayProxyRequest) events.APIGatewayProxyResponse {
	t.Helper()
	out, err := h.handleRequest(context.Background(), proxyEvent(t, req))
	require.NoError(t, err)
	resp, ok := out.(events.APIGatewayProxyResponse)
	require.True(t, ok, "expected a proxy response, got %T", out)
	return resp
}

func TestHandleRequest_Translate(t *testing.T) {
	h := newTestHandler(provider.NewMockProvider(), nil)

	resp := invoke(t, h, events.APIGatewayProxyRequest{
		HTTPMethod: "POST",
		Path:       "/api/gemini",
		Body:       `{"text":"Selamat malam","targetLanguage":"ko"}`,
	})

	assert.Equal(t, 200, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Headers["Content-Type"])

	var tr inglify.TranslationResponse
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &tr))
	assert.Equal(t, "Selamat malam", tr.OriginalText)
	assert.Equal(t, "ko", tr.TargetLanguage)
	assert.Len(t, tr.Results, 6)
}

func TestHandleRequest_Base64Body(t *testing.T) {
	h := newTestHandler(provider.NewMockProvider(), nil)

	resp := invoke(t, h, events.APIGatewayProxyRequest{
		HTTPMethod:      "POST",
		Path:            "/api/translate/",
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"text":"Halo","targetLanguage":"en"}`)),
		IsBase64Encoded: true,
	})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestHandleRequest_Errors(t *testing.T) {
	tests := []struct {
		name     string
		provider inglify.ModelProvider
		req      events.APIGatewayProxyRequest
		status   int
		body     string
	}{
		{
			name:     "validation",
			provider: provider.NewMockProvider(),
			req:      events.APIGatewayProxyRequest{HTTPMethod: "POST", Path: "/api/gemini", Body: `{"text":""}`},
			status:   400,
			body:     `{"error":"Text and target language are required"}`,
		},
		{
			name:   "not configured",
			req:    events.APIGatewayProxyRequest{HTTPMethod: "POST", Path: "/api/gemini", Body: `{"text":"Halo","targetLanguage":"en"}`},
			status: 500,
			body:   `{"error":"Gemini API key not configured"}`,
		},
		{
			name:     "bad base64",
			provider: provider.NewMockProvider(),
			req:      events.APIGatewayProxyRequest{HTTPMethod: "POST", Path: "/api/gemini", Body: "%%%", IsBase64Encoded: true},
			status:   400,
			body:     `{"error":"Text and target language are required"}`,
		},
		{
			name:   "unknown route",
			req:    events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/api/gemini"},
			status: 404,
			body:   `{"error":"Not found"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := invoke(t, newTestHandler(tt.provider, nil), tt.req)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.JSONEq(t, tt.body, resp.Body)
		})
	}
}

func TestHandleRequest_Catalog(t *testing.T) {
	h := newTestHandler(nil, nil)

	resp := invoke(t, h, events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/api/languages"})
	require.Equal(t, 200, resp.StatusCode)
	var langs []inglify.LanguageEntry
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &langs))
	assert.Len(t, langs, len(inglify.SupportedLanguages))
	assert.Equal(t, "ltr", langs[0].Direction)

	resp = invoke(t, h, events.APIGatewayProxyRequest{HTTPMethod: "GET", Path: "/healthz"})
	assert.Equal(t, 200, resp.StatusCode)
}

func TestIsWarmupEvent(t *testing.T) {
	w, ok := IsWarmupEvent(json.RawMessage(`{"source":"warmup","concurrency":3}`))
	require.True(t, ok)
	assert.Equal(t, 3, w.Concurrency)

	_, ok = IsWarmupEvent(json.RawMessage(`{"source":"aws.events"}`))
	assert.False(t, ok)

	_, ok = IsWarmupEvent(json.RawMessage(`{"httpMethod":"POST","path":"/api/gemini"}`))
	assert.False(t, ok)

	_, ok = IsWarmupEvent(json.RawMessage(`not json`))
	assert.False(t, ok)
}

func TestHandleWarmup_SelfInvokes(t *testing.T) {
	t.Setenv("AWS_LAMBDA_FUNCTION_NAME", "inglify-gateway")
	inv := &fakeInvoker{}
	h := newTestHandler(nil, inv)

	out, err := h.handleRequest(context.Background(), json.RawMessage(`{"source":"warmup","concurrency":2}`))
	require.NoError(t, err)

	body := out.(map[string]interface{})["body"].(WarmupResponse)
	assert.Equal(t, "warm", body.Status)
	assert.Equal(t, 3, body.InstancesWarmed)

	require.Len(t, inv.inputs, 2)
	for _, in := range inv.inputs {
		assert.Equal(t, "inglify-gateway", *in.FunctionName)
		assert.Equal(t, types.InvocationTypeEvent, in.InvocationType)
		assert.JSONEq(t, `{"source":"warmup","concurrency":0}`, string(in.Payload))
	}
}

func TestHandleWarmup_InvokeFailure(t *testing.T) {
	inv := &fakeInvoker{err: errors.New("throttled")}
	h := newTestHandler(nil, inv)

	out, err := h.handleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 2})
	require.NoError(t, err)
	assert.Equal(t, 1, out.(map[string]interface{})["body"].(WarmupResponse).InstancesWarmed)
}

func TestHandleWarmup_NoCredentials(t *testing.T) {
	h := newTestHandler(nil, nil)

	out, err := h.handleWarmup(context.Background(), &WarmupEvent{Source: WarmupSource, Concurrency: 1})
	require.NoError(t, err)
	assert.Equal(t, 1, out.(map[string]interface{})["body"].(WarmupResponse).InstancesWarmed)
}
