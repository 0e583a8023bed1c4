package models

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sashabaranov/go-openai"

	"github.com/Protocol-Lattice/docassist/internal/ctxlog"
	"github.com/Protocol-Lattice/docassist/pkg/credentials"
)

const (
	DefaultDeepSeekEndpoint = "https://api.deepseek.com/v1/chat/completions"
	DefaultDeepSeekModel    = "deepseek-chat"
	DefaultSystemPrompt     = "You are a helpful assistant that generates markdown."
)

// DeepSeekClient talks to an OpenAI-compatible chat-completion endpoint. The
// bearer key is read from the store's text slot on every call.
type DeepSeekClient struct {
	Endpoint     string
	Model        string
	SystemPrompt string
	Credentials  credentials.Store
	HTTPClient   *http.Client
}

func NewDeepSeekClient(store credentials.Store, model string) *DeepSeekClient {
	if model == "" {
		model = DefaultDeepSeekModel
	}
	return &DeepSeekClient{
		Endpoint:     DefaultDeepSeekEndpoint,
		Model:        model,
		SystemPrompt: DefaultSystemPrompt,
		Credentials:  store,
		HTTPClient:   &http.Client{Timeout: 2 * time.Minute},
	}
}

type chatRequest struct {
	Model    string                         `json:"model"`
	Messages []openai.ChatCompletionMessage `json:"messages"`
	Stream   bool                           `json:"stream"`
}

// chatResponse mirrors openai.ChatCompletionResponse for the one field read,
// keeping content a pointer so an absent field differs from an empty reply.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Role    string  `json:"role"`
			Content *string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// chatError is the provider's top-level error body.
type chatError struct {
	Message string `json:"message"`
}

func (c *DeepSeekClient) credential(ctx context.Context) (string, error) {
	if c.Credentials == nil {
		return "", nil
	}
	key, err := c.Credentials.Get(ctx, credentials.TextProvider)
	if err != nil {
		return "", fmt.Errorf("read text credential: %w", err)
	}
	return key, nil
}

func (c *DeepSeekClient) Check(ctx context.Context, prompt string) error {
	key, err := c.credential(ctx)
	if err != nil {
		return err
	}
	return CheckRequest(key, prompt)
}

func (c *DeepSeekClient) Generate(ctx context.Context, prompt string) (*GenerationResult, error) {
	key, err := c.credential(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckRequest(key, prompt); err != nil {
		return nil, err
	}

	body, err := json.Marshal(chatRequest{
		Model: c.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: c.SystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Stream: false,
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+key)

	log := ctxlog.FromContext(ctx)
	log.Debug("dispatching chat completion", "model", c.Model, "prompt_bytes", len(prompt))

	resp, err := c.httpClient().Do(req)
	if err != nil {
		return nil, fmt.Errorf("chat completion request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read chat completion response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := "API error: " + http.StatusText(resp.StatusCode)
		var envelope chatError
		if json.Unmarshal(raw, &envelope) == nil && envelope.Message != "" {
			msg = envelope.Message
		}
		log.Warn("chat completion failed", "status", resp.StatusCode)
		return nil, &ProviderError{Provider: "deepseek", StatusCode: resp.StatusCode, Message: msg}
	}

	var out chatResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices", ErrMalformedResponse)
	}
	content := out.Choices[0].Message.Content
	if content == nil {
		return nil, fmt.Errorf("%w: first choice has no message content", ErrMalformedResponse)
	}
	// an empty reply is still a document
	return &GenerationResult{Document: *content}, nil
}

func (c *DeepSeekClient) httpClient() *http.Client {
	if c.HTTPClient != nil {
		return c.HTTPClient
	}
	return http.DefaultClient
}

var _ TextGenerator = (*DeepSeekClient)(nil)
