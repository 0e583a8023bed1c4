package models

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Protocol-Lattice/docassist/internal/ctxlog"
	"github.com/Protocol-Lattice/docassist/pkg/credentials"
)

// ---------------------------- Google Gemini ----------------------------------

const (
	DefaultGeminiBaseURL = "https://generativelanguage.googleapis.com/v1beta/models"
	DefaultGeminiModel   = "gemini-2.0-flash-preview-image-generation"
)

// GeminiImageClient asks a multimodal model for TEXT and IMAGE output. The key
// is read from the store's image slot and sent as the "key" query parameter.
type GeminiImageClient struct {
	BaseURL     string
	Model       string
	Credentials credentials.Store
	HTTPClient  *http.Client
}

func NewGeminiImageClient(store credentials.Store, model string) *GeminiImageClient {
	if model == "" {
		model = DefaultGeminiModel
	}
	return &GeminiImageClient{
		BaseURL:     DefaultGeminiBaseURL,
		Model:       model,
		Credentials: store,
		HTTPClient:  &http.Client{Timeout: 2 * time.Minute},
	}
}

type geminiRequest struct {
	Contents         []geminiContent        `json:"contents"`
	GenerationConfig geminiGenerationConfig `json:"generationConfig"`
}

type geminiGenerationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
}

// geminiPart is either a text part or an inline-data part.
type geminiPart struct {
	Text       *string           `json:"text,omitempty"`
	InlineData *geminiInlineData `json:"inlineData,omitempty"`
}

type geminiInlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

type geminiResponse struct {
	Candidates []struct {
		Content *geminiContent `json:"content"`
	} `json:"candidates"`
}

type geminiError struct {
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (g *GeminiImageClient) credential(ctx context.Context) (string, error) {
	if g.Credentials == nil {
		return "", nil
	}
	key, err := g.Credentials.Get(ctx, credentials.ImageProvider)
	if err != nil {
		return "", fmt.Errorf("read image credential: %w", err)
	}
	return key, nil
}

func (g *GeminiImageClient) Check(ctx context.Context, prompt string) error {
	key, err := g.credential(ctx)
	if err != nil {
		return err
	}
	return CheckRequest(key, prompt)
}

func (g *GeminiImageClient) endpoint(key string) (string, error) {
	u, err := url.Parse(strings.TrimRight(g.BaseURL, "/") + "/" + g.Model + ":generateContent")
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("key", key)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (g *GeminiImageClient) GenerateImage(ctx context.Context, prompt string) (*ImageResult, error) {
	key, err := g.credential(ctx)
	if err != nil {
		return nil, err
	}
	if err := CheckRequest(key, prompt); err != nil {
		return nil, err
	}

	text := prompt
	body, err := json.Marshal(geminiRequest{
		Contents:         []geminiContent{{Parts: []geminiPart{{Text: &text}}}},
		GenerationConfig: geminiGenerationConfig{ResponseModalities: []string{"TEXT", "IMAGE"}},
	})
	if err != nil {
		return nil, fmt.Errorf("encode request: %w", err)
	}

	endpoint, err := g.endpoint(key)
	if err != nil {
		return nil, fmt.Errorf("gemini endpoint: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	log := ctxlog.FromContext(ctx)
	log.Debug("dispatching image generation", "model", g.Model, "prompt_bytes", len(prompt))

	resp, err := g.httpClient().Do(req)
	if err != nil {
		// url.Error would echo the key-bearing URL
		var uerr *url.Error
		if errors.As(err, &uerr) {
			err = uerr.Err
		}
		return nil, fmt.Errorf("image generation request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read image generation response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg := fmt.Sprintf("API error: %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
		var envelope geminiError
		if json.Unmarshal(raw, &envelope) == nil && envelope.Error != nil && envelope.Error.Message != "" {
			msg = envelope.Error.Message
		}
		log.Warn("image generation failed", "status", resp.StatusCode)
		return nil, &ProviderError{Provider: "gemini", StatusCode: resp.StatusCode, Message: msg}
	}

	var out geminiResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	var parts []geminiPart
	if len(out.Candidates) > 0 && out.Candidates[0].Content != nil {
		parts = out.Candidates[0].Content.Parts
	}
	result := demux(parts)
	if result.ImageDataURI == "" {
		return nil, &NoImageProducedError{Text: result.Text}
	}
	return result, nil
}

// demux walks parts in order. Text parts are newline-joined; for inline data
// the last part seen wins. Inline parts with no data carry no image and are
// skipped, so they never replace an earlier one.
func demux(parts []geminiPart) *ImageResult {
	var (
		image string
		texts []string
	)
	for _, p := range parts {
		switch {
		case p.InlineData != nil && p.InlineData.Data != "":
			image = "data:" + p.InlineData.MimeType + ";base64," + p.InlineData.Data
		case p.Text != nil:
			texts = append(texts, *p.Text)
		}
	}
	return &ImageResult{ImageDataURI: image, Text: strings.Join(texts, "\n")}
}

// DecodeDataURI splits a base64 data URI into its MIME type and payload.
func DecodeDataURI(uri string) (string, []byte, error) {
	rest, ok := strings.CutPrefix(uri, "data:")
	if !ok {
		return "", nil, errors.New("not a data URI")
	}
	meta, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return "", nil, errors.New("data URI has no payload")
	}
	mime, ok := strings.CutSuffix(meta, ";base64")
	if !ok {
		return "", nil, errors.New("data URI is not base64 encoded")
	}
	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode data URI: %w", err)
	}
	return mime, data, nil
}

func (g *GeminiImageClient) httpClient() *http.Client {
	if g.HTTPClient != nil {
		return g.HTTPClient
	}
	return http.DefaultClient
}

var _ ImageGenerator = (*GeminiImageClient)(nil)
