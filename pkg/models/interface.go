package models

import "context"

// GenerationResult is the document produced by a text provider.
type GenerationResult struct {
	Document string `json:"document"`
}

// ImageResult is a renderable image plus any text that came with it.
// A result without an image is never returned; see NoImageProducedError.
type ImageResult struct {
	ImageDataURI string `json:"image"`
	Text         string `json:"text,omitempty"`
}

type TextGenerator interface {
	// Check reports precondition failures for prompt without any network call.
	Check(ctx context.Context, prompt string) error
	Generate(ctx context.Context, prompt string) (*GenerationResult, error)
}

type ImageGenerator interface {
	Check(ctx context.Context, prompt string) error
	GenerateImage(ctx context.Context, prompt string) (*ImageResult, error)
}
