// Package assistant wires context gathering, prompt composition and the two
// generation paths together. The text and image paths share nothing but the
// credential store behind their generators.
package assistant

import (
	"context"
	"errors"

	"github.com/Protocol-Lattice/docassist/internal/ctxlog"
	"github.com/Protocol-Lattice/docassist/pkg/gather"
	"github.com/Protocol-Lattice/docassist/pkg/models"
	"github.com/Protocol-Lattice/docassist/pkg/prompt"
	"github.com/Protocol-Lattice/docassist/pkg/upload"
)

type Assistant struct {
	Context *gather.Aggregator
	Text    models.TextGenerator
	Image   models.ImageGenerator
}

func New(agg *gather.Aggregator, text models.TextGenerator, image models.ImageGenerator) *Assistant {
	return &Assistant{Context: agg, Text: text, Image: image}
}

// DocumentRequest is one "generate" action. URLs and Files are optional.
type DocumentRequest struct {
	Instruction string
	URLs        []string
	Files       []upload.File
}

type DocumentResult struct {
	Document string
	Prompt   string
	// Context is nil when the request named no sources.
	Context *gather.Bundle
}

var errNotConfigured = errors.New("generator not configured")

// GenerateDocument validates the request, gathers context when sources were
// given, composes the prompt and generates. Per-source failures are reported
// in the result's Context and never stop generation.
func (a *Assistant) GenerateDocument(ctx context.Context, req DocumentRequest) (*DocumentResult, error) {
	if a.Text == nil {
		return nil, errNotConfigured
	}
	if err := a.Text.Check(ctx, req.Instruction); err != nil {
		return nil, err
	}

	var bundle *gather.Bundle
	if len(gather.CleanURLs(req.URLs)) > 0 || len(req.Files) > 0 {
		bundle = a.GatherContext(ctx, req.URLs, req.Files)
	}

	composed := prompt.Compose(bundle.Text(), req.Instruction)
	ctxlog.FromContext(ctx).Info("generating document",
		"context_entries", len(entries(bundle)), "context_errors", len(bundle.Messages()), "prompt_bytes", len(composed))

	res, err := a.Text.Generate(ctx, composed)
	if err != nil {
		return nil, err
	}
	return &DocumentResult{Document: res.Document, Prompt: composed, Context: bundle}, nil
}

// GatherContext runs the aggregator alone.
func (a *Assistant) GatherContext(ctx context.Context, urls []string, files []upload.File) *gather.Bundle {
	agg := a.Context
	if agg == nil {
		agg = gather.NewAggregator(nil, nil)
	}
	return agg.Aggregate(ctx, urls, files)
}

// GenerateImage runs the image path.
func (a *Assistant) GenerateImage(ctx context.Context, p string) (*models.ImageResult, error) {
	if a.Image == nil {
		return nil, errNotConfigured
	}
	ctxlog.FromContext(ctx).Info("generating image", "prompt_bytes", len(p))
	return a.Image.GenerateImage(ctx, p)
}

func entries(b *gather.Bundle) []gather.Entry {
	if b == nil {
		return nil
	}
	return b.Entries
}
