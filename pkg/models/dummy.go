package models

import (
	"context"
	"fmt"
	"strings"
)

// DummyGenerator is a lightweight TextGenerator for local runs without API calls.
// It echoes the last non-empty line of the prompt under a heading.
type DummyGenerator struct {
	Prefix string
}

func NewDummyGenerator(prefix string) *DummyGenerator {
	if strings.TrimSpace(prefix) == "" {
		prefix = "# Draft"
	}
	return &DummyGenerator{Prefix: prefix}
}

func (d *DummyGenerator) Check(_ context.Context, prompt string) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}
	return nil
}

func (d *DummyGenerator) Generate(ctx context.Context, prompt string) (*GenerationResult, error) {
	if err := d.Check(ctx, prompt); err != nil {
		return nil, err
	}
	lines := strings.Split(prompt, "\n")
	var last string
	for i := len(lines) - 1; i >= 0; i-- {
		if candidate := strings.TrimSpace(lines[i]); candidate != "" {
			last = candidate
			break
		}
	}
	return &GenerationResult{Document: fmt.Sprintf("%s\n\n%s\n", d.Prefix, last)}, nil
}

var _ TextGenerator = (*DummyGenerator)(nil)
