package models

import (
	"fmt"
	"net/http"

	"github.com/Protocol-Lattice/docassist/pkg/credentials"
)

// TextOptions selects and configures a text provider.
type TextOptions struct {
	Provider     string // "deepseek" (default) or "dummy"
	Endpoint     string
	Model        string
	SystemPrompt string
	HTTPClient   *http.Client
}

// NewTextGenerator returns the concrete TextGenerator for opts.Provider.
func NewTextGenerator(store credentials.Store, opts TextOptions) (TextGenerator, error) {
	switch opts.Provider {
	case "", "deepseek", "openai":
		c := NewDeepSeekClient(store, opts.Model)
		if opts.Endpoint != "" {
			c.Endpoint = opts.Endpoint
		}
		if opts.SystemPrompt != "" {
			c.SystemPrompt = opts.SystemPrompt
		}
		if opts.HTTPClient != nil {
			c.HTTPClient = opts.HTTPClient
		}
		return c, nil
	case "dummy":
		return NewDummyGenerator(""), nil
	default:
		return nil, fmt.Errorf("unknown text provider: %s", opts.Provider)
	}
}
