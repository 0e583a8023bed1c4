package config

import (
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/Protocol-Lattice/docassist/pkg/models"
	"github.com/Protocol-Lattice/docassist/pkg/upload"
)

// DefaultConfig returns the built-in configuration.
func DefaultConfig() *Config {
	return &Config{
		Text: TextConfig{
			Provider:     "deepseek",
			Endpoint:     models.DefaultDeepSeekEndpoint,
			Model:        models.DefaultDeepSeekModel,
			SystemPrompt: models.DefaultSystemPrompt,
			Timeout:      2 * time.Minute,
		},
		Image: ImageConfig{
			Endpoint: models.DefaultGeminiBaseURL,
			Model:    models.DefaultGeminiModel,
			Timeout:  2 * time.Minute,
		},
		Context: ContextConfig{
			FetchTimeout: 30 * time.Second,
			Concurrency:  1,
			MaxBytes:     upload.DefaultMaxBytes,
		},
		Credentials: CredentialsConfig{
			Backend: "sqlite",
			Path:    "~/.docassist/credentials.db",
			UseEnv:  true,
		},
		Server: ServerConfig{
			Addr:        "127.0.0.1:8080",
			MaxInflight: 4,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// WriteDefault writes the default configuration as YAML to path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}
