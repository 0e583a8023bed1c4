package config

import "time"

// Config is the docassist configuration.
type Config struct {
	Text        TextConfig        `mapstructure:"text" yaml:"text"`
	Image       ImageConfig       `mapstructure:"image" yaml:"image"`
	Context     ContextConfig     `mapstructure:"context" yaml:"context"`
	Credentials CredentialsConfig `mapstructure:"credentials" yaml:"credentials"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server"`
	Log         LogConfig         `mapstructure:"log" yaml:"log"`
}

// TextConfig selects the chat-completion provider.
type TextConfig struct {
	Provider     string        `mapstructure:"provider" yaml:"provider"`
	Endpoint     string        `mapstructure:"endpoint" yaml:"endpoint"`
	Model        string        `mapstructure:"model" yaml:"model"`
	SystemPrompt string        `mapstructure:"system_prompt" yaml:"system_prompt"`
	Timeout      time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ImageConfig configures the multimodal image provider.
type ImageConfig struct {
	Endpoint string        `mapstructure:"endpoint" yaml:"endpoint"`
	Model    string        `mapstructure:"model" yaml:"model"`
	Timeout  time.Duration `mapstructure:"timeout" yaml:"timeout"`
}

// ContextConfig tunes context gathering.
type ContextConfig struct {
	FetchTimeout time.Duration `mapstructure:"fetch_timeout" yaml:"fetch_timeout"`
	Concurrency  int           `mapstructure:"concurrency" yaml:"concurrency"`
	MaxBytes     int64         `mapstructure:"max_bytes" yaml:"max_bytes"`
}

// CredentialsConfig picks where provider keys live.
type CredentialsConfig struct {
	Backend string `mapstructure:"backend" yaml:"backend"` // sqlite or memory
	Path    string `mapstructure:"path" yaml:"path"`
	// UseEnv falls back to DEEPSEEK_API_KEY / GEMINI_API_KEY for empty slots.
	UseEnv bool `mapstructure:"use_env" yaml:"use_env"`
}

// ServerConfig configures `docassist serve`.
type ServerConfig struct {
	Addr        string `mapstructure:"addr" yaml:"addr"`
	MaxInflight int    `mapstructure:"max_inflight" yaml:"max_inflight"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	Format string `mapstructure:"format" yaml:"format"`
}
