package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// EnvPrefix prefixes environment overrides, e.g. DOCASSIST_TEXT_MODEL.
const EnvPrefix = "DOCASSIST"

// Load merges, in increasing precedence: defaults, the global config, the
// project config, explicitPath (if set) and DOCASSIST_* environment variables.
// A missing global or project file is fine; a missing explicit file is not.
func Load(explicitPath string) (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")

	base, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return nil, err
	}
	if err := v.ReadConfig(bytes.NewReader(base)); err != nil {
		return nil, fmt.Errorf("load defaults: %w", err)
	}

	for _, path := range []string{GlobalConfigPath(), ProjectConfigPath()} {
		if path == "" {
			continue
		}
		if err := mergeFile(v, path); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("config %s: %w", path, err)
		}
	}
	if explicitPath != "" {
		if err := mergeFile(v, explicitPath); err != nil {
			return nil, fmt.Errorf("config %s: %w", explicitPath, err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func mergeFile(v *viper.Viper, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return v.MergeConfig(f)
}

// Validate rejects settings the rest of the program cannot act on and fills
// in floors for numeric knobs.
func (c *Config) Validate() error {
	switch c.Text.Provider {
	case "deepseek", "openai", "dummy":
	default:
		return fmt.Errorf("text.provider: unknown provider %q", c.Text.Provider)
	}
	switch c.Credentials.Backend {
	case "sqlite", "memory":
	default:
		return fmt.Errorf("credentials.backend: unknown backend %q", c.Credentials.Backend)
	}
	if c.Credentials.Backend == "sqlite" && c.Credentials.Path == "" {
		return errors.New("credentials.path is required for the sqlite backend")
	}
	if c.Context.Concurrency < 1 {
		c.Context.Concurrency = 1
	}
	if c.Server.MaxInflight < 1 {
		c.Server.MaxInflight = 1
	}
	return nil
}

// GlobalConfigPath returns the path to the global config file.
func GlobalConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".docassist", "config.yaml")
}

// ProjectConfigPath returns the path to the project config file.
func ProjectConfigPath() string {
	cwd, err := os.Getwd()
	if err != nil {
		return ""
	}
	return filepath.Join(cwd, ".docassist", "config.yaml")
}
