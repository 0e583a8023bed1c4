package credentials

import (
	"context"
	"os"
)

// DefaultEnv maps each slot to the environment variable consulted when the
// slot is empty.
var DefaultEnv = map[string]string{
	TextProvider:  "DEEPSEEK_API_KEY",
	ImageProvider: "GEMINI_API_KEY",
}

// EnvStore reads through to environment variables when the wrapped store has
// nothing for a slot. Writes always go to the wrapped store.
type EnvStore struct {
	Store
	Env    map[string]string
	Lookup func(string) string
}

func NewEnvStore(primary Store) *EnvStore {
	return &EnvStore{Store: primary, Env: DefaultEnv, Lookup: os.Getenv}
}

func (e *EnvStore) Get(ctx context.Context, name string) (string, error) {
	v, err := e.Store.Get(ctx, name)
	if err != nil || v != "" {
		return v, err
	}
	envVar, ok := e.Env[name]
	if !ok || e.Lookup == nil {
		return "", nil
	}
	return e.Lookup(envVar), nil
}

// Origin reports where Get's value for name comes from: "store", the name of
// the environment variable supplying it, or "" when neither has a value.
func (e *EnvStore) Origin(ctx context.Context, name string) (string, error) {
	v, err := e.Store.Get(ctx, name)
	if err != nil {
		return "", err
	}
	if v != "" {
		return "store", nil
	}
	envVar, ok := e.Env[name]
	if !ok || e.Lookup == nil || e.Lookup(envVar) == "" {
		return "", nil
	}
	return envVar, nil
}
