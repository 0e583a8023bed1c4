package credentials

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func exerciseStore(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	v, err := s.Get(ctx, TextProvider)
	require.NoError(t, err)
	assert.Empty(t, v)

	require.NoError(t, s.Set(ctx, TextProvider, "sk-first"))
	require.NoError(t, s.Set(ctx, TextProvider, "sk-second"))
	require.NoError(t, s.Set(ctx, ImageProvider, "gm-key"))

	v, err = s.Get(ctx, TextProvider)
	require.NoError(t, err)
	assert.Equal(t, "sk-second", v)

	require.NoError(t, s.Clear(ctx, TextProvider))
	v, err = s.Get(ctx, TextProvider)
	require.NoError(t, err)
	assert.Empty(t, v)

	v, err = s.Get(ctx, ImageProvider)
	require.NoError(t, err)
	assert.Equal(t, "gm-key", v)

	// clearing an empty slot is not an error
	require.NoError(t, s.Clear(ctx, TextProvider))
}

func TestMemoryStore(t *testing.T) {
	exerciseStore(t, NewMemoryStore())
}

func TestSQLiteStore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "creds.db")
	s, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	exerciseStore(t, s)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLiteStore(path)
	require.NoError(t, err)
	defer reopened.Close()

	v, err := reopened.Get(context.Background(), ImageProvider)
	require.NoError(t, err)
	assert.Equal(t, "gm-key", v, "values survive a reopen")
}

func TestEnvStoreFallsBack(t *testing.T) {
	ctx := context.Background()
	env := map[string]string{"DEEPSEEK_API_KEY": "from-env"}
	s := NewEnvStore(NewMemoryStore())
	s.Lookup = func(k string) string { return env[k] }

	v, err := s.Get(ctx, TextProvider)
	require.NoError(t, err)
	assert.Equal(t, "from-env", v)

	require.NoError(t, s.Set(ctx, TextProvider, "stored"))
	v, err = s.Get(ctx, TextProvider)
	require.NoError(t, err)
	assert.Equal(t, "stored", v, "stored value wins over env")

	v, err = s.Get(ctx, ImageProvider)
	require.NoError(t, err)
	assert.Empty(t, v)
}

func TestEnvStoreOrigin(t *testing.T) {
	ctx := context.Background()
	env := map[string]string{"GEMINI_API_KEY": "from-env"}
	s := NewEnvStore(NewMemoryStore())
	s.Lookup = func(k string) string { return env[k] }

	origin, err := s.Origin(ctx, TextProvider)
	require.NoError(t, err)
	assert.Empty(t, origin)

	origin, err = s.Origin(ctx, ImageProvider)
	require.NoError(t, err)
	assert.Equal(t, "GEMINI_API_KEY", origin)

	require.NoError(t, s.Set(ctx, ImageProvider, "stored"))
	origin, _ = s.Origin(ctx, ImageProvider)
	assert.Equal(t, "store", origin)

	// clearing the stored key leaves the env value resolvable
	require.NoError(t, s.Clear(ctx, ImageProvider))
	origin, _ = s.Origin(ctx, ImageProvider)
	assert.Equal(t, "GEMINI_API_KEY", origin)
	v, _ := s.Get(ctx, ImageProvider)
	assert.Equal(t, "from-env", v)
}

func TestMask(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"", ""},
		{"short", "*****"},
		{"12345678", "********"},
		{"sk-abcdefghijkl", "sk-a...ijkl"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, Mask(tc.in), "Mask(%q)", tc.in)
	}
}

func TestValidSlot(t *testing.T) {
	for _, s := range Slots() {
		assert.True(t, ValidSlot(s))
	}
	assert.False(t, ValidSlot("openai"))
}
