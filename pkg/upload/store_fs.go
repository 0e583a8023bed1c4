package upload

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// FSStore writes generated outputs into BaseDir with a UTC timestamp prefix.
type FSStore struct {
	BaseDir string // e.g., "./out"
	Now     func() time.Time
}

func (s FSStore) Put(name string, data []byte) (string, error) {
	if err := os.MkdirAll(s.BaseDir, 0o755); err != nil {
		return "", err
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	ts := now().UTC().Format("20060102T150405Z")
	path := filepath.Join(s.BaseDir, fmt.Sprintf("%s_%s", ts, sanitizeName(name)))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", err
	}
	return path, nil
}

func sanitizeName(n string) string {
	out := make([]rune, 0, len(n))
	for _, r := range n {
		if r == '/' || r == '\\' {
			out = append(out, '_')
			continue
		}
		out = append(out, r)
	}
	return string(out)
}

var _ ContentStore = FSStore{}
