// Package credentials keeps the provider keys a user configures for text and
// image generation. Keys are opaque strings; an empty value means the slot is
// not configured.
package credentials

import (
	"context"
	"errors"
	"strings"
	"sync"
)

// Slot names.
const (
	TextProvider  = "text"
	ImageProvider = "image"
)

var ErrUnknownSlot = errors.New("unknown credential slot")

// Store is a small persistent key-value capability. Get returns "" and a nil
// error when nothing is stored under name.
type Store interface {
	Get(ctx context.Context, name string) (string, error)
	Set(ctx context.Context, name, value string) error
	Clear(ctx context.Context, name string) error
}

// Slots lists the known slot names in display order.
func Slots() []string {
	return []string{TextProvider, ImageProvider}
}

// ValidSlot reports whether name is one of the known slots.
func ValidSlot(name string) bool {
	switch name {
	case TextProvider, ImageProvider:
		return true
	default:
		return false
	}
}

// Mask renders a key for display: the first and last four characters around
// an ellipsis. Keys too short to mask that way are replaced entirely.
func Mask(key string) string {
	if key == "" {
		return ""
	}
	if len(key) <= 8 {
		return strings.Repeat("*", len(key))
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// MemoryStore is an in-process Store.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (m *MemoryStore) Get(_ context.Context, name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.values[name], nil
}

func (m *MemoryStore) Set(_ context.Context, name, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[name] = value
	return nil
}

func (m *MemoryStore) Clear(_ context.Context, name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.values, name)
	return nil
}

var _ Store = (*MemoryStore)(nil)
