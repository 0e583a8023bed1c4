// Package gather collects reference material from URLs and local files into a
// single context blob for prompt composition.
package gather

import (
	"errors"
	"fmt"
	"strings"
)

var ErrNoContextRetrieved = errors.New("No context retrieved.")

type SourceKind string

const (
	KindURL  SourceKind = "url"
	KindFile SourceKind = "file"
)

// Entry is the text gathered from one source.
type Entry struct {
	Label string `json:"label"`
	Body  string `json:"body"`
}

// SourceError records why one source produced no content. It never aborts
// the batch it belongs to.
type SourceError struct {
	Kind   SourceKind
	Label  string
	Reason string
	Err    error
}

func (e *SourceError) Error() string {
	if e.Kind == KindFile {
		return fmt.Sprintf("Failed to read %s: %s", e.Label, e.Reason)
	}
	return fmt.Sprintf("Failed to fetch %s: %s", e.Label, e.Reason)
}

func (e *SourceError) Unwrap() error { return e.Err }

// Bundle holds the outcome of one aggregation. Entries and Errors are in
// processing order: URLs first, then files, each in submission order.
type Bundle struct {
	Entries []Entry
	Errors  []error
}

// Text concatenates every entry behind its provenance marker. Entries with
// an empty body still contribute their marker.
func (b *Bundle) Text() string {
	if b == nil {
		return ""
	}
	var sb strings.Builder
	for _, e := range b.Entries {
		sb.WriteString("\n\n--- Content from ")
		sb.WriteString(e.Label)
		sb.WriteString(" ---\n")
		sb.WriteString(e.Body)
	}
	return sb.String()
}

// Messages returns the error strings in order.
func (b *Bundle) Messages() []string {
	if b == nil {
		return nil
	}
	out := make([]string, len(b.Errors))
	for i, err := range b.Errors {
		out[i] = err.Error()
	}
	return out
}

// HasContent reports whether at least one source produced an entry.
func (b *Bundle) HasContent() bool {
	return b != nil && len(b.Entries) > 0
}

// Err joins all recorded errors, or returns nil when there are none.
func (b *Bundle) Err() error {
	if b == nil {
		return nil
	}
	return errors.Join(b.Errors...)
}
