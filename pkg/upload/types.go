// Package upload reads local reference files into text and writes generated
// outputs back to disk.
package upload

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// File is a local reference source. Open is called lazily, once per read.
type File struct {
	Name string
	MIME string // optional; detected from content and name when empty
	Open func() (io.ReadCloser, error)
}

// FromPath returns a File backed by a path on disk, named by its base name.
func FromPath(path string) File {
	return File{
		Name: filepath.Base(path),
		Open: func() (io.ReadCloser, error) { return os.Open(path) },
	}
}

// FromBytes returns a File over an in-memory payload.
func FromBytes(name string, data []byte) File {
	return File{
		Name: name,
		Open: func() (io.ReadCloser, error) { return io.NopCloser(bytes.NewReader(data)), nil },
	}
}

// Document is a fully buffered file handed to an Extractor.
type Document struct {
	Name      string
	MIME      string
	SizeBytes int64
	Reader    io.ReadSeeker
}

type Extractor interface {
	// Return UTF-8 text blocks; implementors may split by natural segments (pages).
	Extract(doc *Document) ([]string, error)
	Supports(mime string) bool
}

type ContentStore interface {
	// Put persists data under a name derived from name and returns where it landed.
	Put(name string, data []byte) (storedAt string, err error)
}
