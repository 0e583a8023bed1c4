package upload

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadTextPlain(t *testing.T) {
	r := NewDefaultReader()
	got, err := r.ReadText(FromBytes("notes.md", []byte("# Title\r\nbody\r\n")))
	require.NoError(t, err)
	assert.Equal(t, "# Title\nbody\n", got)
}

func TestReadTextEmptyFile(t *testing.T) {
	got, err := NewDefaultReader().ReadText(FromBytes("empty.txt", nil))
	require.NoError(t, err)
	assert.Equal(t, "", got)
}

func TestReadTextReplacesInvalidUTF8(t *testing.T) {
	got, err := NewDefaultReader().ReadText(File{
		Name: "odd.txt",
		MIME: "text/plain",
		Open: func() (io.ReadCloser, error) { return io.NopCloser(strings.NewReader("a\xffb")), nil },
	})
	require.NoError(t, err)
	assert.Equal(t, "a�b", got)
}

func TestReadTextFromPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "ref.txt")
	require.NoError(t, os.WriteFile(path, []byte("on disk"), 0o644))

	f := FromPath(path)
	assert.Equal(t, "ref.txt", f.Name)
	got, err := NewDefaultReader().ReadText(f)
	require.NoError(t, err)
	assert.Equal(t, "on disk", got)
}

func TestReadTextOpenFailure(t *testing.T) {
	_, err := NewDefaultReader().ReadText(FromPath(filepath.Join(t.TempDir(), "missing.txt")))
	require.Error(t, err)
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestReadTextTooLarge(t *testing.T) {
	r := NewDefaultReader()
	r.MaxBytes = 4
	_, err := r.ReadText(FromBytes("big.txt", []byte("12345")))
	assert.ErrorIs(t, err, ErrTooLarge)
}

func TestReadTextPicksExtractorByMIME(t *testing.T) {
	stub := stubExtractor{mime: "application/x-custom", blocks: []string{"one", "two"}}
	r := &Reader{Extractors: []Extractor{stub}}
	got, err := r.ReadText(File{Name: "x.bin", MIME: "application/x-custom", Open: FromBytes("x", []byte("raw")).Open})
	require.NoError(t, err)
	assert.Equal(t, "one\n\ntwo", got)
}

type stubExtractor struct {
	mime   string
	blocks []string
}

func (s stubExtractor) Supports(m string) bool { return m == s.mime }
func (s stubExtractor) Extract(*Document) ([]string, error) { return s.blocks, nil }

func TestDetectMIME(t *testing.T) {
	cases := []struct {
		name string
		file string
		head []byte
		want string
	}{
		{"pdf magic", "doc", []byte("%PDF-1.7\n"), "application/pdf"},
		{"plain text", "a.md", []byte("hello"), "text/plain"},
		{"html", "page", []byte("<!DOCTYPE html><html>"), "text/html"},
		{"binary falls back to extension", "pic.png", []byte{0x00, 0x01, 0xff}, "image/png"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, DetectMIME(tc.file, tc.head))
		})
	}
}

func TestPDFExtractorSupports(t *testing.T) {
	assert.True(t, PDFExtractor{}.Supports("application/pdf"))
	assert.True(t, PDFExtractor{}.Supports("Application/PDF; x=y"))
	assert.False(t, PDFExtractor{}.Supports("text/plain"))
	assert.True(t, TextExtractor{}.Supports("text/markdown; charset=utf-8"))
	assert.True(t, TextExtractor{}.Supports("application/json"))
}

func TestPDFPageBlocks(t *testing.T) {
	blocks, err := pageBlocks([]string{"  intro \n", "", "\t", "end"})
	require.NoError(t, err)
	assert.Equal(t, []string{"[page 1/4]\nintro", "[page 4/4]\nend"}, blocks)

	_, err = pageBlocks([]string{"", "  "})
	assert.ErrorIs(t, err, ErrNoText)
	assert.EqualError(t, err, "no extractable text (2 pages)")

	_, err = pageBlocks(nil)
	assert.ErrorIs(t, err, ErrNoText)
}

func TestFSStorePut(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	s := FSStore{BaseDir: dir, Now: func() time.Time { return time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC) }}
	path, err := s.Put("sub/generated.md", []byte("# hi"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "20240501T120000Z_sub_generated.md"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "# hi", string(data))
}
