package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"
)

// DefaultMaxBytes caps a single file or response body at 10 MiB.
const DefaultMaxBytes int64 = 10 << 20

var ErrTooLarge = errors.New("content too large")

// Reader turns a File into text, picking an extractor by MIME type. Content
// no extractor claims is read as plain text.
type Reader struct {
	Extractors []Extractor
	MaxBytes   int64
}

func NewDefaultReader() *Reader {
	return &Reader{
		// PDF first, then text, so PDFs don't fall through
		Extractors: []Extractor{PDFExtractor{}, TextExtractor{}},
		MaxBytes:   DefaultMaxBytes,
	}
}

// ReadText reads the whole file and returns its text.
func (r *Reader) ReadText(f File) (string, error) {
	if f.Open == nil {
		return "", errors.New("no content")
	}
	rc, err := f.Open()
	if err != nil {
		return "", err
	}
	defer rc.Close()

	buf, err := ReadLimited(rc, r.MaxBytes)
	if err != nil {
		return "", err
	}

	mime := f.MIME
	if mime == "" {
		mime = DetectMIME(f.Name, buf[:min(512, len(buf))])
	}
	doc := &Document{
		Name:      f.Name,
		MIME:      mime,
		SizeBytes: int64(len(buf)),
		Reader:    bytes.NewReader(buf),
	}

	blocks, err := r.extractorFor(doc.MIME).Extract(doc)
	if err != nil {
		return "", err
	}
	return strings.Join(blocks, "\n\n"), nil
}

func (r *Reader) extractorFor(mime string) Extractor {
	for _, ex := range r.Extractors {
		if ex.Supports(mime) {
			return ex
		}
	}
	return TextExtractor{}
}

// ReadLimited reads all of src, failing with ErrTooLarge past max bytes.
// A max of zero or less means no limit.
func ReadLimited(src io.Reader, max int64) ([]byte, error) {
	if max <= 0 {
		return io.ReadAll(src)
	}
	buf, err := io.ReadAll(io.LimitReader(src, max+1))
	if err != nil {
		return nil, err
	}
	if int64(len(buf)) > max {
		return nil, fmt.Errorf("%w: exceeds %d bytes", ErrTooLarge, max)
	}
	return buf, nil
}
