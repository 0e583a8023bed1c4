package upload

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// ErrNoText is returned for documents that parse but yield no text at all,
// such as scanned PDFs.
var ErrNoText = errors.New("no extractable text")

// PDFExtractor pulls plain text out of application/pdf documents. Each page
// with text becomes one block headed "[page N/M]".
type PDFExtractor struct{}

func (PDFExtractor) Supports(m string) bool {
	return baseMIME(m) == "application/pdf"
}

func (PDFExtractor) Extract(doc *Document) ([]string, error) {
	ra, size, err := readerAt(doc)
	if err != nil {
		return nil, err
	}
	rdr, err := pdf.NewReader(ra, size)
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	pages := make([]string, rdr.NumPage())
	for i := range pages {
		pg := rdr.Page(i + 1)
		if pg.V.IsNull() {
			continue
		}
		// image-only pages fail here and stay blank
		if txt, err := pg.GetPlainText(nil); err == nil {
			pages[i] = txt
		}
	}
	return pageBlocks(pages)
}

// pageBlocks labels every non-blank page with its position in the document.
func pageBlocks(pages []string) ([]string, error) {
	out := make([]string, 0, len(pages))
	for i, txt := range pages {
		s := strings.TrimSpace(txt)
		if s == "" {
			continue
		}
		out = append(out, fmt.Sprintf("[page %d/%d]\n%s", i+1, len(pages), s))
	}
	if len(out) == 0 {
		return nil, fmt.Errorf("%w (%d pages)", ErrNoText, len(pages))
	}
	return out, nil
}

func readerAt(doc *Document) (io.ReaderAt, int64, error) {
	if r, ok := doc.Reader.(io.ReaderAt); ok {
		return r, doc.SizeBytes, nil
	}
	if _, err := doc.Reader.Seek(0, io.SeekStart); err != nil {
		return nil, 0, err
	}
	buf, err := io.ReadAll(doc.Reader)
	if err != nil {
		return nil, 0, err
	}
	return bytes.NewReader(buf), int64(len(buf)), nil
}
