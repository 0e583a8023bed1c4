package upload

import (
	"bytes"
	"io"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"unicode/utf8"
)

type TextExtractor struct{}

func (TextExtractor) Supports(m string) bool {
	m = baseMIME(m)
	return strings.HasPrefix(m, "text/") ||
		m == "application/json" ||
		m == "application/xml" ||
		m == "application/yaml" ||
		m == "application/x-yaml"
}

func (TextExtractor) Extract(doc *Document) ([]string, error) {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, doc.Reader); err != nil {
		return nil, err
	}
	s := strings.ToValidUTF8(buf.String(), string(utf8.RuneError))
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return []string{s}, nil
}

// DetectMIME sniffs content first and falls back to the file extension.
func DetectMIME(name string, head []byte) string {
	if m := baseMIME(http.DetectContentType(head)); m != "application/octet-stream" {
		return m
	}
	ext := strings.ToLower(filepath.Ext(name))
	if ext != "" {
		if byExt := mime.TypeByExtension(ext); byExt != "" {
			return baseMIME(byExt)
		}
	}
	if utf8.Valid(head) {
		return "text/plain"
	}
	return "application/octet-stream"
}

func baseMIME(m string) string {
	if i := strings.IndexByte(m, ';'); i >= 0 {
		m = m[:i]
	}
	return strings.ToLower(strings.TrimSpace(m))
}
