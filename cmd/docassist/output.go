package main

import (
	"bufio"
	"fmt"
	"io"
	"mime"
	"os"
	"path/filepath"

	"github.com/Protocol-Lattice/docassist/pkg/gather"
	"github.com/Protocol-Lattice/docassist/pkg/upload"
)

// writeOutput saves data to out, or to a timestamped file under outDir when
// outDir is set. It returns where the data landed.
func writeOutput(data []byte, name, out, outDir string) (string, error) {
	if outDir != "" {
		return upload.FSStore{BaseDir: outDir}.Put(name, data)
	}
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", err
		}
	}
	if err := os.WriteFile(out, data, 0o644); err != nil {
		return "", err
	}
	return out, nil
}

// imageFileName picks a file name whose extension matches mimeType.
func imageFileName(base, mimeType string) string {
	switch mimeType {
	case "image/png":
		return base + ".png"
	case "image/jpeg":
		return base + ".jpg"
	}
	ext := ".png"
	if exts, err := mime.ExtensionsByType(mimeType); err == nil && len(exts) > 0 {
		ext = exts[0]
	}
	return base + ext
}

// collectURLs merges --url values with the lines of --urls-file.
func collectURLs(urls []string, urlsFile string) ([]string, error) {
	out := gather.CleanURLs(urls)
	if urlsFile == "" {
		return out, nil
	}
	var r io.Reader
	if urlsFile == "-" {
		r = os.Stdin
	} else {
		f, err := os.Open(urlsFile)
		if err != nil {
			return nil, fmt.Errorf("urls file: %w", err)
		}
		defer f.Close()
		r = f
	}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		out = append(out, gather.CleanURLs([]string{sc.Text()})...)
	}
	return out, sc.Err()
}

func filesFromPaths(paths []string) []upload.File {
	files := make([]upload.File, len(paths))
	for i, p := range paths {
		files[i] = upload.FromPath(p)
	}
	return files
}

func printSourceErrors(w io.Writer, b *gather.Bundle) {
	for _, msg := range b.Messages() {
		fmt.Fprintln(w, "warning:", msg)
	}
}
