package content

import (
	"archive/tar"
	"compress/gzip"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// extractFromGzip extracts content from a gzip or tar.gz archive
func extractFromGzip(r io.Reader, path string, extensions []string) (*Content, error) {
	gr, err := gzip.NewReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to create gzip reader: %w", err)
	}
	defer gr.Close()

	lowerPath := strings.ToLower(path)
	if strings.HasSuffix(lowerPath, ".tar.gz") || strings.HasSuffix(lowerPath, ".tgz") {
		return extractFromTar(gr, extensions)
	}

	// A plain .gz holds one file named after the archive.
	name := filepath.Base(path)
	if strings.HasSuffix(strings.ToLower(name), ".gz") {
		name = name[:len(name)-3]
	}
	if rank(name, extensions) < 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoContent, name)
	}

	data, err := limitedRead(gr)
	if err != nil {
		return nil, fmt.Errorf("failed to decompress gzip: %w", err)
	}
	return &Content{Name: name, Data: data}, nil
}

// extractFromTar extracts the best ranked member of a tar archive
func extractFromTar(r io.Reader, extensions []string) (*Content, error) {
	tr := tar.NewReader(r)

	p := newPicker(extensions)
	for {
		header, err := tr.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read tar entry: %w", err)
		}

		if header.Typeflag != tar.TypeReg || !p.wants(header.Name) {
			continue
		}
		if err := p.take(header.Name, tr); err != nil {
			return nil, err
		}
	}
	return p.result()
}
