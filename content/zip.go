package content

import (
	"archive/zip"
	"fmt"
)

// extractFromZIP extracts the best ranked member of a ZIP archive
func extractFromZIP(path string, extensions []string) (*Content, error) {
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer r.Close()

	p := newPicker(extensions)
	for _, f := range r.File {
		if f.FileInfo().IsDir() || !p.wants(f.Name) {
			continue
		}

		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s in archive: %w", f.Name, err)
		}
		err = p.take(f.Name, rc)
		rc.Close()
		if err != nil {
			return nil, err
		}
	}
	return p.result()
}
