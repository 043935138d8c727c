package content

import (
	"fmt"

	"github.com/bodgit/sevenzip"
)

// extractFrom7z extracts the best ranked member of a 7z archive
func extractFrom7z(path string, extensions []string) (*Content, error) {
	r, err := sevenzip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open 7z: %w", err)
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
