package content

import (
	"fmt"
	"io"

	"github.com/nwaples/rardecode/v2"
)

// extractFromRAR extracts the best ranked member of a RAR archive
func extractFromRAR(path string, extensions []string) (*Content, error) {
	r, err := rardecode.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open rar: %w", err)
	}
	defer r.Close()

	p := newPicker(extensions)
	for {
		header, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read rar entry: %w", err)
		}

		if header.IsDir || !p.wants(header.Name) {
			continue
		}
		if err := p.take(header.Name, r); err != nil {
			return nil, err
		}
	}
	return p.result()
}
