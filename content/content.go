// Package content loads tape and snapshot files, either directly or from
// inside a compressed archive (ZIP, 7z, gzip, tar.gz, RAR).
package content

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Magic bytes for format detection
var (
	magicZIP    = []byte{0x50, 0x4B, 0x03, 0x04}
	magicZIPEnd = []byte{0x50, 0x4B, 0x05, 0x06} // empty zip
	magic7z     = []byte{0x37, 0x7A, 0xBC, 0xAF, 0x27, 0x1C}
	magicGzip   = []byte{0x1F, 0x8B}
	magicRAR    = []byte{0x52, 0x61, 0x72, 0x21} // "Rar!"
)

// Tapes are small; anything past this is not Spectrum content.
const maxContentSize = 4 * 1024 * 1024

// ErrNoContent is returned when an archive holds no file with a content
// extension.
var ErrNoContent = errors.New("no tape or snapshot found in archive")

// ErrUnsupportedFormat is returned for unrecognized file formats
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ErrFileTooLarge is returned when extracted content exceeds size limit
var ErrFileTooLarge = errors.New("file exceeds maximum size limit")

type formatType int

const (
	formatUnknown formatType = iota
	formatRaw
	formatZIP
	format7z
	formatGzip
	formatRAR
)

func (f formatType) String() string {
	switch f {
	case formatRaw:
		return "raw"
	case formatZIP:
		return "zip"
	case format7z:
		return "7z"
	case formatGzip:
		return "gzip"
	case formatRAR:
		return "rar"
	default:
		return "unknown"
	}
}

// Content is a loaded tape or snapshot.
type Content struct {
	// Name is the base name of the file, inside the archive if there was one.
	Name string
	Data []byte
	// Archive is the container format, empty for plain files.
	Archive string
}

// Load reads content from path. Archives are detected by magic bytes, then
// by extension. From an archive the member whose extension comes first in
// extensions wins; ties go to the first member. Extensions may be given
// with or without the leading dot.
func Load(path string, extensions []string) (*Content, error) {
	exts := normalizeExtensions(extensions)

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer f.Close()

	header := make([]byte, 16)
	n, err := f.Read(header)
	if err != nil && err != io.EOF {
		return nil, fmt.Errorf("failed to read file header: %w", err)
	}
	header = header[:n]

	format := detectFormat(header, path, exts)

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("failed to seek file: %w", err)
	}

	var c *Content
	switch format {
	case formatRaw:
		data, err := limitedRead(f)
		if err != nil {
			return nil, fmt.Errorf("failed to read content: %w", err)
		}
		return &Content{Name: filepath.Base(path), Data: data}, nil
	case formatZIP:
		c, err = extractFromZIP(path, exts)
	case format7z:
		c, err = extractFrom7z(path, exts)
	case formatGzip:
		c, err = extractFromGzip(f, path, exts)
	case formatRAR:
		c, err = extractFromRAR(path, exts)
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	if err != nil {
		return nil, err
	}
	c.Archive = format.String()
	return c, nil
}

// IsArchive reports whether path is a compressed archive rather than a
// plain content file.
func IsArchive(path string) bool {
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	defer f.Close()

	header := make([]byte, 16)
	n, _ := io.ReadFull(f, header)
	switch detectFormat(header[:n], path, nil) {
	case formatZIP, format7z, formatGzip, formatRAR:
		return true
	}
	return false
}

// detectFormat determines the file format based on magic bytes and extension.
func detectFormat(header []byte, path string, extensions []string) formatType {
	ext := strings.ToLower(filepath.Ext(path))

	if len(header) >= 4 {
		if bytes.HasPrefix(header, magicZIP) || bytes.HasPrefix(header, magicZIPEnd) {
			return formatZIP
		}
		if bytes.HasPrefix(header, magicRAR) {
			return formatRAR
		}
	}
	if len(header) >= 6 && bytes.HasPrefix(header, magic7z) {
		return format7z
	}
	if len(header) >= 2 && bytes.HasPrefix(header, magicGzip) {
		return formatGzip
	}

	switch ext {
	case ".zip":
		return formatZIP
	case ".7z":
		return format7z
	case ".gz", ".tgz":
		return formatGzip
	case ".rar":
		return formatRAR
	}

	if rank(path, extensions) >= 0 {
		return formatRaw
	}
	return formatUnknown
}

// rank returns the position of name's extension in extensions, or -1.
func rank(name string, extensions []string) int {
	lower := strings.ToLower(name)
	for i, ext := range extensions {
		if strings.HasSuffix(lower, ext) {
			return i
		}
	}
	return -1
}

// picker keeps the best ranked archive member seen so far.
type picker struct {
	extensions []string
	best       int
	name       string
	data       []byte
}

func newPicker(extensions []string) *picker {
	return &picker{extensions: extensions, best: -1}
}

// wants reports whether name would beat the current pick.
func (p *picker) wants(name string) bool {
	r := rank(name, p.extensions)
	return r >= 0 && (p.best < 0 || r < p.best)
}

// take reads the member and makes it the current pick.
func (p *picker) take(name string, r io.Reader) error {
	data, err := limitedRead(r)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	p.best = rank(name, p.extensions)
	p.name = filepath.Base(name)
	p.data = data
	return nil
}

func (p *picker) result() (*Content, error) {
	if p.best < 0 {
		return nil, ErrNoContent
	}
	return &Content{Name: p.name, Data: p.data}, nil
}

func normalizeExtensions(extensions []string) []string {
	out := make([]string, 0, len(extensions))
	for _, ext := range extensions {
		ext = strings.ToLower(ext)
		if !strings.HasPrefix(ext, ".") {
			ext = "." + ext
		}
		out = append(out, ext)
	}
	return out
}

// limitedRead reads from r up to maxContentSize bytes, returning an error if exceeded
func limitedRead(r io.Reader) ([]byte, error) {
	lr := io.LimitReader(r, maxContentSize+1)
	data, err := io.ReadAll(lr)
	if err != nil {
		return nil, err
	}
	if len(data) > maxContentSize {
		return nil, ErrFileTooLarge
	}
	return data, nil
}
