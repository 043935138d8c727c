// Package vfs serves the engine's file access from two places through one
// interface: read-only assets compiled into the engine, and the host
// filesystem.
package vfs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	zxcore "github.com/user-none/efuse/api"
)

var (
	// ErrOpenFailed is returned when a path cannot be opened.
	ErrOpenFailed = errors.New("open failed")

	// ErrReadOnly is returned when writing to an embedded asset.
	ErrReadOnly = errors.New("embedded file is read-only")

	// ErrShortRead is returned when fewer bytes than the file length arrive.
	ErrShortRead = errors.New("short read")

	// ErrShortWrite is returned when not every byte could be written.
	ErrShortWrite = errors.New("short write")
)

// auxiliaryDirs maps auxiliary kinds to their directory under <system>/fuse.
var auxiliaryDirs = map[zxcore.AuxiliaryKind]string{
	zxcore.AuxiliaryLib:    "lib",
	zxcore.AuxiliaryROM:    "roms",
	zxcore.AuxiliaryWidget: "ui/widget",
	zxcore.AuxiliaryGTK:    "ui/gtk",
}

// Compile-time interface check.
var _ zxcore.FileSystem = (*FS)(nil)

// FS is the virtual file system handed to the engine.
type FS struct {
	assets    []zxcore.Asset
	systemDir func() (string, bool)
	log       zxcore.Logger
}

// New creates a file system serving assets ahead of the host filesystem.
// systemDir reports the host's system directory and may be nil.
func New(assets []zxcore.Asset, systemDir func() (string, bool), log zxcore.Logger) *FS {
	if log == nil {
		log = zxcore.NopLogger
	}
	fs := &FS{systemDir: systemDir, log: log}
	for _, a := range assets {
		fs.Mount(a)
	}
	return fs
}

// Mount adds an embedded asset. Later mounts take precedence over earlier
// ones with the same suffix.
func (fs *FS) Mount(a zxcore.Asset) {
	a.Suffix = normalize(a.Suffix)
	fs.assets = append([]zxcore.Asset{a}, fs.assets...)
}

// normalize turns path into a slash separated path with a leading slash so
// that suffix matches always start on a component boundary.
func normalize(path string) string {
	return "/" + strings.TrimLeft(filepath.ToSlash(path), "/")
}

// find returns the asset whose suffix matches path.
func (fs *FS) find(path string) (zxcore.Asset, bool) {
	p := normalize(path)
	for _, a := range fs.assets {
		if strings.HasSuffix(p, a.Suffix) {
			return a, true
		}
	}
	return zxcore.Asset{}, false
}

// Open opens path. Reads are served from an embedded asset when one
// matches; everything else goes to the host filesystem.
func (fs *FS) Open(path string, write bool) (zxcore.File, error) {
	if !write {
		if a, ok := fs.find(path); ok {
			fs.log.Logf(zxcore.LogInfo, "Opened %q from memory", path)
			return &memFile{data: a.Data}, nil
		}
	}

	var f *os.File
	var err error
	if write {
		f, err = os.Create(path)
	} else {
		f, err = os.Open(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrOpenFailed, path, err)
	}

	fs.log.Logf(zxcore.LogInfo, "Opened %q from the file system", path)
	return &hostFile{f: f}, nil
}

// Exists reports whether path can be opened for reading. Embedded assets
// exist regardless of what is on disk.
func (fs *FS) Exists(path string) bool {
	fs.log.Logf(zxcore.LogInfo, "Checking if %q exists", path)
	if _, ok := fs.find(path); ok {
		return true
	}
	f, err := os.Open(path)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

// ReadFile reads the whole of path. A length mismatch is logged and
// reported as ErrShortRead along with the bytes that did arrive.
func (fs *FS) ReadFile(path string) ([]byte, error) {
	f, err := fs.Open(path, false)
	if err != nil {
		fs.log.Logf(zxcore.LogError, "couldn't open '%s': %v", path, err)
		return nil, err
	}
	defer f.Close()

	length, err := f.Len()
	if err != nil {
		fs.log.Logf(zxcore.LogError, "couldn't stat file: %v", err)
		return nil, err
	}

	buf := make([]byte, length)
	n, err := io.ReadFull(f, buf)
	if err != nil {
		fs.log.Logf(zxcore.LogError, "error reading file: expected %d bytes, but read only %d", length, n)
		return buf[:n], fmt.Errorf("%w: %s: %d of %d bytes", ErrShortRead, path, n, length)
	}
	return buf, nil
}

// WriteFile writes data to path on the host filesystem.
func (fs *FS) WriteFile(path string, data []byte) error {
	f, err := fs.Open(path, true)
	if err != nil {
		fs.log.Logf(zxcore.LogError, "couldn't open '%s' for writing: %v", path, err)
		return err
	}

	n, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil || n != len(data) {
		fs.log.Logf(zxcore.LogError, "error writing file: expected %d bytes, but wrote only %d", len(data), n)
		return fmt.Errorf("%w: %s: %d of %d bytes", ErrShortWrite, path, n, len(data))
	}
	return cerr
}

// FindAuxiliary resolves name inside <system>/fuse/<kind dir>. Existence
// is checked with Exists so embedded ROMs are found without a system
// directory on disk.
func (fs *FS) FindAuxiliary(kind zxcore.AuxiliaryKind, name string) (string, bool) {
	dir, ok := auxiliaryDirs[kind]
	if !ok {
		fs.log.Logf(zxcore.LogError, "Unknown auxiliary file type %d", kind)
		return "", false
	}

	base := "."
	if fs.systemDir != nil {
		if sys, ok := fs.systemDir(); ok && sys != "" {
			base = sys
		} else {
			fs.log.Logf(zxcore.LogError, "Could not get the system directory")
		}
	}

	path := filepath.Join(base, "fuse", filepath.FromSlash(dir), name)
	fs.log.Logf(zxcore.LogInfo, "Returning %q as path for %s", path, dir)
	if !fs.Exists(path) {
		return "", false
	}
	return path, true
}
