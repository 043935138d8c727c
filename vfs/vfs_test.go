package vfs

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	zxcore "github.com/user-none/efuse/api"
)

// testROM stands in for an embedded ROM image
var testROM = bytes.Repeat([]byte{0xF3, 0xAF, 0x11, 0xFF}, 4096)

func newTestFS(t *testing.T, systemDir string) *FS {
	t.Helper()
	assets := []zxcore.Asset{
		{Suffix: "/fuse/roms/48.rom", Data: testROM},
		{Suffix: "/fuse/lib/tape_48.szx", Data: []byte("ZXST")},
	}
	return New(assets, func() (string, bool) { return systemDir, systemDir != "" }, nil)
}

// TestOpen_EmbeddedPreferred verifies an embedded asset wins over a host file
// sharing the same trailing path
func TestOpen_EmbeddedPreferred(t *testing.T) {
	dir := t.TempDir()
	romDir := filepath.Join(dir, "fuse", "roms")
	if err := os.MkdirAll(romDir, 0755); err != nil {
		t.Fatal(err)
	}
	hostPath := filepath.Join(romDir, "48.rom")
	if err := os.WriteFile(hostPath, []byte("host copy"), 0644); err != nil {
		t.Fatal(err)
	}

	fs := newTestFS(t, dir)
	f, err := fs.Open(hostPath, false)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer f.Close()

	n, err := f.Len()
	if err != nil {
		t.Fatalf("Len failed: %v", err)
	}
	if n != int64(len(testROM)) {
		t.Errorf("Len = %d, want %d", n, len(testROM))
	}

	data, err := io.ReadAll(f)
	if err != nil {
		t.Fatalf("ReadAll failed: %v", err)
	}
	if !bytes.Equal(data, testROM) {
		t.Error("read data does not match embedded asset")
	}
}

// TestOpen_IndependentCursors verifies two handles on one asset do not
// share a read position
func TestOpen_IndependentCursors(t *testing.T) {
	fs := newTestFS(t, "")

	a, _ := fs.Open("/x/fuse/roms/48.rom", false)
	b, _ := fs.Open("/y/fuse/roms/48.rom", false)

	bufA := make([]byte, 4)
	if _, err := io.ReadFull(a, bufA); err != nil {
		t.Fatal(err)
	}
	if _, err := io.ReadFull(a, bufA); err != nil {
		t.Fatal(err)
	}

	bufB := make([]byte, 4)
	if _, err := io.ReadFull(b, bufB); err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(bufB, testROM[:4]) {
		t.Errorf("second handle read %x, want %x", bufB, testROM[:4])
	}
}

// TestOpen_SuffixBoundary verifies suffixes only match on a path component
func TestOpen_SuffixBoundary(t *testing.T) {
	fs := newTestFS(t, "")
	if _, err := fs.Open("/tmp/notfuse/roms/48.rom", false); err == nil {
		t.Error("expected partial component match to fall through to the host and fail")
	}
}

// TestOpen_Missing verifies the failed sentinel is returned
func TestOpen_Missing(t *testing.T) {
	fs := newTestFS(t, "")
	_, err := fs.Open(filepath.Join(t.TempDir(), "nope.tap"), false)
	if !errors.Is(err, ErrOpenFailed) {
		t.Errorf("err = %v, want ErrOpenFailed", err)
	}
}

// TestOpen_WriteGoesToHost verifies write mode ignores embedded assets
func TestOpen_WriteGoesToHost(t *testing.T) {
	dir := t.TempDir()
	fs := newTestFS(t, dir)
	path := filepath.Join(dir, "fuse", "roms", "48.rom")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}

	if err := fs.WriteFile(path, []byte("written")); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	onDisk, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if string(onDisk) != "written" {
		t.Errorf("host file = %q, want \"written\"", onDisk)
	}

	// Reads still come from memory
	data, err := fs.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(data, testROM) {
		t.Error("read after write should still be served from the embedded asset")
	}
}

// TestMemFile_ReadOnly verifies embedded files reject writes
func TestMemFile_ReadOnly(t *testing.T) {
	fs := newTestFS(t, "")
	f, err := fs.Open("fuse/lib/tape_48.szx", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.Write([]byte{1}); !errors.Is(err, ErrReadOnly) {
		t.Errorf("Write err = %v, want ErrReadOnly", err)
	}
}

// TestExists verifies embedded paths exist without a host file
func TestExists(t *testing.T) {
	dir := t.TempDir()
	fs := newTestFS(t, dir)

	if !fs.Exists(filepath.Join(dir, "fuse", "roms", "48.rom")) {
		t.Error("embedded ROM should exist")
	}
	if fs.Exists(filepath.Join(dir, "fuse", "roms", "128-0.rom")) {
		t.Error("unknown ROM should not exist")
	}

	host := filepath.Join(dir, "game.tap")
	if err := os.WriteFile(host, []byte{0x13, 0x00}, 0644); err != nil {
		t.Fatal(err)
	}
	if !fs.Exists(host) {
		t.Error("host file should exist")
	}
}

// TestReadFile_Host verifies whole-file reads from disk
func TestReadFile_Host(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "game.tzx")
	want := []byte("ZXTape!\x1a\x01\x14")
	if err := os.WriteFile(path, want, 0644); err != nil {
		t.Fatal(err)
	}

	fs := newTestFS(t, dir)
	got, err := fs.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(got, want) {
		t.Errorf("ReadFile = %q, want %q", got, want)
	}
}

// TestReadFile_LogsErrors verifies failures surface through the logger
func TestReadFile_LogsErrors(t *testing.T) {
	var levels []zxcore.LogLevel
	log := zxcore.LoggerFunc(func(level zxcore.LogLevel, format string, args ...any) {
		levels = append(levels, level)
	})
	fs := New(nil, nil, log)

	if _, err := fs.ReadFile(filepath.Join(t.TempDir(), "missing.tap")); err == nil {
		t.Fatal("expected error")
	}

	found := false
	for _, l := range levels {
		if l == zxcore.LogError {
			found = true
		}
	}
	if !found {
		t.Error("expected an error severity log entry")
	}
}

// TestFindAuxiliary verifies ROM lookup resolves under <system>/fuse/roms
func TestFindAuxiliary(t *testing.T) {
	dir := t.TempDir()
	fs := newTestFS(t, dir)

	path, ok := fs.FindAuxiliary(zxcore.AuxiliaryROM, "48.rom")
	if !ok {
		t.Fatal("48.rom not found")
	}
	if want := filepath.Join(dir, "fuse", "roms", "48.rom"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	if _, ok := fs.FindAuxiliary(zxcore.AuxiliaryROM, "plus2.rom"); ok {
		t.Error("plus2.rom should not be found")
	}
	if _, ok := fs.FindAuxiliary(zxcore.AuxiliaryKind(99), "48.rom"); ok {
		t.Error("unknown kind should not resolve")
	}
}

// TestFindAuxiliary_NoSystemDir verifies embedded assets are still found
func TestFindAuxiliary_NoSystemDir(t *testing.T) {
	fs := newTestFS(t, "")
	path, ok := fs.FindAuxiliary(zxcore.AuxiliaryLib, "tape_48.szx")
	if !ok {
		t.Fatal("tape_48.szx not found")
	}
	if !strings.HasSuffix(filepath.ToSlash(path), "fuse/lib/tape_48.szx") {
		t.Errorf("path = %q", path)
	}
}

// TestMount verifies mounted content shadows earlier assets
func TestMount(t *testing.T) {
	fs := newTestFS(t, "")
	fs.Mount(zxcore.Asset{Suffix: "archive.zip/game.tap", Data: []byte{1, 2, 3}})

	data, err := fs.ReadFile("archive.zip/game.tap")
	if err != nil {
		t.Fatalf("ReadFile failed: %v", err)
	}
	if !bytes.Equal(data, []byte{1, 2, 3}) {
		t.Errorf("data = %v", data)
	}
}
