package vfs

import (
	"io"
	"os"
)

// memFile is a read-only view of an embedded asset with its own cursor.
type memFile struct {
	data []byte
	pos  int
}

func (m *memFile) Read(p []byte) (int, error) {
	if m.pos >= len(m.data) {
		if len(p) == 0 {
			return 0, nil
		}
		return 0, io.EOF
	}
	n := copy(p, m.data[m.pos:])
	m.pos += n
	return n, nil
}

func (m *memFile) Write(p []byte) (int, error) {
	return 0, ErrReadOnly
}

func (m *memFile) Len() (int64, error) {
	return int64(len(m.data)), nil
}

func (m *memFile) Close() error {
	m.data = nil
	return nil
}

// hostFile is a file on the host filesystem.
type hostFile struct {
	f *os.File
}

func (h *hostFile) Read(p []byte) (int, error) {
	return h.f.Read(p)
}

func (h *hostFile) Write(p []byte) (int, error) {
	return h.f.Write(p)
}

func (h *hostFile) Len() (int64, error) {
	info, err := h.f.Stat()
	if err != nil {
		return -1, err
	}
	return info.Size(), nil
}

func (h *hostFile) Close() error {
	return h.f.Close()
}
