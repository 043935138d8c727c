//go:build !libretro

package standalone

import (
	"io"
	"sync"
)

// AudioRingBuffer is a fixed size byte FIFO between the emulation goroutine
// and oto's reader. Writes never block; when full the oldest bytes are
// dropped. Reads block until data arrives or the buffer is closed.
type AudioRingBuffer struct {
	mu       sync.Mutex
	cond     *sync.Cond
	buf      []byte
	readPos  int
	writePos int
	count    int
	closed   bool
}

// NewAudioRingBuffer creates a buffer holding up to capacity bytes.
func NewAudioRingBuffer(capacity int) *AudioRingBuffer {
	rb := &AudioRingBuffer{buf: make([]byte, capacity)}
	rb.cond = sync.NewCond(&rb.mu)
	return rb
}

// Write appends data, overwriting the oldest bytes on overflow.
func (rb *AudioRingBuffer) Write(data []byte) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	if rb.closed || len(data) == 0 {
		return
	}

	capacity := len(rb.buf)
	if len(data) >= capacity {
		data = data[len(data)-capacity:]
		copy(rb.buf, data)
		rb.readPos = 0
		rb.writePos = 0
		rb.count = capacity
		rb.cond.Broadcast()
		return
	}

	if over := rb.count + len(data) - capacity; over > 0 {
		rb.readPos = (rb.readPos + over) % capacity
		rb.count -= over
	}

	n := copy(rb.buf[rb.writePos:], data)
	copy(rb.buf, data[n:])
	rb.writePos = (rb.writePos + len(data)) % capacity
	rb.count += len(data)
	rb.cond.Broadcast()
}

// Read implements io.Reader for oto. It returns io.EOF once the buffer is
// closed and drained.
func (rb *AudioRingBuffer) Read(p []byte) (int, error) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	for rb.count == 0 && !rb.closed {
		rb.cond.Wait()
	}
	if rb.count == 0 {
		return 0, io.EOF
	}

	n := min(len(p), rb.count)
	first := copy(p[:n], rb.buf[rb.readPos:])
	if first < n {
		copy(p[first:n], rb.buf)
	}
	rb.readPos = (rb.readPos + n) % len(rb.buf)
	rb.count -= n
	return n, nil
}

// Buffered returns the number of unread bytes.
func (rb *AudioRingBuffer) Buffered() int {
	rb.mu.Lock()
	defer rb.mu.Unlock()
	return rb.count
}

// Clear discards all unread bytes.
func (rb *AudioRingBuffer) Clear() {
	rb.mu.Lock()
	rb.readPos = 0
	rb.writePos = 0
	rb.count = 0
	rb.mu.Unlock()
}

// Close stops further writes and wakes blocked readers.
func (rb *AudioRingBuffer) Close() {
	rb.mu.Lock()
	rb.closed = true
	rb.cond.Broadcast()
	rb.mu.Unlock()
}
