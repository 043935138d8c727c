package core

import (
	"bytes"
	"errors"
	"testing"

	"github.com/user-none/efuse/enginetest"
)

func TestSnapshot_RoundTrip(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})
	c.Run()
	e.Poke(0x8000, 0x42)
	pc := e.PC()

	size := c.SerializeSize()
	if size == 0 {
		t.Fatal("SerializeSize = 0")
	}
	if e.Pauses != 1 || e.PauseDepth != 0 {
		t.Errorf("pauses = %d depth %d, want one balanced pause", e.Pauses, e.PauseDepth)
	}

	buf := make([]byte, size)
	if err := c.Serialize(buf); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}

	e.Poke(0x8000, 0x00)
	c.Run()

	if err := c.Unserialize(buf); err != nil {
		t.Fatalf("Unserialize failed: %v", err)
	}
	if got := e.Peek(0x8000); got != 0x42 {
		t.Errorf("memory = %#02x after restore, want 0x42", got)
	}
	if e.PC() != pc {
		t.Errorf("PC = %#04x after restore, want %#04x", e.PC(), pc)
	}
}

// capture returns a fresh snapshot of the running session.
func capture(t *testing.T, c *Core) []byte {
	t.Helper()
	buf := make([]byte, c.SerializeSize())
	if len(buf) == 0 {
		t.Fatal("SerializeSize = 0")
	}
	if err := c.Serialize(buf); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	return buf
}

func TestSnapshot_RestoreReplaysIdentically(t *testing.T) {
	const frames = 5

	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})
	c.Run()
	e.Poke(0x8000, 0x42)
	e.Poke(0xC123, 0x99)
	e.SetBorder(3)

	saved := capture(t, c)
	for i := 0; i < frames; i++ {
		c.Run()
	}
	want := capture(t, c)

	// Diverge, then restore and replay the same number of frames.
	e.Poke(0x8000, 0)
	e.Poke(0xFFFF, 0x55)
	c.Run()
	c.Run()
	if err := c.Unserialize(saved); err != nil {
		t.Fatalf("Unserialize failed: %v", err)
	}
	for i := 0; i < frames; i++ {
		c.Run()
	}
	got := capture(t, c)

	if !bytes.Equal(got, want) {
		t.Error("registers or memory differ after replaying from the restored snapshot")
	}
}

func TestSnapshot_FailedCaptureReportsZero(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	if c.SerializeSize() == 0 {
		t.Fatal("first capture failed")
	}

	e.SnapshotErr = errors.New("disk full")
	if n := c.SerializeSize(); n != 0 {
		t.Errorf("SerializeSize after failed capture = %d, want 0", n)
	}
	if !h.errorLogged() {
		t.Error("failed capture not logged")
	}
	if err := c.Serialize(make([]byte, 1<<20)); !errors.Is(err, ErrNoSnapshot) {
		t.Errorf("Serialize = %v, want ErrNoSnapshot", err)
	}
	if e.PauseDepth != 0 {
		t.Errorf("pause depth = %d, want balanced", e.PauseDepth)
	}
}

func TestSnapshot_SerializeUsesCapturedBuffer(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	size := c.SerializeSize()
	first := make([]byte, size)
	c.Serialize(first)

	// Running on does not change what Serialize returns until the next
	// size query.
	c.Run()
	second := make([]byte, size)
	c.Serialize(second)
	if !bytes.Equal(first, second) {
		t.Error("Serialize recaptured without SerializeSize")
	}
	if e.Pauses != 1 {
		t.Errorf("pauses = %d, want 1", e.Pauses)
	}
}

func TestSnapshot_SerializeWithoutSize(t *testing.T) {
	h := newFakeHost()
	c, _ := newLoadedCore(t, h, &enginetest.Factory{})

	buf := make([]byte, 1<<20)
	if err := c.Serialize(buf); err != nil {
		t.Fatalf("Serialize failed: %v", err)
	}
	if !bytes.HasPrefix(buf, []byte("ZXST")) {
		t.Errorf("snapshot starts %q, want ZXST", buf[:4])
	}
}

func TestSnapshot_BufferTooSmall(t *testing.T) {
	h := newFakeHost()
	c, _ := newLoadedCore(t, h, &enginetest.Factory{})

	size := c.SerializeSize()
	err := c.Serialize(make([]byte, size-1))
	if !errors.Is(err, ErrBufferTooSmall) {
		t.Errorf("Serialize = %v, want ErrBufferTooSmall", err)
	}
	if !h.errorLogged() {
		t.Error("short buffer not logged")
	}
}

func TestSnapshot_BadDataLeavesState(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})
	e.Poke(0x9000, 0x77)

	if err := c.Unserialize([]byte("garbage")); err == nil {
		t.Fatal("Unserialize of garbage succeeded")
	}
	if e.Peek(0x9000) != 0x77 {
		t.Error("failed restore changed memory")
	}
}

func TestSnapshot_NotLoaded(t *testing.T) {
	c := New(newFakeHost(), &enginetest.Factory{})

	if c.SerializeSize() != 0 {
		t.Error("SerializeSize without a session should be 0")
	}
	if err := c.Serialize(make([]byte, 10)); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Serialize = %v, want ErrNotLoaded", err)
	}
	if err := c.Unserialize([]byte{1}); !errors.Is(err, ErrNotLoaded) {
		t.Errorf("Unserialize = %v, want ErrNotLoaded", err)
	}
}
