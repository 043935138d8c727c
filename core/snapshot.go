package core

import (
	"fmt"

	zxcore "github.com/user-none/efuse/api"
)

// snapshotName only selects the container format the engine writes.
const snapshotName = "dummy.szx"

// snapshotSink captures engine snapshot writes into the core's buffer.
type snapshotSink struct {
	c *Core
}

func (s snapshotSink) WriteSnapshot(name string, data []byte) error {
	s.c.log.Logf(zxcore.LogDebug, "WriteSnapshot(%q, %d bytes)", name, len(data))
	s.c.snapshot = append([]byte(nil), data...)
	return nil
}

// SerializeSize captures a fresh snapshot and returns its size in bytes.
// A failed capture leaves no snapshot and reports 0.
func (c *Core) SerializeSize() int {
	if c.engine == nil {
		return 0
	}
	c.snapshot = nil
	c.engine.Pause()
	err := c.engine.WriteSnapshot(snapshotName)
	c.engine.Resume()
	if err != nil {
		c.log.Logf(zxcore.LogError, "Snapshot capture failed: %v", err)
		c.snapshot = nil
	}
	return len(c.snapshot)
}

// Serialize copies the last captured snapshot into dst. A snapshot is
// captured first if none has been taken this session.
func (c *Core) Serialize(dst []byte) error {
	if c.engine == nil {
		return ErrNotLoaded
	}
	if c.snapshot == nil && c.SerializeSize() == 0 {
		return ErrNoSnapshot
	}
	if len(dst) < len(c.snapshot) {
		c.log.Logf(zxcore.LogError, "Provided buffer size of %d is less than the required size of %d", len(dst), len(c.snapshot))
		return fmt.Errorf("%w: have %d, need %d", ErrBufferTooSmall, len(dst), len(c.snapshot))
	}
	copy(dst, c.snapshot)
	return nil
}

// Unserialize restores the machine from an SZX snapshot.
func (c *Core) Unserialize(src []byte) error {
	if c.engine == nil {
		return ErrNotLoaded
	}
	c.log.Logf(zxcore.LogDebug, "Unserialize(%d bytes)", len(src))
	if err := c.engine.ReadSnapshot(src, zxcore.SnapshotSZX); err != nil {
		c.log.Logf(zxcore.LogError, "Snapshot restore failed: %v", err)
		return fmt.Errorf("restore snapshot: %w", err)
	}
	return nil
}
