//go:build !libretro

package standalone

import (
	"unicode"

	"github.com/user-none/efuse/core"
)

// Frames a typed character is held, then released, so the ROM's keyboard
// scan sees every press.
const (
	typeHoldFrames    = 3
	typeReleaseFrames = 3
)

// maxTypedRunes bounds one paste.
const maxTypedRunes = 4096

// keysForRune returns the host keys that type r, or nil when the keyboard
// device cannot produce it. Upper case letters are typed with Shift.
func keysForRune(r rune) []core.RetroKey {
	switch {
	case r == '\n' || r == '\r':
		return []core.RetroKey{core.RetroKeyReturn}
	case r >= 'A' && r <= 'Z':
		return []core.RetroKey{core.RetroKeyLShift, core.RetroKey(unicode.ToLower(r))}
	case r >= ' ' && r <= '~':
		// Printable ASCII key codes equal their character.
		k := core.RetroKey(r)
		if _, ok := core.TranslateKey(k); ok {
			return []core.RetroKey{k}
		}
	}
	return nil
}

// Typist turns pasted text into timed key presses, one frame at a time.
type Typist struct {
	strokes [][]core.RetroKey
	frame   int
}

// Type queues text. Characters the keyboard cannot produce are skipped;
// a "\r\n" pair types a single Return.
func (t *Typist) Type(text string) int {
	queued := 0
	prev := rune(0)
	for _, r := range text {
		if queued >= maxTypedRunes {
			break
		}
		if r == '\n' && prev == '\r' {
			prev = r
			continue
		}
		prev = r
		if keys := keysForRune(r); keys != nil {
			t.strokes = append(t.strokes, keys)
			queued++
		}
	}
	return queued
}

// Busy reports whether keys are still queued.
func (t *Typist) Busy() bool {
	return len(t.strokes) > 0
}

// Cancel drops all queued keys.
func (t *Typist) Cancel() {
	t.strokes = nil
	t.frame = 0
}

// Next returns the keys to hold this frame and advances by one frame.
func (t *Typist) Next() []core.RetroKey {
	if len(t.strokes) == 0 {
		return nil
	}

	var keys []core.RetroKey
	if t.frame < typeHoldFrames {
		keys = t.strokes[0]
	}

	t.frame++
	if t.frame >= typeHoldFrames+typeReleaseFrames {
		t.strokes = t.strokes[1:]
		t.frame = 0
	}
	return keys
}
