//go:build !libretro

package standalone

import (
	"maps"
	"sync"

	"github.com/user-none/efuse/core"
)

const maxPlayers = 2

// SharedInput holds controller and keyboard state written by the Ebiten
// thread and read by the emulation goroutine. Pad state is a bitmask of
// joypad button ids.
type SharedInput struct {
	mu   sync.Mutex
	pads [maxPlayers]uint16
	keys map[core.RetroKey]bool
}

// Set updates the button bitmask for a player from the Ebiten thread.
func (si *SharedInput) Set(player int, buttons uint16) {
	if player < 0 || player >= maxPlayers {
		return
	}
	si.mu.Lock()
	si.pads[player] = buttons
	si.mu.Unlock()
}

// SetKeys replaces the set of held host keys.
func (si *SharedInput) SetKeys(keys []core.RetroKey) {
	held := make(map[core.RetroKey]bool, len(keys))
	for _, k := range keys {
		held[k] = true
	}
	si.mu.Lock()
	si.keys = held
	si.mu.Unlock()
}

// Read returns the current button bitmasks and a copy of the held keys.
func (si *SharedInput) Read() ([maxPlayers]uint16, map[core.RetroKey]bool) {
	si.mu.Lock()
	pads := si.pads
	keys := maps.Clone(si.keys)
	si.mu.Unlock()
	if keys == nil {
		keys = map[core.RetroKey]bool{}
	}
	return pads, keys
}

// SharedFramebuffer holds RGBA pixels written by the emulation goroutine
// and read by Ebiten's Draw() method. Uses separate write and read buffers
// so the emu goroutine can write new data while Draw uses the read copy.
type SharedFramebuffer struct {
	mu          sync.Mutex
	writePixels []byte
	readPixels  []byte
	width       int
	height      int
}

// NewSharedFramebuffer creates a framebuffer with room for width x height
// RGBA pixels.
func NewSharedFramebuffer(width, height int) *SharedFramebuffer {
	size := width * height * 4
	return &SharedFramebuffer{
		writePixels: make([]byte, size),
		readPixels:  make([]byte, size),
	}
}

// Update converts an RGB565 frame with a byte pitch into the write buffer.
// A nil frame repeats the previous picture.
func (sf *SharedFramebuffer) Update(frame []uint16, width, height, pitch int) {
	if frame == nil || width <= 0 || height <= 0 {
		return
	}
	stride := pitch / 2
	if stride < width || len(frame) < (height-1)*stride+width {
		return
	}

	sf.mu.Lock()
	if width*height*4 > len(sf.writePixels) {
		sf.mu.Unlock()
		return
	}
	for y := 0; y < height; y++ {
		row := frame[y*stride : y*stride+width]
		rgb565ToRGBA(sf.writePixels[y*width*4:(y+1)*width*4], row)
	}
	sf.width = width
	sf.height = height
	sf.mu.Unlock()
}

// Read returns a snapshot of the current framebuffer state.
func (sf *SharedFramebuffer) Read() (pixels []byte, width, height int) {
	sf.mu.Lock()
	width = sf.width
	height = sf.height
	n := width * height * 4
	if n > 0 {
		copy(sf.readPixels[:n], sf.writePixels[:n])
	}
	pixels = sf.readPixels[:n]
	sf.mu.Unlock()
	return
}

// rgb565ToRGBA expands len(src) pixels into dst.
func rgb565ToRGBA(dst []byte, src []uint16) {
	for i, p := range src {
		r := byte(p >> 11 & 0x1f)
		g := byte(p >> 5 & 0x3f)
		b := byte(p & 0x1f)
		d := dst[i*4 : i*4+4]
		d[0] = r<<3 | r>>2
		d[1] = g<<2 | g>>4
		d[2] = b<<3 | b>>2
		d[3] = 0xff
	}
}

// EmuControl queues work from the Ebiten thread for the emulation
// goroutine, which runs it between frames, and coordinates shutdown.
type EmuControl struct {
	mu      sync.Mutex
	pending []func()
	running bool
}

// NewEmuControl creates a new emulation control.
func NewEmuControl() *EmuControl {
	return &EmuControl{running: true}
}

// Post queues fn. It is dropped once the goroutine has been stopped.
func (ec *EmuControl) Post(fn func()) {
	ec.mu.Lock()
	if ec.running {
		ec.pending = append(ec.pending, fn)
	}
	ec.mu.Unlock()
}

// Drain runs queued work in order. Called by the emulation goroutine.
// Returns false if the goroutine should exit.
func (ec *EmuControl) Drain() bool {
	ec.mu.Lock()
	if !ec.running {
		ec.mu.Unlock()
		return false
	}
	work := ec.pending
	ec.pending = nil
	ec.mu.Unlock()

	for _, fn := range work {
		fn()
	}
	return true
}

// Stop signals the emulation goroutine to exit.
func (ec *EmuControl) Stop() {
	ec.mu.Lock()
	ec.running = false
	ec.pending = nil
	ec.mu.Unlock()
}

// ShouldRun returns true if the goroutine should continue running.
func (ec *EmuControl) ShouldRun() bool {
	ec.mu.Lock()
	r := ec.running
	ec.mu.Unlock()
	return r
}

// SharedPath is a path written by one goroutine and read by another.
type SharedPath struct {
	mu   sync.Mutex
	path string
}

// Set replaces the path.
func (sp *SharedPath) Set(path string) {
	sp.mu.Lock()
	sp.path = path
	sp.mu.Unlock()
}

// Get returns the path.
func (sp *SharedPath) Get() string {
	sp.mu.Lock()
	defer sp.mu.Unlock()
	return sp.path
}
