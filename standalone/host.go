//go:build !libretro

package standalone

import (
	"fmt"
	"log"
	"time"

	zxcore "github.com/user-none/efuse/api"
	"github.com/user-none/efuse/core"
)

// harnessHost implements core.Host for the desktop window. Every method
// runs on the emulation goroutine; shared state crosses to the Ebiten
// thread through SharedInput and SharedFramebuffer.
type harnessHost struct {
	start     time.Time
	input     *SharedInput
	fb        *SharedFramebuffer
	audio     *AudioPlayer
	options   *optionStore
	systemDir string

	pads [maxPlayers]uint16
	keys map[core.RetroKey]bool
}

func newHarnessHost(input *SharedInput, fb *SharedFramebuffer, audio *AudioPlayer, options *optionStore, systemDir string) *harnessHost {
	return &harnessHost{
		start:     time.Now(),
		input:     input,
		fb:        fb,
		audio:     audio,
		options:   options,
		systemDir: systemDir,
		keys:      map[core.RetroKey]bool{},
	}
}

func (h *harnessHost) Logger() zxcore.Logger {
	return zxcore.LoggerFunc(func(level zxcore.LogLevel, format string, args ...any) {
		log.Printf("[%s] %s", level, fmt.Sprintf(format, args...))
	})
}

func (h *harnessHost) Clock() core.Clock {
	return func() int64 {
		return time.Since(h.start).Microseconds()
	}
}

func (h *harnessHost) SetPixelFormatRGB565() bool { return true }

func (h *harnessHost) SetVariables(vars []core.Variable) {
	h.options.register(vars)
}

func (h *harnessHost) Variable(key string) (string, bool) {
	return h.options.get(key)
}

func (h *harnessHost) VariablesUpdated() bool {
	return h.options.takeUpdated()
}

func (h *harnessHost) SetInputDescriptors(descs []core.InputDescriptor) {}

func (h *harnessHost) SetControllerInfo(ports []core.ControllerInfo) {}

func (h *harnessHost) SystemDirectory() (string, bool) {
	return h.systemDir, h.systemDir != ""
}

// SetGeometry needs no action; frames carry their own size.
func (h *harnessHost) SetGeometry(g core.Geometry) {}

func (h *harnessHost) VideoRefresh(frame []uint16, width, height, pitch int) {
	h.fb.Update(frame, width, height, pitch)
}

func (h *harnessHost) AudioSampleBatch(samples []int16) {
	if h.audio != nil {
		h.audio.QueueSamples(samples)
	}
}

func (h *harnessHost) InputPoll() {
	h.pads, h.keys = h.input.Read()
}

func (h *harnessHost) InputState(port, device, index, id uint) int16 {
	switch device {
	case core.DeviceJoypad:
		if port < maxPlayers && id < 16 && h.pads[port]&(1<<id) != 0 {
			return 1
		}
	case core.DeviceKeyboard:
		if h.keys[core.RetroKey(id)] {
			return 1
		}
	}
	return 0
}
