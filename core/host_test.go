package core

import (
	"fmt"
	"testing"

	zxcore "github.com/user-none/efuse/api"
	"github.com/user-none/efuse/enginetest"
)

type logEntry struct {
	level zxcore.LogLevel
	msg   string
}

type videoCall struct {
	frame  []uint16
	width  int
	height int
	pitch  int
}

// fakeHost is an in-memory Host. Time only moves when a test moves it.
type fakeHost struct {
	vars      map[string]string
	updated   bool
	rejectRGB bool
	noClock   bool
	noLogger  bool
	systemDir string

	now int64

	pad  [MaxPorts]map[uint]bool
	keys map[RetroKey]bool

	logs        []logEntry
	variables   []Variable
	controllers []ControllerInfo
	descs       []InputDescriptor
	geometries  []Geometry
	video       []videoCall
	samples     int
	polls       int
}

var _ Host = (*fakeHost)(nil)

func newFakeHost() *fakeHost {
	h := &fakeHost{
		vars: make(map[string]string),
		keys: make(map[RetroKey]bool),
		now:  1000000,
	}
	for i := range h.pad {
		h.pad[i] = make(map[uint]bool)
	}
	return h
}

func (h *fakeHost) Logger() zxcore.Logger {
	if h.noLogger {
		return nil
	}
	return zxcore.LoggerFunc(func(level zxcore.LogLevel, format string, args ...any) {
		h.logs = append(h.logs, logEntry{level, fmt.Sprintf(format, args...)})
	})
}

func (h *fakeHost) Clock() Clock {
	if h.noClock {
		return nil
	}
	return func() int64 { return h.now }
}

func (h *fakeHost) SetPixelFormatRGB565() bool { return !h.rejectRGB }

func (h *fakeHost) SetVariables(vars []Variable) { h.variables = vars }

func (h *fakeHost) Variable(key string) (string, bool) {
	v, ok := h.vars[key]
	return v, ok
}

func (h *fakeHost) VariablesUpdated() bool {
	u := h.updated
	h.updated = false
	return u
}

func (h *fakeHost) SetInputDescriptors(d []InputDescriptor) { h.descs = d }

func (h *fakeHost) SetControllerInfo(p []ControllerInfo) { h.controllers = p }

func (h *fakeHost) SystemDirectory() (string, bool) {
	return h.systemDir, h.systemDir != ""
}

func (h *fakeHost) SetGeometry(g Geometry) { h.geometries = append(h.geometries, g) }

func (h *fakeHost) VideoRefresh(frame []uint16, width, height, pitch int) {
	h.video = append(h.video, videoCall{frame, width, height, pitch})
}

func (h *fakeHost) AudioSampleBatch(samples []int16) { h.samples += len(samples) }

func (h *fakeHost) InputPoll() { h.polls++ }

func (h *fakeHost) InputState(port, device, index, id uint) int16 {
	var down bool
	switch device {
	case DeviceJoypad:
		down = h.pad[port][id]
	case DeviceKeyboard:
		down = h.keys[RetroKey(id)]
	}
	if down {
		return 1
	}
	return 0
}

func (h *fakeHost) lastVideo(t *testing.T) videoCall {
	t.Helper()
	if len(h.video) == 0 {
		t.Fatal("no video delivered")
	}
	return h.video[len(h.video)-1]
}

func (h *fakeHost) errorLogged() bool {
	for _, l := range h.logs {
		if l.level == zxcore.LogError {
			return true
		}
	}
	return false
}

// newLoadedCore returns a core that has booted into BASIC. Hosts without a
// system directory get an empty one.
func newLoadedCore(t *testing.T, h *fakeHost, f *enginetest.Factory) (*Core, *enginetest.Engine) {
	t.Helper()
	if h.systemDir == "" {
		h.systemDir = t.TempDir()
	}
	c := New(h, f)
	c.SetEnvironment()
	c.Init()
	if err := c.Load(""); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	return c, f.Last
}

// tap presses and releases a port 0 button over two frames.
func tap(c *Core, h *fakeHost, id uint) {
	h.pad[0][id] = true
	c.Run()
	h.pad[0][id] = false
	c.Run()
}

func eventsOf(e *enginetest.Engine, types ...zxcore.EventType) []zxcore.InputEvent {
	var out []zxcore.InputEvent
	for _, ev := range e.Events {
		for _, t := range types {
			if ev.Type == t {
				out = append(out, ev)
			}
		}
	}
	return out
}
