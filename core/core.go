// Package core adapts a ZX Spectrum engine to a frame driven host. It owns
// the frame pump, the video canvas and keyboard overlay, input routing,
// core options and the snapshot buffer. One Core serves one loaded session
// at a time and every method must be called from the same goroutine.
package core

import (
	"errors"
	"fmt"
	"path"

	zxcore "github.com/user-none/efuse/api"
	"github.com/user-none/efuse/content"
	"github.com/user-none/efuse/vfs"
)

var (
	// ErrNoClock is returned by Load when the host has no microsecond clock.
	ErrNoClock = errors.New("host has no performance clock")

	// ErrPixelFormat is returned by Load when the host rejects RGB565.
	ErrPixelFormat = errors.New("RGB565 is not supported")

	// ErrNotLoaded is returned when no engine is running.
	ErrNotLoaded = errors.New("no content loaded")

	// ErrNoSnapshot is returned when the engine produced no snapshot.
	ErrNoSnapshot = errors.New("no snapshot available")

	// ErrBufferTooSmall is returned by Serialize for an undersized buffer.
	ErrBufferTooSmall = errors.New("snapshot buffer too small")
)

// Timing reported to the host.
const (
	FPS        = 50.0
	SampleRate = 44100
)

// DefaultExtensions are the content types the adapter accepts.
var DefaultExtensions = []string{"tzx", "tap", "z80"}

// controllers are the joystick types selectable on every port, in the
// order of zxcore.JoystickType.
var controllers = []zxcore.JoystickType{
	zxcore.JoystickCursor,
	zxcore.JoystickKempston,
	zxcore.JoystickSinclair1,
	zxcore.JoystickSinclair2,
	zxcore.JoystickTimex1,
	zxcore.JoystickTimex2,
	zxcore.JoystickFuller,
}

// JoystickDevice returns the device id advertised for a joystick type.
func JoystickDevice(j zxcore.JoystickType) uint {
	return DeviceSubclass(DeviceAnalog, uint(j)-1)
}

// joystickForDevice maps a device id back to its joystick type.
func joystickForDevice(device uint) (zxcore.JoystickType, bool) {
	for _, j := range controllers {
		if JoystickDevice(j) == device {
			return j, true
		}
	}
	return zxcore.JoystickNone, false
}

// Core is the adapter between one host and one engine.
type Core struct {
	host    Host
	factory zxcore.EngineFactory
	log     zxcore.Logger
	clock   Clock

	engine   zxcore.Engine
	files    *vfs.FS
	settings zxcore.Settings
	opts     options

	geom  geometry
	video *video
	input inputRouter

	snapshot  []byte
	someAudio bool
}

// New creates a core. Nothing is sent to the host until SetEnvironment.
func New(host Host, factory zxcore.EngineFactory) *Core {
	c := &Core{
		host:     host,
		factory:  factory,
		log:      zxcore.NopLogger,
		settings: engineSettings(),
		opts:     defaultOptions(),
		video:    newVideo(),
	}
	c.input.reset()
	for i := range c.input.devices {
		c.input.devices[i] = DeviceJoypad
	}
	return c
}

// engineSettings are the settings every session starts from. Options only
// touch the tape and sound fields.
func engineSettings() zxcore.Settings {
	s := zxcore.DefaultSettings()
	s.AutoLoad = true
	s.DetectLoader = true
	s.Printer = false
	s.BWTV = false
	s.Sound = true
	s.SoundForce8Bit = false
	s.SoundFreq = SampleRate
	s.Kempston = true
	s.Fuller = true
	s.Joystick1Output = zxcore.JoystickCursor
	s.Joystick2Output = zxcore.JoystickKempston
	return s
}

// SetEnvironment registers the core options and controller types.
func (c *Core) SetEnvironment() {
	c.host.SetVariables(Variables)
	c.host.SetControllerInfo(PortControllers())
}

// PortControllers lists the joystick types selectable on each port.
func PortControllers() []ControllerInfo {
	types := make([]ControllerDescription, 0, len(controllers))
	for _, j := range controllers {
		types = append(types, ControllerDescription{Name: j.String(), ID: JoystickDevice(j)})
	}
	ports := make([]ControllerInfo, MaxPorts)
	for i := range ports {
		ports[i] = ControllerInfo{Types: types}
	}
	return ports
}

// InputDescriptors names the buttons of every port.
func InputDescriptors() []InputDescriptor {
	buttons := []struct {
		id   uint
		desc string
	}{
		{JoypadUp, "Up"},
		{JoypadDown, "Down"},
		{JoypadLeft, "Left"},
		{JoypadRight, "Right"},
		{JoypadA, "Fire"},
		{JoypadSelect, "Keyboard overlay"},
	}
	descs := make([]InputDescriptor, 0, MaxPorts*len(buttons))
	for port := uint(0); port < MaxPorts; port++ {
		for _, b := range buttons {
			descs = append(descs, InputDescriptor{
				Port:        port,
				Device:      DeviceJoypad,
				ID:          b.id,
				Description: b.desc,
			})
		}
	}
	return descs
}

// Init picks up the host logger and clock.
func (c *Core) Init() {
	if l := c.host.Logger(); l != nil {
		c.log = l
	}
	c.clock = c.host.Clock()
	if c.clock == nil {
		c.log.Logf(zxcore.LogWarn, "No performance clock available")
	}
}

// Deinit ends the session, if any, and drops the host logger.
func (c *Core) Deinit() {
	c.Unload()
	c.log = zxcore.NopLogger
	c.clock = nil
}

// SystemInfo describes the adapter to the host.
func (c *Core) SystemInfo() zxcore.SystemInfo {
	info := c.factory.SystemInfo()
	if len(info.Extensions) == 0 {
		info.Extensions = DefaultExtensions
	}
	info.NeedFullpath = true
	info.FPS = FPS
	info.SampleRate = SampleRate
	return info
}

// AVInfo reports the full canvas, so the host has room for the picture
// with and without the border.
func (c *Core) AVInfo() AVInfo {
	info := AVInfo{
		Geometry: Geometry{
			BaseWidth:  hardWidth,
			BaseHeight: hardHeight,
			MaxWidth:   hardWidth,
			MaxHeight:  hardHeight,
		},
		FPS:        FPS,
		SampleRate: SampleRate,
	}
	c.log.Logf(zxcore.LogInfo, "AV info: %dx%d (max %dx%d), %.1f fps, %.0f Hz",
		info.Geometry.BaseWidth, info.Geometry.BaseHeight,
		info.Geometry.MaxWidth, info.Geometry.MaxHeight,
		info.FPS, info.SampleRate)
	return info
}

// Region is always NTSC; the host only uses it for its own pacing.
func (c *Core) Region() Region {
	return RegionNTSC
}

// Load starts a session. contentPath names a tape or snapshot, possibly
// inside an archive; an empty path boots into BASIC.
func (c *Core) Load(contentPath string) error {
	if c.clock == nil {
		c.log.Logf(zxcore.LogError, "Fuse needs the perf interface")
		return ErrNoClock
	}
	if !c.host.SetPixelFormatRGB565() {
		c.log.Logf(zxcore.LogError, "RGB565 is not supported")
		return ErrPixelFormat
	}
	if c.engine != nil {
		c.Unload()
	}

	c.host.SetInputDescriptors(InputDescriptors())
	c.input.reset()
	c.snapshot = nil
	c.geom.reset()
	c.video = newVideo()

	c.files = vfs.New(c.factory.Assets(), c.host.SystemDirectory, c.log)

	enginePath := contentPath
	if contentPath != "" && content.IsArchive(contentPath) {
		ct, err := content.Load(contentPath, c.SystemInfo().Extensions)
		if err != nil {
			c.log.Logf(zxcore.LogError, "Cannot extract %s: %v", contentPath, err)
			return fmt.Errorf("load %s: %w", contentPath, err)
		}
		enginePath = path.Join(contentPath, ct.Name)
		c.files.Mount(zxcore.Asset{Suffix: enginePath, Data: ct.Data})
		c.log.Logf(zxcore.LogInfo, "Extracted %s from %s archive", ct.Name, ct.Archive)
	}

	c.updateVariables()

	if enginePath == "" {
		c.log.Logf(zxcore.LogInfo, "Booting into BASIC")
	} else {
		c.log.Logf(zxcore.LogInfo, "Loading %s", enginePath)
	}

	env := zxcore.Environment{
		Display:   c.video,
		Sound:     soundSink{c},
		Files:     c.files,
		Snapshots: snapshotSink{c},
		Timer:     busyTimer{c.clock},
		Log:       c.log,
		Settings:  c.settings,
	}
	eng, err := c.factory.NewEngine(env, enginePath)
	if err != nil {
		c.log.Logf(zxcore.LogError, "Engine failed to start: %v", err)
		return fmt.Errorf("start engine: %w", err)
	}
	c.engine = eng
	return nil
}

// Loaded reports whether a session is running.
func (c *Core) Loaded() bool {
	return c.engine != nil
}

// Reset is accepted and ignored; the machine keeps running.
func (c *Core) Reset() {
	c.log.Logf(zxcore.LogDebug, "Reset ignored")
}

// Unload ends the session and frees the snapshot buffer.
func (c *Core) Unload() {
	if c.engine != nil {
		if err := c.engine.Close(); err != nil {
			c.log.Logf(zxcore.LogWarn, "Engine close: %v", err)
		}
		c.engine = nil
	}
	c.snapshot = nil
	c.files = nil
}

// SetControllerPortDevice selects the device plugged into a port. Joystick
// types on ports 0 and 1 also select the engine's joystick outputs. The
// plain joypad, which frontends select before the user picks a type, keeps
// the port's current joystick. Unknown devices fall back to the raw
// keyboard, releasing any joystick buttons the port still holds.
func (c *Core) SetControllerPortDevice(port, device uint) {
	if port >= MaxPorts {
		c.log.Logf(zxcore.LogError, "Invalid port %d", port)
		return
	}

	if device == DeviceJoypad {
		c.input.devices[port] = device
		return
	}

	j, ok := joystickForDevice(device)
	if !ok {
		c.log.Logf(zxcore.LogError, "Unknown device 0x%04x, setting type to keyboard", device)
		c.input.devices[port] = DeviceKeyboard
		if port < joystickPorts {
			c.releaseJoystick(int(port))
			c.input.down[port] = [len(joypadButtons)]bool{}
		}
		return
	}

	c.input.devices[port] = device
	switch port {
	case 0:
		c.settings.Joystick1Output = j
		c.log.Logf(zxcore.LogInfo, "Joystick 1 set to %s", j)
	case 1:
		c.settings.Joystick2Output = j
		c.log.Logf(zxcore.LogInfo, "Joystick 2 set to %s", j)
	default:
		return
	}
	if c.engine != nil {
		c.engine.Apply(c.settings)
	}
}

func (c *Core) now() int64 {
	if c.clock == nil {
		return 0
	}
	return c.clock()
}
