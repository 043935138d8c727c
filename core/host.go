package core

import zxcore "github.com/user-none/efuse/api"

// Device classes understood by the input router.
const (
	DeviceJoypad   uint = 1
	DeviceKeyboard uint = 3
	DeviceAnalog   uint = 5
)

// DeviceSubclass builds a device id derived from a base class.
func DeviceSubclass(base, id uint) uint {
	return ((id + 1) << 8) | base
}

// Joypad button ids.
const (
	JoypadB      uint = 0
	JoypadY      uint = 1
	JoypadSelect uint = 2
	JoypadStart  uint = 3
	JoypadUp     uint = 4
	JoypadDown   uint = 5
	JoypadLeft   uint = 6
	JoypadRight  uint = 7
	JoypadA      uint = 8
)

// MaxPorts is the number of controller ports advertised to the host.
const MaxPorts = 7

// Clock returns a monotonic time in microseconds.
type Clock func() int64

// Variable is a core option as registered with the host: a key plus a
// description of the form "Label; first|second|...". The first value is
// the default.
type Variable struct {
	Key   string
	Value string
}

// InputDescriptor names one button of one port for the host's remapping UI.
type InputDescriptor struct {
	Port        uint
	Device      uint
	Index       uint
	ID          uint
	Description string
}

// ControllerDescription is one selectable device for a port.
type ControllerDescription struct {
	Name string
	ID   uint
}

// ControllerInfo lists the devices selectable for one port.
type ControllerInfo struct {
	Types []ControllerDescription
}

// Geometry is the video geometry reported to the host.
type Geometry struct {
	BaseWidth   int
	BaseHeight  int
	MaxWidth    int
	MaxHeight   int
	AspectRatio float32
}

// AVInfo is the audio/video timing and geometry of the core.
type AVInfo struct {
	Geometry   Geometry
	FPS        float64
	SampleRate float64
}

// Region is the video standard reported to the host.
type Region int

const (
	RegionNTSC Region = iota
	RegionPAL
)

// Host is everything the core needs from the frontend it runs inside.
type Host interface {
	// Logger returns the host log sink, or nil when it has none.
	Logger() zxcore.Logger

	// Clock returns the host's microsecond clock, or nil when it has none.
	Clock() Clock

	// SetPixelFormatRGB565 asks the host for 16 bit RGB565 frames.
	SetPixelFormatRGB565() bool

	SetVariables(vars []Variable)
	Variable(key string) (string, bool)
	VariablesUpdated() bool

	SetInputDescriptors(descs []InputDescriptor)
	SetControllerInfo(ports []ControllerInfo)

	// SystemDirectory returns the host's system directory if it has one.
	SystemDirectory() (string, bool)

	SetGeometry(g Geometry)

	// VideoRefresh presents a frame. A nil frame repeats the previous one.
	// pitch is in bytes.
	VideoRefresh(frame []uint16, width, height, pitch int)

	// AudioSampleBatch plays interleaved stereo samples.
	AudioSampleBatch(samples []int16)

	InputPoll()
	InputState(port, device, index, id uint) int16
}
