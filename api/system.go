package zxcore

import "fmt"

// SystemInfo describes the engine for the host.
type SystemInfo struct {
	Name         string
	Version      string
	Extensions   []string // without the leading dot, e.g. "tzx"
	NeedFullpath bool
	FPS          float64
	SampleRate   int
}

// SpeakerType selects the beeper output filter.
type SpeakerType string

const (
	SpeakerTV         SpeakerType = "TV speaker"
	SpeakerBeeper     SpeakerType = "Beeper"
	SpeakerUnfiltered SpeakerType = "Unfiltered"
)

// StereoAY selects the AY channel stereo separation.
type StereoAY string

const (
	StereoNone StereoAY = "None"
	StereoACB  StereoAY = "ACB"
	StereoABC  StereoAY = "ABC"
)

// Settings are the engine options controlled by the adapter.
type Settings struct {
	AutoLoad        bool
	DetectLoader    bool
	AccelerateLoad  bool
	FastLoad        bool
	LoadSound       bool
	Printer         bool
	BWTV            bool
	Sound           bool
	SoundForce8Bit  bool
	SoundFreq       int
	SpeakerType     SpeakerType
	StereoAY        StereoAY
	Kempston        bool
	Fuller          bool
	Joystick1Output JoystickType
	Joystick2Output JoystickType
}

// DefaultSettings returns the settings every session starts with.
func DefaultSettings() Settings {
	return Settings{
		AutoLoad:        true,
		DetectLoader:    true,
		AccelerateLoad:  true,
		FastLoad:        true,
		LoadSound:       true,
		Sound:           true,
		SoundFreq:       44100,
		SpeakerType:     SpeakerTV,
		StereoAY:        StereoNone,
		Kempston:        true,
		Fuller:          true,
		Joystick1Output: JoystickCursor,
		Joystick2Output: JoystickKempston,
	}
}

// LogLevel is the severity of a log message.
type LogLevel int

const (
	LogDebug LogLevel = iota
	LogInfo
	LogWarn
	LogError
)

// String returns the display name of the level.
func (l LogLevel) String() string {
	switch l {
	case LogDebug:
		return "DEBUG"
	case LogInfo:
		return "INFO"
	case LogWarn:
		return "WARN"
	case LogError:
		return "ERROR"
	default:
		return fmt.Sprintf("LogLevel(%d)", int(l))
	}
}

// Logger is a severity tagged log sink.
type Logger interface {
	Logf(level LogLevel, format string, args ...any)
}

// LoggerFunc adapts a function to Logger.
type LoggerFunc func(level LogLevel, format string, args ...any)

// Logf calls f.
func (f LoggerFunc) Logf(level LogLevel, format string, args ...any) {
	f(level, format, args...)
}

// NopLogger discards everything.
var NopLogger Logger = LoggerFunc(func(LogLevel, string, ...any) {})
