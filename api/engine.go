// Package zxcore defines the contract between the ZX Spectrum adapter and
// the emulation engine it drives.
//
// The engine owns the CPU, machine models, tape handling and sound chips.
// The adapter owns everything the host sees: video, audio, input, files
// and snapshots. The two sides meet only through the interfaces here.
package zxcore

import "io"

// Engine is the emulation engine driven by the adapter.
type Engine interface {
	// Step runs the CPU until the next scheduled event.
	Step()

	// ProcessEvents drains the engine's pending event queue. Frame
	// completion, audio output and tape edges are delivered from here.
	ProcessEvents()

	// TapePlaying reports whether a tape is currently being played.
	TapePlaying() bool

	// Input raises a keyboard or joystick event.
	Input(ev InputEvent)

	// Apply replaces the engine settings.
	Apply(settings Settings)

	// Pause and Resume bracket out-of-band work such as snapshot capture.
	Pause()
	Resume()

	// WriteSnapshot serializes the machine. The file name only selects the
	// container format; the bytes are handed to Environment.Snapshots.
	WriteSnapshot(name string) error

	// ReadSnapshot restores the machine from a buffer in the given format.
	// On error the machine state is left untouched.
	ReadSnapshot(data []byte, format SnapshotFormat) error

	// Close releases any resources held by the engine.
	Close() error
}

// SnapshotFormat identifies a native snapshot container.
type SnapshotFormat int

const (
	SnapshotSZX SnapshotFormat = iota
	SnapshotZ80
)

// Display receives pixel output from the engine. Colours are indices into
// the 16 entry Spectrum palette.
type Display interface {
	// PutPixel sets a single pixel.
	PutPixel(x, y int, colour uint8)

	// Plot8 draws eight pixels from a bitmap byte. x is in 8 pixel columns.
	Plot8(x, y int, data, ink, paper uint8)

	// Plot16 draws sixteen pixels from a bitmap word. x is in 16 pixel
	// columns and y in double resolution lines.
	Plot16(x, y int, data uint16, ink, paper uint8)

	// FrameEnd marks the current frame as complete.
	FrameEnd()

	// SetDoubleResolution switches the Timex double resolution mode, where
	// every write covers a 2x2 block.
	SetDoubleResolution(on bool)
}

// SoundSink receives audio from the engine.
type SoundSink interface {
	// Frame delivers one batch of interleaved signed 16 bit stereo samples.
	Frame(samples []int16)
}

// SnapshotSink receives serialized machine state in place of a file write.
type SnapshotSink interface {
	WriteSnapshot(name string, data []byte) error
}

// File is an open virtual file.
type File interface {
	io.Reader
	io.Writer
	io.Closer

	// Len returns the total length of the file in bytes.
	Len() (int64, error)
}

// AuxiliaryKind selects one of the engine's auxiliary file directories.
type AuxiliaryKind int

const (
	AuxiliaryLib AuxiliaryKind = iota
	AuxiliaryROM
	AuxiliaryWidget
	AuxiliaryGTK
)

// FileSystem is the file access the engine is allowed to use.
type FileSystem interface {
	// Open opens path for reading, or for writing when write is set.
	Open(path string, write bool) (File, error)

	// Exists reports whether path can be opened for reading.
	Exists(path string) bool

	// ReadFile reads a whole file.
	ReadFile(path string) ([]byte, error)

	// WriteFile writes a whole file.
	WriteFile(path string, data []byte) error

	// FindAuxiliary resolves name inside the auxiliary directory of kind.
	FindAuxiliary(kind AuxiliaryKind, name string) (string, bool)
}

// Timer is the engine's clock. Sleep busy-waits; it must not yield.
type Timer interface {
	// Now returns the current time in seconds.
	Now() float64

	// Sleep waits for ms milliseconds.
	Sleep(ms int)
}

// Environment is everything the adapter hands to a new engine.
type Environment struct {
	Display   Display
	Sound     SoundSink
	Files     FileSystem
	Snapshots SnapshotSink
	Timer     Timer
	Log       Logger
	Settings  Settings
}

// EngineFactory creates engines and describes what they need.
type EngineFactory interface {
	// SystemInfo returns static metadata about the engine.
	SystemInfo() SystemInfo

	// Assets returns the read-only files compiled into the engine, such as
	// ROM images. They are served by the virtual file system ahead of any
	// host file.
	Assets() []Asset

	// NewEngine boots a machine. An empty contentPath boots straight into
	// the built-in ROM.
	NewEngine(env Environment, contentPath string) (Engine, error)
}

// Asset is an embedded read-only file matched by path suffix.
type Asset struct {
	Suffix string
	Data   []byte
}
