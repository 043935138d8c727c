// Package enginetest provides a small deterministic Spectrum engine for
// exercising the adapter without the real emulator.
//
// The machine has a 48K memory map and a handful of registers. Each frame
// it draws the border and the display file through the Display contract,
// emits one batch of audio and, while a tape is inserted, counts down the
// tape. Snapshots serialize the whole machine.
package enginetest

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	zxcore "github.com/user-none/efuse/api"
)

// ROMPath is where the engine looks for its ROM.
const ROMPath = "/fuse/roms/48.rom"

// Machine constants.
const (
	romSize      = 0x4000
	memSize      = 0x10000
	screenStart  = 0x4000
	attrStart    = 0x5800
	tapeStart    = 0x8000
	sysvarLastK  = 0x5C08
	sysvarFlags  = 0x5C3B
	flagsNewKey  = 0x20
	samplesFrame = 882
)

// Canvas layout as the adapter expects it.
const (
	canvasWidth  = 320
	canvasHeight = 240
	borderLeft   = 32
	borderTop    = 24
	paperWidth   = 256
	paperHeight  = 192
)

var (
	// ErrNoROM is returned when the ROM cannot be found.
	ErrNoROM = errors.New("48K ROM not found")

	// ErrBadSnapshot is returned for snapshots the engine cannot read.
	ErrBadSnapshot = errors.New("invalid snapshot")
)

// Compile-time interface checks.
var (
	_ zxcore.EngineFactory = (*Factory)(nil)
	_ zxcore.Engine        = (*Engine)(nil)
)

// Factory creates test engines.
type Factory struct {
	// Info is returned by SystemInfo. Zero fields get defaults.
	Info zxcore.SystemInfo

	// ROM is served as the embedded 48.rom asset. Nil means a blank ROM.
	ROM []byte

	// StepsPerFrame is how many Step calls make up one frame. Default 4.
	StepsPerFrame int

	// AudioEvery emits audio on every Nth frame. Default 1.
	AudioEvery int

	// TapeSteps is how many steps an inserted tape plays for. Default 20.
	TapeSteps int

	// Err, when set, makes NewEngine fail.
	Err error

	// Last is the most recently created engine.
	Last *Engine
}

// SystemInfo returns the engine metadata.
func (f *Factory) SystemInfo() zxcore.SystemInfo {
	info := f.Info
	if info.Name == "" {
		info.Name = "Fuse"
	}
	if info.Version == "" {
		info.Version = "1.1.1"
	}
	if len(info.Extensions) == 0 {
		info.Extensions = []string{"tzx", "tap", "z80"}
	}
	return info
}

// Assets returns the ROM image.
func (f *Factory) Assets() []zxcore.Asset {
	rom := f.ROM
	if rom == nil {
		rom = make([]byte, romSize)
	}
	return []zxcore.Asset{{Suffix: ROMPath, Data: rom}}
}

// NewEngine boots a machine, loading contentPath through the environment's
// file system.
func (f *Factory) NewEngine(env zxcore.Environment, contentPath string) (zxcore.Engine, error) {
	if f.Err != nil {
		return nil, f.Err
	}

	e := &Engine{
		env:           env,
		Path:          contentPath,
		Settings:      env.Settings,
		stepsPerFrame: orDefault(f.StepsPerFrame, 4),
		audioEvery:    orDefault(f.AudioEvery, 1),
		mem:           make([]byte, memSize),
	}
	if e.env.Log == nil {
		e.env.Log = zxcore.NopLogger
	}

	romPath, ok := env.Files.FindAuxiliary(zxcore.AuxiliaryROM, "48.rom")
	if !ok {
		return nil, ErrNoROM
	}
	rom, err := env.Files.ReadFile(romPath)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoROM, err)
	}
	copy(e.mem[:romSize], rom)
	e.reset()

	if contentPath != "" {
		data, err := env.Files.ReadFile(contentPath)
		if err != nil {
			return nil, fmt.Errorf("read %s: %w", contentPath, err)
		}
		switch strings.ToLower(filepath.Ext(contentPath)) {
		case ".z80":
			if err := e.ReadSnapshot(data, zxcore.SnapshotZ80); err != nil {
				return nil, err
			}
		default:
			copy(e.mem[tapeStart:], data)
			e.tapeLen = len(data)
			if e.Settings.AutoLoad {
				e.tapeLeft = orDefault(f.TapeSteps, 20)
			}
		}
		e.env.Log.Logf(zxcore.LogInfo, "enginetest: loaded %d bytes from %s", len(data), contentPath)
	}

	f.Last = e
	return e, nil
}

func orDefault(v, def int) int {
	if v <= 0 {
		return def
	}
	return v
}

// Engine is a deterministic stand-in for the emulator.
type Engine struct {
	env zxcore.Environment

	// Path is the content path the engine was started with.
	Path string

	// Settings are the most recently applied settings.
	Settings zxcore.Settings

	// Events records every input event in arrival order.
	Events []zxcore.InputEvent

	// Steps and Frames count emulation progress.
	Steps  int
	Frames int

	PauseDepth int
	Pauses     int
	Closed     bool

	// SnapshotErr, when set, makes WriteSnapshot fail without writing.
	SnapshotErr error

	stepsPerFrame int
	audioEvery    int

	regs     registers
	mem      []byte
	border   uint8
	joystick [2]uint8
	tapeLen  int
	tapeLeft int
	frameDue bool
}

// registers is the CPU state that survives a snapshot.
type registers struct {
	AF, BC, DE, HL uint16
	IX, IY, SP, PC uint16
	I, R, IM       uint8
	IFF1, IFF2     uint8
	TStates        uint32
}

func (e *Engine) reset() {
	e.regs = registers{SP: 0xFF58, IY: 0x5C3A, IM: 1}
	e.border = 7
	for i := attrStart; i < attrStart+0x300; i++ {
		e.mem[i] = 0x38
	}
}

// Step advances the machine by a fraction of a frame.
func (e *Engine) Step() {
	e.Steps++
	e.regs.TStates += 69888 / uint32(e.stepsPerFrame)
	e.regs.PC++
	e.regs.R = (e.regs.R + 1) & 0x7f

	if e.tapeLeft > 0 {
		e.tapeLeft--
		e.border = uint8(e.Steps) & 7
	}
	if e.Steps%e.stepsPerFrame == 0 {
		e.frameDue = true
	}
}

// ProcessEvents delivers the frame and audio when one is due.
func (e *Engine) ProcessEvents() {
	if !e.frameDue {
		return
	}
	e.frameDue = false
	e.Frames++
	e.regs.TStates = 0

	e.drawFrame()
	e.env.Display.FrameEnd()

	if e.Frames%e.audioEvery == 0 && e.Settings.Sound {
		e.env.Sound.Frame(e.audioFrame())
	}
}

func (e *Engine) drawFrame() {
	d := e.env.Display
	for y := 0; y < canvasHeight; y++ {
		paperLine := y >= borderTop && y < borderTop+paperHeight
		for x := 0; x < canvasWidth; x++ {
			if paperLine && x >= borderLeft && x < borderLeft+paperWidth {
				continue
			}
			d.PutPixel(x, y, e.border)
		}
		if !paperLine {
			continue
		}
		line := y - borderTop
		for col := 0; col < paperWidth/8; col++ {
			data := e.mem[displayAddress(line, col)]
			attr := e.mem[attrStart+(line/8)*32+col]
			ink, paper := attrColours(attr)
			d.Plot8(borderLeft/8+col, y, data, ink, paper)
		}
	}
}

// displayAddress returns the display file address of a pixel row byte.
func displayAddress(y, col int) int {
	return screenStart | (y&0xC0)<<5 | (y&0x07)<<8 | (y&0x38)<<2 | col
}

func attrColours(attr uint8) (ink, paper uint8) {
	ink = attr & 0x07
	paper = (attr >> 3) & 0x07
	if attr&0x40 != 0 {
		ink |= 0x08
		paper |= 0x08
	}
	return ink, paper
}

// audioFrame is a square wave whose pitch follows the border colour.
func (e *Engine) audioFrame() []int16 {
	samples := make([]int16, samplesFrame*2)
	if !e.Settings.LoadSound && e.tapeLeft > 0 {
		return samples
	}
	period := 20 + int(e.border)*4
	for i := 0; i < samplesFrame; i++ {
		v := int16(4000)
		if (i/period)%2 == 1 {
			v = -4000
		}
		samples[2*i] = v
		samples[2*i+1] = v
	}
	return samples
}

// TapePlaying reports whether the inserted tape is still running.
func (e *Engine) TapePlaying() bool {
	return e.tapeLeft > 0
}

// Input records the event and reflects it in the machine state.
func (e *Engine) Input(ev zxcore.InputEvent) {
	e.Events = append(e.Events, ev)

	switch ev.Type {
	case zxcore.EventKeyPress:
		e.mem[sysvarLastK] = uint8(ev.Key)
		e.mem[sysvarFlags] |= flagsNewKey
	case zxcore.EventKeyRelease:
		e.mem[sysvarFlags] &^= flagsNewKey
	case zxcore.EventJoystickPress, zxcore.EventJoystickRelease:
		if ev.Which < 0 || ev.Which > 1 || !ev.Key.IsJoystick() {
			return
		}
		bit := uint8(1) << uint(ev.Key-zxcore.JoystickUp)
		if ev.Type == zxcore.EventJoystickPress {
			e.joystick[ev.Which] |= bit
		} else {
			e.joystick[ev.Which] &^= bit
		}
	}
}

// Joystick returns the pressed button bits of a joystick, up first.
func (e *Engine) Joystick(which int) uint8 {
	return e.joystick[which]
}

// LastKey returns the last key pressed, as stored in LAST_K.
func (e *Engine) LastKey() zxcore.Key {
	return zxcore.Key(e.mem[sysvarLastK])
}

// Poke writes a byte of memory.
func (e *Engine) Poke(addr uint16, v uint8) {
	e.mem[addr] = v
}

// Peek reads a byte of memory.
func (e *Engine) Peek(addr uint16) uint8 {
	return e.mem[addr]
}

// SetBorder changes the border colour.
func (e *Engine) SetBorder(c uint8) {
	e.border = c & 7
}

// InsertTape starts a tape playing for the given number of steps.
func (e *Engine) InsertTape(steps int) {
	e.tapeLeft = steps
}

// Apply replaces the settings.
func (e *Engine) Apply(s zxcore.Settings) {
	e.Settings = s
}

func (e *Engine) Pause() {
	e.PauseDepth++
	e.Pauses++
}

func (e *Engine) Resume() {
	if e.PauseDepth > 0 {
		e.PauseDepth--
	}
}

// Close marks the engine closed.
func (e *Engine) Close() error {
	e.Closed = true
	return nil
}
