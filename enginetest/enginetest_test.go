package enginetest

import (
	"errors"
	"testing"

	zxcore "github.com/user-none/efuse/api"
	"github.com/user-none/efuse/vfs"
)

type recorder struct {
	pixels  int
	plots   int
	frames  int
	batches int
	saved   []byte
	name    string
}

func (r *recorder) PutPixel(x, y int, colour uint8) { r.pixels++ }
func (r *recorder) Plot8(x, y int, data, ink, paper uint8) { r.plots++ }
func (r *recorder) Plot16(x, y int, data uint16, ink, paper uint8) {}
func (r *recorder) FrameEnd() { r.frames++ }
func (r *recorder) SetDoubleResolution(on bool) {}
func (r *recorder) Frame(samples []int16) { r.batches++ }

func (r *recorder) WriteSnapshot(name string, data []byte) error {
	r.name = name
	r.saved = data
	return nil
}

func newTestEngine(t *testing.T, f *Factory, files map[string][]byte) (*Engine, *recorder) {
	t.Helper()
	rec := &recorder{}
	assets := f.Assets()
	for name, data := range files {
		assets = append(assets, zxcore.Asset{Suffix: name, Data: data})
	}
	env := zxcore.Environment{
		Display:   rec,
		Sound:     rec,
		Snapshots: rec,
		Files:     vfs.New(assets, nil, nil),
		Settings:  zxcore.DefaultSettings(),
	}
	path := ""
	for name := range files {
		path = name
	}
	eng, err := f.NewEngine(env, path)
	if err != nil {
		t.Fatalf("NewEngine failed: %v", err)
	}
	return eng.(*Engine), rec
}

func runFrame(e *Engine) {
	for i := 0; i < e.stepsPerFrame; i++ {
		e.Step()
		e.ProcessEvents()
	}
}

func TestEngine_Frame(t *testing.T) {
	e, rec := newTestEngine(t, &Factory{}, nil)
	runFrame(e)

	if rec.frames != 1 || rec.batches != 1 {
		t.Fatalf("frames %d batches %d, want 1 and 1", rec.frames, rec.batches)
	}
	if rec.plots != 192*32 {
		t.Errorf("plots = %d, want %d", rec.plots, 192*32)
	}
	if rec.pixels != 320*240-256*192 {
		t.Errorf("border pixels = %d, want %d", rec.pixels, 320*240-256*192)
	}
}

func TestEngine_ROMFromAssets(t *testing.T) {
	rom := make([]byte, romSize)
	rom[0] = 0xF3
	e, _ := newTestEngine(t, &Factory{ROM: rom}, nil)

	if e.Peek(0) != 0xF3 {
		t.Errorf("ROM byte 0 = %#02x, want 0xF3", e.Peek(0))
	}
}

func TestEngine_TapeAutoPlays(t *testing.T) {
	e, _ := newTestEngine(t, &Factory{TapeSteps: 3}, map[string][]byte{"/games/game.tap": {1, 2, 3}})

	if e.Peek(tapeStart+2) != 3 {
		t.Error("tape not loaded into memory")
	}
	for i := 0; i < 3; i++ {
		if !e.TapePlaying() {
			t.Fatalf("tape stopped after %d steps", i)
		}
		e.Step()
	}
	if e.TapePlaying() {
		t.Error("tape still playing")
	}
}

func TestEngine_Input(t *testing.T) {
	e, _ := newTestEngine(t, &Factory{}, nil)

	e.Input(zxcore.InputEvent{Type: zxcore.EventJoystickPress, Key: zxcore.JoystickFire1, Which: 1})
	if e.Joystick(1) != 0x10 {
		t.Errorf("joystick 1 = %#02x, want 0x10", e.Joystick(1))
	}
	e.Input(zxcore.InputEvent{Type: zxcore.EventJoystickRelease, Key: zxcore.JoystickFire1, Which: 1})
	if e.Joystick(1) != 0 {
		t.Errorf("joystick 1 = %#02x, want 0", e.Joystick(1))
	}

	e.Input(zxcore.InputEvent{Type: zxcore.EventKeyPress, Key: zxcore.KeyJ})
	if e.LastKey() != zxcore.KeyJ {
		t.Errorf("last key = %v, want J", e.LastKey())
	}
	if len(e.Events) != 3 {
		t.Errorf("recorded %d events, want 3", len(e.Events))
	}
}

func TestEngine_SnapshotRoundTrip(t *testing.T) {
	e, rec := newTestEngine(t, &Factory{}, nil)
	runFrame(e)
	e.Poke(0xC123, 0x5A)
	e.SetBorder(4)

	if err := e.WriteSnapshot("dummy.szx"); err != nil {
		t.Fatalf("WriteSnapshot failed: %v", err)
	}
	if rec.name != "dummy.szx" {
		t.Errorf("snapshot name = %q", rec.name)
	}
	pc := e.PC()

	runFrame(e)
	e.Poke(0xC123, 0)
	e.SetBorder(1)

	if err := e.ReadSnapshot(rec.saved, zxcore.SnapshotSZX); err != nil {
		t.Fatalf("ReadSnapshot failed: %v", err)
	}
	if e.Peek(0xC123) != 0x5A || e.border != 4 || e.PC() != pc {
		t.Errorf("restored mem %#02x border %d pc %#04x", e.Peek(0xC123), e.border, e.PC())
	}
}

func TestEngine_SnapshotTruncated(t *testing.T) {
	e, rec := newTestEngine(t, &Factory{}, nil)
	e.WriteSnapshot("x.szx")
	e.Poke(0x4000, 0x99)

	err := e.ReadSnapshot(rec.saved[:len(rec.saved)-10], zxcore.SnapshotSZX)
	if !errors.Is(err, ErrBadSnapshot) {
		t.Fatalf("ReadSnapshot = %v, want ErrBadSnapshot", err)
	}
	if e.Peek(0x4000) != 0x99 {
		t.Error("failed read changed memory")
	}
}

func TestEngine_Z80Snapshot(t *testing.T) {
	data := make([]byte, z80HeaderSize+3*pageSize)
	data[6], data[7] = 0x00, 0x80 // PC
	data[12] = 0x02 << 1           // border 2
	data[z80HeaderSize+0x4000] = 0xAB

	e, _ := newTestEngine(t, &Factory{}, map[string][]byte{"/snaps/game.z80": data})

	if e.PC() != 0x8000 {
		t.Errorf("PC = %#04x, want 0x8000", e.PC())
	}
	if e.border != 2 {
		t.Errorf("border = %d, want 2", e.border)
	}
	if e.Peek(0x8000) != 0xAB {
		t.Errorf("mem[0x8000] = %#02x, want 0xAB", e.Peek(0x8000))
	}
	if e.TapePlaying() {
		t.Error("snapshot started the tape")
	}
}

func TestFactory_Err(t *testing.T) {
	f := &Factory{Err: errors.New("nope")}
	if _, err := f.NewEngine(zxcore.Environment{}, ""); err == nil {
		t.Error("expected error")
	}
}

func TestFactory_NoROM(t *testing.T) {
	f := &Factory{}
	env := zxcore.Environment{Files: vfs.New(nil, nil, nil)}
	if _, err := f.NewEngine(env, ""); !errors.Is(err, ErrNoROM) {
		t.Errorf("NewEngine = %v, want ErrNoROM", err)
	}
}
