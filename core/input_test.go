package core

import (
	"testing"

	zxcore "github.com/user-none/efuse/api"
	"github.com/user-none/efuse/enginetest"
	"github.com/user-none/efuse/overlay"
)

func TestInput_JoystickEdges(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	h.pad[0][JoypadUp] = true
	c.Run()
	c.Run()
	h.pad[0][JoypadUp] = false
	c.Run()

	want := []zxcore.InputEvent{
		{Type: zxcore.EventJoystickPress, Key: zxcore.JoystickUp, Which: 0},
		{Type: zxcore.EventJoystickRelease, Key: zxcore.JoystickUp, Which: 0},
	}
	got := eventsOf(e, zxcore.EventJoystickPress, zxcore.EventJoystickRelease)
	if len(got) != len(want) {
		t.Fatalf("events = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestInput_SecondPort(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	h.pad[1][JoypadA] = true
	c.Run()

	got := eventsOf(e, zxcore.EventJoystickPress)
	if len(got) != 1 || got[0].Which != 1 || got[0].Key != zxcore.JoystickFire1 {
		t.Fatalf("events = %+v, want one fire press on joystick 1", got)
	}
	if e.Joystick(1) == 0 {
		t.Error("engine does not see fire held")
	}
}

func TestInput_PortsBeyondTwoIgnored(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	h.pad[2][JoypadA] = true
	c.Run()

	if len(e.Events) != 0 {
		t.Errorf("events = %+v, want none", e.Events)
	}
}

func TestInput_SelectTogglesOverlay(t *testing.T) {
	h := newFakeHost()
	c, _ := newLoadedCore(t, h, &enginetest.Factory{})

	h.pad[0][JoypadSelect] = true
	c.Run()
	if !c.input.overlay.visible {
		t.Fatal("overlay not shown")
	}
	// Holding select does not toggle again.
	c.Run()
	if !c.input.overlay.visible {
		t.Fatal("overlay hidden while select held")
	}
	h.pad[0][JoypadSelect] = false
	c.Run()
	tap(c, h, JoypadSelect)
	if c.input.overlay.visible {
		t.Error("overlay still visible after second select")
	}
}

func TestInput_CursorWrap(t *testing.T) {
	h := newFakeHost()
	c, _ := newLoadedCore(t, h, &enginetest.Factory{})
	tap(c, h, JoypadSelect)

	tap(c, h, JoypadLeft)
	if c.input.overlay.cursorX != 9 {
		t.Errorf("cursorX = %d after left from 0, want 9", c.input.overlay.cursorX)
	}
	tap(c, h, JoypadRight)
	if c.input.overlay.cursorX != 0 {
		t.Errorf("cursorX = %d after right from 9, want 0", c.input.overlay.cursorX)
	}
	tap(c, h, JoypadUp)
	if c.input.overlay.cursorY != 3 {
		t.Errorf("cursorY = %d after up from 0, want 3", c.input.overlay.cursorY)
	}
	tap(c, h, JoypadDown)
	if c.input.overlay.cursorY != 0 {
		t.Errorf("cursorY = %d after down from 3, want 0", c.input.overlay.cursorY)
	}
}

func TestInput_OverlayTypesKey(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	tap(c, h, JoypadSelect)
	for i := 0; i < 3; i++ {
		tap(c, h, JoypadRight)
	}
	if len(eventsOf(e, zxcore.EventJoystickPress)) != 0 {
		t.Fatal("navigation leaked joystick events")
	}

	pressedAt := h.now
	h.pad[0][JoypadA] = true
	c.Run()

	presses := eventsOf(e, zxcore.EventKeyPress)
	if len(presses) != 1 || presses[0].Key != overlay.Layout[0][3] || presses[0].Key != zxcore.Key4 {
		t.Fatalf("key presses = %+v, want one press of 4", presses)
	}
	if c.input.overlay.visible {
		t.Error("overlay still visible after confirm")
	}
	if e.LastKey() != zxcore.Key4 {
		t.Errorf("engine last key = %v, want 4", e.LastKey())
	}

	hold := int64(500000)
	h.now = pressedAt + hold - 1
	c.Run()
	if n := len(eventsOf(e, zxcore.EventKeyRelease)); n != 0 {
		t.Fatalf("key released %d times before the hold time", n)
	}

	h.now = pressedAt + hold
	c.Run()
	c.Run()
	releases := eventsOf(e, zxcore.EventKeyRelease)
	if len(releases) != 1 || releases[0].Key != zxcore.Key4 {
		t.Fatalf("key releases = %+v, want one release of 4", releases)
	}

	// Fire is still held from the confirm; releasing it must not reach
	// the joystick.
	h.pad[0][JoypadA] = false
	c.Run()
	if n := len(eventsOf(e, zxcore.EventJoystickPress, zxcore.EventJoystickRelease)); n != 0 {
		t.Errorf("%d joystick events from the confirming fire button, want 0", n)
	}
}

func TestInput_HoldTimeOption(t *testing.T) {
	h := newFakeHost()
	h.vars[OptionHoldTime] = "100"
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	tap(c, h, JoypadSelect)
	start := h.now
	tap(c, h, JoypadA)

	h.now = start + 100000
	c.Run()
	if n := len(eventsOf(e, zxcore.EventKeyRelease)); n != 1 {
		t.Errorf("%d releases after 100ms, want 1", n)
	}
}

func TestInput_PendingReleaseFlushedBeforeNextPress(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	tap(c, h, JoypadSelect)
	tap(c, h, JoypadA)
	tap(c, h, JoypadSelect)
	tap(c, h, JoypadDown)
	tap(c, h, JoypadA)

	var got []zxcore.InputEvent
	for _, ev := range e.Events {
		if ev.Type == zxcore.EventKeyPress || ev.Type == zxcore.EventKeyRelease {
			got = append(got, ev)
		}
	}
	want := []zxcore.InputEvent{
		{Type: zxcore.EventKeyPress, Key: zxcore.Key1},
		{Type: zxcore.EventKeyRelease, Key: zxcore.Key1},
		{Type: zxcore.EventKeyPress, Key: zxcore.KeyQ},
	}
	if len(got) != len(want) {
		t.Fatalf("key events = %+v, want %+v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, got[i], want[i])
		}
	}
}

func TestInput_OpeningOverlayReleasesJoystick(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	h.pad[0][JoypadLeft] = true
	c.Run()
	if e.Joystick(0) == 0 {
		t.Fatal("left not held")
	}

	tap(c, h, JoypadSelect)
	if e.Joystick(0) != 0 {
		t.Error("joystick still held after the overlay opened")
	}

	// Letting go while the overlay is up sends nothing more.
	before := len(e.Events)
	h.pad[0][JoypadLeft] = false
	c.Run()
	if len(e.Events) != before {
		t.Errorf("unexpected events %+v", e.Events[before:])
	}
}

func TestInput_OverlayLeavesPortOne(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})
	tap(c, h, JoypadSelect)

	h.pad[1][JoypadUp] = true
	c.Run()

	got := eventsOf(e, zxcore.EventJoystickPress)
	if len(got) != 1 || got[0].Which != 1 {
		t.Errorf("events = %+v, want a press on joystick 1", got)
	}
}

func TestInput_Keyboard(t *testing.T) {
	h := newFakeHost()
	c, e := newLoadedCore(t, h, &enginetest.Factory{})

	h.keys[RetroKeyA] = true
	h.keys[RetroKeyLShift] = true
	c.Run()
	c.Run()
	h.keys[RetroKeyA] = false
	c.Run()

	want := []zxcore.InputEvent{
		{Type: zxcore.EventKeyPress, Key: zxcore.KeyA},
		{Type: zxcore.EventKeyPress, Key: zxcore.KeyShiftL},
		{Type: zxcore.EventKeyRelease, Key: zxcore.KeyA},
	}
	if len(e.Events) != len(want) {
		t.Fatalf("events = %+v, want %+v", e.Events, want)
	}
	for i := range want {
		if e.Events[i] != want[i] {
			t.Errorf("event %d = %+v, want %+v", i, e.Events[i], want[i])
		}
	}
}

func TestTranslateKey(t *testing.T) {
	tests := []struct {
		in   RetroKey
		want zxcore.Key
	}{
		{RetroKeyA, zxcore.KeyA},
		{RetroKeyZ, zxcore.KeyZ},
		{RetroKey0, zxcore.Key0},
		{RetroKey9, zxcore.Key9},
		{RetroKeyF1, zxcore.KeyF1},
		{RetroKeyF12, zxcore.KeyF12},
		{RetroKeyReturn, zxcore.KeyReturn},
		{RetroKeyCaret, zxcore.KeyAsciiCircum},
		{RetroKeyMenu, zxcore.KeyModeSwitch},
		{RetroKeyKPEnter, zxcore.KeyKPEnter},
	}
	for _, tt := range tests {
		got, ok := TranslateKey(tt.in)
		if !ok || got != tt.want {
			t.Errorf("TranslateKey(%d) = %v, %v; want %v", tt.in, got, ok, tt.want)
		}
	}

	if _, ok := TranslateKey(1000); ok {
		t.Error("TranslateKey(1000) should not map")
	}
}
