//go:build !libretro

package standalone

import (
	"testing"
	"time"

	"github.com/user-none/efuse/core"
)

func TestSharedInput_SetAndRead(t *testing.T) {
	si := &SharedInput{}

	si.Set(0, 0b1010_0101)

	pads, keys := si.Read()
	if pads[0] != 0b1010_0101 {
		t.Fatalf("player 0 mismatch: expected 0x%X, got 0x%X", uint16(0b1010_0101), pads[0])
	}
	if pads[1] != 0 {
		t.Fatalf("player 1 should be 0, got 0x%X", pads[1])
	}
	if keys == nil || len(keys) != 0 {
		t.Fatalf("expected empty key set, got %v", keys)
	}

	si.Set(1, 0xFF)
	pads, _ = si.Read()
	if pads[0] != 0b1010_0101 || pads[1] != 0xFF {
		t.Fatalf("unexpected pads %v", pads)
	}

	// Out-of-range player should be ignored
	si.Set(-1, 0xDEAD)
	si.Set(maxPlayers, 0xDEAD)
	pads, _ = si.Read()
	if pads[0] != 0b1010_0101 || pads[1] != 0xFF {
		t.Fatal("out-of-range Set should not change state")
	}
}

func TestSharedInput_Keys(t *testing.T) {
	si := &SharedInput{}
	si.SetKeys([]core.RetroKey{core.RetroKeyA, core.RetroKeyLShift})

	_, keys := si.Read()
	if !keys[core.RetroKeyA] || !keys[core.RetroKeyLShift] || len(keys) != 2 {
		t.Fatalf("unexpected keys %v", keys)
	}

	// The returned map is a copy
	keys[core.RetroKeySpace] = true
	_, again := si.Read()
	if again[core.RetroKeySpace] {
		t.Fatal("Read returned shared map")
	}

	si.SetKeys(nil)
	_, keys = si.Read()
	if len(keys) != 0 {
		t.Fatalf("expected keys cleared, got %v", keys)
	}
}

func TestRGB565ToRGBA(t *testing.T) {
	tests := []struct {
		name string
		in   uint16
		want [4]byte
	}{
		{"black", 0x0000, [4]byte{0, 0, 0, 0xff}},
		{"white", 0xffff, [4]byte{0xff, 0xff, 0xff, 0xff}},
		{"red", 0xf800, [4]byte{0xff, 0, 0, 0xff}},
		{"green", 0x07e0, [4]byte{0, 0xff, 0, 0xff}},
		{"blue", 0x001f, [4]byte{0, 0, 0xff, 0xff}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			dst := make([]byte, 4)
			rgb565ToRGBA(dst, []uint16{tc.in})
			if [4]byte(dst) != tc.want {
				t.Errorf("rgb565ToRGBA(%#04x) = %v, want %v", tc.in, dst, tc.want)
			}
		})
	}
}

func TestSharedFramebuffer_UpdateAndRead(t *testing.T) {
	sf := NewSharedFramebuffer(320, 240)

	// 2x2 picture inside a 4 pixel wide canvas
	frame := []uint16{
		0xf800, 0x07e0, 0, 0,
		0x001f, 0xffff, 0, 0,
	}
	sf.Update(frame, 2, 2, 8)

	pixels, width, height := sf.Read()
	if width != 2 || height != 2 {
		t.Fatalf("size = %dx%d, want 2x2", width, height)
	}
	if len(pixels) != 16 {
		t.Fatalf("len(pixels) = %d, want 16", len(pixels))
	}
	want := []byte{
		0xff, 0, 0, 0xff, 0, 0xff, 0, 0xff,
		0, 0, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff,
	}
	for i := range want {
		if pixels[i] != want[i] {
			t.Fatalf("pixel byte %d = %#02x, want %#02x", i, pixels[i], want[i])
		}
	}
}

func TestSharedFramebuffer_DupeKeepsPicture(t *testing.T) {
	sf := NewSharedFramebuffer(320, 240)
	sf.Update([]uint16{0xffff}, 1, 1, 2)
	sf.Update(nil, 1, 1, 2)

	pixels, width, height := sf.Read()
	if width != 1 || height != 1 || pixels[0] != 0xff {
		t.Fatalf("dupe frame changed the picture: %dx%d %v", width, height, pixels)
	}
}

func TestSharedFramebuffer_RejectsShortFrame(t *testing.T) {
	sf := NewSharedFramebuffer(320, 240)
	sf.Update(make([]uint16, 10), 4, 4, 8)

	_, width, height := sf.Read()
	if width != 0 || height != 0 {
		t.Fatalf("short frame accepted as %dx%d", width, height)
	}
}

func TestEmuControl_PostAndDrain(t *testing.T) {
	ec := NewEmuControl()

	var order []int
	ec.Post(func() { order = append(order, 1) })
	ec.Post(func() { order = append(order, 2) })

	if !ec.Drain() {
		t.Fatal("Drain returned false while running")
	}
	if len(order) != 2 || order[0] != 1 || order[1] != 2 {
		t.Fatalf("work ran as %v, want [1 2]", order)
	}

	// Queue is empty after a drain
	ec.Drain()
	if len(order) != 2 {
		t.Fatalf("work ran twice: %v", order)
	}
}

func TestEmuControl_Stop(t *testing.T) {
	ec := NewEmuControl()

	done := make(chan struct{})
	go func() {
		defer close(done)
		for ec.ShouldRun() {
			if !ec.Drain() {
				return
			}
			time.Sleep(time.Millisecond)
		}
	}()

	ec.Stop()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("goroutine did not exit after Stop")
	}
}

func TestEmuControl_PostAfterStop(t *testing.T) {
	ec := NewEmuControl()
	ec.Stop()

	ran := false
	ec.Post(func() { ran = true })
	if ec.Drain() {
		t.Fatal("Drain returned true after Stop")
	}
	if ran {
		t.Fatal("work ran after Stop")
	}
}

func TestSharedPath_ConcurrentAccess(t *testing.T) {
	var sp SharedPath
	if sp.Get() != "" {
		t.Fatalf("zero value = %q, want empty", sp.Get())
	}

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 1000; i++ {
			sp.Set("/tapes/a")
		}
	}()
	for i := 0; i < 1000; i++ {
		if p := sp.Get(); p != "" && p != "/tapes/a" {
			t.Fatalf("Get = %q", p)
		}
	}
	<-done

	if sp.Get() != "/tapes/a" {
		t.Errorf("Get = %q, want /tapes/a", sp.Get())
	}
}
