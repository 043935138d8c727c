//go:build !libretro

package style

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

func TestPx(t *testing.T) {
	orig := dpiScale
	defer func() { dpiScale = orig }()

	dpiScale = 1.0
	if got := Px(10); got != 10 {
		t.Errorf("Px(10) at scale 1 = %d, want 10", got)
	}
	dpiScale = 1.5
	if got := Px(10); got != 15 {
		t.Errorf("Px(10) at scale 1.5 = %d, want 15", got)
	}
}

func TestSetDPIScale(t *testing.T) {
	defer SetDPIScale(1.0)

	SetDPIScale(2.0)
	if DPIScale() != 2.0 {
		t.Errorf("DPIScale() = %f, want 2.0", DPIScale())
	}
	if DefaultPadding != 32 {
		t.Errorf("DefaultPadding at 2x = %d, want 32", DefaultPadding)
	}
	if SmallSpacing != 16 {
		t.Errorf("SmallSpacing at 2x = %d, want 16", SmallSpacing)
	}
	if MenuMinWidth != 720 {
		t.Errorf("MenuMinWidth at 2x = %d, want 720", MenuMinWidth)
	}

	face := FontFace()
	if face != nil && *face != nil {
		if goFace, ok := (*face).(*text.GoTextFace); ok && goFace.Size != 28.0 {
			t.Errorf("FontFace size at 2x = %f, want 28.0", goFace.Size)
		}
	}

	SetDPIScale(1.0)
	if DefaultPadding != 16 {
		t.Errorf("DefaultPadding after restore = %d, want 16", DefaultPadding)
	}
}

func TestSetDPIScale_ClampsBelowOne(t *testing.T) {
	defer SetDPIScale(1.0)

	SetDPIScale(0.5)
	if DPIScale() != 1.0 {
		t.Errorf("DPIScale() = %f, want 1.0", DPIScale())
	}
	if ValueMinWidth != baseValueMinWidth {
		t.Errorf("ValueMinWidth = %d, want %d", ValueMinWidth, baseValueMinWidth)
	}
}

func TestFontFace_SamePointer(t *testing.T) {
	a := FontFace()
	SetDPIScale(1.25)
	defer SetDPIScale(1.0)
	if b := FontFace(); a != b {
		t.Error("FontFace pointer changed across SetDPIScale")
	}
}
