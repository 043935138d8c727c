//go:build !libretro

package style

import (
	"bytes"
	"image/color"
	"log"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Panel colors for the in-window menus.
var (
	Background    = color.NRGBA{0x1a, 0x1a, 0x2e, 0xf0}
	Surface       = color.NRGBA{0x25, 0x25, 0x3a, 0xff}
	Primary       = color.NRGBA{0x4a, 0x4a, 0x8a, 0xff}
	PrimaryHover  = color.NRGBA{0x5a, 0x5a, 0x9a, 0xff}
	Text          = color.NRGBA{0xff, 0xff, 0xff, 0xff}
	TextSecondary = color.NRGBA{0xaa, 0xaa, 0xaa, 0xff}
	Border        = color.NRGBA{0x3a, 0x3a, 0x5a, 0xff}
)

const baseFontSize = 14.0

// dpiScale is the device pixel ratio (1.0 on non-retina, 2.0 on retina)
var dpiScale = 1.0

var (
	fontSource *text.GoTextFaceSource
	fontFace   text.Face
)

// DPIScale returns the current device scale factor.
func DPIScale() float64 {
	return dpiScale
}

// Px converts a logical pixel value to physical pixels.
func Px(logical int) int {
	return int(float64(logical) * dpiScale)
}

// SetDPIScale sets the scale factor and recalculates the layout values.
// Scales below 1 are treated as 1.
func SetDPIScale(scale float64) {
	if scale < 1.0 {
		scale = 1.0
	}
	dpiScale = scale

	DefaultPadding = Px(baseDefaultPadding)
	DefaultSpacing = Px(baseDefaultSpacing)
	SmallSpacing = Px(baseSmallSpacing)
	ButtonPaddingSmall = Px(baseButtonPaddingSmall)
	MenuMinWidth = Px(baseMenuMinWidth)
	ValueMinWidth = Px(baseValueMinWidth)

	// Widgets hold &fontFace, so the face is replaced in place.
	if src := loadFontSource(); src != nil {
		fontFace = &text.GoTextFace{Source: src, Size: baseFontSize * dpiScale}
	}
}

func loadFontSource() *text.GoTextFaceSource {
	if fontSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			log.Printf("Failed to load font source: %v", err)
			return nil
		}
		fontSource = src
	}
	return fontSource
}

// FontFace returns the font face to use for menu text.
func FontFace() *text.Face {
	if fontFace == nil {
		if src := loadFontSource(); src != nil {
			fontFace = &text.GoTextFace{Source: src, Size: baseFontSize * dpiScale}
		}
	}
	return &fontFace
}

// ButtonImage creates a standard button image set
func ButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Surface),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Primary),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// PrimaryButtonImage creates a prominent button image set
func PrimaryButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:     image.NewNineSliceColor(Primary),
		Hover:    image.NewNineSliceColor(PrimaryHover),
		Pressed:  image.NewNineSliceColor(Surface),
		Disabled: image.NewNineSliceColor(Border),
	}
}

// ActiveButtonImage returns the primary image for the selected button.
func ActiveButtonImage(active bool) *widget.ButtonImage {
	if active {
		return PrimaryButtonImage()
	}
	return ButtonImage()
}

// ButtonTextColor returns the standard button text colors
func ButtonTextColor() *widget.ButtonTextColor {
	return &widget.ButtonTextColor{
		Idle:     Text,
		Disabled: TextSecondary,
	}
}
