package overlay

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

var (
	backgroundColour = color.RGBA{0x20, 0x20, 0x28, 0xff}
	keyColour        = color.RGBA{0x50, 0x50, 0x58, 0xff}
	keyEdgeColour    = color.RGBA{0x90, 0x90, 0x98, 0xff}
	labelColour      = color.RGBA{0xf0, 0xf0, 0xf0, 0xff}
	titleColour      = color.RGBA{0xd0, 0x30, 0x30, 0xff}
)

var (
	bitmapOnce sync.Once
	bitmap     []uint16
)

// Bitmap returns the overlay image as Width*Height RGB565 pixels. The
// slice is shared and must not be modified.
func Bitmap() []uint16 {
	bitmapOnce.Do(func() {
		bitmap = ToRGB565(Render())
	})
	return bitmap
}

// Render draws the overlay keyboard.
func Render() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, Width, Height))
	draw.Draw(img, img.Bounds(), image.NewUniform(backgroundColour), image.Point{}, draw.Src)

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(titleColour),
		Face: basicfont.Face7x13,
	}
	drawCentred(d, "ZX Spectrum", 0, Width, 24)

	d.Src = image.NewUniform(labelColour)
	for row := 0; row < Rows; row++ {
		for col := 0; col < Columns; col++ {
			c := CellAt(col, row)
			r := image.Rect(c.X, c.Y, c.X+c.Width, c.Y+CellHeight)
			draw.Draw(img, r, image.NewUniform(keyEdgeColour), image.Point{}, draw.Src)
			draw.Draw(img, r.Inset(1), image.NewUniform(keyColour), image.Point{}, draw.Src)
			drawCentred(d, labels[row][col], c.X, c.X+c.Width, c.Y+CellHeight/2+5)
		}
	}
	return img
}

// drawCentred draws s horizontally centred between x0 and x1 on baseline y.
func drawCentred(d *font.Drawer, s string, x0, x1, y int) {
	w := d.MeasureString(s).Round()
	d.Dot = fixed.P(x0+(x1-x0-w)/2, y)
	d.DrawString(s)
}

// ToRGB565 packs an image into 16 bit pixels, row by row.
func ToRGB565(img image.Image) []uint16 {
	b := img.Bounds()
	out := make([]uint16, 0, b.Dx()*b.Dy())
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			c := color.RGBAModel.Convert(img.At(x, y)).(color.RGBA)
			out = append(out, RGB565(c.R, c.G, c.B))
		}
	}
	return out
}

// RGB565 packs an 8 bit per channel colour.
func RGB565(r, g, b uint8) uint16 {
	return uint16(r>>3)<<11 | uint16(g>>2)<<5 | uint16(b>>3)
}
