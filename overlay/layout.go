// Package overlay holds the on-screen keyboard: its key layout, the cell
// geometry used to highlight the selected key, and the overlay image.
package overlay

import zxcore "github.com/user-none/efuse/api"

// Grid dimensions.
const (
	Columns = 10
	Rows    = 4
)

// Canvas dimensions of the overlay image.
const (
	Width  = 320
	Height = 240
)

// Cell geometry. Every row starts at its own origin and cells repeat every
// CellPitch pixels.
const (
	CellPitch  = 24
	CellWidth  = 23
	CellHeight = 24
)

// Layout is the Spectrum keyboard as shown on the overlay.
var Layout = [Rows][Columns]zxcore.Key{
	{
		zxcore.Key1, zxcore.Key2, zxcore.Key3, zxcore.Key4, zxcore.Key5,
		zxcore.Key6, zxcore.Key7, zxcore.Key8, zxcore.Key9, zxcore.Key0,
	},
	{
		zxcore.KeyQ, zxcore.KeyW, zxcore.KeyE, zxcore.KeyR, zxcore.KeyT,
		zxcore.KeyY, zxcore.KeyU, zxcore.KeyI, zxcore.KeyO, zxcore.KeyP,
	},
	{
		zxcore.KeyA, zxcore.KeyS, zxcore.KeyD, zxcore.KeyF, zxcore.KeyG,
		zxcore.KeyH, zxcore.KeyJ, zxcore.KeyK, zxcore.KeyL, zxcore.KeyReturn,
	},
	{
		zxcore.KeyShiftL, zxcore.KeyZ, zxcore.KeyX, zxcore.KeyC, zxcore.KeyV,
		zxcore.KeyB, zxcore.KeyN, zxcore.KeyM, zxcore.KeyShiftR, zxcore.KeySpace,
	},
}

// labels are the key captions drawn on the overlay.
var labels = [Rows][Columns]string{
	{"1", "2", "3", "4", "5", "6", "7", "8", "9", "0"},
	{"Q", "W", "E", "R", "T", "Y", "U", "I", "O", "P"},
	{"A", "S", "D", "F", "G", "H", "J", "K", "L", "ENT"},
	{"CS", "Z", "X", "C", "V", "B", "N", "M", "SS", "SPC"},
}

// rowOrigins is the top-left corner of the first cell of each row. The rows
// are staggered like a real keyboard.
var rowOrigins = [Rows]struct{ X, Y int }{
	{32, 40}, {40, 88}, {48, 136}, {32, 184},
}

// Cell is the rectangle occupied by one key.
type Cell struct {
	X, Y, Width int
}

// CellAt returns the rectangle of the key at column col, row row. The two
// rightmost keys of the bottom row are wider than the rest.
func CellAt(col, row int) Cell {
	c := Cell{
		X:     rowOrigins[row].X + col*CellPitch,
		Y:     rowOrigins[row].Y,
		Width: CellWidth,
	}
	if row == Rows-1 {
		switch col {
		case 8:
			c.Width = 24
		case 9:
			c.X++
			c.Width = 30
		}
	}
	return c
}

// Invert complements the pixels of the cell at col, row in buf, a 16 bit
// image with stride pixels per line. The first and last lines of the cell
// leave out their corner pixels.
func Invert(buf []uint16, stride, col, row int) {
	c := CellAt(col, row)

	for x := c.X + 1; x < c.X+c.Width-1; x++ {
		invertAt(buf, c.Y*stride+x)
	}
	for y := c.Y + 1; y < c.Y+CellHeight-1; y++ {
		for x := c.X; x < c.X+c.Width; x++ {
			invertAt(buf, y*stride+x)
		}
	}
	last := c.Y + CellHeight - 1
	for x := c.X + 1; x < c.X+c.Width-1; x++ {
		invertAt(buf, last*stride+x)
	}
}

func invertAt(buf []uint16, i int) {
	if i >= 0 && i < len(buf) {
		buf[i] = ^buf[i]
	}
}
