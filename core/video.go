package core

import "github.com/user-none/efuse/overlay"

// palette maps Spectrum colour indices to RGB565.
var palette = [16]uint16{
	0x0000, 0x0018, 0xc000, 0xc018,
	0x0600, 0x0618, 0xc600, 0xc618,
	0x0000, 0x001f, 0xf800, 0xf81f,
	0x07e0, 0x07ff, 0xffe0, 0xffff,
}

// blendMask drops the low bits of each channel so four pixels can be
// summed without carrying into the next channel.
const blendMask = 0xe79c

// video is the engine's display. It draws into primary; the overlay is
// composed into secondary.
type video struct {
	primary   []uint16
	secondary []uint16
	double    bool
	frameDone bool
}

func newVideo() *video {
	return &video{
		primary:   make([]uint16, hardWidth*hardHeight),
		secondary: make([]uint16, hardWidth*hardHeight),
	}
}

func (v *video) set(x, y int, c uint16) {
	if x < 0 || y < 0 || x >= hardWidth || y >= hardHeight {
		return
	}
	v.primary[y*hardWidth+x] = c
}

// PutPixel sets one pixel, or a 2x2 block in double resolution mode.
func (v *video) PutPixel(x, y int, colour uint8) {
	c := palette[colour&0x0f]
	if !v.double {
		v.set(x, y, c)
		return
	}
	x <<= 1
	y <<= 1
	v.set(x, y, c)
	v.set(x+1, y, c)
	v.set(x, y+1, c)
	v.set(x+1, y+1, c)
}

// Plot8 draws eight pixels of a bitmap byte, most significant bit first.
func (v *video) Plot8(x, y int, data, ink, paper uint8) {
	fg := palette[ink&0x0f]
	bg := palette[paper&0x0f]

	x <<= 3
	if !v.double {
		for i := 0; i < 8; i++ {
			c := bg
			if data&(0x80>>i) != 0 {
				c = fg
			}
			v.set(x+i, y, c)
		}
		return
	}

	x <<= 1
	y <<= 1
	for i := 0; i < 8; i++ {
		c := bg
		if data&(0x80>>i) != 0 {
			c = fg
		}
		v.set(x+2*i, y, c)
		v.set(x+2*i+1, y, c)
		v.set(x+2*i, y+1, c)
		v.set(x+2*i+1, y+1, c)
	}
}

// Plot16 draws sixteen pixels of a bitmap word on two lines.
func (v *video) Plot16(x, y int, data uint16, ink, paper uint8) {
	fg := palette[ink&0x0f]
	bg := palette[paper&0x0f]

	x <<= 4
	y <<= 1
	for i := 0; i < 16; i++ {
		c := bg
		if data&(0x8000>>i) != 0 {
			c = fg
		}
		v.set(x+i, y, c)
		v.set(x+i, y+1, c)
	}
}

func (v *video) FrameEnd() {
	v.frameDone = true
}

func (v *video) SetDoubleResolution(on bool) {
	v.double = on
}

// composeOverlay builds the overlay picture into secondary with the
// selected key highlighted.
func (v *video) composeOverlay(transparent bool, col, row int) {
	bm := overlay.Bitmap()
	if transparent {
		for i, o := range bm {
			blended := (3*(uint32(o)&blendMask) + (uint32(v.primary[i]) & blendMask)) >> 2
			v.secondary[i] = uint16(blended)
		}
	} else {
		copy(v.secondary, bm)
	}
	overlay.Invert(v.secondary, hardWidth, col, row)
}
