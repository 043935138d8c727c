package core

// Canvas size. The engine always draws the full bordered picture.
const (
	hardWidth  = 320
	hardHeight = 240

	// Visible area without the border.
	paperWidth  = 256
	paperHeight = 192
)

// Largest frame the core produces.
const (
	CanvasWidth  = hardWidth
	CanvasHeight = hardHeight
)

// geometry tracks the visible window into the canvas.
type geometry struct {
	softWidth   int
	softHeight  int
	pixelOffset int
	hideBorder  bool
	dirty       bool
	reported    bool
}

// set updates the visible window. The window is marked dirty when it
// changes or has never been reported.
func (g *geometry) set(hideBorder bool) {
	w, h := hardWidth, hardHeight
	if hideBorder {
		w, h = paperWidth, paperHeight
	}
	if g.reported && w == g.softWidth && h == g.softHeight {
		g.hideBorder = hideBorder
		return
	}
	g.hideBorder = hideBorder
	g.softWidth = w
	g.softHeight = h
	g.pixelOffset = (hardHeight-h)/2*hardWidth + (hardWidth-w)/2
	g.dirty = true
}

func (g *geometry) host() Geometry {
	return Geometry{
		BaseWidth:  g.softWidth,
		BaseHeight: g.softHeight,
		MaxWidth:   hardWidth,
		MaxHeight:  hardHeight,
	}
}

// reset forgets what was reported so the next set marks it dirty.
func (g *geometry) reset() {
	*g = geometry{}
}
