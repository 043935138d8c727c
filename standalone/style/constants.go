//go:build !libretro

package style

// Logical-pixel reference values. The exported vars are recalculated by
// SetDPIScale.
const (
	baseDefaultPadding     = 16
	baseDefaultSpacing     = 16
	baseSmallSpacing       = 8
	baseButtonPaddingSmall = 8
	baseMenuMinWidth       = 360
	baseValueMinWidth      = 90
)

var (
	DefaultPadding     = baseDefaultPadding
	DefaultSpacing     = baseDefaultSpacing
	SmallSpacing       = baseSmallSpacing
	ButtonPaddingSmall = baseButtonPaddingSmall

	// MenuMinWidth is the narrowest the options panel gets.
	MenuMinWidth = baseMenuMinWidth
	// ValueMinWidth keeps the value buttons from resizing as they cycle.
	ValueMinWidth = baseValueMinWidth
)
