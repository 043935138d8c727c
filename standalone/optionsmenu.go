//go:build !libretro

package standalone

import (
	"slices"

	"github.com/ebitenui/ebitenui"
	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/user-none/efuse/core"
	"github.com/user-none/efuse/standalone/style"
)

type menuAction int

const (
	menuNone menuAction = iota
	menuUp
	menuDown
	menuNext
	menuPrevious
	menuClose
)

// optionRow is one line of the options menu.
type optionRow struct {
	Key    string
	Label  string
	Values []string
}

// OptionsMenu is the in-window core options screen. Each row shows an
// option and a button that cycles through its values; the keyboard moves
// a selection between rows. Changes go to the option store and reach the
// core on its next frame.
type OptionsMenu struct {
	options  *optionStore
	rows     []optionRow
	selected int
	visible  bool
	rebuild  bool
	ui       *ebitenui.UI
}

// NewOptionsMenu builds the menu rows from the core's option definitions.
func NewOptionsMenu(options *optionStore, vars []core.Variable) *OptionsMenu {
	valid := variableValues(vars)
	rows := make([]optionRow, 0, len(vars))
	for _, v := range vars {
		label, _ := parseVariable(v)
		rows = append(rows, optionRow{Key: v.Key, Label: label, Values: valid[v.Key]})
	}
	return &OptionsMenu{options: options, rows: rows}
}

// Show opens the menu with the first row selected.
func (m *OptionsMenu) Show() {
	m.visible = true
	m.selected = 0
	m.rebuild = true
}

// Hide closes the menu.
func (m *OptionsMenu) Hide() {
	m.visible = false
}

// Toggle opens a closed menu and closes an open one.
func (m *OptionsMenu) Toggle() {
	if m.visible {
		m.Hide()
	} else {
		m.Show()
	}
}

// IsVisible reports whether the menu is open.
func (m *OptionsMenu) IsVisible() bool {
	return m.visible
}

// value returns the current value of row i.
func (m *OptionsMenu) value(i int) string {
	v, _ := m.options.get(m.rows[i].Key)
	return v
}

// step moves row i's option delta places through its values, wrapping.
func (m *OptionsMenu) step(i, delta int) {
	row := m.rows[i]
	n := len(row.Values)
	if n == 0 {
		return
	}
	idx := slices.Index(row.Values, m.value(i))
	if idx < 0 {
		idx = 0
		delta = 0
	}
	next := row.Values[((idx+delta)%n+n)%n]
	if m.options.set(row.Key, next) {
		m.rebuild = true
	}
}

func (m *OptionsMenu) apply(a menuAction) {
	if len(m.rows) == 0 {
		if a == menuClose {
			m.Hide()
		}
		return
	}
	switch a {
	case menuUp:
		m.selected = (m.selected - 1 + len(m.rows)) % len(m.rows)
		m.rebuild = true
	case menuDown:
		m.selected = (m.selected + 1) % len(m.rows)
		m.rebuild = true
	case menuNext:
		m.step(m.selected, 1)
	case menuPrevious:
		m.step(m.selected, -1)
	case menuClose:
		m.Hide()
	}
}

// pollAction maps this tick's key presses to a menu action.
func pollAction() menuAction {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		return menuClose
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowUp):
		return menuUp
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowDown):
		return menuDown
	case inpututil.IsKeyJustPressed(ebiten.KeyEnter),
		inpututil.IsKeyJustPressed(ebiten.KeySpace),
		inpututil.IsKeyJustPressed(ebiten.KeyArrowRight):
		return menuNext
	case inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft):
		return menuPrevious
	}
	return menuNone
}

// Update handles keyboard navigation and mouse clicks.
func (m *OptionsMenu) Update() {
	if !m.visible {
		return
	}
	m.apply(pollAction())
	if !m.visible {
		return
	}
	if m.ui == nil || m.rebuild {
		m.build()
	}
	m.ui.Update()
}

// Draw draws the menu over the picture.
func (m *OptionsMenu) Draw(screen *ebiten.Image) {
	if !m.visible || m.ui == nil {
		return
	}
	m.ui.Draw(screen)
}

func (m *OptionsMenu) build() {
	m.rebuild = false

	root := style.OverlayContainer()
	panel := style.PanelContainer(style.SmallSpacing)
	panel.AddChild(style.Label("Options", false))
	for i := range m.rows {
		panel.AddChild(m.buildRow(i))
	}
	panel.AddChild(style.Label("Arrows to choose, Enter to change, Esc to close", true))
	root.AddChild(panel)

	m.ui = &ebitenui.UI{Container: root}
}

func (m *OptionsMenu) buildRow(i int) *widget.Container {
	row := widget.NewContainer(
		widget.ContainerOpts.BackgroundImage(image.NewNineSliceColor(style.Surface)),
		widget.ContainerOpts.Layout(widget.NewGridLayout(
			widget.GridLayoutOpts.Columns(2),
			widget.GridLayoutOpts.Stretch([]bool{true, false}, []bool{true}),
			widget.GridLayoutOpts.Spacing(style.DefaultSpacing, 0),
			widget.GridLayoutOpts.Padding(widget.NewInsetsSimple(style.SmallSpacing)),
		)),
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.RowLayoutData{Stretch: true}),
		),
	)

	row.AddChild(widget.NewText(
		widget.TextOpts.Text(m.rows[i].Label, style.FontFace(), style.Text),
		widget.TextOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{
				VerticalPosition: widget.GridLayoutPositionCenter,
			}),
		),
	))

	row.AddChild(widget.NewButton(
		widget.ButtonOpts.Image(style.ActiveButtonImage(i == m.selected)),
		widget.ButtonOpts.Text(m.value(i), style.FontFace(), style.ButtonTextColor()),
		widget.ButtonOpts.TextPadding(widget.NewInsetsSimple(style.ButtonPaddingSmall)),
		widget.ButtonOpts.WidgetOpts(
			widget.WidgetOpts.LayoutData(widget.GridLayoutData{
				VerticalPosition: widget.GridLayoutPositionCenter,
			}),
			widget.WidgetOpts.MinSize(style.ValueMinWidth, 0),
		),
		widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
			m.selected = i
			m.step(i, 1)
			m.rebuild = true
		}),
	))
	return row
}
