//go:build !libretro

package standalone

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/user-none/efuse/core"
)

// InputMapping maps joypad button ids to gamepad buttons.
type InputMapping struct {
	Gamepad map[uint]ebiten.StandardGamepadButton
}

// padNameMap maps gamepad button name strings to ebiten StandardGamepadButton values.
var padNameMap = map[string]ebiten.StandardGamepadButton{
	"A":         ebiten.StandardGamepadButtonRightBottom,
	"B":         ebiten.StandardGamepadButtonRightRight,
	"X":         ebiten.StandardGamepadButtonRightLeft,
	"Y":         ebiten.StandardGamepadButtonRightTop,
	"L1":        ebiten.StandardGamepadButtonFrontTopLeft,
	"R1":        ebiten.StandardGamepadButtonFrontTopRight,
	"L2":        ebiten.StandardGamepadButtonFrontBottomLeft,
	"R2":        ebiten.StandardGamepadButtonFrontBottomRight,
	"Start":     ebiten.StandardGamepadButtonCenterRight,
	"Select":    ebiten.StandardGamepadButtonCenterLeft,
	"DpadUp":    ebiten.StandardGamepadButtonLeftTop,
	"DpadDown":  ebiten.StandardGamepadButtonLeftBottom,
	"DpadLeft":  ebiten.StandardGamepadButtonLeftLeft,
	"DpadRight": ebiten.StandardGamepadButtonLeftRight,
	"L3":        ebiten.StandardGamepadButtonLeftStick,
	"R3":        ebiten.StandardGamepadButtonRightStick,
}

// ParsePad converts a gamepad button name string to an ebiten.StandardGamepadButton.
// Returns the button and true if the name is valid, or 0 and false otherwise.
func ParsePad(name string) (ebiten.StandardGamepadButton, bool) {
	b, ok := padNameMap[name]
	return b, ok
}

// joypadButtons are the joypad buttons the core reads, with their default
// gamepad bindings. Select toggles the on-screen keyboard.
var joypadButtons = []struct {
	Name       string
	ID         uint
	DefaultPad string
}{
	{"Up", core.JoypadUp, "DpadUp"},
	{"Down", core.JoypadDown, "DpadDown"},
	{"Left", core.JoypadLeft, "DpadLeft"},
	{"Right", core.JoypadRight, "DpadRight"},
	{"Fire", core.JoypadA, "A"},
	{"Select", core.JoypadSelect, "Select"},
}

// BuildMappingFromConfig creates an InputMapping using config overrides with
// the default bindings as fallback. Invalid overrides fall back too.
func BuildMappingFromConfig(padOverrides map[string]string) InputMapping {
	m := InputMapping{Gamepad: make(map[uint]ebiten.StandardGamepadButton)}

	for _, jb := range joypadButtons {
		if override, ok := padOverrides[jb.Name]; ok {
			if b, ok := ParsePad(override); ok {
				m.Gamepad[jb.ID] = b
				continue
			}
		}
		if b, ok := ParsePad(jb.DefaultPad); ok {
			m.Gamepad[jb.ID] = b
		}
	}

	return m
}

// PollGamepadButtons reads a gamepad, including the left analog stick, into
// a joypad bitmask.
func PollGamepadButtons(mapping InputMapping, id ebiten.GamepadID) uint16 {
	var buttons uint16
	for retroID, btn := range mapping.Gamepad {
		if ebiten.IsStandardGamepadButtonPressed(id, btn) {
			buttons |= 1 << retroID
		}
	}

	axisX := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickHorizontal)
	axisY := ebiten.StandardGamepadAxisValue(id, ebiten.StandardGamepadAxisLeftStickVertical)
	buttons |= stickButtons(axisX, axisY)
	return buttons
}

// stickButtons converts analog stick deflection to direction bits.
func stickButtons(axisX, axisY float64) uint16 {
	const threshold = 0.5
	var buttons uint16
	if axisY < -threshold {
		buttons |= 1 << core.JoypadUp
	}
	if axisY > threshold {
		buttons |= 1 << core.JoypadDown
	}
	if axisX < -threshold {
		buttons |= 1 << core.JoypadLeft
	}
	if axisX > threshold {
		buttons |= 1 << core.JoypadRight
	}
	return buttons
}

// keyboardMap maps host keys to the keyboard device's key codes. Function
// keys are absent; the harness uses them as hotkeys.
var keyboardMap = buildKeyboardMap()

func buildKeyboardMap() map[ebiten.Key]core.RetroKey {
	m := map[ebiten.Key]core.RetroKey{
		ebiten.KeyBackspace:    core.RetroKeyBackspace,
		ebiten.KeyTab:          core.RetroKeyTab,
		ebiten.KeyEnter:        core.RetroKeyReturn,
		ebiten.KeyEscape:       core.RetroKeyEscape,
		ebiten.KeySpace:        core.RetroKeySpace,
		ebiten.KeyApostrophe:   core.RetroKeyQuote,
		ebiten.KeyComma:        core.RetroKeyComma,
		ebiten.KeyMinus:        core.RetroKeyMinus,
		ebiten.KeyPeriod:       core.RetroKeyPeriod,
		ebiten.KeySlash:        core.RetroKeySlash,
		ebiten.KeySemicolon:    core.RetroKeySemicolon,
		ebiten.KeyEqual:        core.RetroKeyEquals,
		ebiten.KeyDelete:       core.RetroKeyDelete,
		ebiten.KeyNumpadEnter:  core.RetroKeyKPEnter,
		ebiten.KeyArrowUp:      core.RetroKeyUp,
		ebiten.KeyArrowDown:    core.RetroKeyDown,
		ebiten.KeyArrowRight:   core.RetroKeyRight,
		ebiten.KeyArrowLeft:    core.RetroKeyLeft,
		ebiten.KeyInsert:       core.RetroKeyInsert,
		ebiten.KeyHome:         core.RetroKeyHome,
		ebiten.KeyEnd:          core.RetroKeyEnd,
		ebiten.KeyPageUp:       core.RetroKeyPageUp,
		ebiten.KeyPageDown:     core.RetroKeyPageDown,
		ebiten.KeyShiftRight:   core.RetroKeyRShift,
		ebiten.KeyShiftLeft:    core.RetroKeyLShift,
		ebiten.KeyControlRight: core.RetroKeyRCtrl,
		ebiten.KeyControlLeft:  core.RetroKeyLCtrl,
		ebiten.KeyAltRight:     core.RetroKeyRAlt,
		ebiten.KeyAltLeft:      core.RetroKeyLAlt,
		ebiten.KeyMetaRight:    core.RetroKeyRMeta,
		ebiten.KeyMetaLeft:     core.RetroKeyLMeta,
		ebiten.KeyContextMenu:  core.RetroKeyMenu,
	}
	for i, k := range letterKeys {
		m[k] = core.RetroKeyA + core.RetroKey(i)
	}
	for i, k := range digitKeys {
		m[k] = core.RetroKey0 + core.RetroKey(i)
	}
	return m
}

var letterKeys = []ebiten.Key{
	ebiten.KeyA, ebiten.KeyB, ebiten.KeyC, ebiten.KeyD, ebiten.KeyE, ebiten.KeyF,
	ebiten.KeyG, ebiten.KeyH, ebiten.KeyI, ebiten.KeyJ, ebiten.KeyK, ebiten.KeyL,
	ebiten.KeyM, ebiten.KeyN, ebiten.KeyO, ebiten.KeyP, ebiten.KeyQ, ebiten.KeyR,
	ebiten.KeyS, ebiten.KeyT, ebiten.KeyU, ebiten.KeyV, ebiten.KeyW, ebiten.KeyX,
	ebiten.KeyY, ebiten.KeyZ,
}

var digitKeys = []ebiten.Key{
	ebiten.Key0, ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4,
	ebiten.Key5, ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// RetroKeyFor returns the keyboard device code for a host key.
func RetroKeyFor(k ebiten.Key) (core.RetroKey, bool) {
	rk, ok := keyboardMap[k]
	return rk, ok
}

// PollKeyboard returns the keyboard device codes of every held key.
func PollKeyboard(dst []core.RetroKey) []core.RetroKey {
	var held []ebiten.Key
	held = inpututil.AppendPressedKeys(held)
	for _, k := range held {
		if rk, ok := RetroKeyFor(k); ok {
			dst = append(dst, rk)
		}
	}
	return dst
}
