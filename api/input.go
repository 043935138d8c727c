package zxcore

import "fmt"

// EventType is the kind of an input event.
type EventType int

const (
	EventKeyPress EventType = iota
	EventKeyRelease
	EventJoystickPress
	EventJoystickRelease
)

// String returns the display name of the event type.
func (t EventType) String() string {
	switch t {
	case EventKeyPress:
		return "KeyPress"
	case EventKeyRelease:
		return "KeyRelease"
	case EventJoystickPress:
		return "JoystickPress"
	case EventJoystickRelease:
		return "JoystickRelease"
	default:
		return fmt.Sprintf("EventType(%d)", int(t))
	}
}

// InputEvent is a single press or release raised into the engine.
type InputEvent struct {
	Type  EventType
	Key   Key
	Which int // joystick number for joystick events
}

// Key is an engine input key, covering both the keyboard and the joystick
// directions.
type Key int

const (
	KeyNone Key = iota

	Key0
	Key1
	Key2
	Key3
	Key4
	Key5
	Key6
	Key7
	Key8
	Key9

	KeyA
	KeyB
	KeyC
	KeyD
	KeyE
	KeyF
	KeyG
	KeyH
	KeyI
	KeyJ
	KeyK
	KeyL
	KeyM
	KeyN
	KeyO
	KeyP
	KeyQ
	KeyR
	KeyS
	KeyT
	KeyU
	KeyV
	KeyW
	KeyX
	KeyY
	KeyZ

	KeySpace
	KeyReturn
	KeyShiftL
	KeyShiftR
	KeyControlL
	KeyControlR
	KeyAltL
	KeyAltR
	KeyMetaL
	KeyMetaR
	KeySuperL
	KeySuperR
	KeyModeSwitch

	KeyTab
	KeyEscape
	KeyBackSpace
	KeyKPEnter
	KeyUp
	KeyDown
	KeyLeft
	KeyRight
	KeyInsert
	KeyDelete
	KeyHome
	KeyEnd
	KeyPageUp
	KeyPageDown

	KeyF1
	KeyF2
	KeyF3
	KeyF4
	KeyF5
	KeyF6
	KeyF7
	KeyF8
	KeyF9
	KeyF10
	KeyF11
	KeyF12

	KeyExclam
	KeyNumberSign
	KeyDollar
	KeyAmpersand
	KeyApostrophe
	KeyParenLeft
	KeyParenRight
	KeyAsterisk
	KeyPlus
	KeyComma
	KeyMinus
	KeyPeriod
	KeySlash
	KeyColon
	KeySemicolon
	KeyLess
	KeyEqual
	KeyGreater
	KeyAsciiCircum

	JoystickUp
	JoystickDown
	JoystickLeft
	JoystickRight
	JoystickFire1
)

// IsJoystick reports whether k is a joystick direction or button.
func (k Key) IsJoystick() bool {
	return k >= JoystickUp && k <= JoystickFire1
}

// JoystickType selects which joystick interface a controller emulates.
type JoystickType int

const (
	JoystickNone JoystickType = iota
	JoystickCursor
	JoystickKempston
	JoystickSinclair1
	JoystickSinclair2
	JoystickTimex1
	JoystickTimex2
	JoystickFuller
)

// String returns the display name of the joystick type.
func (j JoystickType) String() string {
	switch j {
	case JoystickNone:
		return "None"
	case JoystickCursor:
		return "Cursor Joystick"
	case JoystickKempston:
		return "Kempston Joystick"
	case JoystickSinclair1:
		return "Sinclair 1 Joystick"
	case JoystickSinclair2:
		return "Sinclair 2 Joystick"
	case JoystickTimex1:
		return "Timex 1 Joystick"
	case JoystickTimex2:
		return "Timex 2 Joystick"
	case JoystickFuller:
		return "Fuller Joystick"
	default:
		return "Unknown"
	}
}
