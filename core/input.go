package core

import (
	zxcore "github.com/user-none/efuse/api"
	"github.com/user-none/efuse/overlay"
)

// joystickPorts is the number of ports routed to the engine's joysticks.
const joystickPorts = 2

// joypadButtons are the polled buttons of a joystick port, in polling
// order, and the engine button each one drives.
var joypadButtons = [...]struct {
	id     uint
	button zxcore.Key
}{
	{JoypadUp, zxcore.JoystickUp},
	{JoypadDown, zxcore.JoystickDown},
	{JoypadLeft, zxcore.JoystickLeft},
	{JoypadRight, zxcore.JoystickRight},
	{JoypadA, zxcore.JoystickFire1},
}

// overlayState is the on-screen keyboard.
type overlayState struct {
	visible     bool
	transparent bool
	cursorX     int
	cursorY     int

	// pendingRelease is when pendingKey must be released, in host
	// microseconds. Zero means nothing is pending.
	pendingRelease int64
	pendingKey     zxcore.Key
	holdMicros     int64
}

// inputRouter turns polled host state into engine input events.
type inputRouter struct {
	// down is the last polled state of each joystick button; held is what
	// the engine has been told.
	down [joystickPorts][len(joypadButtons)]bool
	held [joystickPorts][len(joypadButtons)]bool

	keys       map[RetroKey]bool
	selectDown bool
	devices    [MaxPorts]uint

	overlay overlayState
}

// reset clears all edge state and hides the overlay. Option derived
// overlay settings survive.
func (r *inputRouter) reset() {
	transparent := r.overlay.transparent
	hold := r.overlay.holdMicros
	devices := r.devices

	*r = inputRouter{}
	r.keys = make(map[RetroKey]bool)
	r.devices = devices
	r.overlay.transparent = transparent
	r.overlay.holdMicros = hold
}

// poll reads the host input state once and raises the resulting events.
func (c *Core) poll() {
	r := &c.input
	now := c.now()

	if r.overlay.pendingRelease != 0 && now >= r.overlay.pendingRelease {
		c.releasePending()
	}

	sel := c.host.InputState(0, DeviceJoypad, 0, JoypadSelect) != 0
	if sel && !r.selectDown {
		c.toggleOverlay()
	}
	r.selectDown = sel

	for port := 0; port < joystickPorts; port++ {
		switch {
		case port == 0 && r.overlay.visible:
			c.navigate(now)
		case r.devices[port] != DeviceKeyboard:
			c.routeJoystick(port)
		}
	}

	c.pollKeyboard()
}

func (c *Core) routeJoystick(port int) {
	r := &c.input
	for i, b := range joypadButtons {
		down := c.host.InputState(uint(port), DeviceJoypad, 0, b.id) != 0
		if down == r.down[port][i] {
			continue
		}
		r.down[port][i] = down

		switch {
		case down && !r.held[port][i]:
			r.held[port][i] = true
			c.send(zxcore.InputEvent{Type: zxcore.EventJoystickPress, Key: b.button, Which: port})
		case !down && r.held[port][i]:
			r.held[port][i] = false
			c.send(zxcore.InputEvent{Type: zxcore.EventJoystickRelease, Key: b.button, Which: port})
		}
	}
}

// navigate moves the overlay cursor on port 0 and confirms the selection
// on fire.
func (c *Core) navigate(now int64) {
	r := &c.input
	o := &r.overlay
	for i, b := range joypadButtons {
		down := c.host.InputState(0, DeviceJoypad, 0, b.id) != 0
		pressed := down && !r.down[0][i]
		r.down[0][i] = down
		if !pressed {
			continue
		}

		switch b.id {
		case JoypadUp:
			o.cursorY = (o.cursorY - 1) & 3
		case JoypadDown:
			o.cursorY = (o.cursorY + 1) & 3
		case JoypadLeft:
			if o.cursorX == 0 {
				o.cursorX = overlay.Columns - 1
			} else {
				o.cursorX--
			}
		case JoypadRight:
			if o.cursorX == overlay.Columns-1 {
				o.cursorX = 0
			} else {
				o.cursorX++
			}
		case JoypadA:
			c.confirmOverlay(now)
			return
		}
	}
}

// confirmOverlay presses the selected key, schedules its release and hides
// the overlay.
func (c *Core) confirmOverlay(now int64) {
	o := &c.input.overlay
	if o.pendingRelease != 0 {
		c.releasePending()
	}

	key := overlay.Layout[o.cursorY][o.cursorX]
	o.visible = false
	c.send(zxcore.InputEvent{Type: zxcore.EventKeyPress, Key: key})
	o.pendingKey = key
	o.pendingRelease = now + o.holdMicros
}

func (c *Core) releasePending() {
	o := &c.input.overlay
	c.send(zxcore.InputEvent{Type: zxcore.EventKeyRelease, Key: o.pendingKey})
	o.pendingRelease = 0
	o.pendingKey = zxcore.KeyNone
}

// toggleOverlay shows or hides the overlay. Joystick buttons the engine
// holds on port 0 are released on the way in so none stay stuck while the
// port is captured by the overlay.
func (c *Core) toggleOverlay() {
	r := &c.input
	r.overlay.visible = !r.overlay.visible
	if r.overlay.visible {
		c.releaseJoystick(0)
	}
}

// releaseJoystick tells the engine every button it holds on port is up.
func (c *Core) releaseJoystick(port int) {
	r := &c.input
	for i, b := range joypadButtons {
		if r.held[port][i] {
			r.held[port][i] = false
			c.send(zxcore.InputEvent{Type: zxcore.EventJoystickRelease, Key: b.button, Which: port})
		}
	}
}

func (c *Core) pollKeyboard() {
	r := &c.input
	for _, m := range keymap {
		down := c.host.InputState(0, DeviceKeyboard, 0, uint(m.host)) != 0
		if down == r.keys[m.host] {
			continue
		}
		r.keys[m.host] = down
		t := zxcore.EventKeyRelease
		if down {
			t = zxcore.EventKeyPress
		}
		c.send(zxcore.InputEvent{Type: t, Key: m.engine})
	}
}

func (c *Core) send(ev zxcore.InputEvent) {
	if c.engine != nil {
		c.engine.Input(ev)
	}
}
