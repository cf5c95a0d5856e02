package termdevice

import (
	"unicode"

	"github.com/gdamore/tcell/v2"
)

const clickMask = tcell.Button1 | tcell.Button2 | tcell.Button3

const wheelMask = tcell.WheelUp | tcell.WheelDown | tcell.WheelLeft | tcell.WheelRight

var keyControls = map[tcell.Key]string{
	tcell.KeyEnter:      "enter",
	tcell.KeyEscape:     "escape",
	tcell.KeyTab:        "tab",
	tcell.KeyBacktab:    "tab",
	tcell.KeyBackspace:  "backspace",
	tcell.KeyBackspace2: "backspace",
	tcell.KeyUp:         "upArrow",
	tcell.KeyDown:       "downArrow",
	tcell.KeyLeft:       "leftArrow",
	tcell.KeyRight:      "rightArrow",
}

// ControlName returns the name of the control an event touched, using the
// control names of device.KeyboardControls and device.MouseControls. It
// returns "" for events and keys with no matching control.
func ControlName(ev tcell.Event) string {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return keyControl(e)
	case *tcell.EventMouse:
		return mouseControl(e.Buttons())
	default:
		return ""
	}
}

func keyControl(e *tcell.EventKey) string {
	if e.Key() != tcell.KeyRune {
		return keyControls[e.Key()]
	}
	r := unicode.ToLower(e.Rune())
	switch {
	case r == ' ':
		return "space"
	case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
		return string(r)
	default:
		return ""
	}
}

func mouseControl(b tcell.ButtonMask) string {
	switch {
	case b&tcell.Button1 != 0:
		return "leftButton"
	case b&tcell.Button2 != 0:
		return "rightButton"
	case b&tcell.Button3 != 0:
		return "middleButton"
	case b&wheelMask != 0:
		return "scroll"
	default:
		return "position"
	}
}
