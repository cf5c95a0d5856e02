package device

import "github.com/dshills/glyphprompt/internal/prompt/fold"

// UsageOnScreen marks a device synthesized by on-screen controls. Such a
// device is never chosen as the default and its activity never changes the
// active device.
const UsageOnScreen = "OnScreen"

// ID identifies a live device for as long as it stays connected.
type ID uint64

// Info describes a live device.
type Info struct {
	// ID is unique among connected devices.
	ID ID

	// Name is the device identity used to select a Profile,
	// e.g. "DualShock4GamepadHID" or "Keyboard".
	Name string

	// Usages are device level usages such as "OnScreen".
	Usages []string
}

// HasUsage reports whether the device carries usage, ignoring case.
func (i Info) HasUsage(usage string) bool {
	return hasUsage(i.Usages, usage)
}

// Control is one control of a live device.
type Control struct {
	// Name is the control name, e.g. "buttonSouth" or "enter".
	Name string

	// Usages are the semantic roles of the control, e.g. "Submit".
	Usages []string
}

// HasUsage reports whether the control carries usage, ignoring case.
func (c Control) HasUsage(usage string) bool {
	return hasUsage(c.Usages, usage)
}

// Provider exposes the live devices of the host input backend.
type Provider interface {
	// Devices returns the connected devices in enumeration order.
	Devices() []Info

	// Categories classifies a device by capability. Unknown IDs and devices
	// such as accelerometers return an empty set.
	Categories(id ID) CategorySet

	// Controls returns the controls of a device.
	Controls(id ID) []Control
}

func hasUsage(usages []string, usage string) bool {
	for _, u := range usages {
		if fold.Equal(u, usage) {
			return true
		}
	}
	return false
}
