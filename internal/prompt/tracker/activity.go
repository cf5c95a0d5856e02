package tracker

import (
	"math"

	"github.com/dshills/glyphprompt/internal/prompt/device"
)

// Kind is the type of an activity signal.
type Kind int

const (
	// KindButton is a button, key, click or touch press.
	KindButton Kind = iota

	// KindPointer is pointer or touch motion.
	KindPointer

	// KindStick is analog stick motion.
	KindStick
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindPointer:
		return "pointer"
	case KindStick:
		return "stick"
	default:
		return "unknown"
	}
}

// Stick is an analog stick position, each axis in [-1, 1].
type Stick struct {
	X float64
	Y float64
}

// Magnitude returns the distance from the stick center.
func (s Stick) Magnitude() float64 {
	return math.Hypot(s.X, s.Y)
}

// Activity is an input signal from a live device.
type Activity struct {
	// Device is the device that produced the input.
	Device device.ID

	// Kind is the type of input.
	Kind Kind

	// LeftStick and RightStick are read for KindStick.
	LeftStick  Stick
	RightStick Stick

	// OnScreen marks input synthesized by on-screen controls.
	OnScreen bool
}

// ChangeKind is a device connection change.
type ChangeKind int

const (
	// DeviceAdded means a device was connected.
	DeviceAdded ChangeKind = iota

	// DeviceRemoved means a device was removed from the system.
	DeviceRemoved

	// DeviceDisconnected means a device lost its connection.
	DeviceDisconnected

	// DeviceReconnected means a disconnected device came back.
	DeviceReconnected
)

// String returns the change name.
func (c ChangeKind) String() string {
	switch c {
	case DeviceAdded:
		return "added"
	case DeviceRemoved:
		return "removed"
	case DeviceDisconnected:
		return "disconnected"
	case DeviceReconnected:
		return "reconnected"
	default:
		return "unknown"
	}
}

// departs reports whether the change takes the device away.
func (c ChangeKind) departs() bool {
	return c == DeviceRemoved || c == DeviceDisconnected
}
