package termdevice

import (
	"github.com/gdamore/tcell/v2"

	"github.com/dshills/glyphprompt/internal/prompt/device"
	"github.com/dshills/glyphprompt/internal/prompt/tracker"
)

// Device names reported for the terminal's own devices. They match the
// identities profiles usually list for desktop input.
const (
	KeyboardName = "Keyboard"
	MouseName    = "Mouse"
)

// Provider is a device.Provider backed by a terminal.
type Provider struct {
	*device.StaticProvider

	keyboard device.Info
	mouse    device.Info
	hasMouse bool
}

// Option configures a Provider.
type Option func(*options)

type options struct {
	mouse        bool
	keyboardName string
	mouseName    string
}

// WithoutMouse omits the mouse device, for terminals without mouse reporting.
func WithoutMouse() Option {
	return func(o *options) {
		o.mouse = false
	}
}

// WithNames overrides the keyboard and mouse identities.
func WithNames(keyboard, mouse string) Option {
	return func(o *options) {
		if keyboard != "" {
			o.keyboardName = keyboard
		}
		if mouse != "" {
			o.mouseName = mouse
		}
	}
}

// New creates a provider with the terminal keyboard and mouse connected.
func New(opts ...Option) *Provider {
	o := options{
		mouse:        true,
		keyboardName: KeyboardName,
		mouseName:    MouseName,
	}
	for _, opt := range opts {
		opt(&o)
	}

	p := &Provider{StaticProvider: device.NewStaticProvider()}
	p.keyboard = p.Add(device.Spec{
		Name:       o.keyboardName,
		Categories: device.NewCategorySet(device.Keyboard),
		Controls:   device.KeyboardControls(),
	})
	if o.mouse {
		p.mouse = p.Add(device.Spec{
			Name:       o.mouseName,
			Categories: device.NewCategorySet(device.Mouse),
			Controls:   device.MouseControls(),
		})
		p.hasMouse = true
	}
	return p
}

// Keyboard returns the terminal keyboard.
func (p *Provider) Keyboard() device.Info {
	return p.keyboard
}

// Mouse returns the terminal mouse, if mouse reporting is enabled.
func (p *Provider) Mouse() (device.Info, bool) {
	return p.mouse, p.hasMouse
}

// Attach connects a virtual device with the template controls of its
// categories.
func (p *Provider) Attach(name string, cats device.CategorySet) device.Info {
	return p.Add(device.Spec{
		Name:       name,
		Categories: cats,
		Controls:   device.ControlsFor(cats),
	})
}

// Detach removes a virtual device. The terminal keyboard and mouse cannot be
// detached.
func (p *Provider) Detach(id device.ID) bool {
	if id == p.keyboard.ID || (p.hasMouse && id == p.mouse.ID) {
		return false
	}
	return p.Remove(id)
}

// Activity translates a terminal event into an activity signal. Events that
// carry no input, such as resizes and focus changes, report false.
func (p *Provider) Activity(ev tcell.Event) (tracker.Activity, bool) {
	switch e := ev.(type) {
	case *tcell.EventKey:
		return tracker.Activity{Device: p.keyboard.ID, Kind: tracker.KindButton}, true

	case *tcell.EventMouse:
		if !p.hasMouse {
			return tracker.Activity{}, false
		}
		kind := tracker.KindPointer
		if e.Buttons()&clickMask != 0 {
			kind = tracker.KindButton
		}
		return tracker.Activity{Device: p.mouse.ID, Kind: kind}, true

	default:
		return tracker.Activity{}, false
	}
}

var _ device.Provider = (*Provider)(nil)
