package tracker

import (
	"go.uber.org/zap"

	"github.com/dshills/glyphprompt/internal/prompt/device"
	"github.com/dshills/glyphprompt/internal/prompt/notify"
)

// State is the tracker state.
type State int

const (
	// StateUninitialized means no default resolution has run yet.
	StateUninitialized State = iota

	// StateNoActiveDevice means no connected device matched the priority.
	StateNoActiveDevice

	// StateActive means a device is active.
	StateActive
)

// String returns the state name.
func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateNoActiveDevice:
		return "no-active-device"
	case StateActive:
		return "active"
	default:
		return "unknown"
	}
}

// DefaultStickThreshold is the stick magnitude that switches to a gamepad.
const DefaultStickThreshold = 0.5

// Config configures a Tracker.
type Config struct {
	// Priority is the category order for default resolution.
	Priority []device.Category

	// StickDetection lets stick motion switch the active device.
	StickDetection bool

	// StickThreshold is the stick magnitude, in [0, 1], that qualifies.
	StickThreshold float64
}

// DefaultConfig returns the default tracker configuration.
func DefaultConfig() Config {
	return Config{
		Priority:       device.DefaultPriority(),
		StickDetection: true,
		StickThreshold: DefaultStickThreshold,
	}
}

// Tracker maintains the active device.
type Tracker struct {
	provider device.Provider
	notifier *notify.Notifier
	config   Config
	logger   *zap.Logger

	state  State
	active device.Info
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithLogger sets the tracker logger.
func WithLogger(l *zap.Logger) Option {
	return func(t *Tracker) {
		if l != nil {
			t.logger = l
		}
	}
}

// New creates a tracker in the Uninitialized state. Changes are published
// to notifier, which may be nil.
func New(provider device.Provider, notifier *notify.Notifier, config Config, opts ...Option) *Tracker {
	if notifier == nil {
		notifier = notify.New()
	}
	t := &Tracker{
		provider: provider,
		notifier: notifier,
		config:   config,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// State returns the current state without resolving a default device.
func (t *Tracker) State() State {
	return t.state
}

// Active returns the active device, running default resolution first if the
// tracker is uninitialized.
func (t *Tracker) Active() (device.Info, bool) {
	t.ensureInitialized()
	if t.state != StateActive {
		return device.Info{}, false
	}
	return t.active, true
}

// Reset returns the tracker to the Uninitialized state without notifying.
func (t *Tracker) Reset() {
	t.state = StateUninitialized
	t.active = device.Info{}
}

// HandleActivity processes an input signal. It reports whether the active
// device changed.
func (t *Tracker) HandleActivity(a Activity) bool {
	t.ensureInitialized()

	if a.OnScreen {
		return false
	}

	info, ok := t.lookup(a.Device)
	if !ok || info.HasUsage(device.UsageOnScreen) {
		return false
	}

	cats := t.provider.Categories(a.Device)
	if cats.Empty() {
		return false
	}

	if !t.qualifies(a, cats) {
		return false
	}

	if t.state == StateActive && t.active.ID == a.Device {
		return false
	}

	t.setActive(&info)
	t.logger.Debug("active device changed",
		zap.String("device", info.Name),
		zap.Stringer("kind", a.Kind))
	t.publish(notify.CauseActivity)
	return true
}

// HandleDeviceChange processes a connection change. When the active device
// departs, default resolution runs again and observers are always notified,
// even if an equivalent device is chosen.
func (t *Tracker) HandleDeviceChange(id device.ID, change ChangeKind) bool {
	if !change.departs() {
		return false
	}
	if t.state != StateActive || t.active.ID != id {
		return false
	}

	t.resolveDefault(&id)
	if t.state == StateActive {
		t.logger.Info("active device departed, selected default",
			zap.Uint64("departed", uint64(id)),
			zap.String("device", t.active.Name))
	} else {
		t.logger.Info("active device departed, no default device",
			zap.Uint64("departed", uint64(id)))
	}
	t.publish(notify.CauseDisconnect)
	return true
}

func (t *Tracker) qualifies(a Activity, cats device.CategorySet) bool {
	switch a.Kind {
	case KindButton, KindPointer:
		return true
	case KindStick:
		if !t.config.StickDetection || !cats.Has(device.GamePad) {
			return false
		}
		return a.LeftStick.Magnitude() >= t.config.StickThreshold ||
			a.RightStick.Magnitude() >= t.config.StickThreshold
	default:
		return false
	}
}

func (t *Tracker) ensureInitialized() {
	if t.state == StateUninitialized {
		t.resolveDefault(nil)
	}
}

// resolveDefault picks the first device of the highest priority category,
// never choosing exclude. On-screen devices are never picked, since no
// activity of theirs could move the tracker off them again.
func (t *Tracker) resolveDefault(exclude *device.ID) {
	devices := t.provider.Devices()
	for _, cat := range t.config.Priority {
		for i := range devices {
			d := devices[i]
			if exclude != nil && d.ID == *exclude {
				continue
			}
			if d.HasUsage(device.UsageOnScreen) {
				continue
			}
			if t.provider.Categories(d.ID).Has(cat) {
				t.setActive(&d)
				return
			}
		}
	}
	t.setActive(nil)
}

func (t *Tracker) setActive(info *device.Info) {
	if info == nil {
		t.state = StateNoActiveDevice
		t.active = device.Info{}
		return
	}
	t.state = StateActive
	t.active = *info
}

func (t *Tracker) publish(cause notify.Cause) {
	change := notify.Change{Cause: cause}
	if t.state == StateActive {
		active := t.active
		change.Device = &active
	}
	t.notifier.Notify(change)
}

func (t *Tracker) lookup(id device.ID) (device.Info, bool) {
	for _, d := range t.provider.Devices() {
		if d.ID == id {
			return d, true
		}
	}
	return device.Info{}, false
}
