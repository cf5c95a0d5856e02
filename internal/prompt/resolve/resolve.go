// Package resolve turns a logical action into the glyphs of the device the
// player is using.
//
// Resolution picks the effective profile (the platform override when one is
// set, else the profile of the active device), then walks the action's
// bindings in order. Concrete paths match profile entries exactly, ignoring
// case. Usage markers ("*/{Submit}") search the live devices for a control
// with that usage, trying the active device first and then every other device
// in provider order, and match the profile entry whose last path segment is
// that control's name. The first device that yields a profile entry ends the
// search for that binding.
package resolve

import (
	"go.uber.org/zap"

	"github.com/dshills/glyphprompt/internal/prompt/binding"
	"github.com/dshills/glyphprompt/internal/prompt/device"
)

// ActiveSource reports the active device.
type ActiveSource interface {
	Active() (device.Info, bool)
}

// Result is a successful resolution.
type Result struct {
	// Profile is the effective profile.
	Profile *device.Profile

	// Entries are the matching profile entries in binding order. Empty when
	// the action has no binding on this profile.
	Entries []device.BindingSprite
}

// Resolver resolves action keys against the current device.
type Resolver struct {
	index    *binding.Index
	registry *device.Registry
	active   ActiveSource
	provider device.Provider
	override *device.Profile
	logger   *zap.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithOverride makes profile win over the active device for every query.
func WithOverride(profile *device.Profile) Option {
	return func(r *Resolver) {
		r.override = profile
	}
}

// WithLogger sets the resolver logger.
func WithLogger(l *zap.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// New creates a resolver.
func New(index *binding.Index, registry *device.Registry, active ActiveSource, provider device.Provider, opts ...Option) *Resolver {
	r := &Resolver{
		index:    index,
		registry: registry,
		active:   active,
		provider: provider,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Override returns the platform override profile, if any.
func (r *Resolver) Override() (*device.Profile, bool) {
	return r.override, r.override != nil
}

// Profile returns the effective profile.
func (r *Resolver) Profile() (*device.Profile, error) {
	if r.override != nil {
		return r.override, nil
	}

	info, ok := r.active.Active()
	if !ok {
		return nil, &NoActiveProfileError{}
	}
	p, ok := r.registry.ProfileFor(info.Name)
	if !ok {
		return nil, &NoActiveProfileError{Identity: info.Name}
	}
	return p, nil
}

// Resolve returns the glyph entries of an action for the effective profile.
func (r *Resolver) Resolve(actionKey string) (Result, error) {
	profile, err := r.Profile()
	if err != nil {
		return Result{}, err
	}

	descriptors, ok := r.index.Lookup(actionKey)
	if !ok {
		return Result{}, &UnknownActionError{Key: binding.NormalizeKey(actionKey)}
	}

	entries := make([]device.BindingSprite, 0, len(descriptors))
	for _, d := range descriptors {
		var (
			entry device.BindingSprite
			found bool
		)
		if usage, isUsage := d.Usage(); isUsage {
			entry, found = r.resolveUsage(profile, usage)
		} else {
			entry, found = profile.BindingFor(d.Path)
		}
		if found {
			entries = append(entries, entry)
		}
	}

	r.logger.Debug("resolved action",
		zap.String("action", actionKey),
		zap.String("profile", profile.DisplayName()),
		zap.Int("entries", len(entries)))

	return Result{Profile: profile, Entries: entries}, nil
}

// resolveUsage finds the profile entry for the first control exposing usage.
func (r *Resolver) resolveUsage(profile *device.Profile, usage string) (device.BindingSprite, bool) {
	if r.provider == nil {
		return device.BindingSprite{}, false
	}

	for _, d := range r.searchOrder() {
		for _, c := range r.provider.Controls(d.ID) {
			if !c.HasUsage(usage) {
				continue
			}
			if entry, ok := profile.BindingForControl(c.Name); ok {
				return entry, true
			}
		}
	}
	return device.BindingSprite{}, false
}

// searchOrder lists the live devices with the active device moved first.
func (r *Resolver) searchOrder() []device.Info {
	devices := r.provider.Devices()

	active, ok := r.active.Active()
	if !ok {
		return devices
	}

	ordered := make([]device.Info, 0, len(devices)+1)
	ordered = append(ordered, active)
	for _, d := range devices {
		if d.ID != active.ID {
			ordered = append(ordered, d)
		}
	}
	return ordered
}
