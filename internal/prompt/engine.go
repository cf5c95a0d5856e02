package prompt

import (
	"errors"

	"go.uber.org/zap"

	"github.com/dshills/glyphprompt/internal/config"
	"github.com/dshills/glyphprompt/internal/prompt/binding"
	"github.com/dshills/glyphprompt/internal/prompt/device"
	"github.com/dshills/glyphprompt/internal/prompt/notify"
	"github.com/dshills/glyphprompt/internal/prompt/resolve"
	"github.com/dshills/glyphprompt/internal/prompt/tag"
	"github.com/dshills/glyphprompt/internal/prompt/tracker"
)

// Engine resolves action prompts for the active device.
type Engine struct {
	configs  config.Provider
	devices  device.Provider
	logger   *zap.Logger
	platform string

	notifier *notify.Notifier

	// session is nil while the engine is uninitialized.
	session *session
}

// session is everything built from one settings bundle.
type session struct {
	settings    config.Settings
	delims      tag.Delimiters
	placeholder bool
	index       *binding.Index
	registry    *device.Registry
	tracker     *tracker.Tracker
	resolver    *resolve.Resolver
}

// Option configures an Engine.
type Option func(*Engine)

// WithLogger sets the engine logger. Components log through named children.
func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithPlatform sets the running platform, replacing the settings value when
// platform overrides are matched.
func WithPlatform(platform string) Option {
	return func(e *Engine) {
		e.platform = platform
	}
}

// New creates an uninitialized engine. Settings are read on first use.
func New(configs config.Provider, devices device.Provider, opts ...Option) *Engine {
	e := &Engine{
		configs:  configs,
		devices:  devices,
		logger:   zap.NewNop(),
		notifier: notify.New(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Initialize loads the settings and builds the indices. It does nothing when
// the engine is already initialized. On error the engine stays
// uninitialized and the next query tries again.
func (e *Engine) Initialize() error {
	if e.session != nil {
		return nil
	}
	s, err := e.build()
	if err != nil {
		return err
	}
	e.session = s
	return nil
}

// Initialized reports whether settings are loaded.
func (e *Engine) Initialized() bool {
	return e.session != nil
}

// Terminate drops the loaded state and every subscription. The engine can be
// initialized again afterwards. Calling Terminate more than once is safe.
func (e *Engine) Terminate() {
	if e.session != nil {
		e.logger.Debug("prompt engine terminated")
	}
	e.session = nil
	e.notifier.Clear()
}

// Reinitialize reloads the settings, rebuilds the indices, resets the tracker
// and notifies observers with CauseReset. If loading fails the previous state
// is kept and the error is returned.
func (e *Engine) Reinitialize() error {
	s, err := e.build()
	if err != nil {
		e.logger.Warn("reinitialize failed, keeping previous settings", zap.Error(err))
		return err
	}
	e.session = s

	change := notify.Change{Cause: notify.CauseReset}
	if active, ok := s.tracker.Active(); ok {
		change.Device = &active
	}
	e.notifier.Notify(change)
	return nil
}

// build loads a bundle and constructs a session from it.
func (e *Engine) build() (*session, error) {
	if e.configs == nil {
		return nil, config.ErrConfigurationMissing
	}
	bundle, err := e.configs.Load()
	if err != nil {
		if errors.Is(err, config.ErrConfigurationMissing) {
			e.logger.Warn("prompt settings missing")
		} else {
			e.logger.Error("loading prompt settings", zap.Error(err))
		}
		return nil, err
	}

	settings := bundle.Settings
	if e.platform != "" {
		settings.Platform = e.platform
	}

	s := &session{
		settings:    settings,
		delims:      settings.Delimiters(),
		placeholder: settings.HasPlaceholder(),
		index:       binding.Build(bundle.ActionMaps),
		registry: device.Build(settings.Profiles,
			device.WithLogger(e.logger.Named("registry")),
			device.WithProvider(e.devices)),
	}
	if !s.placeholder {
		e.logger.Error("sprite formatter lacks placeholder, substituting without it",
			zap.String("formatter", settings.Formatter),
			zap.String("placeholder", config.SpritePlaceholder))
	}

	s.tracker = tracker.New(e.devices, e.notifier, tracker.Config{
		Priority:       settings.Priority,
		StickDetection: settings.StickDetection,
		StickThreshold: settings.StickThreshold,
	}, tracker.WithLogger(e.logger.Named("tracker")))

	resolverOpts := []resolve.Option{resolve.WithLogger(e.logger.Named("resolve"))}
	if name, ok := settings.OverrideProfile(); ok {
		if p, found := s.registry.ProfileNamed(name); found {
			resolverOpts = append(resolverOpts, resolve.WithOverride(p))
			e.logger.Info("platform override active",
				zap.String("platform", settings.Platform),
				zap.String("profile", p.DisplayName()))
		} else {
			e.logger.Warn("platform override names unknown profile",
				zap.String("platform", settings.Platform),
				zap.String("profile", name))
		}
	}
	s.resolver = resolve.New(s.index, s.registry, s.tracker, e.devices, resolverOpts...)

	e.logger.Debug("prompt engine initialized",
		zap.Int("actions", s.index.Len()),
		zap.Int("profiles", len(s.registry.Profiles())))
	return s, nil
}

// current initializes on demand and returns the session, or nil.
func (e *Engine) current() *session {
	if err := e.Initialize(); err != nil {
		return nil
	}
	return e.session
}

// Settings returns the loaded settings.
func (e *Engine) Settings() (config.Settings, bool) {
	s := e.current()
	if s == nil {
		return config.Settings{}, false
	}
	return s.settings, true
}

// ActionKeys returns the normalized keys of every known action.
func (e *Engine) ActionKeys() []string {
	s := e.current()
	if s == nil {
		return nil
	}
	return s.index.Keys()
}

// Warnings returns the duplicate identities dropped while building the
// registry.
func (e *Engine) Warnings() []device.DuplicateIdentity {
	s := e.current()
	if s == nil {
		return nil
	}
	return s.registry.Warnings()
}

// Profiles returns the registered device profiles.
func (e *Engine) Profiles() []*device.Profile {
	s := e.current()
	if s == nil {
		return nil
	}
	return s.registry.Profiles()
}

// ActiveDevice returns the active device.
func (e *Engine) ActiveDevice() (device.Info, bool) {
	s := e.current()
	if s == nil {
		return device.Info{}, false
	}
	return s.tracker.Active()
}

// Profile returns the effective profile: the platform override, else the
// profile of the active device.
func (e *Engine) Profile() (*device.Profile, error) {
	if err := e.Initialize(); err != nil {
		return nil, err
	}
	return e.session.resolver.Profile()
}

// Resolve returns the prompt entries of an action for the effective profile.
func (e *Engine) Resolve(actionKey string) (resolve.Result, error) {
	if err := e.Initialize(); err != nil {
		return resolve.Result{}, err
	}
	return e.session.resolver.Resolve(actionKey)
}

// Subscribe registers an observer of active device changes. Observers run in
// subscription order and must not feed input back into the engine.
func (e *Engine) Subscribe(observer notify.Observer) *notify.Subscription {
	return e.notifier.Subscribe(observer)
}

// HandleActivity feeds an input signal to the tracker. It reports whether the
// active device changed.
func (e *Engine) HandleActivity(a tracker.Activity) bool {
	s := e.current()
	if s == nil {
		return false
	}
	return s.tracker.HandleActivity(a)
}

// HandleDeviceChange feeds a connection change to the tracker. It reports
// whether observers were notified.
func (e *Engine) HandleDeviceChange(id device.ID, change tracker.ChangeKind) bool {
	s := e.current()
	if s == nil {
		return false
	}
	return s.tracker.HandleDeviceChange(id, change)
}
