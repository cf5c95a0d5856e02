package device

import (
	"go.uber.org/zap"

	"github.com/dshills/glyphprompt/internal/prompt/fold"
)

// DuplicateIdentity records an identity claimed by more than one profile.
type DuplicateIdentity struct {
	// Identity is the contested device name.
	Identity string

	// Kept is the profile that keeps the identity.
	Kept string

	// Dropped is the profile whose claim was ignored.
	Dropped string
}

// Registry maps device identities to profiles and classifies live devices.
// A Registry is read-only after Build.
type Registry struct {
	profiles   []*Profile
	byIdentity map[string]*Profile
	byName     map[string]*Profile
	warnings   []DuplicateIdentity

	provider Provider
	logger   *zap.Logger
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger used for configuration warnings.
func WithLogger(l *zap.Logger) RegistryOption {
	return func(r *Registry) {
		if l != nil {
			r.logger = l
		}
	}
}

// WithProvider sets the live device provider used by CategoriesOf.
func WithProvider(p Provider) RegistryOption {
	return func(r *Registry) {
		r.provider = p
	}
}

// NewRegistry creates an empty registry.
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{
		byIdentity: make(map[string]*Profile),
		byName:     make(map[string]*Profile),
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Build creates a registry holding profiles, registered in order.
func Build(profiles []Profile, opts ...RegistryOption) *Registry {
	r := NewRegistry(opts...)
	for _, p := range profiles {
		r.Register(p)
	}
	return r
}

// Register adds a profile. Identities already claimed by an earlier profile
// stay with that profile; each collision is logged and recorded.
func (r *Registry) Register(p Profile) {
	profile := p
	r.profiles = append(r.profiles, &profile)

	name := profile.DisplayName()
	if key := fold.String(name); key != "" {
		if _, exists := r.byName[key]; !exists {
			r.byName[key] = &profile
		}
	}

	for _, identity := range profile.Identities {
		key := fold.String(identity)
		if existing, exists := r.byIdentity[key]; exists {
			dup := DuplicateIdentity{
				Identity: identity,
				Kept:     existing.DisplayName(),
				Dropped:  name,
			}
			r.warnings = append(r.warnings, dup)
			r.logger.Warn("duplicate device identity, keeping first registration",
				zap.String("identity", identity),
				zap.String("kept", dup.Kept),
				zap.String("dropped", dup.Dropped))
			continue
		}
		r.byIdentity[key] = &profile
	}
}

// ProfileFor returns the profile selected by a device identity.
func (r *Registry) ProfileFor(identity string) (*Profile, bool) {
	p, ok := r.byIdentity[fold.String(identity)]
	return p, ok
}

// ProfileNamed returns a profile by its name.
func (r *Registry) ProfileNamed(name string) (*Profile, bool) {
	p, ok := r.byName[fold.String(name)]
	return p, ok
}

// Profiles returns all registered profiles in registration order.
func (r *Registry) Profiles() []*Profile {
	out := make([]*Profile, len(r.profiles))
	copy(out, r.profiles)
	return out
}

// Warnings returns the identity collisions seen while registering.
func (r *Registry) Warnings() []DuplicateIdentity {
	out := make([]DuplicateIdentity, len(r.warnings))
	copy(out, r.warnings)
	return out
}

// CategoriesOf classifies a live device. Without a provider every device is
// unclassified.
func (r *Registry) CategoriesOf(id ID) CategorySet {
	if r.provider == nil {
		return 0
	}
	return r.provider.Categories(id)
}
