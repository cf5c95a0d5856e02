package device

import (
	"github.com/dshills/glyphprompt/internal/prompt/binding"
	"github.com/dshills/glyphprompt/internal/prompt/fold"
)

// BindingSprite maps a binding path to the glyph shown for it.
type BindingSprite struct {
	// Path is the binding path, e.g. "<Gamepad>/buttonSouth".
	Path string `json:"path" yaml:"path" toml:"path"`

	// Sprite is the glyph name inside the profile atlas, e.g. "cross".
	Sprite string `json:"sprite" yaml:"sprite" toml:"sprite"`
}

// NamedSprite is a custom glyph looked up by name, e.g. a picture of the
// controller itself.
type NamedSprite struct {
	Name   string `json:"name" yaml:"name" toml:"name"`
	Sprite string `json:"sprite" yaml:"sprite" toml:"sprite"`
}

// Profile is the prompt data of one device family.
type Profile struct {
	// Name identifies the profile in platform overrides. Defaults to the
	// first identity when empty.
	Name string `json:"name" yaml:"name" toml:"name"`

	// Description is free text for authors.
	Description string `json:"description,omitempty" yaml:"description,omitempty" toml:"description,omitempty"`

	// Categories are the device types this profile covers.
	Categories []Category `json:"categories" yaml:"categories" toml:"categories"`

	// Identities are the device names that select this profile.
	Identities []string `json:"identities" yaml:"identities" toml:"identities"`

	// Atlas names the icon atlas holding the glyphs.
	Atlas string `json:"atlas" yaml:"atlas" toml:"atlas"`

	// Bindings are the binding glyphs in lookup order.
	Bindings []BindingSprite `json:"bindings" yaml:"bindings" toml:"bindings"`

	// Sprites are the custom glyphs in lookup order.
	Sprites []NamedSprite `json:"sprites,omitempty" yaml:"sprites,omitempty" toml:"sprites,omitempty"`
}

// DisplayName returns Name, or the first identity when Name is empty.
func (p *Profile) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if len(p.Identities) > 0 {
		return p.Identities[0]
	}
	return ""
}

// BindingFor returns the first entry whose path equals path, ignoring case.
func (p *Profile) BindingFor(path string) (BindingSprite, bool) {
	for _, b := range p.Bindings {
		if fold.Equal(b.Path, path) {
			return b, true
		}
	}
	return BindingSprite{}, false
}

// BindingForControl returns the first entry whose last path segment equals
// the control name, ignoring case. "<Gamepad>/buttonSouth" matches control
// "buttonSouth" whatever its device prefix.
func (p *Profile) BindingForControl(control string) (BindingSprite, bool) {
	for _, b := range p.Bindings {
		if fold.Equal(binding.LastSegment(b.Path), control) {
			return b, true
		}
	}
	return BindingSprite{}, false
}

// Sprite returns the custom glyph registered under name.
func (p *Profile) Sprite(name string) (string, bool) {
	for _, s := range p.Sprites {
		if fold.Equal(s.Name, name) {
			return s.Sprite, true
		}
	}
	return "", false
}
