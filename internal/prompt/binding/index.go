package binding

import (
	"strings"

	"github.com/dshills/glyphprompt/internal/prompt/fold"
)

// KeySeparator separates the map name from the action name in an action key.
const KeySeparator = "/"

// Binding is one binding as authored in an action map.
type Binding struct {
	// Action is the action name within the map, e.g. "Jump".
	Action string `json:"action" yaml:"action" toml:"action"`

	// Path is the control path, e.g. "<Gamepad>/buttonSouth" or "*/{Submit}".
	Path string `json:"path" yaml:"path" toml:"path"`

	// IsComposite marks the head binding of a composite (e.g. "2DVector").
	IsComposite bool `json:"isComposite,omitempty" yaml:"is_composite,omitempty" toml:"is_composite,omitempty"`

	// IsPartOfComposite marks a part binding of a composite (e.g. "up").
	IsPartOfComposite bool `json:"isPartOfComposite,omitempty" yaml:"is_part_of_composite,omitempty" toml:"is_part_of_composite,omitempty"`
}

// ActionMap is a named group of bindings, e.g. "Player" or "UI".
type ActionMap struct {
	Name     string    `json:"name" yaml:"name" toml:"name"`
	Bindings []Binding `json:"bindings" yaml:"bindings" toml:"bindings"`
}

// Descriptor is an indexed physical binding.
type Descriptor struct {
	Path              string
	IsComposite       bool
	IsPartOfComposite bool
}

// Usage returns the usage named by a usage marker path.
func (d Descriptor) Usage() (string, bool) {
	return UsageOf(d.Path)
}

// Key builds the normalized action key for an action in a map.
func Key(mapName, action string) string {
	return NormalizeKey(mapName + KeySeparator + action)
}

// NormalizeKey case-folds an action key.
func NormalizeKey(key string) string {
	return fold.String(strings.TrimSpace(key))
}

// Index maps action keys to their descriptors.
// An Index is immutable once built.
type Index struct {
	entries map[string][]Descriptor

	// order holds keys in first-seen order.
	order []string
}

// Build indexes the bindings of all maps. Bindings keep their source order
// within each action, across maps as well as within one.
func Build(maps []ActionMap) *Index {
	ix := &Index{
		entries: make(map[string][]Descriptor),
		order:   make([]string, 0),
	}

	for _, m := range maps {
		for _, b := range m.Bindings {
			k := Key(m.Name, b.Action)
			if _, exists := ix.entries[k]; !exists {
				ix.order = append(ix.order, k)
			}
			ix.entries[k] = append(ix.entries[k], Descriptor{
				Path:              b.Path,
				IsComposite:       b.IsComposite,
				IsPartOfComposite: b.IsPartOfComposite,
			})
		}
	}

	return ix
}

// Lookup returns the descriptors for an action key. The returned slice is a
// copy and may be modified by the caller.
func (ix *Index) Lookup(key string) ([]Descriptor, bool) {
	if ix == nil {
		return nil, false
	}
	d, ok := ix.entries[NormalizeKey(key)]
	if !ok {
		return nil, false
	}
	out := make([]Descriptor, len(d))
	copy(out, d)
	return out, true
}

// Has reports whether an action key is indexed.
func (ix *Index) Has(key string) bool {
	if ix == nil {
		return false
	}
	_, ok := ix.entries[NormalizeKey(key)]
	return ok
}

// Keys returns all action keys in first-seen order.
func (ix *Index) Keys() []string {
	if ix == nil {
		return nil
	}
	out := make([]string, len(ix.order))
	copy(out, ix.order)
	return out
}

// Len returns the number of indexed actions.
func (ix *Index) Len() int {
	if ix == nil {
		return 0
	}
	return len(ix.entries)
}
