package device

import (
	"fmt"
	"strings"
)

// Category is a coarse device type.
type Category uint8

const (
	// Mouse is a pointer with buttons.
	Mouse Category = iota
	// Keyboard is a keyboard.
	Keyboard
	// GamePad is a game controller with sticks and face buttons.
	GamePad
	// Touchscreen is a touch surface.
	Touchscreen

	categoryCount
)

// AllCategories returns every category in declaration order.
func AllCategories() []Category {
	return []Category{Mouse, Keyboard, GamePad, Touchscreen}
}

// DefaultPriority is the category order used to pick a device before any
// input has been received.
func DefaultPriority() []Category {
	return []Category{GamePad, Keyboard, Mouse}
}

// String returns the category name.
func (c Category) String() string {
	switch c {
	case Mouse:
		return "Mouse"
	case Keyboard:
		return "Keyboard"
	case GamePad:
		return "GamePad"
	case Touchscreen:
		return "Touchscreen"
	default:
		return "Unknown"
	}
}

// Valid reports whether c is a defined category.
func (c Category) Valid() bool {
	return c < categoryCount
}

// ParseCategory parses a category name, ignoring case.
// "Gamepad" and "GamePad" are both accepted.
func ParseCategory(s string) (Category, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "mouse":
		return Mouse, nil
	case "keyboard":
		return Keyboard, nil
	case "gamepad", "game_pad", "game-pad":
		return GamePad, nil
	case "touchscreen", "touch":
		return Touchscreen, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
	}
}

// MarshalText implements encoding.TextMarshaler.
func (c Category) MarshalText() ([]byte, error) {
	if !c.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownCategory, c)
	}
	return []byte(c.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// CategorySet is a set of categories.
type CategorySet uint8

// NewCategorySet returns a set holding cats.
func NewCategorySet(cats ...Category) CategorySet {
	var s CategorySet
	for _, c := range cats {
		s = s.With(c)
	}
	return s
}

// With returns s with c added.
func (s CategorySet) With(c Category) CategorySet {
	if !c.Valid() {
		return s
	}
	return s | 1<<c
}

// Has reports whether c is in the set.
func (s CategorySet) Has(c Category) bool {
	return c.Valid() && s&(1<<c) != 0
}

// Empty reports whether the set holds no category.
func (s CategorySet) Empty() bool {
	return s == 0
}

// Categories returns the members in declaration order.
func (s CategorySet) Categories() []Category {
	out := make([]Category, 0, categoryCount)
	for _, c := range AllCategories() {
		if s.Has(c) {
			out = append(out, c)
		}
	}
	return out
}

// String returns the members joined by "|".
func (s CategorySet) String() string {
	if s.Empty() {
		return "none"
	}
	cats := s.Categories()
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.String()
	}
	return strings.Join(names, "|")
}
