package config

import (
	"fmt"
	"math"
	"runtime"
	"strings"
	"unicode/utf8"

	"github.com/dshills/glyphprompt/internal/prompt/binding"
	"github.com/dshills/glyphprompt/internal/prompt/device"
	"github.com/dshills/glyphprompt/internal/prompt/fold"
	"github.com/dshills/glyphprompt/internal/prompt/tag"
)

// SpritePlaceholder is replaced by the rendered prompt in the formatter.
const SpritePlaceholder = "{SPRITE}"

// Default setting values.
const (
	DefaultOpenTag        = "["
	DefaultCloseTag       = "]"
	DefaultFormatter      = SpritePlaceholder
	DefaultStickThreshold = 0.5
)

// PlatformOverride forces a profile when running on a platform.
type PlatformOverride struct {
	Platform string `json:"platform" yaml:"platform" toml:"platform"`
	Profile  string `json:"profile" yaml:"profile" toml:"profile"`
}

// Settings is a settings document.
type Settings struct {
	// OpenTag and CloseTag delimit tags in text. Each is one character.
	OpenTag  string `json:"open_tag" yaml:"open_tag" toml:"open_tag"`
	CloseTag string `json:"close_tag" yaml:"close_tag" toml:"close_tag"`

	// Priority orders categories for default device selection.
	Priority []device.Category `json:"priority" yaml:"priority" toml:"priority"`

	// Formatter wraps every replacement; it should contain SpritePlaceholder.
	Formatter string `json:"formatter" yaml:"formatter" toml:"formatter"`

	// RichText is appended inside every sprite token.
	RichText string `json:"rich_text" yaml:"rich_text" toml:"rich_text"`

	StickDetection bool    `json:"stick_detection" yaml:"stick_detection" toml:"stick_detection"`
	StickThreshold float64 `json:"stick_threshold" yaml:"stick_threshold" toml:"stick_threshold"`

	// Platform is the running platform matched against PlatformOverrides.
	Platform          string             `json:"platform" yaml:"platform" toml:"platform"`
	PlatformOverrides []PlatformOverride `json:"platform_overrides" yaml:"platform_overrides" toml:"platform_overrides"`

	// InputActions lists .inputactions files to load action maps from.
	InputActions []string `json:"input_actions" yaml:"input_actions" toml:"input_actions"`

	ActionMaps []binding.ActionMap `json:"action_maps" yaml:"action_maps" toml:"action_maps"`
	Profiles   []device.Profile    `json:"profiles" yaml:"profiles" toml:"profiles"`
}

// Default returns the built-in settings.
func Default() Settings {
	return Settings{
		OpenTag:        DefaultOpenTag,
		CloseTag:       DefaultCloseTag,
		Priority:       device.DefaultPriority(),
		Formatter:      DefaultFormatter,
		StickDetection: true,
		StickThreshold: DefaultStickThreshold,
		Platform:       runtime.GOOS,
	}
}

// Delimiters returns the tag delimiters. Invalid settings yield the zero
// rune, which Validate reports.
func (s Settings) Delimiters() tag.Delimiters {
	return tag.Delimiters{Open: singleRune(s.OpenTag), Close: singleRune(s.CloseTag)}
}

func singleRune(s string) rune {
	if utf8.RuneCountInString(s) != 1 {
		return 0
	}
	r, _ := utf8.DecodeRuneInString(s)
	return r
}

// HasPlaceholder reports whether the formatter contains SpritePlaceholder.
func (s Settings) HasPlaceholder() bool {
	return strings.Contains(s.Formatter, SpritePlaceholder)
}

// OverrideProfile returns the profile forced for the running platform.
func (s Settings) OverrideProfile() (string, bool) {
	for _, o := range s.PlatformOverrides {
		if fold.Equal(o.Platform, s.Platform) && o.Profile != "" {
			return o.Profile, true
		}
	}
	return "", false
}

// Validate checks the settings and returns every problem found.
func (s Settings) Validate() error {
	errs := &ValidationErrors{}

	if utf8.RuneCountInString(s.OpenTag) != 1 {
		errs.add("open_tag", "must be a single character", s.OpenTag)
	}
	if utf8.RuneCountInString(s.CloseTag) != 1 {
		errs.add("close_tag", "must be a single character", s.CloseTag)
	}
	if s.OpenTag != "" && s.OpenTag == s.CloseTag {
		errs.add("close_tag", "must differ from open_tag", s.CloseTag)
	}

	if len(s.Priority) == 0 {
		errs.add("priority", "must list at least one category", nil)
	}
	seen := device.CategorySet(0)
	for i, c := range s.Priority {
		path := fmt.Sprintf("priority[%d]", i)
		switch {
		case !c.Valid():
			errs.add(path, "unknown category", int(c))
		case seen.Has(c):
			errs.add(path, "duplicate category", c.String())
		default:
			seen = seen.With(c)
		}
	}

	if math.IsNaN(s.StickThreshold) || s.StickThreshold < 0 || s.StickThreshold > 1 {
		errs.add("stick_threshold", "must be between 0 and 1", s.StickThreshold)
	}

	names := make(map[string]bool, len(s.Profiles))
	for i, p := range s.Profiles {
		name := p.DisplayName()
		if name == "" {
			errs.add(fmt.Sprintf("profiles[%d]", i), "needs a name or an identity", nil)
			continue
		}
		names[fold.String(name)] = true
		for j, c := range p.Categories {
			if !c.Valid() {
				errs.add(fmt.Sprintf("profiles[%d].categories[%d]", i, j), "unknown category", int(c))
			}
		}
	}

	for i, o := range s.PlatformOverrides {
		path := fmt.Sprintf("platform_overrides[%d]", i)
		if strings.TrimSpace(o.Platform) == "" {
			errs.add(path+".platform", "must not be empty", nil)
		}
		if !names[fold.String(o.Profile)] {
			errs.add(path+".profile", "unknown profile", o.Profile)
		}
	}

	for i, m := range s.ActionMaps {
		if strings.TrimSpace(m.Name) == "" {
			errs.add(fmt.Sprintf("action_maps[%d].name", i), "must not be empty", nil)
		}
	}

	return errs.orNil()
}
