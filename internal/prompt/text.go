package prompt

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/dshills/glyphprompt/internal/config"
	"github.com/dshills/glyphprompt/internal/prompt/device"
	"github.com/dshills/glyphprompt/internal/prompt/resolve"
	"github.com/dshills/glyphprompt/internal/prompt/tag"
)

// Diagnostic markers substituted for text that cannot be resolved.
const (
	DiagSettingsMissing      = "SETTINGS_MISSING"
	DiagSettingsInvalid      = "SETTINGS_INVALID"
	DiagNoActiveDevice       = "NO_ACTIVE_DEVICE"
	DiagMissingDeviceEntries = "MISSING_DEVICE_ENTRIES"
	DiagMissingAction        = "MISSING_ACTION"
	DiagMissingPrompt        = "MISSING_PROMPT"
)

// Sprite names a glyph in an icon atlas.
type Sprite struct {
	Atlas string
	Name  string
}

// Token renders the sprite as a rich text sprite tag. extra, when not empty,
// is appended inside the tag.
func (s Sprite) Token(extra string) string {
	if extra == "" {
		return fmt.Sprintf(`<sprite="%s" name="%s">`, s.Atlas, s.Name)
	}
	return fmt.Sprintf(`<sprite="%s" name="%s" %s>`, s.Atlas, s.Name, extra)
}

// InsertPromptSprites replaces every tag in text by the glyphs of its action
// on the effective profile. Identical tags are replaced identically; text
// without tags is returned unchanged. If no settings can be loaded the whole
// text is replaced by SETTINGS_MISSING (or SETTINGS_INVALID).
func (e *Engine) InsertPromptSprites(text string) string {
	if err := e.Initialize(); err != nil {
		if errors.Is(err, config.ErrConfigurationMissing) {
			return DiagSettingsMissing
		}
		return DiagSettingsInvalid
	}

	s := e.session
	return tag.Replace(text, s.delims, func(name string) string {
		return s.format(e.replacement(s, name))
	})
}

// replacement renders the glyphs, or a diagnostic, for one tag.
func (e *Engine) replacement(s *session, name string) string {
	res, err := s.resolver.Resolve(name)
	if err != nil {
		var (
			nap *resolve.NoActiveProfileError
			uae *resolve.UnknownActionError
		)
		switch {
		case errors.As(err, &nap) && nap.Identity == "":
			return DiagNoActiveDevice
		case errors.As(err, &nap):
			return fmt.Sprintf("%s '%s'", DiagMissingDeviceEntries, nap.Identity)
		case errors.As(err, &uae):
			return fmt.Sprintf("%s %s", DiagMissingAction, uae.Key)
		default:
			e.logger.Error("resolving prompt", zap.String("tag", name), zap.Error(err))
			return fmt.Sprintf("%s '%s'", DiagMissingPrompt, name)
		}
	}

	if len(res.Entries) == 0 {
		return fmt.Sprintf("%s '%s'", DiagMissingPrompt, name)
	}

	var b strings.Builder
	for _, entry := range res.Entries {
		sprite := Sprite{Atlas: res.Profile.Atlas, Name: entry.Sprite}
		b.WriteString(sprite.Token(s.settings.RichText))
	}
	return b.String()
}

// format wraps a replacement in the sprite formatter.
func (s *session) format(replacement string) string {
	if !s.placeholder {
		return replacement
	}
	return strings.ReplaceAll(s.settings.Formatter, config.SpritePlaceholder, replacement)
}

// ActionSprite returns the first glyph of an action on the effective profile.
func (e *Engine) ActionSprite(actionKey string) (Sprite, bool) {
	res, err := e.Resolve(actionKey)
	if err != nil || len(res.Entries) == 0 {
		return Sprite{}, false
	}
	return Sprite{Atlas: res.Profile.Atlas, Name: res.Entries[0].Sprite}, true
}

// DeviceSprite returns a named custom glyph of the effective profile, so a
// platform override supplies its own glyphs.
func (e *Engine) DeviceSprite(customName string) (Sprite, bool) {
	profile, err := e.Profile()
	if err != nil {
		return Sprite{}, false
	}
	return spriteOf(profile, customName)
}

func spriteOf(profile *device.Profile, name string) (Sprite, bool) {
	glyph, ok := profile.Sprite(name)
	if !ok {
		return Sprite{}, false
	}
	return Sprite{Atlas: profile.Atlas, Name: glyph}, true
}
