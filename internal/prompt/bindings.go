package prompt

import (
	"github.com/dshills/glyphprompt/internal/prompt/notify"
)

// TextBinding keeps a piece of authored text rendered for the active device.
// The rendered text is handed to the apply callback once when the binding is
// created and again on every active device change.
type TextBinding struct {
	engine   *Engine
	original string
	rendered string
	apply    func(string)
	sub      *notify.Subscription
}

// BindText creates a TextBinding for text.
func (e *Engine) BindText(text string, apply func(rendered string)) *TextBinding {
	b := &TextBinding{engine: e, original: text, apply: apply}
	b.Refresh()
	b.sub = e.Subscribe(func(notify.Change) { b.Refresh() })
	return b
}

// Refresh renders the text again.
func (b *TextBinding) Refresh() {
	b.rendered = b.engine.InsertPromptSprites(b.original)
	if b.apply != nil {
		b.apply(b.rendered)
	}
}

// Original returns the authored text.
func (b *TextBinding) Original() string {
	return b.original
}

// Text returns the last rendered text.
func (b *TextBinding) Text() string {
	return b.rendered
}

// Close stops refreshing. It is safe to call more than once.
func (b *TextBinding) Close() {
	b.sub.Unsubscribe()
}

// IconBinding keeps the first glyph of an action current. The apply callback
// only runs when a glyph is found, so the last good glyph stays on screen
// when the new device has none.
type IconBinding struct {
	engine *Engine
	action string
	sprite Sprite
	found  bool
	apply  func(Sprite)
	sub    *notify.Subscription
}

// BindIcon creates an IconBinding for an action key.
func (e *Engine) BindIcon(actionKey string, apply func(Sprite)) *IconBinding {
	b := &IconBinding{engine: e, action: actionKey, apply: apply}
	b.Refresh()
	b.sub = e.Subscribe(func(notify.Change) { b.Refresh() })
	return b
}

// Refresh looks the glyph up again.
func (b *IconBinding) Refresh() {
	sprite, ok := b.engine.ActionSprite(b.action)
	if !ok {
		return
	}
	b.sprite, b.found = sprite, true
	if b.apply != nil {
		b.apply(sprite)
	}
}

// Sprite returns the last glyph found.
func (b *IconBinding) Sprite() (Sprite, bool) {
	return b.sprite, b.found
}

// Close stops refreshing. It is safe to call more than once.
func (b *IconBinding) Close() {
	b.sub.Unsubscribe()
}

// SpriteBinding keeps a named custom glyph of the effective profile current,
// such as a controller illustration. Like IconBinding it keeps the last glyph
// when the new profile lacks the name.
type SpriteBinding struct {
	engine *Engine
	name   string
	sprite Sprite
	found  bool
	apply  func(Sprite)
	sub    *notify.Subscription
}

// BindSprite creates a SpriteBinding for a custom glyph name.
func (e *Engine) BindSprite(customName string, apply func(Sprite)) *SpriteBinding {
	b := &SpriteBinding{engine: e, name: customName, apply: apply}
	b.Refresh()
	b.sub = e.Subscribe(func(notify.Change) { b.Refresh() })
	return b
}

// Refresh looks the glyph up again.
func (b *SpriteBinding) Refresh() {
	sprite, ok := b.engine.DeviceSprite(b.name)
	if !ok {
		return
	}
	b.sprite, b.found = sprite, true
	if b.apply != nil {
		b.apply(sprite)
	}
}

// Sprite returns the last glyph found.
func (b *SpriteBinding) Sprite() (Sprite, bool) {
	return b.sprite, b.found
}

// Close stops refreshing. It is safe to call more than once.
func (b *SpriteBinding) Close() {
	b.sub.Unsubscribe()
}
