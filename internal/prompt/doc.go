// Package prompt turns action tags in text into device glyphs.
//
// An Engine owns everything the substitution needs: the settings, the binding
// index built from the action maps, the device profile registry, the active
// device tracker and the resolver. Nothing is global, so several engines can
// run side by side.
//
//	engine := prompt.New(config.NewFileProvider("glyphprompt.toml"), devices)
//	defer engine.Terminate()
//
//	out := engine.InsertPromptSprites("Press [Player/Jump] to jump")
//	// Press <sprite="ps" name="cross"> to jump
//
// The engine initializes lazily on first use. Tags that cannot be resolved
// are replaced by a visible marker instead of failing:
//
//	NO_ACTIVE_DEVICE                no device is active and no override applies
//	MISSING_DEVICE_ENTRIES 'name'   the active device has no profile
//	MISSING_ACTION key              the action is not in any action map
//	MISSING_PROMPT 'tag'            the profile has no glyph for the action
//
// When no settings exist at all the whole text becomes SETTINGS_MISSING.
//
// An Engine is not safe for concurrent use. Observers subscribed with
// Subscribe run synchronously on the goroutine that fed the input and must
// not feed input back into the engine.
package prompt
