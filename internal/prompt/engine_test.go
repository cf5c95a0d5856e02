package prompt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/dshills/glyphprompt/internal/config"
	"github.com/dshills/glyphprompt/internal/prompt/binding"
	"github.com/dshills/glyphprompt/internal/prompt/device"
	"github.com/dshills/glyphprompt/internal/prompt/notify"
	"github.com/dshills/glyphprompt/internal/prompt/tracker"
)

func testSettings() config.Settings {
	s := config.Default()
	s.Platform = "linux"
	s.ActionMaps = []binding.ActionMap{
		{
			Name: "Player",
			Bindings: []binding.Binding{
				{Action: "Jump", Path: "<Gamepad>/buttonSouth"},
				{Action: "Jump", Path: "<Keyboard>/space"},
				{Action: "Move", Path: "WASD", IsComposite: true},
				{Action: "Move", Path: "<Keyboard>/w", IsPartOfComposite: true},
				{Action: "Move", Path: "<Keyboard>/a", IsPartOfComposite: true},
				{Action: "Move", Path: "<Keyboard>/s", IsPartOfComposite: true},
				{Action: "Move", Path: "<Keyboard>/d", IsPartOfComposite: true},
			},
		},
		{
			Name: "UI",
			Bindings: []binding.Binding{
				{Action: "Submit", Path: "*/{Submit}"},
			},
		},
	}
	s.Profiles = []device.Profile{
		{
			Name:       "DualShock",
			Categories: []device.Category{device.GamePad},
			Identities: []string{"DualShock4GamepadHID"},
			Atlas:      "ps",
			Bindings: []device.BindingSprite{
				{Path: "<Gamepad>/buttonSouth", Sprite: "cross"},
			},
			Sprites: []device.NamedSprite{{Name: "controller", Sprite: "ds4"}},
		},
		{
			Name:       "KeyboardMouse",
			Categories: []device.Category{device.Keyboard, device.Mouse},
			Identities: []string{"Keyboard", "Mouse"},
			Atlas:      "kbm",
			Bindings: []device.BindingSprite{
				{Path: "<Keyboard>/space", Sprite: "space"},
				{Path: "<Keyboard>/w", Sprite: "w"},
				{Path: "<Keyboard>/a", Sprite: "a"},
				{Path: "<Keyboard>/s", Sprite: "s"},
				{Path: "<Keyboard>/d", Sprite: "d"},
				{Path: "<Keyboard>/enter", Sprite: "enter"},
			},
			Sprites: []device.NamedSprite{{Name: "controller", Sprite: "keyboard"}},
		},
	}
	return s
}

type fixture struct {
	devices  *device.StaticProvider
	configs  *config.StaticProvider
	keyboard device.Info
	mouse    device.Info
	pad      device.Info
}

func newFixture(withPad bool) *fixture {
	f := &fixture{
		devices: device.NewStaticProvider(),
		configs: config.NewStaticProvider(testSettings()),
	}
	f.keyboard = f.devices.Add(device.Spec{Name: "Keyboard", Categories: device.NewCategorySet(device.Keyboard), Controls: device.KeyboardControls()})
	f.mouse = f.devices.Add(device.Spec{Name: "Mouse", Categories: device.NewCategorySet(device.Mouse), Controls: device.MouseControls()})
	if withPad {
		f.pad = f.devices.Add(device.Spec{Name: "DualShock4GamepadHID", Categories: device.NewCategorySet(device.GamePad), Controls: device.GamepadControls()})
	}
	return f
}

func (f *fixture) settings(mutate func(*config.Settings)) {
	s := testSettings()
	mutate(&s)
	f.configs.Set(&s)
}

func (f *fixture) engine(opts ...Option) *Engine {
	return New(f.configs, f.devices, opts...)
}

func press(id device.ID) tracker.Activity {
	return tracker.Activity{Device: id, Kind: tracker.KindButton}
}

func TestEngine_LazyInitialize(t *testing.T) {
	f := newFixture(true)
	e := f.engine()

	assert.False(t, e.Initialized())
	assert.Equal(t, "Press <sprite=\"ps\" name=\"cross\">", e.InsertPromptSprites("Press [Player/Jump]"))
	assert.True(t, e.Initialized())
	assert.NoError(t, e.Initialize(), "initialize is idempotent")
}

func TestEngine_DualShockScenario(t *testing.T) {
	f := newFixture(true)
	e := f.engine()

	active, ok := e.ActiveDevice()
	require.True(t, ok)
	assert.Equal(t, "DualShock4GamepadHID", active.Name)

	sprite, ok := e.ActionSprite("Player/Jump")
	require.True(t, ok)
	assert.Equal(t, Sprite{Atlas: "ps", Name: "cross"}, sprite)
}

func TestEngine_KeyboardComposite(t *testing.T) {
	f := newFixture(false)
	e := f.engine()

	got := e.InsertPromptSprites("[Player/Move] to walk")
	want := `<sprite="kbm" name="w"><sprite="kbm" name="a"><sprite="kbm" name="s"><sprite="kbm" name="d"> to walk`
	assert.Equal(t, want, got)

	sprite, ok := e.ActionSprite("player/move")
	require.True(t, ok)
	assert.Equal(t, "w", sprite.Name, "first entry wins")
}

func TestEngine_UsageFallback(t *testing.T) {
	f := newFixture(false)
	e := f.engine()
	require.True(t, e.HandleActivity(tracker.Activity{Device: f.mouse.ID, Kind: tracker.KindPointer}))

	assert.Equal(t, `<sprite="kbm" name="enter">`, e.InsertPromptSprites("[UI/Submit]"))
}

func TestEngine_TagTextProperties(t *testing.T) {
	f := newFixture(true)
	e := f.engine()

	t.Run("no tags", func(t *testing.T) {
		for _, text := range []string{"", "plain text", "close] only", "unicode ✓ text"} {
			assert.Equal(t, text, e.InsertPromptSprites(text))
		}
	})

	t.Run("repeated tags", func(t *testing.T) {
		got := e.InsertPromptSprites("[Player/Jump] then [player/jump] then [Player/Jump]")
		cross := `<sprite="ps" name="cross">`
		assert.Equal(t, cross+" then "+cross+" then "+cross, got)
	})

	t.Run("unterminated tag", func(t *testing.T) {
		got := e.InsertPromptSprites("[Player/Jump] and [Player/Jump")
		assert.Equal(t, `<sprite="ps" name="cross"> and [Player/Jump`, got)
	})

	t.Run("empty tag", func(t *testing.T) {
		assert.Equal(t, "MISSING_ACTION ", e.InsertPromptSprites("[]"))
	})
}

func TestEngine_Diagnostics(t *testing.T) {
	t.Run("no active device", func(t *testing.T) {
		f := &fixture{devices: device.NewStaticProvider(), configs: config.NewStaticProvider(testSettings())}
		assert.Equal(t, "x NO_ACTIVE_DEVICE", f.engine().InsertPromptSprites("x [Player/Jump]"))
	})

	t.Run("missing device entries", func(t *testing.T) {
		f := &fixture{devices: device.NewStaticProvider(), configs: config.NewStaticProvider(testSettings())}
		f.devices.Add(device.Spec{Name: "HOTAS", Categories: device.NewCategorySet(device.GamePad)})
		assert.Equal(t, "MISSING_DEVICE_ENTRIES 'HOTAS'", f.engine().InsertPromptSprites("[Player/Jump]"))
	})

	t.Run("missing action", func(t *testing.T) {
		f := newFixture(true)
		assert.Equal(t, "MISSING_ACTION player/fly", f.engine().InsertPromptSprites("[Player/Fly]"))
	})

	t.Run("missing prompt", func(t *testing.T) {
		f := newFixture(true)
		assert.Equal(t, "MISSING_PROMPT 'Player/Move'", f.engine().InsertPromptSprites("[Player/Move]"))
	})
}

func TestEngine_BoldFormatter(t *testing.T) {
	f := newFixture(true)
	f.settings(func(s *config.Settings) { s.Formatter = "<b>{SPRITE}</b>" })
	e := f.engine()

	assert.Equal(t, `Jump: <b><sprite="ps" name="cross"></b>`, e.InsertPromptSprites("Jump: [Player/Jump]"))
	assert.Equal(t, "<b>MISSING_ACTION ui/nope</b>", e.InsertPromptSprites("[UI/Nope]"))
}

func TestEngine_RichTextExtra(t *testing.T) {
	f := newFixture(true)
	f.settings(func(s *config.Settings) { s.RichText = `color=#FFFFFF` })

	assert.Equal(t, `<sprite="ps" name="cross" color=#FFFFFF>`, f.engine().InsertPromptSprites("[Player/Jump]"))
}

func TestEngine_FormatterWithoutPlaceholder(t *testing.T) {
	core, logs := observer.New(zapcore.ErrorLevel)
	f := newFixture(true)
	f.settings(func(s *config.Settings) { s.Formatter = "<b></b>" })
	e := f.engine(WithLogger(zap.New(core)))

	assert.Equal(t, `<sprite="ps" name="cross">`, e.InsertPromptSprites("[Player/Jump]"))
	assert.Equal(t, 1, logs.FilterMessageSnippet("placeholder").Len())
}

func TestEngine_CustomDelimiters(t *testing.T) {
	f := newFixture(true)
	f.settings(func(s *config.Settings) { s.OpenTag, s.CloseTag = "{", "}" })

	assert.Equal(t, `[x] <sprite="ps" name="cross">`, f.engine().InsertPromptSprites("[x] {Player/Jump}"))
}

func TestEngine_SettingsMissing(t *testing.T) {
	f := newFixture(true)
	f.configs.Set(nil)
	e := f.engine()

	assert.Equal(t, DiagSettingsMissing, e.InsertPromptSprites("Press [Player/Jump]"))
	assert.False(t, e.Initialized())
	assert.ErrorIs(t, e.Initialize(), config.ErrConfigurationMissing)

	_, err := e.Resolve("Player/Jump")
	assert.ErrorIs(t, err, config.ErrConfigurationMissing)
	_, ok := e.ActionSprite("Player/Jump")
	assert.False(t, ok)
	_, ok = e.DeviceSprite("controller")
	assert.False(t, ok)
	assert.False(t, e.HandleActivity(press(f.pad.ID)))
	assert.False(t, e.HandleDeviceChange(f.pad.ID, tracker.DeviceRemoved))
	_, ok = e.ActiveDevice()
	assert.False(t, ok)
	assert.Nil(t, e.ActionKeys())

	s := testSettings()
	f.configs.Set(&s)
	assert.Equal(t, `Press <sprite="ps" name="cross">`, e.InsertPromptSprites("Press [Player/Jump]"))
}

func TestEngine_SettingsInvalid(t *testing.T) {
	f := newFixture(true)
	f.settings(func(s *config.Settings) { s.StickThreshold = 7 })

	assert.Equal(t, DiagSettingsInvalid, f.engine().InsertPromptSprites("[Player/Jump]"))
}

func TestEngine_NilConfigProvider(t *testing.T) {
	e := New(nil, device.NewStaticProvider())
	assert.Equal(t, DiagSettingsMissing, e.InsertPromptSprites("[a]"))
}

func TestEngine_PlatformOverride(t *testing.T) {
	f := newFixture(false)
	f.settings(func(s *config.Settings) {
		s.PlatformOverrides = []config.PlatformOverride{{Platform: "ps4", Profile: "DualShock"}}
	})

	plain := f.engine()
	assert.Equal(t, `<sprite="kbm" name="space">`, plain.InsertPromptSprites("[Player/Jump]"))

	e := f.engine(WithPlatform("PS4"))
	assert.Equal(t, `<sprite="ps" name="cross">`, e.InsertPromptSprites("[Player/Jump]"))

	require.True(t, e.HandleActivity(tracker.Activity{Device: f.mouse.ID, Kind: tracker.KindPointer}))
	assert.Equal(t, `<sprite="ps" name="cross">`, e.InsertPromptSprites("[Player/Jump]"), "override survives device changes")

	sprite, ok := e.DeviceSprite("controller")
	require.True(t, ok)
	assert.Equal(t, Sprite{Atlas: "ps", Name: "ds4"}, sprite)

	p, err := e.Profile()
	require.NoError(t, err)
	assert.Equal(t, "DualShock", p.Name)
}

func TestEngine_PlatformOverrideWithoutDevices(t *testing.T) {
	f := &fixture{devices: device.NewStaticProvider(), configs: config.NewStaticProvider(testSettings())}
	f.settings(func(s *config.Settings) {
		s.Platform = "ps4"
		s.PlatformOverrides = []config.PlatformOverride{{Platform: "ps4", Profile: "DualShock"}}
	})

	assert.Equal(t, `<sprite="ps" name="cross">`, f.engine().InsertPromptSprites("[Player/Jump]"))
}

func TestEngine_DeviceSpriteFollowsActiveDevice(t *testing.T) {
	f := newFixture(true)
	e := f.engine()

	sprite, ok := e.DeviceSprite("Controller")
	require.True(t, ok)
	assert.Equal(t, "ds4", sprite.Name)

	e.HandleActivity(press(f.keyboard.ID))
	sprite, ok = e.DeviceSprite("controller")
	require.True(t, ok)
	assert.Equal(t, Sprite{Atlas: "kbm", Name: "keyboard"}, sprite)

	_, ok = e.DeviceSprite("logo")
	assert.False(t, ok)
}

func TestEngine_SwitchNotifiesOnce(t *testing.T) {
	f := newFixture(true)
	e := f.engine()

	var order []string
	var changes []notify.Change
	e.Subscribe(func(c notify.Change) {
		order = append(order, "first")
		changes = append(changes, c)
	})
	e.Subscribe(func(notify.Change) { order = append(order, "second") })

	assert.True(t, e.HandleActivity(press(f.keyboard.ID)))
	assert.False(t, e.HandleActivity(press(f.keyboard.ID)), "same device is a no-op")

	require.Len(t, changes, 1)
	assert.Equal(t, []string{"first", "second"}, order)
	assert.Equal(t, notify.CauseActivity, changes[0].Cause)
	require.NotNil(t, changes[0].Device)
	assert.Equal(t, "Keyboard", changes[0].Device.Name)
	assert.Equal(t, `<sprite="kbm" name="space">`, e.InsertPromptSprites("[Player/Jump]"))
}

func TestEngine_DisconnectFallsBack(t *testing.T) {
	f := newFixture(true)
	e := f.engine()

	var changes []notify.Change
	e.Subscribe(func(c notify.Change) { changes = append(changes, c) })

	_, ok := e.ActiveDevice()
	require.True(t, ok)
	f.devices.Remove(f.pad.ID)
	assert.True(t, e.HandleDeviceChange(f.pad.ID, tracker.DeviceDisconnected))

	require.Len(t, changes, 1)
	assert.Equal(t, notify.CauseDisconnect, changes[0].Cause)
	assert.Equal(t, "Keyboard", changes[0].Device.Name)
	assert.Equal(t, `<sprite="kbm" name="space">`, e.InsertPromptSprites("[Player/Jump]"))
}

func TestEngine_Terminate(t *testing.T) {
	f := newFixture(true)
	e := f.engine()

	calls := 0
	e.Subscribe(func(notify.Change) { calls++ })
	require.NoError(t, e.Initialize())

	e.Terminate()
	e.Terminate()
	assert.False(t, e.Initialized())

	e.HandleActivity(press(f.keyboard.ID))
	assert.Equal(t, 0, calls, "terminate detaches every subscription")
	assert.True(t, e.Initialized(), "use after terminate initializes again")
}

func TestEngine_Reinitialize(t *testing.T) {
	f := newFixture(true)
	e := f.engine()
	require.NoError(t, e.Initialize())
	e.HandleActivity(press(f.keyboard.ID))

	var changes []notify.Change
	e.Subscribe(func(c notify.Change) { changes = append(changes, c) })

	f.settings(func(s *config.Settings) { s.Formatter = "<i>{SPRITE}</i>" })
	require.NoError(t, e.Reinitialize())

	require.Len(t, changes, 1)
	assert.Equal(t, notify.CauseReset, changes[0].Cause)
	require.NotNil(t, changes[0].Device)
	assert.Equal(t, "DualShock4GamepadHID", changes[0].Device.Name, "tracker resets to the default device")
	assert.Equal(t, `<i><sprite="ps" name="cross"></i>`, e.InsertPromptSprites("[Player/Jump]"))

	f.configs.Set(nil)
	assert.ErrorIs(t, e.Reinitialize(), config.ErrConfigurationMissing)
	assert.Len(t, changes, 1)
	assert.Equal(t, `<i><sprite="ps" name="cross"></i>`, e.InsertPromptSprites("[Player/Jump]"), "failed reload keeps settings")
}

func TestEngine_Introspection(t *testing.T) {
	f := newFixture(true)
	f.settings(func(s *config.Settings) {
		s.Profiles = append(s.Profiles, device.Profile{Name: "Clone", Identities: []string{"keyboard"}})
	})
	e := f.engine()

	assert.Equal(t, []string{"player/jump", "player/move", "ui/submit"}, e.ActionKeys())
	assert.Len(t, e.Profiles(), 3)

	warnings := e.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, "KeyboardMouse", warnings[0].Kept)
	assert.Equal(t, "Clone", warnings[0].Dropped)

	s, ok := e.Settings()
	require.True(t, ok)
	assert.Equal(t, "linux", s.Platform)
}
