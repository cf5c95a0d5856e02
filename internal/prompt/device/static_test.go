package device

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStaticProvider(t *testing.T) {
	p := NewStaticProvider()

	kb := p.Add(Spec{Name: "Keyboard", Categories: NewCategorySet(Keyboard), Controls: KeyboardControls()})
	pad := p.Add(Spec{Name: "XInputControllerWindows", Categories: NewCategorySet(GamePad), Controls: GamepadControls()})
	accel := p.Add(Spec{Name: "Accelerometer"})

	assert.NotEqual(t, kb.ID, pad.ID)

	devices := p.Devices()
	require.Len(t, devices, 3)
	assert.Equal(t, []ID{kb.ID, pad.ID, accel.ID}, []ID{devices[0].ID, devices[1].ID, devices[2].ID})

	assert.True(t, p.Categories(pad.ID).Has(GamePad))
	assert.True(t, p.Categories(accel.ID).Empty())
	assert.NotEmpty(t, p.Controls(kb.ID))

	got, ok := p.DeviceNamed("xinputcontrollerwindows")
	require.True(t, ok)
	assert.Equal(t, pad.ID, got.ID)

	assert.True(t, p.Remove(pad.ID))
	assert.False(t, p.Remove(pad.ID))
	_, ok = p.Device(pad.ID)
	assert.False(t, ok)
	assert.True(t, p.Categories(pad.ID).Empty())
	assert.Nil(t, p.Controls(pad.ID))
	assert.Len(t, p.Devices(), 2)
}

func TestStaticProviderCopiesControls(t *testing.T) {
	p := NewStaticProvider()
	controls := []Control{{Name: "enter", Usages: []string{"Submit"}}}
	kb := p.Add(Spec{Name: "Keyboard", Controls: controls})

	controls[0].Name = "changed"
	assert.Equal(t, "enter", p.Controls(kb.ID)[0].Name)
}

func TestUsages(t *testing.T) {
	info := Info{Name: "OnScreenButton", Usages: []string{"onscreen"}}
	assert.True(t, info.HasUsage(UsageOnScreen))

	c := Control{Name: "enter", Usages: []string{"Submit"}}
	assert.True(t, c.HasUsage("submit"))
	assert.False(t, c.HasUsage("Cancel"))
}

func TestControlsFor(t *testing.T) {
	controls := ControlsFor(NewCategorySet(Keyboard, Mouse))

	names := make(map[string]bool)
	for _, c := range controls {
		names[c.Name] = true
	}
	assert.True(t, names["enter"])
	assert.True(t, names["leftButton"])
	assert.False(t, names["buttonSouth"])
}
