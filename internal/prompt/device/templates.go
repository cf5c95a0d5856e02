package device

// Control sets for common device families. Usage names follow the usual
// semantic roles so usage marker bindings ("*/{Submit}") resolve against them.

// GamepadControls returns the controls of a standard dual-stick gamepad.
func GamepadControls() []Control {
	return []Control{
		{Name: "buttonSouth", Usages: []string{"PrimaryAction", "Submit"}},
		{Name: "buttonEast", Usages: []string{"Back", "Cancel"}},
		{Name: "buttonWest", Usages: []string{"SecondaryAction"}},
		{Name: "buttonNorth"},
		{Name: "start", Usages: []string{"Menu"}},
		{Name: "select"},
		{Name: "leftShoulder"},
		{Name: "rightShoulder"},
		{Name: "leftTrigger", Usages: []string{"SecondaryTrigger"}},
		{Name: "rightTrigger", Usages: []string{"SecondaryTrigger"}},
		{Name: "leftStick", Usages: []string{"Primary2DMotion"}},
		{Name: "rightStick", Usages: []string{"Secondary2DMotion"}},
		{Name: "dpad", Usages: []string{"Hatswitch"}},
	}
}

// KeyboardControls returns the keyboard controls prompts usually need.
func KeyboardControls() []Control {
	controls := []Control{
		{Name: "enter", Usages: []string{"Submit"}},
		{Name: "escape", Usages: []string{"Back", "Cancel"}},
		{Name: "space"},
		{Name: "tab"},
		{Name: "backspace"},
		{Name: "leftShift"},
		{Name: "leftCtrl"},
		{Name: "leftAlt"},
		{Name: "upArrow"},
		{Name: "downArrow"},
		{Name: "leftArrow"},
		{Name: "rightArrow"},
	}
	for r := 'a'; r <= 'z'; r++ {
		controls = append(controls, Control{Name: string(r)})
	}
	for r := '0'; r <= '9'; r++ {
		controls = append(controls, Control{Name: string(r)})
	}
	return controls
}

// MouseControls returns the controls of a three-button mouse.
func MouseControls() []Control {
	return []Control{
		{Name: "leftButton", Usages: []string{"PrimaryAction"}},
		{Name: "rightButton", Usages: []string{"SecondaryAction"}},
		{Name: "middleButton"},
		{Name: "scroll"},
		{Name: "position"},
		{Name: "delta"},
	}
}

// TouchscreenControls returns the controls of a touch surface.
func TouchscreenControls() []Control {
	return []Control{
		{Name: "primaryTouch", Usages: []string{"PrimaryAction"}},
		{Name: "position"},
	}
}

// ControlsFor returns the template controls of every category in cats.
func ControlsFor(cats CategorySet) []Control {
	var out []Control
	if cats.Has(GamePad) {
		out = append(out, GamepadControls()...)
	}
	if cats.Has(Keyboard) {
		out = append(out, KeyboardControls()...)
	}
	if cats.Has(Mouse) {
		out = append(out, MouseControls()...)
	}
	if cats.Has(Touchscreen) {
		out = append(out, TouchscreenControls()...)
	}
	return out
}
