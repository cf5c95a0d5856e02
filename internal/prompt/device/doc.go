// Package device describes input devices and the prompt data for each device
// family.
//
// A Profile holds the prompt glyphs of one device family (for example every
// DualShock 4 variant): the icon atlas, the glyph for each binding path and
// optional named custom glyphs. A Profile is selected by the identity name of
// the live device ("DualShock4GamepadHID").
//
// Live devices are reached only through the Provider interface. The engine
// never talks to a concrete input backend, which keeps resolution
// deterministic under test:
//
//	p := device.NewStaticProvider()
//	pad := p.Add(device.Spec{
//	    Name:       "DualShock4GamepadHID",
//	    Categories: device.NewCategorySet(device.GamePad),
//	    Controls:   device.GamepadControls(),
//	})
package device
