// Package termdevice exposes a terminal's keyboard and mouse as live devices.
//
// A terminal has no device enumeration of its own, so the provider reports
// one keyboard and, when mouse reporting is enabled, one mouse. Additional
// virtual devices such as a simulated gamepad can be attached at runtime.
// Events read from a tcell screen are translated into activity signals for
// the active device tracker:
//
//	p := termdevice.New()
//	ev := screen.PollEvent()
//	if a, ok := p.Activity(ev); ok {
//	    engine.HandleActivity(a)
//	}
package termdevice
