// Package tracker decides which input device is in the player's hands.
//
// # States
//
//	Uninitialized --first query--> NoActiveDevice | ActiveDevice(d)
//	ActiveDevice(d) --activity from e--> ActiveDevice(e)       (notifies)
//	ActiveDevice(d) --d disconnected--> default resolution     (always notifies)
//
// Default resolution walks the configured category priority and picks the
// first connected device of the first category that has one.
//
// # Qualifying activity
//
// A button press, or pointer motion, from a classified device always
// qualifies. Stick motion qualifies only when stick detection is enabled, the
// device is a gamepad and either stick reaches the threshold. Activity from
// on-screen controls and from unclassified devices (accelerometers, sensors)
// is ignored.
//
// A Tracker is not safe for concurrent use. Feed it from the goroutine that
// delivers input events.
package tracker
