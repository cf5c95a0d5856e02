// Package binding maps logical actions to the physical bindings that trigger
// them.
//
// # Key Concepts
//
// Action key: "<Map>/<Action>", compared case-insensitively. "Player/Jump"
// and "player/jump" name the same action.
//
// Descriptor: one physical binding of an action. Its Path is either a concrete
// control path ("<Gamepad>/buttonSouth") or a usage marker ("*/{Submit}") that
// is resolved against whatever device exposes the usage.
//
// Index: the action key to descriptor list mapping. Descriptor order is the
// order bindings appear in the source action maps and is significant: a
// composite action such as WASD movement keeps its parts in authored order.
//
// # Usage
//
//	maps, err := binding.LoadInputActionsFile("controls.inputactions")
//	if err != nil {
//	    return err
//	}
//	index := binding.Build(maps)
//	descriptors, ok := index.Lookup("Player/Jump")
package binding
