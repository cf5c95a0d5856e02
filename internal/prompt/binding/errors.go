package binding

import "errors"

// Loader errors.
var (
	// ErrInvalidJSON is returned when an action asset is not valid JSON.
	ErrInvalidJSON = errors.New("invalid action asset JSON")

	// ErrNoMaps is returned when an action asset has no "maps" array.
	ErrNoMaps = errors.New("action asset has no maps array")
)
