package device

import "errors"

// ErrUnknownCategory is returned when a category name cannot be parsed.
var ErrUnknownCategory = errors.New("unknown device category")
