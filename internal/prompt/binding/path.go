package binding

import "strings"

// Usage marker syntax: "*/{Submit}" means "any device, the control used as
// Submit".
const (
	usagePrefix = "*/{"
	usageSuffix = "}"
)

// UsageOf extracts the usage from a usage marker path.
// "*/{Submit}" returns ("Submit", true); concrete paths return ("", false).
func UsageOf(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if !strings.HasPrefix(path, usagePrefix) || !strings.HasSuffix(path, usageSuffix) {
		return "", false
	}
	usage := path[len(usagePrefix) : len(path)-len(usageSuffix)]
	if usage == "" {
		return "", false
	}
	return usage, true
}

// LastSegment returns the control name at the end of a path.
// "<Gamepad>/buttonSouth" returns "buttonSouth".
func LastSegment(path string) string {
	if i := strings.LastIndex(path, "/"); i >= 0 {
		return path[i+1:]
	}
	return path
}
