// Package fold normalizes identifiers for case-insensitive lookup.
//
// Action keys, device identities, binding paths and usages are all compared
// through the same Unicode case folding so "Player/Jump", "player/jump" and
// "PLAYER/JUMP" address one entry.
package fold

import "golang.org/x/text/cases"

// String returns the case-folded form of s.
func String(s string) string {
	// Casers may hold state between calls; never share one.
	return cases.Fold().String(s)
}

// Equal reports whether a and b are equal under case folding.
func Equal(a, b string) bool {
	if a == b {
		return true
	}
	return String(a) == String(b)
}
