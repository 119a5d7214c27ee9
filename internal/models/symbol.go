package models

import "strings"

// NormalizeSymbol trims surrounding whitespace and upper-cases the input.
// An empty result means the input is not a usable coin pair.
func NormalizeSymbol(raw string) string {
	return strings.ToUpper(strings.TrimSpace(raw))
}
