package types

import "strings"

// NormalizeAddress produces the canonical form of an address used for lookups
// and cache keys: uppercase, commas stripped, whitespace collapsed.
func NormalizeAddress(addr string) string {
	addr = strings.ToUpper(strings.TrimSpace(addr))
	addr = strings.ReplaceAll(addr, ",", "")
	return strings.Join(strings.Fields(addr), " ")
}
