package domain

import "strings"

// CabinClass identifies a fare cabin. Values match the upstream travelClass
// parameter, so they are always uppercase on the wire.
type CabinClass string

// Supported cabin classes.
const (
	CabinEconomy  CabinClass = "ECONOMY"
	CabinBusiness CabinClass = "BUSINESS"
	CabinFirst    CabinClass = "FIRST"
)

// SupportedCabins returns all cabin classes the search pipeline accepts,
// in display order.
func SupportedCabins() []CabinClass {
	return []CabinClass{CabinEconomy, CabinBusiness, CabinFirst}
}

// ParseCabin parses a cabin class case-insensitively.
// Returns false when the value is not a supported cabin.
func ParseCabin(s string) (CabinClass, bool) {
	c := CabinClass(strings.ToUpper(strings.TrimSpace(s)))
	if c.IsValid() {
		return c, true
	}
	return "", false
}

// IsValid reports whether the cabin class is one of the supported values.
func (c CabinClass) IsValid() bool {
	switch c {
	case CabinEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

// NormalizeCabins collapses duplicate cabin classes, preserving first-seen order.
func NormalizeCabins(cabins []CabinClass) []CabinClass {
	seen := make(map[CabinClass]bool, len(cabins))
	result := make([]CabinClass, 0, len(cabins))
	for _, c := range cabins {
		if seen[c] {
			continue
		}
		seen[c] = true
		result = append(result, c)
	}
	return result
}
