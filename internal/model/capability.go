package model

import "strings"

// Capability is a feature affordance granted by a role.
type Capability uint8

const (
	CapViewPublicCatalog Capability = 1 << iota
	CapViewFavorites
	CapViewProfile
	CapCreateRecipe
	CapViewAdmin
)

var capabilityNames = []struct {
	cap  Capability
	name string
}{
	{CapViewPublicCatalog, "viewPublicCatalog"},
	{CapViewFavorites, "viewFavorites"},
	{CapViewProfile, "viewProfile"},
	{CapCreateRecipe, "createRecipe"},
	{CapViewAdmin, "viewAdmin"},
}

// String returns the capability name.
func (c Capability) String() string {
	for _, n := range capabilityNames {
		if n.cap == c {
			return n.name
		}
	}
	return "unknown"
}

// CapabilitySet is a set of capabilities.
type CapabilitySet uint8

// NewCapabilitySet builds a set from individual capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	var s CapabilitySet
	for _, c := range caps {
		s |= CapabilitySet(c)
	}
	return s
}

// Has reports whether c is in the set.
func (s CapabilitySet) Has(c Capability) bool {
	return s&CapabilitySet(c) != 0
}

// With returns the union of s and caps.
func (s CapabilitySet) With(caps ...Capability) CapabilitySet {
	return s | NewCapabilitySet(caps...)
}

// SubsetOf reports whether every capability of s is in other.
func (s CapabilitySet) SubsetOf(other CapabilitySet) bool {
	return s&^other == 0
}

// List returns the capabilities in declaration order.
func (s CapabilitySet) List() []Capability {
	var out []Capability
	for _, n := range capabilityNames {
		if s.Has(n.cap) {
			out = append(out, n.cap)
		}
	}
	return out
}

// String returns a comma-separated list of capability names.
func (s CapabilitySet) String() string {
	caps := s.List()
	names := make([]string, 0, len(caps))
	for _, c := range caps {
		names = append(names, c.String())
	}
	return strings.Join(names, ",")
}
