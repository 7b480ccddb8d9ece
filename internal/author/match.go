// Package author provides author-name splitting and matching for
// publication rendering.
package author

import (
	"strings"
)

// Separator is the literal author separator in bibliography author fields.
const Separator = " and "

// SplitList splits a raw author field into individual display names.
// Empty segments are dropped; surrounding whitespace is trimmed.
func SplitList(raw string) []string {
	var names []string
	for _, part := range strings.Split(raw, Separator) {
		part = strings.TrimSpace(part)
		if part != "" {
			names = append(names, part)
		}
	}
	return names
}

// Normalize collapses internal whitespace and trims a display name so that
// "Chao  Feng" and "Chao Feng " compare equal.
func Normalize(name string) string {
	return strings.Join(strings.Fields(name), " ")
}

// Match reports whether two display names refer to the same author.
// Comparison is case-insensitive after whitespace normalization.
func Match(a, b string) bool {
	return strings.EqualFold(Normalize(a), Normalize(b))
}

// Set is a lookup table of author display names, used for marker sets such
// as co-first and corresponding authors.
type Set map[string]struct{}

// NewSet builds a Set from a list of display names.
func NewSet(names []string) Set {
	s := make(Set, len(names))
	for _, n := range names {
		s[strings.ToLower(Normalize(n))] = struct{}{}
	}
	return s
}

// Add inserts a display name.
func (s Set) Add(name string) {
	s[strings.ToLower(Normalize(name))] = struct{}{}
}

// Contains reports whether the set holds the given display name.
func (s Set) Contains(name string) bool {
	_, ok := s[strings.ToLower(Normalize(name))]
	return ok
}
