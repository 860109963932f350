package blacklist

import (
	"sort"
	"strings"
)

// Default lists the tag categories never blanked unless configured otherwise.
var Default = []string{"determiner", "punctuation", "particle"}

// Set holds long tag names excluded from pattern generation.
// Lookups ignore case and surrounding space.
type Set struct {
	names map[string]struct{}
}

// New creates a blacklist from long tag names.
func New(names []string) *Set {
	s := &Set{names: make(map[string]struct{}, len(names))}
	for _, n := range names {
		s.Add(n)
	}
	return s
}

// Contains reports whether a long tag name is blacklisted.
// A nil Set contains nothing.
func (s *Set) Contains(name string) bool {
	if s == nil {
		return false
	}
	_, ok := s.names[normalize(name)]
	return ok
}

// Add blacklists a long tag name.
func (s *Set) Add(name string) {
	if n := normalize(name); n != "" {
		s.names[n] = struct{}{}
	}
}

// Remove drops a long tag name from the blacklist.
func (s *Set) Remove(name string) {
	delete(s.names, normalize(name))
}

// All returns the blacklisted names, sorted.
func (s *Set) All() []string {
	if s == nil {
		return nil
	}
	result := make([]string, 0, len(s.names))
	for n := range s.names {
		result = append(result, n)
	}
	sort.Strings(result)
	return result
}

func normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
