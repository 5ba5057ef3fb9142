package search

import "strings"

// TokenSet is a lowercase word set used for keyword-matching fallback
// result groups against a query.
type TokenSet map[string]struct{}

func Tokens(query string) TokenSet {
	set := make(TokenSet)
	for _, w := range strings.Fields(strings.ToLower(query)) {
		set[strings.Trim(w, "?.,!:;\"'")] = struct{}{}
	}
	return set
}

// Any reports whether any of the given terms is present in the set.
func (s TokenSet) Any(terms ...string) bool {
	for _, t := range terms {
		if _, ok := s[t]; ok {
			return true
		}
	}
	return false
}
