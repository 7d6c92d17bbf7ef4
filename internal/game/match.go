package game

import "strings"

// UniqueMatch resolves target against names case-insensitively. An exact
// match wins outright; otherwise a single prefix match is accepted. It
// returns -1 and false when nothing or more than one candidate matches.
func UniqueMatch(target string, names []string) (int, bool) {
	needle := strings.ToLower(strings.TrimSpace(target))
	if needle == "" {
		return -1, false
	}
	found := -1
	ambiguous := false
	for i, name := range names {
		candidate := strings.ToLower(strings.TrimSpace(name))
		if candidate == needle {
			return i, true
		}
		if !strings.HasPrefix(candidate, needle) {
			continue
		}
		if found != -1 {
			ambiguous = true
			continue
		}
		found = i
	}
	if found == -1 || ambiguous {
		return -1, false
	}
	return found, true
}
