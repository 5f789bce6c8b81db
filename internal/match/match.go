// Package match implements the keyword matching shared by the runtime
// category filter and the startup keyword validation. Matching is plain
// substring containment of a trimmed keyword inside a candidate value;
// the two entry points differ only in how keywords combine.
package match

import "strings"

// Blank reports whether the keyword list configures no filter at all:
// an empty list, or a single entry that is the empty string (the shape a
// comma-split of an empty option produces).
func Blank(keywords []string) bool {
	if len(keywords) == 0 {
		return true
	}
	return len(keywords) == 1 && keywords[0] == ""
}

// Any reports whether at least one keyword is a substring of at least one
// value. A blank keyword list matches everything. This is the runtime mode:
// one matching keyword is enough to deliver.
func Any(keywords, values []string) bool {
	if Blank(keywords) {
		return true
	}

	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		for _, v := range values {
			if strings.Contains(v, kw) {
				return true
			}
		}
	}
	return false
}

// All reports whether every keyword is a substring of at least one value.
// A blank keyword list passes. This is the validation mode: a single
// keyword with no legal counterpart fails the whole list.
func All(keywords, values []string) bool {
	if Blank(keywords) {
		return true
	}

	for _, kw := range keywords {
		kw = strings.TrimSpace(kw)
		found := false
		for _, v := range values {
			if strings.Contains(v, kw) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
