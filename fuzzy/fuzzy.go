// Copyright (c) 2025 Adam DeHovitz.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package fuzzy

import (
	"strings"
	"unicode/utf8"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// MaxDistance is the largest edit distance, and the largest length difference
// for the substring rule, still treated as a match.
const MaxDistance = 3

// Normalize lowercases s, trims it and collapses internal whitespace runs to
// a single space. Input is NFC-composed first so precomposed and combining
// forms of the same letter compare equal.
func Normalize(s string) string {
	s = norm.NFC.String(s)
	s = cases.Lower(language.Und).String(s)
	return strings.Join(strings.Fields(s), " ")
}

// IsMatch reports whether two labels should be treated as the same theme.
//
// After normalization they match when they are equal, when one contains the
// other and their lengths differ by at most MaxDistance ("Mystery" vs
// "Mysteries"), or when their Levenshtein distance is at most MaxDistance.
func IsMatch(a, b string) bool {
	na, nb := Normalize(a), Normalize(b)
	if na == nb {
		return true
	}

	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		diff := utf8.RuneCountInString(na) - utf8.RuneCountInString(nb)
		if diff < 0 {
			diff = -diff
		}
		if diff <= MaxDistance {
			return true
		}
	}

	return Levenshtein(na, nb) <= MaxDistance
}

// FindMatch returns the first entry of existing that matches name, in the
// order supplied. It does not look for the closest match.
func FindMatch(name string, existing []string) (string, bool) {
	for _, candidate := range existing {
		if IsMatch(name, candidate) {
			return candidate, true
		}
	}
	return "", false
}

// FindMatchIndex is FindMatch for callers holding richer records; it returns
// the index of the first matching entry or -1.
func FindMatchIndex(name string, n int, label func(i int) string) int {
	for i := 0; i < n; i++ {
		if IsMatch(name, label(i)) {
			return i
		}
	}
	return -1
}

// Levenshtein returns the edit distance between a and b counted in runes.
func Levenshtein(a, b string) int {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	// two rolling rows of the DP table
	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := range prev {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			if ra[i-1] == rb[j-1] {
				curr[j] = prev[j-1]
				continue
			}
			curr[j] = 1 + min(prev[j], curr[j-1], prev[j-1])
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}
