// Package match scores similarity between normalized name strings.
//
// The score is a token-set-overlap ratio in [0, 100]: both strings are split
// into word tokens, the token sets are decomposed into their intersection and
// per-side remainders, and the best pairwise edit-distance ratio over those
// recombinations is taken. Shared tokens therefore dominate the score, so two
// names that carry the same words in a different order, or where one side has
// an extra word, still score highly.
//
// Inputs are expected to be pre-normalized (see package bntext); this package
// never normalizes on its own.
package match

import (
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// Score computes the token-set-overlap similarity of a and b as an integer
// in [0, 100]. It is symmetric, and Score(x, x) == 100 for every x,
// including the empty string.
func Score(a, b string) int {
	if a == b {
		return 100
	}

	ta := tokenSet(a)
	tb := tokenSet(b)

	inter, restA, restB := decompose(ta, tb)

	joined := strings.Join
	s0 := joined(inter, " ")
	s1 := strings.TrimSpace(s0 + " " + joined(restA, " "))
	s2 := strings.TrimSpace(s0 + " " + joined(restB, " "))

	best := ratio(s1, s2)
	if r := ratio(s0, s1); r > best {
		best = r
	}
	if r := ratio(s0, s2); r > best {
		best = r
	}
	return best
}

// Match reports whether a and b score at or above threshold. Threshold
// validation (range [0, 100]) is the caller's concern, not this package's.
func Match(a, b string, threshold int) bool {
	return Score(a, b) >= threshold
}

// ratio is the normalized edit-distance similarity of two strings: 100 for
// equal strings, 0 when every position differs.
func ratio(a, b string) int {
	if a == b {
		return 100
	}
	la := len([]rune(a))
	lb := len([]rune(b))
	longest := la
	if lb > longest {
		longest = lb
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(a, b)
	if dist > longest {
		dist = longest
	}
	return int(float64(longest-dist)/float64(longest)*100 + 0.5)
}

// tokenSet returns the sorted unique whitespace-delimited tokens of s.
func tokenSet(s string) []string {
	fields := strings.Fields(s)
	seen := make(map[string]struct{}, len(fields))
	tokens := fields[:0]
	for _, f := range fields {
		if _, ok := seen[f]; ok {
			continue
		}
		seen[f] = struct{}{}
		tokens = append(tokens, f)
	}
	sort.Strings(tokens)
	return tokens
}

// decompose splits two sorted token sets into their intersection and the
// tokens unique to each side. All three outputs are sorted.
func decompose(a, b []string) (inter, restA, restB []string) {
	inB := make(map[string]struct{}, len(b))
	for _, t := range b {
		inB[t] = struct{}{}
	}
	inInter := make(map[string]struct{})
	for _, t := range a {
		if _, ok := inB[t]; ok {
			inter = append(inter, t)
			inInter[t] = struct{}{}
		} else {
			restA = append(restA, t)
		}
	}
	for _, t := range b {
		if _, ok := inInter[t]; !ok {
			restB = append(restB, t)
		}
	}
	return inter, restA, restB
}
