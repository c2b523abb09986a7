package grocer

import "strings"

// containmentScore is the fixed similarity for one name containing the
// other ("tomato" in "cherry tomato"). Tunable; kept well above the
// default suggestion threshold so containment always surfaces.
const containmentScore = 0.85

// Normalize is the canonical name normalization used everywhere a name
// becomes an aggregation key: trim then lowercase.
func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Similarity scores how alike two ingredient names are, in [0, 1].
// Identical (after normalization) scores 1, an empty side scores 0,
// containment scores the fixed containmentScore, and everything else is
// normalized Levenshtein distance over runes. Symmetric in its arguments.
func Similarity(a, b string) float64 {
	s1 := Normalize(a)
	s2 := Normalize(b)

	if s1 == s2 {
		return 1
	}
	if s1 == "" || s2 == "" {
		return 0
	}
	if strings.Contains(s1, s2) || strings.Contains(s2, s1) {
		return containmentScore
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	maxLen := len(r1)
	if len(r2) > maxLen {
		maxLen = len(r2)
	}

	return 1 - float64(levenshtein(r1, r2))/float64(maxLen)
}

// levenshtein computes the edit distance between two rune slices with unit
// cost for insertion, deletion, and substitution. Two rows of the DP matrix
// are enough.
func levenshtein(a, b []rune) int {
	prev := make([]int, len(b)+1)
	curr := make([]int, len(b)+1)

	for j := 0; j <= len(b); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(a); i++ {
		curr[0] = i
		for j := 1; j <= len(b); j++ {
			cost := 1
			if a[i-1] == b[j-1] {
				cost = 0
			}

			curr[j] = min3(prev[j]+1, curr[j-1]+1, prev[j-1]+cost)
		}
		prev, curr = curr, prev
	}

	return prev[len(b)]
}

func min3(a, b, c int) int {
	if b < a {
		a = b
	}
	if c < a {
		a = c
	}
	return a
}
