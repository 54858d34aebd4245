// Package fuzzy provides typo-tolerant text matching for expense search.
package fuzzy

import "strings"

// Distance calculates the Levenshtein edit distance between two strings:
// the number of single-character insertions, deletions or substitutions
// required to turn one into the other.
func Distance(s1, s2 string) int {
	s1 = normalize(s1)
	s2 = normalize(s2)

	if len(s1) == 0 {
		return len(s2)
	}
	if len(s2) == 0 {
		return len(s1)
	}

	r1 := []rune(s1)
	r2 := []rune(s2)
	m := len(r1)
	n := len(r2)

	d := make([][]int, m+1)
	for i := range d {
		d[i] = make([]int, n+1)
	}
	for i := 0; i <= m; i++ {
		d[i][0] = i
	}
	for j := 0; j <= n; j++ {
		d[0][j] = j
	}

	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			cost := 0
			if r1[i-1] != r2[j-1] {
				cost = 1
			}
			d[i][j] = min3(
				d[i-1][j]+1,      // deletion
				d[i][j-1]+1,      // insertion
				d[i-1][j-1]+cost, // substitution
			)
		}
	}

	return d[m][n]
}

// Match reports whether query fuzzy-matches text within the given maximum
// edit distance. Substring containment and word-prefix matches always hit.
func Match(query, text string, threshold int) bool {
	query = normalize(query)
	text = normalize(text)

	if query == "" || text == "" {
		return false
	}
	if strings.Contains(text, query) {
		return true
	}

	for _, word := range strings.Fields(text) {
		if Distance(query, word) <= threshold {
			return true
		}
		if strings.HasPrefix(word, query) {
			return true
		}
	}

	return false
}

// Score ranks how relevant an expense is to a query. The name weighs more
// than the description. Higher is more relevant; zero means no match.
func Score(query, name, description string) float64 {
	query = normalize(query)
	score := 0.0

	nameNorm := normalize(name)
	if strings.Contains(nameNorm, query) {
		score += 100.0
		if containsWord(nameNorm, query) {
			score += 50.0
		}
	} else {
		for _, word := range strings.Fields(nameNorm) {
			dist := Distance(query, word)
			if dist <= 2 {
				score += 50.0 - float64(dist)*15
			}
			if strings.HasPrefix(word, query) {
				score += 40.0
			}
		}
	}

	descNorm := normalize(description)
	if strings.Contains(descNorm, query) {
		score += 60.0
	} else {
		for _, word := range strings.Fields(descNorm) {
			dist := Distance(query, word)
			if dist <= 2 {
				score += 30.0 - float64(dist)*10
			}
		}
	}

	return score
}

// Threshold picks a typo tolerance based on the query length.
func Threshold(query string) int {
	switch {
	case len(query) <= 3:
		return 1
	case len(query) >= 8:
		return 3
	default:
		return 2
	}
}

func min3(a, b, c int) int {
	if a < b {
		if a < c {
			return a
		}
		return c
	}
	if b < c {
		return b
	}
	return c
}

// normalize lowercases and collapses whitespace.
func normalize(s string) string {
	s = strings.ToLower(s)
	return strings.Join(strings.Fields(s), " ")
}

func containsWord(text, query string) bool {
	for _, word := range strings.Fields(text) {
		if word == query {
			return true
		}
	}
	return false
}
