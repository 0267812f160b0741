package match

// Closest returns the candidate nearest to name by edit distance, provided it
// is at most maxDist edits away. Ties go to the earlier candidate.
func Closest(name string, candidates []string, maxDist int) (string, bool) {
	best, bestDist := "", maxDist+1

	for _, c := range candidates {
		if d := Levenshtein(name, c); d < bestDist {
			best, bestDist = c, d
		}
	}

	return best, best != "" && bestDist <= maxDist
}
