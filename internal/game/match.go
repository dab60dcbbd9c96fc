package game

// MatchThreshold is the minimum similarity ratio at which a guess is
// accepted as correct. At 0.85 a single typo in a typical title still
// passes.
const MatchThreshold = 0.85

// TitlesMatch reports whether a normalized guess is close enough to a
// normalized canonical title. Exact equality short-circuits; otherwise the
// similarity ratio must reach MatchThreshold.
func TitlesMatch(guess, title string) bool {
	if guess == title {
		return true
	}
	return Similarity(guess, title) >= MatchThreshold
}

// Similarity computes 2*M/T between two strings, where M is the total
// length of the matching runs found by recursively locating the longest
// common substring, and T is the combined length. This is the ratio of
// Python's difflib.SequenceMatcher (without the junk heuristic) and ranges
// over [0, 1], with 1 meaning identical.
func Similarity(a, b string) float64 {
	ra, rb := []rune(a), []rune(b)
	total := len(ra) + len(rb)
	if total == 0 {
		return 1
	}
	return 2 * float64(matchingRunes(ra, rb, 0, len(ra), 0, len(rb))) / float64(total)
}

// matchingRunes returns the total matched length within a[alo:ahi] and
// b[blo:bhi]: it finds the longest matching block, then recurses on the
// regions to its left and right.
func matchingRunes(a, b []rune, alo, ahi, blo, bhi int) int {
	i, j, size := longestMatch(a, b, alo, ahi, blo, bhi)
	if size == 0 {
		return 0
	}
	return size +
		matchingRunes(a, b, alo, i, blo, j) +
		matchingRunes(a, b, i+size, ahi, j+size, bhi)
}

// longestMatch finds the longest block a[i:i+size] == b[j:j+size] within
// the given bounds, preferring the earliest match as difflib does.
func longestMatch(a, b []rune, alo, ahi, blo, bhi int) (besti, bestj, bestsize int) {
	besti, bestj = alo, blo

	// j2len[j] is the length of the longest match ending at a[i-1]/b[j-1]
	// from the previous row.
	j2len := make(map[int]int)
	for i := alo; i < ahi; i++ {
		next := make(map[int]int)
		for j := blo; j < bhi; j++ {
			if a[i] != b[j] {
				continue
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > bestsize {
				besti, bestj, bestsize = i-k+1, j-k+1, k
			}
		}
		j2len = next
	}
	return besti, bestj, bestsize
}
