package completion

import "strings"

// MatchScore captures the fields used to rank one fuzzy match: whether
// the query is literally a prefix of the candidate, how tightly the
// matched characters cluster, and where the match starts. Lower
// gapSum/firstPos and higher maxRun are better; ties fall through to
// shorter, then lexicographically earlier, labels.
type MatchScore struct {
	IsPrefix bool
	GapSum   int
	MaxRun   int
	FirstPos int
	LabelLen int
}

func normalizeForMatch(s string) string {
	return strings.ToLower(s)
}

// normalizeLabel additionally strips underscores, since a candidate
// label like "is_empty" should fuzzy-match "isempty" the same way a
// camelCase label matches its squashed form.
func normalizeLabel(s string) string {
	return strings.ReplaceAll(normalizeForMatch(s), "_", "")
}

// FuzzyScore reports whether every rune of query occurs, in order, as a
// subsequence of candidate (case-insensitive, with underscores stripped
// from candidate before matching), and if so scores how good the match
// is. An empty query matches everything with a perfect (zero-cost)
// score.
func FuzzyScore(query, candidate string) (MatchScore, bool) {
	q := []rune(normalizeForMatch(query))
	c := []rune(normalizeLabel(candidate))

	score := MatchScore{LabelLen: len([]rune(candidate))}
	if len(q) == 0 {
		score.IsPrefix = true
		return score, true
	}

	positions := make([]int, 0, len(q))
	ci := 0
	for _, qr := range q {
		found := -1
		for ; ci < len(c); ci++ {
			if c[ci] == qr {
				found = ci
				ci++
				break
			}
		}
		if found == -1 {
			return MatchScore{}, false
		}
		positions = append(positions, found)
	}

	score.FirstPos = positions[0]
	score.IsPrefix = positions[0] == 0 && isContiguousPrefix(positions, len(q))

	run, best := 1, 1
	for i := 1; i < len(positions); i++ {
		gap := positions[i] - positions[i-1] - 1
		score.GapSum += gap
		if gap == 0 {
			run++
			if run > best {
				best = run
			}
		} else {
			run = 1
		}
	}
	score.MaxRun = best
	return score, true
}

func isContiguousPrefix(positions []int, n int) bool {
	for i := 0; i < n; i++ {
		if positions[i] != i {
			return false
		}
	}
	return true
}

// Less reports whether a should be ranked ahead of b: an exact prefix
// match wins outright, then tighter clustering (lower gap sum), then a
// longer contiguous run, then an earlier first match, then a shorter
// label.
func (a MatchScore) Less(b MatchScore) bool {
	if a.IsPrefix != b.IsPrefix {
		return a.IsPrefix
	}
	if a.GapSum != b.GapSum {
		return a.GapSum < b.GapSum
	}
	if a.MaxRun != b.MaxRun {
		return a.MaxRun > b.MaxRun
	}
	if a.FirstPos != b.FirstPos {
		return a.FirstPos < b.FirstPos
	}
	return a.LabelLen < b.LabelLen
}
