package completion

import "sort"

// RankedItem pairs a candidate with the score it was matched at.
type RankedItem struct {
	Item  CompletionItem
	Score MatchScore
}

// Rank filters items to those that fuzzy-match query and sorts the
// survivors best-first. A label that fails to match at all (not every
// query rune occurs in order) is dropped rather than scored.
func Rank(query string, items []CompletionItem) []RankedItem {
	out := make([]RankedItem, 0, len(items))
	for _, it := range items {
		score, ok := FuzzyScore(query, it.Label)
		if !ok {
			continue
		}
		out = append(out, RankedItem{Item: it, Score: score})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score.Less(out[j].Score) {
			return true
		}
		if out[j].Score.Less(out[i].Score) {
			return false
		}
		return out[i].Item.Label < out[j].Item.Label
	})
	return out
}
