package completion_test

import (
	"testing"

	"github.com/joverzhang/formulang/ide/completion"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFuzzyScoreEmptyQueryMatchesEverything(t *testing.T) {
	score, ok := completion.FuzzyScore("", "length")
	require.True(t, ok)
	assert.True(t, score.IsPrefix)
}

func TestFuzzyScoreExactPrefixIsBestRanked(t *testing.T) {
	prefix, ok := completion.FuzzyScore("len", "length")
	require.True(t, ok)
	assert.True(t, prefix.IsPrefix)

	scattered, ok := completion.FuzzyScore("lgh", "length")
	require.True(t, ok)
	assert.False(t, scattered.IsPrefix)

	assert.True(t, prefix.Less(scattered))
}

func TestFuzzyScoreStripsUnderscoresFromLabel(t *testing.T) {
	score, ok := completion.FuzzyScore("isempty", "is_empty")
	require.True(t, ok)
	assert.True(t, score.IsPrefix)
}

func TestFuzzyScoreRejectsNonSubsequence(t *testing.T) {
	_, ok := completion.FuzzyScore("xyz", "length")
	assert.False(t, ok)
}

func TestFuzzyScoreTighterClusterRanksAboveLooseOne(t *testing.T) {
	tight, ok := completion.FuzzyScore("for", "format")
	require.True(t, ok)
	loose, ok := completion.FuzzyScore("fmt", "format")
	require.True(t, ok)
	assert.True(t, tight.Less(loose))
}

func TestRankFiltersAndOrders(t *testing.T) {
	items := []completion.CompletionItem{
		{Label: "length"},
		{Label: "format"},
		{Label: "empty"},
	}
	ranked := completion.Rank("len", items)
	require.Len(t, ranked, 1)
	assert.Equal(t, "length", ranked[0].Item.Label)
}

func TestRankIsStableAndSortedBestFirst(t *testing.T) {
	items := []completion.CompletionItem{
		{Label: "format"},
		{Label: "id"},
		{Label: "if"},
	}
	ranked := completion.Rank("i", items)
	require.Len(t, ranked, 2)
	assert.Equal(t, "id", ranked[0].Item.Label)
	assert.Equal(t, "if", ranked[1].Item.Label)
}
