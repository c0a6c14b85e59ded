package recipe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recipe-recommender/internal/pkg/common"
)

func entries(instructions ...string) []CatalogEntry {
	out := make([]CatalogEntry, len(instructions))
	for i, in := range instructions {
		out[i] = CatalogEntry{
			Recipe:   common.Recipe{Title: string(rune('A' + i)), Instructions: in},
			Comments: []string{},
		}
	}
	return out
}

// 兩種模式都要測：逐對重建詞彙表，以及每次推薦只建一份共用詞彙表的最佳化。
// 共用詞彙表只多出兩邊皆為 0 的維度，分數必須與逐對模式完全相同。
var recommenderModes = []struct {
	name string
	r    *Recommender
}{
	{"pairwise", NewRecommender()},
	{"shared vocabulary", NewRecommender(WithSharedVocabulary(true))},
}

func TestRecommend_BestMatch(t *testing.T) {
	candidates := entries(
		"mix flour and water",
		"bake at 350 degrees",
		"mix all ingredients in a bowl",
	)
	prefs := common.UserPreferences{Instructions: "Mix all ingredients in a bowl"}

	for _, mode := range recommenderModes {
		t.Run(mode.name, func(t *testing.T) {
			match, err := mode.r.Recommend(candidates, prefs)
			require.NoError(t, err)
			require.NotNil(t, match)
			assert.Equal(t, "C", match.Entry.Title())
			assert.Equal(t, 1.0, match.Score)
		})
	}
}

func TestRecommend_EmptyCatalog(t *testing.T) {
	for _, mode := range recommenderModes {
		t.Run(mode.name, func(t *testing.T) {
			match, err := mode.r.Recommend(nil, common.UserPreferences{Instructions: "anything"})
			require.NoError(t, err)
			assert.Nil(t, match)
		})
	}
}

func TestRecommend_TieKeepsFirst(t *testing.T) {
	candidates := entries("stir the sauce", "stir the sauce", "boil pasta")
	prefs := common.UserPreferences{Instructions: "stir sauce slowly"}

	for _, mode := range recommenderModes {
		t.Run(mode.name, func(t *testing.T) {
			scores, err := mode.r.Scores(candidates, prefs)
			require.NoError(t, err)
			assert.Equal(t, scores[0], scores[1])

			match, err := mode.r.Recommend(candidates, prefs)
			require.NoError(t, err)
			require.NotNil(t, match)
			assert.Equal(t, "A", match.Entry.Title())
		})
	}
}

func TestRecommend_EmptyPreferencesReturnsFirst(t *testing.T) {
	candidates := entries("bake bread", "fry eggs")

	for _, mode := range recommenderModes {
		t.Run(mode.name, func(t *testing.T) {
			match, err := mode.r.Recommend(candidates, common.UserPreferences{})
			require.NoError(t, err)
			require.NotNil(t, match)
			assert.Equal(t, "A", match.Entry.Title())
			assert.Equal(t, 0.0, match.Score)
		})
	}
}

func TestRecommend_NoOverlapStillReturnsFirst(t *testing.T) {
	candidates := entries("grill steak", "roast chicken")
	prefs := common.UserPreferences{Instructions: "whisk cream"}

	match, err := NewRecommender().Recommend(candidates, prefs)
	require.NoError(t, err)
	require.NotNil(t, match)
	assert.Equal(t, "A", match.Entry.Title())
}

func TestScores_SharedVocabularyMatchesPairwise(t *testing.T) {
	candidates := entries(
		"mix flour and water",
		"bake at 350 degrees",
		"mix all ingredients in a bowl",
		"",
		"Stir, stir, and stir again until thick",
		"fold the flour into the water slowly",
	)
	queries := []string{
		"Mix all ingredients in a bowl",
		"stir the flour",
		"",
		"water water water",
	}

	pairwise := NewRecommender()
	shared := NewRecommender(WithSharedVocabulary(true))

	for _, q := range queries {
		prefs := common.UserPreferences{Instructions: q}
		want, err := pairwise.Scores(candidates, prefs)
		require.NoError(t, err)
		got, err := shared.Scores(candidates, prefs)
		require.NoError(t, err)
		assert.Equal(t, want, got, "query %q", q)
	}
}
