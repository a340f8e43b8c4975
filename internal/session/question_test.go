package session

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloser-app/gloser/internal/catalog"
)

func testItems() []catalog.Item {
	return []catalog.Item{
		{ID: 1, Word: "hund", Meaning: "dog"},
		{ID: 2, Word: "katt", Meaning: "cat"},
		{ID: 3, Word: "bok", Meaning: "book"},
	}
}

func TestBuildQuestions(t *testing.T) {
	items := testItems()
	questions := BuildQuestions(items, rand.New(rand.NewSource(1)))
	require.Len(t, questions, 2*len(items))

	directions := map[int64]map[Direction]int{}
	for _, question := range questions {
		if directions[question.PairID] == nil {
			directions[question.PairID] = map[Direction]int{}
		}
		directions[question.PairID][question.Direction]++
	}
	for _, item := range items {
		assert.Equal(t, 1, directions[item.ID][WordToMeaning])
		assert.Equal(t, 1, directions[item.ID][MeaningToWord])
	}
}

func TestBuildQuestions_ShuffleIsSeedDependent(t *testing.T) {
	items := testItems()

	first := BuildQuestions(items, rand.New(rand.NewSource(1)))
	second := BuildQuestions(items, rand.New(rand.NewSource(1)))
	assert.Equal(t, first, second, "same seed must give the same order")

	ordersSeen := map[string]bool{}
	for seed := int64(0); seed < 20; seed++ {
		questions := BuildQuestions(items, rand.New(rand.NewSource(seed)))
		key := ""
		for _, question := range questions {
			key += string(question.Direction) + "/" + question.Item.Word + ";"
		}
		ordersSeen[key] = true
	}
	assert.Greater(t, len(ordersSeen), 1, "different seeds should produce different orders")
}

func TestBuildQuestions_ShuffleIsUniform(t *testing.T) {
	items := []catalog.Item{
		{ID: 1, Word: "hund", Meaning: "dog"},
		{ID: 2, Word: "katt", Meaning: "cat"},
	}

	// Four questions have 24 orderings. Drawing from one seeded source,
	// every ordering must show up close to its uniform share.
	const (
		permutations = 24
		draws        = 24000
	)
	rng := rand.New(rand.NewSource(42))
	counts := map[string]int{}
	for i := 0; i < draws; i++ {
		key := ""
		for _, question := range BuildQuestions(items, rng) {
			key += string(question.Direction) + "/" + question.Item.Word + ";"
		}
		counts[key]++
	}

	require.Len(t, counts, permutations)
	expected := float64(draws) / permutations
	for key, count := range counts {
		assert.InDelta(t, expected, float64(count), 0.2*expected, "ordering %s", key)
	}
}

func TestQuestionPromptAndAnswer(t *testing.T) {
	item := catalog.Item{ID: 7, Word: "hus", Meaning: "house"}

	wordQuestion := Question{Item: item, PairID: item.ID, Direction: WordToMeaning}
	assert.Equal(t, "hus", wordQuestion.Prompt())
	assert.Equal(t, "house", wordQuestion.Answer())

	meaningQuestion := Question{Item: item, PairID: item.ID, Direction: MeaningToWord}
	assert.Equal(t, "house", meaningQuestion.Prompt())
	assert.Equal(t, "hus", meaningQuestion.Answer())
}

func TestQuestionAlternatives(t *testing.T) {
	item := catalog.Item{ID: 7, Word: "du", Meaning: "you (singular)"}

	wordQuestion := Question{Item: item, Direction: WordToMeaning}
	assert.Contains(t, wordQuestion.Alternatives(), "you")

	curated := catalog.Item{ID: 8, Word: "leilighet", Meaning: "apartment", AcceptedAnswers: []string{"flat"}}
	assert.Equal(t, []string{"flat"}, Question{Item: curated, Direction: WordToMeaning}.Alternatives())

	meaningQuestion := Question{Item: item, Direction: MeaningToWord}
	assert.Nil(t, meaningQuestion.Alternatives())
}

func TestQuestionCheck(t *testing.T) {
	item := catalog.Item{ID: 7, Word: "leilighet", Meaning: "apartment (flat)"}

	wordQuestion := Question{Item: item, Direction: WordToMeaning}
	assert.True(t, wordQuestion.Check("apartment"))
	assert.True(t, wordQuestion.Check("flat"))
	assert.True(t, wordQuestion.Check("apartmant"), "one typo within tolerance")
	assert.False(t, wordQuestion.Check("house"))

	meaningQuestion := Question{Item: item, Direction: MeaningToWord}
	assert.True(t, meaningQuestion.Check("leilighet"))
	assert.True(t, meaningQuestion.Check("leiligget"), "one typo within tolerance")
	assert.False(t, meaningQuestion.Check("flat"), "alternatives never apply to the word side")
}
