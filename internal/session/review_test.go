package session

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloser-app/gloser/internal/catalog"
)

func testReviews(stage int) []catalog.ReviewItem {
	return []catalog.ReviewItem{
		{Item: catalog.Item{ID: 1, Word: "hund", Meaning: "dog"}, SrsStage: stage},
	}
}

func submitAnswer(t *testing.T, review Review, input string, now time.Time) Review {
	t.Helper()
	next, _, err := review.Submit(input, now)
	require.NoError(t, err)
	return next
}

func TestReview_CommitWaitsForBothDirections(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	review := NewReview(testReviews(3), rand.New(rand.NewSource(1)))
	require.Equal(t, 2, review.TotalQuestions())

	question, ok := review.Current()
	require.True(t, ok)
	review = submitAnswer(t, review, question.Answer(), now)
	assert.Nil(t, review.Pending(), "one answered direction must not schedule a write")

	pair, ok := review.Pair(1)
	require.True(t, ok)
	assert.False(t, pair.Completed)

	review, commit, err := review.Advance()
	require.NoError(t, err)
	assert.Nil(t, commit)

	question, ok = review.Current()
	require.True(t, ok)
	review = submitAnswer(t, review, question.Answer(), now)

	pending := review.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, int64(1), pending.VocabularyID)
	assert.Equal(t, 3, pending.Progression.From)
	assert.Equal(t, 4, pending.Progression.To)
	require.NotNil(t, pending.Progression.NextReviewAt)
	assert.Equal(t, now.Add(72*time.Hour), *pending.Progression.NextReviewAt)

	review, commit, err = review.Advance()
	require.NoError(t, err)
	require.NotNil(t, commit)
	assert.Equal(t, *pending, *commit)
	assert.Nil(t, review.Pending(), "the pending slot is cleared before dispatch")
	assert.True(t, review.Complete())
}

// reviewStartingWith scans seeds until the shuffle asks the wanted
// direction first.
func reviewStartingWith(t *testing.T, stage int, first Direction) Review {
	t.Helper()
	for seed := int64(0); seed < 100; seed++ {
		review := NewReview(testReviews(stage), rand.New(rand.NewSource(seed)))
		question, ok := review.Current()
		require.True(t, ok)
		if question.Direction == first {
			return review
		}
	}
	t.Fatalf("no seed under 100 asks %s first", first)
	return Review{}
}

func TestReview_CommitRegardlessOfDirectionOrder(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	for _, first := range []Direction{WordToMeaning, MeaningToWord} {
		t.Run(string(first), func(t *testing.T) {
			review := reviewStartingWith(t, 3, first)

			question, ok := review.Current()
			require.True(t, ok)
			review = submitAnswer(t, review, question.Answer(), now)

			pair, ok := review.Pair(1)
			require.True(t, ok)
			if first == WordToMeaning {
				require.NotNil(t, pair.WordToMeaning)
				assert.Nil(t, pair.MeaningToWord)
			} else {
				require.NotNil(t, pair.MeaningToWord)
				assert.Nil(t, pair.WordToMeaning)
			}
			assert.Nil(t, review.Pending(), "one answered direction must not schedule a write")

			review, commit, err := review.Advance()
			require.NoError(t, err)
			assert.Nil(t, commit)

			question, ok = review.Current()
			require.True(t, ok)
			review = submitAnswer(t, review, question.Answer(), now)

			pending := review.Pending()
			require.NotNil(t, pending)
			assert.Equal(t, 3, pending.Progression.From)
			assert.Equal(t, 4, pending.Progression.To)

			_, commit, err = review.Advance()
			require.NoError(t, err)
			require.NotNil(t, commit, "the completed pair commits exactly once")
		})
	}
}

func TestReview_WrongAnswerResetsStage(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	review := NewReview(testReviews(6), rand.New(rand.NewSource(1)))

	question, ok := review.Current()
	require.True(t, ok)
	review = submitAnswer(t, review, question.Answer(), now)
	review, _, err := review.Advance()
	require.NoError(t, err)

	review = submitAnswer(t, review, "xyzzy", now)

	pending := review.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, 6, pending.Progression.From)
	assert.Equal(t, 1, pending.Progression.To, "a single miss resets the stage")
	require.NotNil(t, pending.Progression.NextReviewAt)
	assert.Equal(t, now.Add(4*time.Hour), *pending.Progression.NextReviewAt)
}

func TestReview_UndoCancelsPendingCommit(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	review := NewReview(testReviews(2), rand.New(rand.NewSource(1)))

	question, ok := review.Current()
	require.True(t, ok)
	review = submitAnswer(t, review, "xyzzy", now)
	review, _, err := review.Advance()
	require.NoError(t, err)

	question, ok = review.Current()
	require.True(t, ok)
	review = submitAnswer(t, review, question.Answer(), now)
	require.NotNil(t, review.Pending())

	review, err = review.Undo()
	require.NoError(t, err)
	assert.Nil(t, review.Pending(), "undo drops the prepared write")

	pair, ok := review.Pair(1)
	require.True(t, ok)
	assert.False(t, pair.Completed, "undo reopens the pair")

	// The corrected answer completes the pair again with a fresh result.
	question, ok = review.Current()
	require.True(t, ok)
	review = submitAnswer(t, review, question.Answer(), now)
	pending := review.Pending()
	require.NotNil(t, pending)
	assert.Equal(t, 1, pending.Progression.To, "the earlier miss still counts")
}

func TestReview_UndoRestoresCorrectCount(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	review := NewReview(testReviews(2), rand.New(rand.NewSource(1)))

	question, ok := review.Current()
	require.True(t, ok)
	review = submitAnswer(t, review, question.Answer(), now)
	require.Equal(t, 1, review.CorrectAnswers())

	review, err := review.Undo()
	require.NoError(t, err)
	assert.Equal(t, 0, review.CorrectAnswers())

	review = submitAnswer(t, review, question.Answer(), now)
	assert.Equal(t, 1, review.CorrectAnswers(), "re-answering counts once")
}

func TestReview_UndoUnavailableAfterAdvance(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	review := NewReview(testReviews(2), rand.New(rand.NewSource(1)))

	question, ok := review.Current()
	require.True(t, ok)
	review = submitAnswer(t, review, question.Answer(), now)
	review, _, err := review.Advance()
	require.NoError(t, err)

	_, err = review.Undo()
	assert.ErrorIs(t, err, ErrNothingToUndo)
}

func TestReview_Summary(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	reviews := []catalog.ReviewItem{
		{Item: catalog.Item{ID: 1, Word: "hund", Meaning: "dog"}, SrsStage: 1},
		{Item: catalog.Item{ID: 2, Word: "katt", Meaning: "cat"}, SrsStage: 4},
	}
	review := NewReview(reviews, rand.New(rand.NewSource(1)))

	_, ok := review.Summary()
	assert.False(t, ok, "no summary before the queue is done")

	wrongOnce := true
	for !review.Complete() {
		question, ok := review.Current()
		require.True(t, ok)
		input := question.Answer()
		if wrongOnce {
			input = "xyzzy"
			wrongOnce = false
		}
		review = submitAnswer(t, review, input, now)
		var err error
		review, _, err = review.Advance()
		require.NoError(t, err)
	}

	summary, ok := review.Summary()
	require.True(t, ok)
	assert.Equal(t, ReviewSummary{
		WordsReviewed:  2,
		CorrectAnswers: 3,
		TotalQuestions: 4,
	}, summary)
}

func TestReview_TransitionErrors(t *testing.T) {
	now := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	review := NewReview(testReviews(1), rand.New(rand.NewSource(1)))

	_, _, err := review.Advance()
	assert.ErrorIs(t, err, ErrNotAnswered)

	_, _, err = review.Submit("  ", now)
	assert.ErrorIs(t, err, ErrEmptyAnswer)

	review = submitAnswer(t, review, "xyzzy", now)
	_, _, err = review.Submit("xyzzy", now)
	assert.ErrorIs(t, err, ErrAlreadyAnswered)

	empty := NewReview(nil, rand.New(rand.NewSource(1)))
	_, ok := empty.Current()
	assert.False(t, ok)
	_, _, err = empty.Submit("dog", now)
	assert.ErrorIs(t, err, ErrNoCurrentQuestion)
}