package session

import (
	"math/rand"
	"strings"
	"time"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/srs"
)

// ReviewPair aggregates the two directional verdicts of one item during a
// review. The spaced-repetition transition is prepared exactly once, when
// the second direction is answered.
type ReviewPair struct {
	VocabularyID  int64
	SrsStage      int
	WordToMeaning *bool
	MeaningToWord *bool
	Completed     bool
	Progression   *srs.Progression
}

// BothCorrect reports whether both directions were answered correctly. It
// is only meaningful once the pair is completed.
func (p ReviewPair) BothCorrect() bool {
	return p.WordToMeaning != nil && *p.WordToMeaning &&
		p.MeaningToWord != nil && *p.MeaningToWord
}

// PendingCommit is a prepared mastery write for a completed pair. It is
// handed out on Advance and discarded on Undo; each pair produces at most
// one.
type PendingCommit struct {
	VocabularyID int64
	Progression  srs.Progression
}

// ReviewSummary is emitted when a review session completes.
type ReviewSummary struct {
	WordsReviewed  int
	CorrectAnswers int
	TotalQuestions int
}

// Review is the review session state. Like Quiz it is a value per step;
// transitions return the next state. Undoing before Advance cancels the
// prepared mastery write for the answered pair.
type Review struct {
	queue          []Question
	pairs          map[int64]*ReviewPair
	correctAnswers int
	totalQuestions int
	wordsReviewed  int
	pending        *PendingCommit
	input          string
	answered       *Verdict
	complete       bool
	prev           *Review
}

// NewReview starts a review session over the due items.
func NewReview(reviews []catalog.ReviewItem, rng *rand.Rand) Review {
	items := make([]catalog.Item, 0, len(reviews))
	pairs := make(map[int64]*ReviewPair, len(reviews))
	for _, review := range reviews {
		items = append(items, review.Item)
		pairs[review.Item.ID] = &ReviewPair{
			VocabularyID: review.Item.ID,
			SrsStage:     review.SrsStage,
		}
	}

	questions := BuildQuestions(items, rng)
	return Review{
		queue:          questions,
		pairs:          pairs,
		totalQuestions: len(questions),
		wordsReviewed:  len(reviews),
		complete:       len(questions) == 0,
	}
}

// Complete reports whether the queue is exhausted.
func (s Review) Complete() bool { return s.complete }

// CorrectAnswers returns the number of correctly answered questions.
func (s Review) CorrectAnswers() int { return s.correctAnswers }

// TotalQuestions returns the fixed question count of the session.
func (s Review) TotalQuestions() int { return s.totalQuestions }

// Remaining returns how many questions are left.
func (s Review) Remaining() int { return len(s.queue) }

// Input returns the answer text of the pending verdict, for undo display.
func (s Review) Input() string { return s.input }

// Pair returns the aggregate for one item's pair ID.
func (s Review) Pair(pairID int64) (ReviewPair, bool) {
	pair, ok := s.pairs[pairID]
	if !ok {
		return ReviewPair{}, false
	}
	return *pair, true
}

// Pending returns the prepared mastery write awaiting Advance, if any.
func (s Review) Pending() *PendingCommit {
	if s.pending == nil {
		return nil
	}
	pending := *s.pending
	return &pending
}

// Current returns the question waiting for an answer.
func (s Review) Current() (Question, bool) {
	if s.complete || len(s.queue) == 0 {
		return Question{}, false
	}
	return s.queue[0], true
}

// Answered returns the verdict recorded for the current question, if any.
func (s Review) Answered() *Verdict { return s.answered }

// Submit records an answer for the current question and fills the matching
// slot of the question's pair. Completing a pair prepares the stage
// transition from the stage the session loaded, using both verdicts —
// never a one-sided write.
func (s Review) Submit(input string, now time.Time) (Review, Verdict, error) {
	question, ok := s.Current()
	if !ok {
		return s, Verdict{}, ErrNoCurrentQuestion
	}
	if s.answered != nil {
		return s, Verdict{}, ErrAlreadyAnswered
	}
	if strings.TrimSpace(input) == "" {
		return s, Verdict{}, ErrEmptyAnswer
	}

	snapshot := s.clone()
	verdict := Verdict{
		Question: question,
		Input:    input,
		Correct:  question.Check(input),
	}
	if verdict.Correct {
		s.correctAnswers++
	}

	s.pairs = clonePairs(s.pairs)
	pair := s.pairs[question.PairID]
	correct := verdict.Correct
	if question.Direction == WordToMeaning {
		pair.WordToMeaning = &correct
	} else {
		pair.MeaningToWord = &correct
	}

	if pair.WordToMeaning != nil && pair.MeaningToWord != nil && !pair.Completed {
		pair.Completed = true
		progression, err := srs.Advance(pair.SrsStage, pair.BothCorrect(), now)
		if err != nil {
			return snapshot, Verdict{}, err
		}
		pair.Progression = &progression
		s.pending = &PendingCommit{
			VocabularyID: pair.VocabularyID,
			Progression:  progression,
		}
	}

	s.input = input
	s.answered = &verdict
	s.prev = &snapshot
	return s, verdict, nil
}

// Advance moves past the answered question and returns the prepared write,
// if any, for the caller to dispatch in the background. The pending slot is
// cleared synchronously here, before any dispatch, so a later undo can
// never resurrect it.
func (s Review) Advance() (Review, *PendingCommit, error) {
	if s.answered == nil {
		return s, nil, ErrNotAnswered
	}

	commit := s.pending
	s.pending = nil
	s.queue = s.queue[1:]
	s.answered = nil
	s.input = ""
	s.prev = nil
	if len(s.queue) == 0 {
		s.complete = true
	}
	return s, commit, nil
}

// Undo restores the state before the last Submit, including the pair map
// and the correct-answer count, and drops any prepared write. One step,
// only until Advance.
func (s Review) Undo() (Review, error) {
	if s.prev == nil {
		return s, ErrNothingToUndo
	}
	return *s.prev, nil
}

// Summary returns the completion summary once the queue is exhausted.
func (s Review) Summary() (ReviewSummary, bool) {
	if !s.complete {
		return ReviewSummary{}, false
	}
	return ReviewSummary{
		WordsReviewed:  s.wordsReviewed,
		CorrectAnswers: s.correctAnswers,
		TotalQuestions: s.totalQuestions,
	}, true
}

// clone copies the state with its own queue and pair map, detached from
// snapshots.
func (s Review) clone() Review {
	clone := s
	clone.queue = appendQuestions(nil, s.queue)
	clone.pairs = clonePairs(s.pairs)
	clone.prev = nil
	return clone
}

func clonePairs(pairs map[int64]*ReviewPair) map[int64]*ReviewPair {
	cloned := make(map[int64]*ReviewPair, len(pairs))
	for id, pair := range pairs {
		copied := *pair
		if pair.WordToMeaning != nil {
			value := *pair.WordToMeaning
			copied.WordToMeaning = &value
		}
		if pair.MeaningToWord != nil {
			value := *pair.MeaningToWord
			copied.MeaningToWord = &value
		}
		if pair.Progression != nil {
			progression := *pair.Progression
			copied.Progression = &progression
		}
		cloned[id] = &copied
	}
	return cloned
}
