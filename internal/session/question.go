// Package session implements the interactive learning flows as explicit
// state machines: the lesson quiz with its retest-until-correct loop, and
// the paired-question review session that feeds the spaced-repetition
// schedule. States are values; every transition returns a new state, which
// keeps the undo and retest behavior testable without any terminal.
package session

import (
	"math/rand"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/match"
)

// Direction says which side of a vocabulary item a question shows.
type Direction string

const (
	// WordToMeaning shows the Norwegian word and expects the meaning.
	WordToMeaning Direction = "word_to_meaning"
	// MeaningToWord shows the meaning and expects the Norwegian word.
	MeaningToWord Direction = "meaning_to_word"
)

// Question is one prompt of a session. The two questions generated from the
// same item share a PairID.
type Question struct {
	Item      catalog.Item
	PairID    int64
	Direction Direction
}

// Prompt returns the text shown to the user.
func (q Question) Prompt() string {
	if q.Direction == WordToMeaning {
		return q.Item.Word
	}
	return q.Item.Meaning
}

// Answer returns the canonical correct answer.
func (q Question) Answer() string {
	if q.Direction == WordToMeaning {
		return q.Item.Meaning
	}
	return q.Item.Word
}

// Alternatives returns the additional acceptable answers. Meanings use the
// item's curated list when present and fall back to the generated
// alternatives; the Norwegian word itself has none.
func (q Question) Alternatives() []string {
	if q.Direction != WordToMeaning {
		return nil
	}
	if q.Item.AcceptedAnswers != nil {
		return q.Item.AcceptedAnswers
	}
	return match.Alternatives(q.Item.Meaning)
}

// Check judges the user's answer for this question.
func (q Question) Check(input string) bool {
	return match.IsMatch(input, q.Answer(), q.Alternatives())
}

// Verdict is the outcome of one submitted answer.
type Verdict struct {
	Question Question
	Input    string
	Correct  bool
}

// BuildQuestions expands items into both question directions and shuffles
// them with the given source. Injecting the source keeps question order
// reproducible in tests and uniformly random in production.
func BuildQuestions(items []catalog.Item, rng *rand.Rand) []Question {
	questions := make([]Question, 0, 2*len(items))
	for _, item := range items {
		questions = append(questions,
			Question{Item: item, PairID: item.ID, Direction: WordToMeaning},
			Question{Item: item, PairID: item.ID, Direction: MeaningToWord},
		)
	}
	rng.Shuffle(len(questions), func(i, j int) {
		questions[i], questions[j] = questions[j], questions[i]
	})
	return questions
}
