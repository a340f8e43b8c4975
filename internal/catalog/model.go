// Package catalog provides the vocabulary catalog: word records with their
// meanings, typed grammatical attributes, and the queries that select items
// for lessons and reviews. The catalog is read-only input for quiz and
// review sessions.
package catalog

import "time"

// WordType tags a vocabulary item with its grammatical class. The set is
// open: unknown tags are carried through unchanged.
type WordType string

const (
	WordTypeNoun      WordType = "noun"
	WordTypeVerb      WordType = "verb"
	WordTypeAdjective WordType = "adjective"
	WordTypeAdverb    WordType = "adverb"
	WordTypePhrase    WordType = "phrase"
	WordTypeNumber    WordType = "number"
	WordTypeOther     WordType = "other"
)

// Item is a single vocabulary entry. Word holds the Norwegian text and
// Meaning the canonical English gloss. AcceptedAnswers optionally overrides
// the generated alternative answers; nil means derive them from Meaning.
type Item struct {
	ID              int64      `yaml:"-"`
	Language        string     `yaml:"-"`
	Word            string     `yaml:"word"`
	Meaning         string     `yaml:"meaning"`
	Type            WordType   `yaml:"type"`
	Level           int        `yaml:"level,omitempty"`
	Attributes      Attributes `yaml:"attributes,omitempty"`
	AcceptedAnswers []string   `yaml:"accepted_answers,omitempty"`
	CreatedAt       time.Time  `yaml:"-"`
	UpdatedAt       time.Time  `yaml:"-"`
}

// ReviewItem pairs a vocabulary item with the user's current mastery stage,
// as selected for a review session.
type ReviewItem struct {
	Item         Item
	SrsStage     int
	NextReviewAt time.Time
}
