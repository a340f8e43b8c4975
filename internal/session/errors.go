package session

import "errors"

var (
	// ErrEmptyAnswer rejects empty or whitespace-only submissions before
	// matching; the session state does not change.
	ErrEmptyAnswer = errors.New("answer is empty")
	// ErrNoCurrentQuestion is returned when there is nothing to answer.
	ErrNoCurrentQuestion = errors.New("no current question")
	// ErrAlreadyAnswered is returned when a question was answered but not
	// advanced past yet.
	ErrAlreadyAnswered = errors.New("current question already answered")
	// ErrNotAnswered is returned when advancing without an answer.
	ErrNotAnswered = errors.New("current question not answered yet")
	// ErrNothingToUndo is returned when no one-step undo is available.
	ErrNothingToUndo = errors.New("nothing to undo")
)
