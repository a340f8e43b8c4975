package session

import (
	"math/rand"
	"strings"

	"github.com/gloser-app/gloser/internal/catalog"
)

// QuizPhase is the lesson session's top-level state.
type QuizPhase string

const (
	// PhaseLearning presents each item once before any question is asked.
	PhaseLearning QuizPhase = "learning"
	// PhaseQuiz asks the shuffled bidirectional questions.
	PhaseQuiz QuizPhase = "quiz"
	// PhaseComplete is reached after a full error-free pass.
	PhaseComplete QuizPhase = "complete"
)

// QuizSummary is emitted when a lesson quiz completes. FirstAttemptCorrect
// counts only first-pass answers; retest rounds never raise it.
type QuizSummary struct {
	FirstAttemptCorrect   int
	TotalQuestions        int
	AllQuestionsCompleted bool
}

// Quiz is the lesson session state: a learn pass over the items, then a
// question queue with a retest loop that repeats wrong answers until one
// full pass has no errors. Quiz values are immutable per step; transitions
// return the next state.
type Quiz struct {
	phase               QuizPhase
	items               []catalog.Item
	learnIndex          int
	queue               []Question
	wrong               []Question
	retestWrong         []Question
	retest              bool
	firstAttemptCorrect int
	totalQuestions      int
	input               string
	answered            *Verdict
	prev                *Quiz
}

// NewQuiz starts a lesson session over the given items.
func NewQuiz(items []catalog.Item, rng *rand.Rand) Quiz {
	questions := BuildQuestions(items, rng)
	return Quiz{
		phase:          PhaseLearning,
		items:          items,
		queue:          questions,
		totalQuestions: len(questions),
	}
}

// Phase returns the current phase.
func (s Quiz) Phase() QuizPhase { return s.phase }

// Items returns the items of this lesson.
func (s Quiz) Items() []catalog.Item { return s.items }

// Retesting reports whether the first pass is over and wrong answers are
// being repeated.
func (s Quiz) Retesting() bool { return s.retest }

// FirstAttemptCorrect returns the number of first-pass correct answers.
func (s Quiz) FirstAttemptCorrect() int { return s.firstAttemptCorrect }

// TotalQuestions returns the fixed question count (items times two),
// excluding retest repeats.
func (s Quiz) TotalQuestions() int { return s.totalQuestions }

// Remaining returns how many questions are left in the current pass.
func (s Quiz) Remaining() int { return len(s.queue) }

// Input returns the answer text of the pending verdict, for undo display.
func (s Quiz) Input() string { return s.input }

// LearnItem returns the item currently presented in the learning phase.
func (s Quiz) LearnItem() (catalog.Item, bool) {
	if s.phase != PhaseLearning || s.learnIndex >= len(s.items) {
		return catalog.Item{}, false
	}
	return s.items[s.learnIndex], true
}

// AdvanceLearning moves to the next item of the learn pass and enters the
// quiz phase after the last one.
func (s Quiz) AdvanceLearning() Quiz {
	if s.phase != PhaseLearning {
		return s
	}
	s.learnIndex++
	if s.learnIndex >= len(s.items) {
		s.phase = PhaseQuiz
		if len(s.queue) == 0 {
			s.phase = PhaseComplete
		}
	}
	return s
}

// Current returns the question waiting for an answer.
func (s Quiz) Current() (Question, bool) {
	if s.phase != PhaseQuiz || len(s.queue) == 0 {
		return Question{}, false
	}
	return s.queue[0], true
}

// Answered returns the verdict recorded for the current question, if any.
func (s Quiz) Answered() *Verdict { return s.answered }

// Submit records an answer for the current question. The state keeps a
// one-step snapshot so the answer can be undone until Advance.
func (s Quiz) Submit(input string) (Quiz, Verdict, error) {
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
		if !s.retest {
			s.firstAttemptCorrect++
		}
	} else {
		if s.retest {
			s.retestWrong = appendQuestion(s.retestWrong, question)
		} else {
			s.wrong = appendQuestion(s.wrong, question)
		}
	}

	s.input = input
	s.answered = &verdict
	s.prev = &snapshot
	return s, verdict, nil
}

// Advance moves past the answered question. Undo becomes unavailable. When
// a pass ends, wrong answers are re-queued: the first-pass bucket starts
// the retest phase, the retest bucket repeats until a pass is error-free.
func (s Quiz) Advance() (Quiz, error) {
	if s.phase != PhaseQuiz {
		return s, ErrNoCurrentQuestion
	}
	if s.answered == nil {
		return s, ErrNotAnswered
	}

	s.queue = s.queue[1:]
	s.answered = nil
	s.input = ""
	s.prev = nil

	if len(s.queue) > 0 {
		return s, nil
	}

	switch {
	case !s.retest && len(s.wrong) > 0:
		s.queue = s.wrong
		s.wrong = nil
		s.retest = true
	case s.retest && len(s.retestWrong) > 0:
		s.queue = s.retestWrong
		s.retestWrong = nil
	default:
		s.phase = PhaseComplete
	}
	return s, nil
}

// Undo restores the state before the last Submit. Exactly one step is
// available, and only until Advance.
func (s Quiz) Undo() (Quiz, error) {
	if s.prev == nil {
		return s, ErrNothingToUndo
	}
	return *s.prev, nil
}

// Summary returns the completion summary once the session is complete.
func (s Quiz) Summary() (QuizSummary, bool) {
	if s.phase != PhaseComplete {
		return QuizSummary{}, false
	}
	return QuizSummary{
		FirstAttemptCorrect:   s.firstAttemptCorrect,
		TotalQuestions:        s.totalQuestions,
		AllQuestionsCompleted: true,
	}, true
}

// clone copies the state with its own slices, detached from snapshots.
func (s Quiz) clone() Quiz {
	clone := s
	clone.queue = appendQuestions(nil, s.queue)
	clone.wrong = appendQuestions(nil, s.wrong)
	clone.retestWrong = appendQuestions(nil, s.retestWrong)
	clone.prev = nil
	return clone
}

func appendQuestion(questions []Question, question Question) []Question {
	return append(appendQuestions(nil, questions), question)
}

func appendQuestions(dst, src []Question) []Question {
	if len(src) == 0 {
		return dst
	}
	return append(dst, src...)
}
