package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"strings"
	"time"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/mastery"
	"github.com/gloser-app/gloser/internal/session"
	"github.com/gloser-app/gloser/internal/srs"
)

// LessonCLI drives a lesson: each new word is shown once, then quizzed in
// both directions until one pass is error-free. Completing the lesson
// unlocks every item at the first review stage.
type LessonCLI struct {
	*InteractiveCLI
	userID string
	store  mastery.Store
	quiz   session.Quiz
	now    func() time.Time
}

// NewLessonCLI creates a lesson session over the given items.
func NewLessonCLI(
	in io.Reader,
	out io.Writer,
	userID string,
	store mastery.Store,
	items []catalog.Item,
	rng *rand.Rand,
) *LessonCLI {
	return &LessonCLI{
		InteractiveCLI: newInteractiveCLI(in, out),
		userID:         userID,
		store:          store,
		quiz:           session.NewQuiz(items, rng),
		now:            time.Now,
	}
}

func (r *LessonCLI) Session(ctx context.Context) error {
	switch r.quiz.Phase() {
	case session.PhaseLearning:
		return r.learnStep()
	case session.PhaseQuiz:
		return r.quizStep()
	default:
		return r.complete(ctx)
	}
}

func (r *LessonCLI) learnStep() error {
	item, ok := r.quiz.LearnItem()
	if !ok {
		r.quiz = r.quiz.AdvanceLearning()
		return nil
	}

	r.printf("%s = %s\n", r.bold.Sprintf("%s", item.Word), r.italic.Sprintf("%s", item.Meaning))
	if detail := formatItemDetail(item); detail != "" {
		r.println(detail)
	}
	r.printf("[Enter to continue, q to quit] ")
	choice, err := r.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("error reading input: %w", err)
	}
	r.println()
	if choice == "q" {
		return errEnd
	}

	wasLearning := r.quiz.Phase() == session.PhaseLearning
	r.quiz = r.quiz.AdvanceLearning()
	if wasLearning && r.quiz.Phase() == session.PhaseQuiz {
		r.printf("Quiz time! %d questions.\n\n", r.quiz.TotalQuestions())
	}
	return nil
}

func (r *LessonCLI) quizStep() error {
	question, ok := r.quiz.Current()
	if !ok {
		return errEnd
	}

	_, _ = r.bold.Fprintf(r.stdoutWriter, "%s: ", question.Prompt())
	input, err := r.readLine()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return errEnd
		}
		return fmt.Errorf("error reading input: %w", err)
	}
	if input == "" {
		r.println("Please type an answer.")
		return nil
	}

	next, verdict, err := r.quiz.Submit(input)
	if err != nil {
		return fmt.Errorf("quiz.Submit() > %w", err)
	}
	r.quiz = next
	r.printVerdict(verdict)

	r.printf("[Enter to continue, u to undo, q to quit] ")
	choice, err := r.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading input: %w", err)
	}
	r.println()
	switch choice {
	case "u":
		r.quiz, err = r.quiz.Undo()
		if err != nil {
			return fmt.Errorf("quiz.Undo() > %w", err)
		}
		r.println("Answer taken back, try again.")
		return nil
	case "q":
		return errEnd
	}

	wasRetesting := r.quiz.Retesting()
	r.quiz, err = r.quiz.Advance()
	if err != nil {
		return fmt.Errorf("quiz.Advance() > %w", err)
	}
	if !wasRetesting && r.quiz.Retesting() {
		r.printf("Retesting %d missed questions.\n\n", r.quiz.Remaining())
	}
	return nil
}

func (r *LessonCLI) complete(ctx context.Context) error {
	summary, ok := r.quiz.Summary()
	if !ok {
		return errEnd
	}

	if summary.TotalQuestions > 0 {
		accuracy := 100 * summary.FirstAttemptCorrect / summary.TotalQuestions
		r.printf("Lesson complete! First attempt: %d/%d (%d%%)\n",
			summary.FirstAttemptCorrect, summary.TotalQuestions, accuracy)
	}

	now := r.now()
	for _, item := range r.quiz.Items() {
		progression, err := srs.Advance(srs.StageUnseen, true, now)
		if err != nil {
			return fmt.Errorf("srs.Advance() > %w", err)
		}
		record := mastery.Record{
			SrsStage:     progression.To,
			NextReviewAt: progression.NextReviewAt,
		}
		if err := r.store.Set(ctx, r.userID, item.ID, record); err != nil {
			return fmt.Errorf("store.Set(%s) > %w", item.Word, err)
		}
	}
	if count := len(r.quiz.Items()); count > 0 {
		if interval, ok := srs.Interval(srs.StageApprentice); ok {
			r.printf("%d words unlocked for review. First review in %s.\n", count, formatInterval(interval))
		} else {
			r.printf("%d words unlocked for review.\n", count)
		}
	}
	return errEnd
}

// formatItemDetail renders the word's grammatical detail for the learn card.
func formatItemDetail(item catalog.Item) string {
	var parts []string
	if item.Type != "" && item.Type != catalog.WordTypeOther {
		parts = append(parts, string(item.Type))
	}

	attrs := item.Attributes
	switch {
	case attrs.Noun != nil:
		if attrs.Noun.Gender != "" {
			parts = append(parts, fmt.Sprintf("%s %s", attrs.Noun.Gender, item.Word))
		}
		forms := joinNonEmpty(attrs.Noun.Definite, attrs.Noun.Plural, attrs.Noun.DefinitePlural)
		if forms != "" {
			parts = append(parts, forms)
		}
	case attrs.Verb != nil:
		forms := joinNonEmpty(attrs.Verb.Present, attrs.Verb.Past, attrs.Verb.PastParticiple)
		if forms != "" {
			parts = append(parts, forms)
		}
	case attrs.Adjective != nil:
		forms := joinNonEmpty(attrs.Adjective.Neuter, attrs.Adjective.Plural)
		if forms != "" {
			parts = append(parts, forms)
		}
	}
	return strings.Join(parts, " | ")
}

func joinNonEmpty(values ...string) string {
	var kept []string
	for _, value := range values {
		if value != "" {
			kept = append(kept, value)
		}
	}
	return strings.Join(kept, ", ")
}
