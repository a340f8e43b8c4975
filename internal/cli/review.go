package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math/rand"
	"time"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/mastery"
	"github.com/gloser-app/gloser/internal/session"
	"github.com/gloser-app/gloser/internal/srs"
)

// ReviewCLI drives a review session. Each due item is asked in both
// directions; once both answers are in, the stage transition is handed to
// the background committer. Undoing the second answer before moving on
// cancels the write.
type ReviewCLI struct {
	*InteractiveCLI
	userID    string
	committer *mastery.Committer
	review    session.Review
	now       func() time.Time
}

// NewReviewCLI creates a review session over the due items.
func NewReviewCLI(
	in io.Reader,
	out io.Writer,
	userID string,
	committer *mastery.Committer,
	reviews []catalog.ReviewItem,
	rng *rand.Rand,
) *ReviewCLI {
	return &ReviewCLI{
		InteractiveCLI: newInteractiveCLI(in, out),
		userID:         userID,
		committer:      committer,
		review:         session.NewReview(reviews, rng),
		now:            time.Now,
	}
}

func (r *ReviewCLI) Session(ctx context.Context) error {
	if r.review.Complete() {
		return r.complete()
	}

	question, ok := r.review.Current()
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

	next, verdict, err := r.review.Submit(input, r.now())
	if err != nil {
		return fmt.Errorf("review.Submit() > %w", err)
	}
	r.review = next
	r.printReviewVerdict(verdict)

	r.printf("[Enter to continue, u to undo, q to quit] ")
	choice, err := r.readLine()
	if err != nil && !errors.Is(err, io.EOF) {
		return fmt.Errorf("error reading input: %w", err)
	}
	r.println()
	switch choice {
	case "u":
		r.review, err = r.review.Undo()
		if err != nil {
			return fmt.Errorf("review.Undo() > %w", err)
		}
		r.println("Answer taken back, try again.")
		return nil
	case "q":
		// Leaving mid-pair drops the prepared write; a pair only commits
		// once both answers stand at advance.
		return errEnd
	}

	r.review, _, err = r.advanceAndCommit(ctx)
	if err != nil {
		return err
	}
	return nil
}

// advanceAndCommit moves past the answered question and dispatches the
// prepared mastery write, if the pair just finished, to the background
// committer.
func (r *ReviewCLI) advanceAndCommit(ctx context.Context) (session.Review, *session.PendingCommit, error) {
	next, commit, err := r.review.Advance()
	if err != nil {
		return r.review, nil, fmt.Errorf("review.Advance() > %w", err)
	}
	if commit != nil {
		record := mastery.Record{
			SrsStage:     commit.Progression.To,
			NextReviewAt: commit.Progression.NextReviewAt,
		}
		r.committer.Commit(ctx, r.userID, commit.VocabularyID, record)
	}
	return next, commit, nil
}

func (r *ReviewCLI) printReviewVerdict(verdict session.Verdict) {
	r.printVerdict(verdict)

	// When this answer finished the pair, show where the word ended up.
	if pending := r.review.Pending(); pending != nil {
		from, to := pending.Progression.From, pending.Progression.To
		switch {
		case to >= srs.MaxStage:
			r.printf("%s is burned. No more reviews.\n", verdict.Question.Item.Word)
		case to > from:
			r.printf("%s moved up to %s.%s\n", verdict.Question.Item.Word, srs.StageName(to), nextReviewNote(to))
		case to < from:
			r.printf("%s dropped back to %s.%s\n", verdict.Question.Item.Word, srs.StageName(to), nextReviewNote(to))
		}
	}
}

// nextReviewNote says when an item at the given stage comes up again.
func nextReviewNote(stage int) string {
	interval, ok := srs.Interval(stage)
	if !ok {
		return ""
	}
	return fmt.Sprintf(" Next review in %s.", formatInterval(interval))
}

// formatInterval renders a review interval in whole hours or days.
func formatInterval(interval time.Duration) string {
	hours := int(interval.Hours())
	if hours < 48 {
		return fmt.Sprintf("%d hours", hours)
	}
	return fmt.Sprintf("%d days", hours/24)
}

func (r *ReviewCLI) complete() error {
	summary, ok := r.review.Summary()
	if !ok {
		return errEnd
	}
	if summary.TotalQuestions > 0 {
		accuracy := 100 * summary.CorrectAnswers / summary.TotalQuestions
		r.printf("Review complete! %d words reviewed, %d/%d correct (%d%%)\n",
			summary.WordsReviewed, summary.CorrectAnswers, summary.TotalQuestions, accuracy)
	} else {
		r.println("Nothing to review right now.")
	}
	return errEnd
}
