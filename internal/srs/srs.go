// Package srs implements the graduated-interval spaced repetition schedule.
// Mastery of a vocabulary item moves through nine stages with fixed review
// intervals; a correct review advances one stage, a wrong answer resets to
// the first stage, and the final stage is terminal.
package srs

import (
	"fmt"
	"time"
)

const (
	// StageUnseen marks an item the user has not started learning yet.
	StageUnseen = 0
	// StageApprentice is the stage a completed lesson unlocks an item at,
	// and the stage every wrong review answer resets to.
	StageApprentice = 1
	// MaxStage is the terminal "burned" stage. Items at this stage are
	// never scheduled for review again.
	MaxStage = 9
	// PairCommitMaxStage is the ceiling applied when a review pair commits
	// its stage transition. It is the same ceiling as MaxStage; the two
	// names exist so the schedule and the pair-commit path cannot silently
	// drift apart.
	PairCommitMaxStage = MaxStage
)

// reviewIntervals holds hours until the next review, indexed by stage.
// Index 0 is unused and the terminal stage has no interval.
var reviewIntervals = [MaxStage + 1]time.Duration{
	StageApprentice: 4 * time.Hour,
	2:               8 * time.Hour,
	3:               24 * time.Hour,
	4:               72 * time.Hour,
	5:               168 * time.Hour,
	6:               336 * time.Hour,
	7:               720 * time.Hour,
	8:               2160 * time.Hour,
	MaxStage:        0,
}

// StageName returns the tier name used when presenting a stage.
func StageName(stage int) string {
	switch {
	case stage <= StageUnseen:
		return "locked"
	case stage <= 3:
		return "apprentice"
	case stage <= 5:
		return "guru"
	case stage <= 7:
		return "master"
	case stage == 8:
		return "enlightened"
	default:
		return "burned"
	}
}

// Progression describes a single stage transition and the review it
// schedules. NextReviewAt is nil exactly when the new stage is terminal.
type Progression struct {
	From         int
	To           int
	NextReviewAt *time.Time
}

// InvalidStageError reports a stage outside [0, MaxStage]. Out-of-range
// stages indicate corrupted mastery data upstream and are rejected rather
// than clamped.
type InvalidStageError struct {
	Stage int
}

func (e InvalidStageError) Error() string {
	return fmt.Sprintf("srs stage %d outside valid range [%d, %d]", e.Stage, StageUnseen, MaxStage)
}

// Advance computes the stage transition for one answered review.
// A correct answer moves forward one stage up to MaxStage; a wrong answer
// resets to StageApprentice from every stage. The terminal stage absorbs
// further correct answers and schedules nothing.
func Advance(currentStage int, correct bool, now time.Time) (Progression, error) {
	if currentStage < StageUnseen || currentStage > MaxStage {
		return Progression{}, InvalidStageError{Stage: currentStage}
	}

	newStage := StageApprentice
	if correct {
		newStage = currentStage + 1
		if newStage > MaxStage {
			newStage = MaxStage
		}
	}

	progression := Progression{From: currentStage, To: newStage}
	if interval := reviewIntervals[newStage]; interval > 0 {
		next := now.Add(interval)
		progression.NextReviewAt = &next
	}
	return progression, nil
}

// Interval returns the review interval scheduled after reaching a stage,
// and false for the terminal stage and out-of-range input.
func Interval(stage int) (time.Duration, bool) {
	if stage < StageApprentice || stage >= MaxStage {
		return 0, false
	}
	return reviewIntervals[stage], true
}
