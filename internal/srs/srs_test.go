package srs

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAdvance_Correct(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name             string
		stage            int
		expectedStage    int
		expectedInterval time.Duration
	}{
		{name: "unseen to apprentice", stage: 0, expectedStage: 1, expectedInterval: 4 * time.Hour},
		{name: "apprentice 1 to 2", stage: 1, expectedStage: 2, expectedInterval: 8 * time.Hour},
		{name: "apprentice 2 to 3", stage: 2, expectedStage: 3, expectedInterval: 24 * time.Hour},
		{name: "apprentice 3 to guru", stage: 3, expectedStage: 4, expectedInterval: 72 * time.Hour},
		{name: "guru 4 to 5", stage: 4, expectedStage: 5, expectedInterval: 168 * time.Hour},
		{name: "guru 5 to master", stage: 5, expectedStage: 6, expectedInterval: 336 * time.Hour},
		{name: "master 6 to 7", stage: 6, expectedStage: 7, expectedInterval: 720 * time.Hour},
		{name: "master 7 to enlightened", stage: 7, expectedStage: 8, expectedInterval: 2160 * time.Hour},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			progression, err := Advance(tt.stage, true, now)
			require.NoError(t, err)
			assert.Equal(t, tt.stage, progression.From)
			assert.Equal(t, tt.expectedStage, progression.To)
			require.NotNil(t, progression.NextReviewAt)
			assert.Equal(t, now.Add(tt.expectedInterval), *progression.NextReviewAt)
		})
	}
}

func TestAdvance_CorrectIntoTerminalStage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	progression, err := Advance(8, true, now)
	require.NoError(t, err)
	assert.Equal(t, MaxStage, progression.To)
	assert.Nil(t, progression.NextReviewAt, "terminal stage schedules no review")
}

func TestAdvance_TerminalStageIsAbsorbing(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	progression, err := Advance(MaxStage, true, now)
	require.NoError(t, err)
	assert.Equal(t, MaxStage, progression.To)
	assert.Nil(t, progression.NextReviewAt)
}

func TestAdvance_WrongAnswerResetsEveryStage(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	for stage := 0; stage <= MaxStage; stage++ {
		progression, err := Advance(stage, false, now)
		require.NoError(t, err)
		assert.Equal(t, StageApprentice, progression.To, "stage %d should reset to apprentice", stage)
		require.NotNil(t, progression.NextReviewAt)
		assert.Equal(t, now.Add(4*time.Hour), *progression.NextReviewAt)
	}
}

func TestAdvance_InvalidStage(t *testing.T) {
	now := time.Now()

	for _, stage := range []int{-1, 10, 100} {
		_, err := Advance(stage, true, now)
		var invalidErr InvalidStageError
		require.ErrorAs(t, err, &invalidErr)
		assert.Equal(t, stage, invalidErr.Stage)
	}
}

// The schedule ceiling and the ceiling applied on review-pair commits must
// never diverge; a pair commit would otherwise stall items below burned.
func TestPairCommitCeilingMatchesSchedule(t *testing.T) {
	assert.Equal(t, MaxStage, PairCommitMaxStage)
}

func TestStageName(t *testing.T) {
	tests := []struct {
		stage    int
		expected string
	}{
		{stage: 0, expected: "locked"},
		{stage: 1, expected: "apprentice"},
		{stage: 3, expected: "apprentice"},
		{stage: 4, expected: "guru"},
		{stage: 5, expected: "guru"},
		{stage: 6, expected: "master"},
		{stage: 7, expected: "master"},
		{stage: 8, expected: "enlightened"},
		{stage: 9, expected: "burned"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.expected, StageName(tt.stage))
	}
}

func TestInterval(t *testing.T) {
	interval, ok := Interval(1)
	require.True(t, ok)
	assert.Equal(t, 4*time.Hour, interval)

	_, ok = Interval(MaxStage)
	assert.False(t, ok)

	_, ok = Interval(0)
	assert.False(t, ok)
}
