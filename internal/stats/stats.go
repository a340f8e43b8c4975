// Package stats summarizes a user's progress: how vocabulary is spread over
// the mastery tiers and how many reviews are coming up.
package stats

import (
	"sort"

	"github.com/gloser-app/gloser/internal/mastery"
	"github.com/gloser-app/gloser/internal/srs"
)

// TierCount is the number of items in one named mastery tier.
type TierCount struct {
	Tier  string
	Count int
}

// Forecast counts upcoming reviews at fixed horizons.
type Forecast struct {
	DueNow   int
	NextDay  int
	NextWeek int
}

// Report is the progress summary shown by the stats command.
type Report struct {
	TotalVocabulary int
	Started         int
	Burned          int
	Tiers           []TierCount
	Forecast        Forecast
}

// tierOrder fixes the display order of the mastery tiers.
var tierOrder = map[string]int{
	"locked":      0,
	"apprentice":  1,
	"guru":        2,
	"master":      3,
	"enlightened": 4,
	"burned":      5,
}

// BuildReport folds per-stage counts into tier totals. totalVocabulary is
// the catalog size for the user's language; items without a mastery record
// count as locked.
func BuildReport(totalVocabulary int, counts []mastery.StageCount, forecast Forecast) Report {
	report := Report{
		TotalVocabulary: totalVocabulary,
		Forecast:        forecast,
	}

	tiers := make(map[string]int)
	for _, count := range counts {
		if count.SrsStage >= srs.StageApprentice {
			report.Started += count.Count
		}
		if count.SrsStage >= srs.MaxStage {
			report.Burned += count.Count
		}
		tiers[srs.StageName(count.SrsStage)] += count.Count
	}

	if locked := totalVocabulary - report.Started; locked > 0 {
		tiers["locked"] += locked
	}

	for tier, count := range tiers {
		report.Tiers = append(report.Tiers, TierCount{Tier: tier, Count: count})
	}
	sort.Slice(report.Tiers, func(i, j int) bool {
		return tierOrder[report.Tiers[i].Tier] < tierOrder[report.Tiers[j].Tier]
	})
	return report
}
