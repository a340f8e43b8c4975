package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/mastery"
	"github.com/gloser-app/gloser/internal/stats"
)

func newStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show progress across the mastery tiers and upcoming reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return fmt.Errorf("failed to load configuration: %w", err)
			}

			ctx := cmd.Context()
			db, err := openDatabase(ctx, cfg)
			if err != nil {
				return err
			}
			defer func() {
				_ = db.Close()
			}()

			items, err := catalog.NewRepository(db).List(ctx, cfg.Language)
			if err != nil {
				return fmt.Errorf("repository.List() > %w", err)
			}

			store := mastery.NewDBStore(db)
			counts, err := store.CountByStage(ctx, cfg.User)
			if err != nil {
				return fmt.Errorf("store.CountByStage() > %w", err)
			}

			now := time.Now()
			forecast := stats.Forecast{}
			if forecast.DueNow, err = store.CountDueBefore(ctx, cfg.User, now); err != nil {
				return fmt.Errorf("store.CountDueBefore(now) > %w", err)
			}
			if forecast.NextDay, err = store.CountDueBefore(ctx, cfg.User, now.Add(24*time.Hour)); err != nil {
				return fmt.Errorf("store.CountDueBefore(day) > %w", err)
			}
			if forecast.NextWeek, err = store.CountDueBefore(ctx, cfg.User, now.Add(7*24*time.Hour)); err != nil {
				return fmt.Errorf("store.CountDueBefore(week) > %w", err)
			}

			report := stats.BuildReport(len(items), counts, forecast)
			fmt.Printf("Vocabulary: %d words, %d started, %d burned\n",
				report.TotalVocabulary, report.Started, report.Burned)
			for _, tier := range report.Tiers {
				fmt.Printf("  %-12s %d\n", tier.Tier, tier.Count)
			}
			fmt.Printf("Reviews due: now %d, next 24h %d, next 7 days %d\n",
				report.Forecast.DueNow, report.Forecast.NextDay, report.Forecast.NextWeek)
			return nil
		},
	}
}
