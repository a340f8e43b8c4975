package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/cli"
	"github.com/gloser-app/gloser/internal/mastery"
)

func newLessonCommand() *cobra.Command {
	var level int
	var batchSize int
	command := &cobra.Command{
		Use:   "lesson",
		Short: "Learn a batch of new words, then pass an error-free quiz",
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

			size := batchSize
			if size <= 0 {
				size = cfg.Lesson.BatchSize
			}
			repository := catalog.NewRepository(db)
			items, err := repository.ListForLesson(ctx, cfg.User, cfg.Language, level, size)
			if err != nil {
				return fmt.Errorf("repository.ListForLesson() > %w", err)
			}
			if len(items) == 0 {
				fmt.Printf("No new words to learn at level %d.\n", level)
				return nil
			}

			fmt.Printf("Starting a lesson with %d new words.\n\n", len(items))
			lessonCLI := cli.NewLessonCLI(
				os.Stdin,
				os.Stdout,
				cfg.User,
				mastery.NewDBStore(db),
				items,
				rand.New(rand.NewSource(time.Now().UnixNano())),
			)
			return lessonCLI.Run(ctx, lessonCLI)
		},
	}
	command.Flags().IntVar(&level, "level", 1, "vocabulary level to learn from")
	command.Flags().IntVar(&batchSize, "batch", 0, "number of new words (default from config)")
	return command
}
