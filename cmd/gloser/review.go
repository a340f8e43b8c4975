package main

import (
	"fmt"
	"log/slog"
	"math/rand"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/cli"
	"github.com/gloser-app/gloser/internal/mastery"
)

func newReviewCommand() *cobra.Command {
	var limit int
	command := &cobra.Command{
		Use:   "review",
		Short: "Review the words whose next review is due",
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

			repository := catalog.NewRepository(db)
			reviews, err := repository.ListReadyForReview(ctx, cfg.User, cfg.Language, time.Now())
			if err != nil {
				return fmt.Errorf("repository.ListReadyForReview() > %w", err)
			}
			if len(reviews) == 0 {
				fmt.Println("Nothing to review right now.")
				return nil
			}

			max := limit
			if max <= 0 {
				max = cfg.Review.Limit
			}
			if len(reviews) > max {
				reviews = reviews[:max]
			}

			store := mastery.NewDBStore(db)
			committer := mastery.NewCommitter(store, slog.Default())
			// Writes run in the background; wait for them before the
			// connection closes.
			defer committer.Wait()

			fmt.Printf("Reviewing %d words.\n\n", len(reviews))
			reviewCLI := cli.NewReviewCLI(
				os.Stdin,
				os.Stdout,
				cfg.User,
				committer,
				reviews,
				rand.New(rand.NewSource(time.Now().UnixNano())),
			)
			return reviewCLI.Run(ctx, reviewCLI)
		},
	}
	command.Flags().IntVar(&limit, "limit", 0, "maximum words per session (default from config)")
	return command
}
