package mastery

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/avast/retry-go"
)

const (
	commitAttempts   = 3
	commitRetryDelay = 100 * time.Millisecond
)

// Committer performs mastery writes in the background so a review session
// never waits on the store. Failed writes are retried briefly and then
// logged; the session has already moved on and is never rolled back.
type Committer struct {
	store  Store
	logger *slog.Logger
	wg     sync.WaitGroup
}

// NewCommitter creates a Committer writing to the given store.
func NewCommitter(store Store, logger *slog.Logger) *Committer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Committer{store: store, logger: logger}
}

// Commit schedules one fire-and-forget write and returns immediately. The
// caller's context often ends with its session loop; a write dispatched on
// the session's last step still has to land, so cancellation is not
// inherited. Callers drop a write by never dispatching it, not by canceling.
func (c *Committer) Commit(ctx context.Context, userID string, vocabularyID int64, record Record) {
	ctx = context.WithoutCancel(ctx)
	c.wg.Add(1)
	go func() {
		defer c.wg.Done()

		err := retry.Do(
			func() error {
				return c.store.Set(ctx, userID, vocabularyID, record)
			},
			retry.Attempts(commitAttempts),
			retry.Delay(commitRetryDelay),
			retry.LastErrorOnly(true),
			retry.Context(ctx),
		)
		if err != nil {
			c.logger.Error("failed to store mastery record",
				"user", userID,
				"vocabulary_id", vocabularyID,
				"srs_stage", record.SrsStage,
				"error", err)
		}
	}()
}

// Wait blocks until every scheduled write has finished. Call it before
// shutdown and in tests.
func (c *Committer) Wait() {
	c.wg.Wait()
}
