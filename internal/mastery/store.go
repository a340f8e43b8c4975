// Package mastery tracks how well a user knows each vocabulary item: the
// current spaced-repetition stage and the time of the next scheduled review.
package mastery

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
)

// Record is one user's mastery of one vocabulary item. NextReviewAt is nil
// exactly when the stage is terminal.
type Record struct {
	SrsStage     int        `db:"srs_stage"`
	NextReviewAt *time.Time `db:"next_review_at"`
	Notes        string     `db:"notes"`
}

//go:generate mockgen -source=store.go -destination=../mocks/mastery/mock_store.go -package=mock_mastery

// Store reads and writes mastery records keyed by user and vocabulary item.
// Writes are last-write-wins; a user has at most one active session per item.
type Store interface {
	Get(ctx context.Context, userID string, vocabularyID int64) (*Record, error)
	Set(ctx context.Context, userID string, vocabularyID int64, record Record) error
}

// DBStore implements Store on the mastery table.
type DBStore struct {
	db *sqlx.DB
}

// NewDBStore creates a DBStore on an open database.
func NewDBStore(db *sqlx.DB) *DBStore {
	return &DBStore{db: db}
}

// Get returns the record for one item, or nil when the user has not started
// it.
func (s *DBStore) Get(ctx context.Context, userID string, vocabularyID int64) (*Record, error) {
	var record Record
	err := s.db.GetContext(ctx, &record,
		"SELECT srs_stage, next_review_at, notes FROM mastery WHERE user_id = ? AND vocabulary_id = ?",
		userID, vocabularyID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(mastery) > %w", err)
	}
	return &record, nil
}

// Set stores the record for one item, creating it on first write.
func (s *DBStore) Set(ctx context.Context, userID string, vocabularyID int64, record Record) error {
	now := time.Now()
	result, err := s.db.ExecContext(ctx,
		`UPDATE mastery SET srs_stage = ?, next_review_at = ?, notes = ?, updated_at = ?
		WHERE user_id = ? AND vocabulary_id = ?`,
		record.SrsStage, record.NextReviewAt, record.Notes, now, userID, vocabularyID)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update mastery) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO mastery (user_id, vocabulary_id, srs_stage, next_review_at, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		userID, vocabularyID, record.SrsStage, record.NextReviewAt, record.Notes, now, now); err != nil {
		return fmt.Errorf("db.ExecContext(insert mastery) > %w", err)
	}
	return nil
}

// StageCount is the number of a user's items at one stage.
type StageCount struct {
	SrsStage int `db:"srs_stage"`
	Count    int `db:"count"`
}

// CountByStage returns how many items the user has at each stage.
func (s *DBStore) CountByStage(ctx context.Context, userID string) ([]StageCount, error) {
	var counts []StageCount
	if err := s.db.SelectContext(ctx, &counts,
		`SELECT srs_stage, COUNT(*) AS count FROM mastery
		WHERE user_id = ? GROUP BY srs_stage ORDER BY srs_stage`,
		userID); err != nil {
		return nil, fmt.Errorf("db.SelectContext(mastery counts) > %w", err)
	}
	return counts, nil
}

// CountDueBefore returns how many of the user's items are due for review at
// or before the given time.
func (s *DBStore) CountDueBefore(ctx context.Context, userID string, deadline time.Time) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count,
		`SELECT COUNT(*) FROM mastery
		WHERE user_id = ? AND next_review_at IS NOT NULL AND next_review_at <= ?`,
		userID, deadline); err != nil {
		return 0, fmt.Errorf("db.GetContext(due count) > %w", err)
	}
	return count, nil
}
