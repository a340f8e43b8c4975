package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

var itemColumns = []string{
	"v.id", "v.language", "v.word", "v.meaning", "v.word_type", "v.level",
	"v.attributes", "v.accepted_answers", "v.created_at", "v.updated_at",
}

// Repository reads and writes vocabulary items.
type Repository struct {
	db *sqlx.DB
}

// NewRepository creates a Repository on an open database.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

type itemRow struct {
	ID              int64     `db:"id"`
	Language        string    `db:"language"`
	Word            string    `db:"word"`
	Meaning         string    `db:"meaning"`
	WordType        string    `db:"word_type"`
	Level           int       `db:"level"`
	Attributes      []byte    `db:"attributes"`
	AcceptedAnswers []byte    `db:"accepted_answers"`
	CreatedAt       time.Time `db:"created_at"`
	UpdatedAt       time.Time `db:"updated_at"`
}

type reviewRow struct {
	itemRow
	SrsStage     int       `db:"srs_stage"`
	NextReviewAt time.Time `db:"next_review_at"`
}

func (row itemRow) toItem() (Item, error) {
	item := Item{
		ID:        row.ID,
		Language:  row.Language,
		Word:      row.Word,
		Meaning:   row.Meaning,
		Type:      WordType(row.WordType),
		Level:     row.Level,
		CreatedAt: row.CreatedAt,
		UpdatedAt: row.UpdatedAt,
	}

	if len(row.Attributes) > 0 {
		var raw map[string]any
		if err := json.Unmarshal(row.Attributes, &raw); err != nil {
			return Item{}, fmt.Errorf("json.Unmarshal(attributes of %s) > %w", row.Word, err)
		}
		item.Attributes = ParseAttributes(item.Type, raw)
	}
	if len(row.AcceptedAnswers) > 0 {
		if err := json.Unmarshal(row.AcceptedAnswers, &item.AcceptedAnswers); err != nil {
			return Item{}, fmt.Errorf("json.Unmarshal(accepted_answers of %s) > %w", row.Word, err)
		}
	}
	return item, nil
}

func toRowValues(item *Item, now time.Time) (attributes, acceptedAnswers []byte, err error) {
	if flat := item.Attributes.Flatten(); flat != nil {
		attributes, err = json.Marshal(flat)
		if err != nil {
			return nil, nil, fmt.Errorf("json.Marshal(attributes) > %w", err)
		}
	}
	if item.AcceptedAnswers != nil {
		acceptedAnswers, err = json.Marshal(item.AcceptedAnswers)
		if err != nil {
			return nil, nil, fmt.Errorf("json.Marshal(accepted_answers) > %w", err)
		}
	}
	if item.CreatedAt.IsZero() {
		item.CreatedAt = now
	}
	item.UpdatedAt = now
	return attributes, acceptedAnswers, nil
}

// ListForLesson returns items at the given level that the user has not
// started yet. The order is unspecified; sessions apply their own shuffle.
func (r *Repository) ListForLesson(ctx context.Context, userID, language string, level, limit int) ([]Item, error) {
	query := sq.Select(itemColumns...).
		From("vocabulary v").
		LeftJoin("mastery m ON m.vocabulary_id = v.id AND m.user_id = ?", userID).
		Where(sq.Eq{"v.language": language, "v.level": level}).
		Where("m.vocabulary_id IS NULL").
		OrderBy("v.id")
	if limit > 0 {
		query = query.Limit(uint64(limit))
	}

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("query.ToSql() > %w", err)
	}

	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(lesson items) > %w", err)
	}
	return rowsToItems(rows)
}

// ListReadyForReview returns the user's items whose next review is due,
// together with their current stage. Burned items never come back.
func (r *Repository) ListReadyForReview(ctx context.Context, userID, language string, now time.Time) ([]ReviewItem, error) {
	columns := append(append([]string{}, itemColumns...), "m.srs_stage", "m.next_review_at")
	query := sq.Select(columns...).
		From("vocabulary v").
		Join("mastery m ON m.vocabulary_id = v.id").
		Where(sq.Eq{"m.user_id": userID, "v.language": language}).
		Where(sq.GtOrEq{"m.srs_stage": 1}).
		Where(sq.LtOrEq{"m.srs_stage": 8}).
		Where(sq.LtOrEq{"m.next_review_at": now}).
		OrderBy("m.next_review_at")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("query.ToSql() > %w", err)
	}

	var rows []reviewRow
	if err := r.db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review items) > %w", err)
	}

	reviews := make([]ReviewItem, 0, len(rows))
	for _, row := range rows {
		item, err := row.toItem()
		if err != nil {
			return nil, err
		}
		reviews = append(reviews, ReviewItem{
			Item:         item,
			SrsStage:     row.SrsStage,
			NextReviewAt: row.NextReviewAt,
		})
	}
	return reviews, nil
}

// List returns every item for a language ordered by level and word.
func (r *Repository) List(ctx context.Context, language string) ([]Item, error) {
	query := sq.Select(itemColumns...).
		From("vocabulary v").
		Where(sq.Eq{"v.language": language}).
		OrderBy("v.level", "v.word")

	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("query.ToSql() > %w", err)
	}

	var rows []itemRow
	if err := r.db.SelectContext(ctx, &rows, sqlStr, args...); err != nil {
		return nil, fmt.Errorf("db.SelectContext(items) > %w", err)
	}
	return rowsToItems(rows)
}

// GetByID returns one item, or nil when it does not exist.
func (r *Repository) GetByID(ctx context.Context, id int64) (*Item, error) {
	query := sq.Select(itemColumns...).From("vocabulary v").Where(sq.Eq{"v.id": id})
	sqlStr, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("query.ToSql() > %w", err)
	}

	var row itemRow
	err = r.db.GetContext(ctx, &row, sqlStr, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(item %d) > %w", id, err)
	}
	item, err := row.toItem()
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// Upsert inserts an item or updates the existing entry with the same
// language, word and meaning. The item's ID is set on insert.
func (r *Repository) Upsert(ctx context.Context, item *Item) error {
	attributes, acceptedAnswers, err := toRowValues(item, time.Now())
	if err != nil {
		return err
	}

	update := sq.Update("vocabulary").
		Set("word_type", string(item.Type)).
		Set("level", item.Level).
		Set("attributes", attributes).
		Set("accepted_answers", acceptedAnswers).
		Set("updated_at", item.UpdatedAt).
		Where(sq.Eq{"language": item.Language, "word": item.Word, "meaning": item.Meaning})
	sqlStr, args, err := update.ToSql()
	if err != nil {
		return fmt.Errorf("update.ToSql() > %w", err)
	}
	result, err := r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("db.ExecContext(update vocabulary) > %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("result.RowsAffected() > %w", err)
	}
	if affected > 0 {
		existing, err := r.findID(ctx, item.Language, item.Word, item.Meaning)
		if err != nil {
			return err
		}
		item.ID = existing
		return nil
	}

	insert := sq.Insert("vocabulary").
		Columns("language", "word", "meaning", "word_type", "level",
			"attributes", "accepted_answers", "created_at", "updated_at").
		Values(item.Language, item.Word, item.Meaning, string(item.Type), item.Level,
			attributes, acceptedAnswers, item.CreatedAt, item.UpdatedAt)
	sqlStr, args, err = insert.ToSql()
	if err != nil {
		return fmt.Errorf("insert.ToSql() > %w", err)
	}
	result, err = r.db.ExecContext(ctx, sqlStr, args...)
	if err != nil {
		return fmt.Errorf("db.ExecContext(insert vocabulary) > %w", err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("result.LastInsertId() > %w", err)
	}
	item.ID = id
	return nil
}

func (r *Repository) findID(ctx context.Context, language, word, meaning string) (int64, error) {
	sqlStr, args, err := sq.Select("id").From("vocabulary").
		Where(sq.Eq{"language": language, "word": word, "meaning": meaning}).ToSql()
	if err != nil {
		return 0, fmt.Errorf("query.ToSql() > %w", err)
	}
	var id int64
	if err := r.db.GetContext(ctx, &id, sqlStr, args...); err != nil {
		return 0, fmt.Errorf("db.GetContext(vocabulary id) > %w", err)
	}
	return id, nil
}

func rowsToItems(rows []itemRow) ([]Item, error) {
	items := make([]Item, 0, len(rows))
	for _, row := range rows {
		item, err := row.toItem()
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
