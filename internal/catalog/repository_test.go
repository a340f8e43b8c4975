package catalog_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gloser-app/gloser/internal/catalog"
	"github.com/gloser-app/gloser/internal/mastery"
	"github.com/gloser-app/gloser/internal/testutil"
)

func seedItems() []catalog.Item {
	return []catalog.Item{
		{
			Language: "no", Word: "hund", Meaning: "dog",
			Type: catalog.WordTypeNoun, Level: 1,
			Attributes: catalog.Attributes{
				Noun: &catalog.NounAttributes{Gender: "en", Plural: "hunder"},
			},
		},
		{
			Language: "no", Word: "katt", Meaning: "cat",
			Type: catalog.WordTypeNoun, Level: 1,
			AcceptedAnswers: []string{"cat", "kitty"},
		},
		{
			Language: "no", Word: "å lese", Meaning: "to read",
			Type: catalog.WordTypeVerb, Level: 2,
		},
	}
}

func TestRepository_UpsertAndGet(t *testing.T) {
	db := testutil.NewDatabase(t)
	repository := catalog.NewRepository(db)
	ctx := context.Background()

	seeded := testutil.SeedVocabulary(t, db, seedItems())

	got, err := repository.GetByID(ctx, seeded[0].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "hund", got.Word)
	require.NotNil(t, got.Attributes.Noun)
	assert.Equal(t, "hunder", got.Attributes.Noun.Plural, "attributes survive the round trip")

	got, err = repository.GetByID(ctx, seeded[1].ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, []string{"cat", "kitty"}, got.AcceptedAnswers)

	missing, err := repository.GetByID(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_UpsertUpdatesExisting(t *testing.T) {
	db := testutil.NewDatabase(t)
	repository := catalog.NewRepository(db)
	ctx := context.Background()

	item := catalog.Item{Language: "no", Word: "hund", Meaning: "dog", Type: catalog.WordTypeOther, Level: 1}
	require.NoError(t, repository.Upsert(ctx, &item))
	firstID := item.ID

	updated := catalog.Item{Language: "no", Word: "hund", Meaning: "dog", Type: catalog.WordTypeNoun, Level: 2}
	require.NoError(t, repository.Upsert(ctx, &updated))
	assert.Equal(t, firstID, updated.ID, "same language/word/meaning keeps its row")

	got, err := repository.GetByID(ctx, firstID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, catalog.WordTypeNoun, got.Type)
	assert.Equal(t, 2, got.Level)

	items, err := repository.List(ctx, "no")
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestRepository_ListForLesson(t *testing.T) {
	db := testutil.NewDatabase(t)
	repository := catalog.NewRepository(db)
	store := mastery.NewDBStore(db)
	ctx := context.Background()

	seeded := testutil.SeedVocabulary(t, db, seedItems())

	// The user has already started "hund"; it must not come back.
	require.NoError(t, store.Set(ctx, "tester", seeded[0].ID, mastery.Record{SrsStage: 2}))

	items, err := repository.ListForLesson(ctx, "tester", "no", 1, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "katt", items[0].Word)

	// Another user's progress does not hide items.
	items, err = repository.ListForLesson(ctx, "other", "no", 1, 10)
	require.NoError(t, err)
	assert.Len(t, items, 2)

	// Level filters apply.
	items, err = repository.ListForLesson(ctx, "tester", "no", 2, 10)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "å lese", items[0].Word)
}

func TestRepository_ListReadyForReview(t *testing.T) {
	db := testutil.NewDatabase(t)
	repository := catalog.NewRepository(db)
	store := mastery.NewDBStore(db)
	ctx := context.Background()
	now := time.Now().UTC()

	seeded := testutil.SeedVocabulary(t, db, seedItems())

	due := now.Add(-time.Hour)
	future := now.Add(24 * time.Hour)
	require.NoError(t, store.Set(ctx, "tester", seeded[0].ID, mastery.Record{SrsStage: 3, NextReviewAt: &due}))
	require.NoError(t, store.Set(ctx, "tester", seeded[1].ID, mastery.Record{SrsStage: 1, NextReviewAt: &future}))
	require.NoError(t, store.Set(ctx, "tester", seeded[2].ID, mastery.Record{SrsStage: 9}))

	reviews, err := repository.ListReadyForReview(ctx, "tester", "no", now)
	require.NoError(t, err)
	require.Len(t, reviews, 1, "future and burned items stay out")
	assert.Equal(t, "hund", reviews[0].Item.Word)
	assert.Equal(t, 3, reviews[0].SrsStage)
	assert.WithinDuration(t, due, reviews[0].NextReviewAt, time.Second)
}
