package wordbank

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbank/internal/review"
)

func TestYAMLRepository(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "wordbank.yml")
	repo := NewYAMLRepository(path)

	got, err := repo.GetReviewCard(ctx, "verbose")
	require.NoError(t, err)
	assert.Nil(t, got, "missing file behaves as an empty word bank")

	reviewedAt := day(3)
	verbose := review.ReviewCard{
		Word: review.Word{
			Text:        "verbose",
			Definitions: []review.Definition{{PartOfSpeech: "adjective", Meaning: "using more words than needed", Examples: []string{"a verbose report"}}},
		},
		Metadata: review.ReviewMetadata{
			DueAt:          day(6),
			LastReviewedAt: &reviewedAt,
			Stability:      2.8,
			Difficulty:     4.6,
			Reps:           1,
			State:          review.StateLearning,
			ScheduledDays:  3,
		},
	}
	require.NoError(t, repo.SaveReviewCard(ctx, verbose))
	require.NoError(t, repo.SaveReviewCard(ctx, newCard("apt", day(12))))

	got, err = repo.GetReviewCard(ctx, "verbose")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, verbose.Word, got.Word)
	assert.True(t, verbose.Metadata.DueAt.Equal(got.Metadata.DueAt))
	assert.Equal(t, review.StateLearning, got.Metadata.State)
	require.NotNil(t, got.Metadata.LastReviewedAt)
	assert.True(t, reviewedAt.Equal(*got.Metadata.LastReviewedAt))

	all, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"apt", "verbose"}, words(all), "cards are written sorted by word")

	due, err := repo.GetDueReviewCards(ctx, day(10))
	require.NoError(t, err)
	assert.Equal(t, []string{"verbose"}, words(due))

	updated := verbose.WithMetadata(review.ReviewMetadata{DueAt: day(20), Reps: 2, State: review.StateReview})
	require.NoError(t, repo.SaveReviewCard(ctx, updated))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2, "saving an existing word replaces it")

	require.NoError(t, repo.DeleteReviewCard(ctx, "verbose"))
	require.NoError(t, repo.DeleteReviewCard(ctx, "verbose"))
	all, err = repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"apt"}, words(all))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temporary files are cleaned up")
}

func TestYAMLRepository_ReadsHandEditedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordbank.yml")
	contents := `cards:
  - word:
      text: frugal
      definitions:
        - part_of_speech: adjective
          meaning: sparing with money
    metadata:
      due_at: 2025-01-02T00:00:00Z
      stability: 0.3
      difficulty: 5
      reps: 0
      lapses: 0
      state: new
      scheduled_days: 0
      elapsed_days: 0
`
	require.NoError(t, os.WriteFile(path, []byte(contents), 0644))

	due, err := NewYAMLRepository(path).GetDueReviewCards(context.Background(), time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, due, 1)
	assert.Equal(t, "frugal", due[0].Word.Text)
	assert.Equal(t, review.StateNew, due[0].Metadata.State)
	assert.Equal(t, "sparing with money", due[0].Word.Definitions[0].Meaning)
}

func TestYAMLRepository_InvalidFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wordbank.yml")
	require.NoError(t, os.WriteFile(path, []byte("cards: [\n"), 0644))

	_, err := NewYAMLRepository(path).FindAll(context.Background())
	assert.Error(t, err)
}
