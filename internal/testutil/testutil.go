// Package testutil provides shared test helpers for creating config files and word bank fixtures.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

// SetupTestConfig creates a config file using YAML storage under tmpDir and the Free
// Dictionary API at dictionaryURL. Returns the path to the generated config file.
func SetupTestConfig(t *testing.T, tmpDir, dictionaryURL string) string {
	t.Helper()

	for _, d := range []string{"data", "sheets"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tmpDir, d), 0755))
	}

	configContent := fmt.Sprintf(`storage:
  driver: yaml
  yaml_path: %s
dictionaries:
  api: free_dictionary
  retry_attempts: 1
  free_dictionary:
    base_url: %s
outputs:
  review_sheet_directory: %s
`,
		WordBankPath(tmpDir),
		dictionaryURL,
		filepath.Join(tmpDir, "sheets"),
	)

	cfgPath := filepath.Join(tmpDir, "config.yml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(configContent), 0644))
	return cfgPath
}

// WordBankPath is the YAML store of a config written by SetupTestConfig.
func WordBankPath(tmpDir string) string {
	return filepath.Join(tmpDir, "data", "wordbank.yml")
}

// NewCard returns a card that was never reviewed, due at dueAt, with one definition.
func NewCard(word string, dueAt time.Time) review.ReviewCard {
	return review.ReviewCard{
		Word: review.Word{
			Text:        word,
			Definitions: []review.Definition{{Meaning: "meaning of " + word}},
		},
		Metadata: review.ReviewMetadata{
			DueAt:      dueAt,
			Stability:  0.3,
			Difficulty: 5,
			State:      review.StateNew,
		},
	}
}

// NewYAMLRepository creates a YAML store in a temporary directory holding cards.
func NewYAMLRepository(t *testing.T, cards ...review.ReviewCard) *wordbank.YAMLRepository {
	t.Helper()
	repo := wordbank.NewYAMLRepository(filepath.Join(t.TempDir(), "wordbank.yml"))
	for _, card := range cards {
		require.NoError(t, repo.SaveReviewCard(context.Background(), card))
	}
	return repo
}
