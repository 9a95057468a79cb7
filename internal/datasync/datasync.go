// Package datasync provides import/export orchestration between word bank stores,
// typically a YAML file and a database.
package datasync

import (
	"context"
	"fmt"
	"io"
	"reflect"
	"sort"
	"time"

	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

// ImportResult tracks counts of an import.
type ImportResult struct {
	New       int
	Skipped   int
	Updated   int
	Unchanged int
}

// ImportOptions controls import behavior.
type ImportOptions struct {
	DryRun         bool
	UpdateExisting bool
}

// Importer copies every review card of source into target.
type Importer struct {
	source wordbank.Repository
	target wordbank.Repository
	writer io.Writer
}

// NewImporter creates a new Importer. Progress lines are written to writer.
func NewImporter(source, target wordbank.Repository, writer io.Writer) *Importer {
	if writer == nil {
		writer = io.Discard
	}
	return &Importer{
		source: source,
		target: target,
		writer: writer,
	}
}

// Import copies the cards. Words missing from target are created; words already in target
// are replaced only with UpdateExisting. DryRun reports what would happen without writing.
func (imp *Importer) Import(ctx context.Context, opts ImportOptions) (*ImportResult, error) {
	cards, err := imp.source.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("source.FindAll() > %w", err)
	}
	existingCards, err := imp.target.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("target.FindAll() > %w", err)
	}
	existing := make(map[string]review.ReviewCard, len(existingCards))
	for _, card := range existingCards {
		existing[card.Word.Text] = card
	}

	sort.Slice(cards, func(i, j int) bool {
		return cards[i].Word.Text < cards[j].Word.Text
	})

	var result ImportResult
	for _, card := range cards {
		word := card.Word.Text
		current, ok := existing[word]
		switch {
		case !ok:
			if err := imp.save(ctx, card, opts); err != nil {
				return nil, err
			}
			fmt.Fprintf(imp.writer, "  [NEW]  %q\n", word)
			result.New++
		case !opts.UpdateExisting:
			fmt.Fprintf(imp.writer, "  [SKIP]  %q\n", word)
			result.Skipped++
		case sameCard(current, card):
			result.Unchanged++
		default:
			if err := imp.save(ctx, card, opts); err != nil {
				return nil, err
			}
			fmt.Fprintf(imp.writer, "  [UPDATE]  %q\n", word)
			result.Updated++
		}
	}
	return &result, nil
}

func (imp *Importer) save(ctx context.Context, card review.ReviewCard, opts ImportOptions) error {
	if opts.DryRun {
		return nil
	}
	if err := imp.target.SaveReviewCard(ctx, card); err != nil {
		return fmt.Errorf("target.SaveReviewCard(%s) > %w", card.Word.Text, err)
	}
	return nil
}

// sameCard compares instants with Equal so a round trip through a store does not count as a change.
func sameCard(a, b review.ReviewCard) bool {
	if !a.Metadata.DueAt.Equal(b.Metadata.DueAt) {
		return false
	}
	switch {
	case a.Metadata.LastReviewedAt == nil && b.Metadata.LastReviewedAt == nil:
	case a.Metadata.LastReviewedAt == nil || b.Metadata.LastReviewedAt == nil:
		return false
	case !a.Metadata.LastReviewedAt.Equal(*b.Metadata.LastReviewedAt):
		return false
	}
	am, bm := a.Metadata, b.Metadata
	am.DueAt, bm.DueAt = time.Time{}, time.Time{}
	am.LastReviewedAt, bm.LastReviewedAt = nil, nil
	return am == bm && reflect.DeepEqual(a.Word, b.Word)
}

// Export writes every card of source into the YAML file at path, replacing cards already there.
func Export(ctx context.Context, source wordbank.Repository, path string, writer io.Writer) (*ImportResult, error) {
	return NewImporter(source, wordbank.NewYAMLRepository(path), writer).Import(ctx, ImportOptions{UpdateExisting: true})
}
