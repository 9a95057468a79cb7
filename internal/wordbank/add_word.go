package wordbank

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/at-ishikawa/wordbank/internal/review"
)

const defaultLookupConcurrency = 4

// AddWordUseCase puts new words into the word bank, due immediately.
type AddWordUseCase struct {
	repo      Repository
	lookuper  Lookuper
	scheduler *review.Scheduler
	logger    *slog.Logger
}

// NewAddWordUseCase creates an AddWordUseCase. A nil logger falls back to slog.Default().
func NewAddWordUseCase(repo Repository, lookuper Lookuper, scheduler *review.Scheduler, logger *slog.Logger) *AddWordUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &AddWordUseCase{
		repo:      repo,
		lookuper:  lookuper,
		scheduler: scheduler,
		logger:    logger.With(slog.String("component", "add_word")),
	}
}

// Add looks up word in the dictionary and stores a new card for it.
// It returns ErrWordAlreadyExists when the word is already tracked.
func (uc *AddWordUseCase) Add(ctx context.Context, word string) (review.ReviewCard, error) {
	word = review.NormalizeWord(word)
	if word == "" {
		return review.ReviewCard{}, fmt.Errorf("%w: empty word", ErrWordNotFound)
	}

	existing, err := uc.repo.GetReviewCard(ctx, word)
	if err != nil {
		return review.ReviewCard{}, fmt.Errorf("repo.GetReviewCard(%s) > %w", word, err)
	}
	if existing != nil {
		return *existing, fmt.Errorf("%w: %s", ErrWordAlreadyExists, word)
	}

	entry, err := uc.lookuper.Lookup(ctx, word)
	if err != nil {
		return review.ReviewCard{}, fmt.Errorf("lookuper.Lookup(%s) > %w", word, err)
	}
	return uc.save(ctx, word, entry)
}

// AddAll adds several words, looking them up concurrently. Words that are already tracked
// are skipped. The first lookup or store error cancels the rest.
func (uc *AddWordUseCase) AddAll(ctx context.Context, words []string) ([]review.ReviewCard, error) {
	var pending []string
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = review.NormalizeWord(w)
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}

		existing, err := uc.repo.GetReviewCard(ctx, w)
		if err != nil {
			return nil, fmt.Errorf("repo.GetReviewCard(%s) > %w", w, err)
		}
		if existing != nil {
			uc.logger.Info("word already in the word bank, skipping", slog.String("word", w))
			continue
		}
		pending = append(pending, w)
	}

	entries := make([]review.Word, len(pending))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(defaultLookupConcurrency)
	for i, w := range pending {
		g.Go(func() error {
			entry, err := uc.lookuper.Lookup(gctx, w)
			if err != nil {
				return fmt.Errorf("lookuper.Lookup(%s) > %w", w, err)
			}
			entries[i] = entry
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	cards := make([]review.ReviewCard, 0, len(pending))
	for i, w := range pending {
		card, err := uc.save(ctx, w, entries[i])
		if err != nil {
			return cards, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}

func (uc *AddWordUseCase) save(ctx context.Context, word string, entry review.Word) (review.ReviewCard, error) {
	entry.Text = word
	card := review.ReviewCard{
		Word:     entry,
		Metadata: review.NewReviewMetadata(uc.scheduler.Now(), uc.scheduler.Config()),
	}
	if err := uc.repo.SaveReviewCard(ctx, card); err != nil {
		return review.ReviewCard{}, fmt.Errorf("repo.SaveReviewCard(%s) > %w", word, err)
	}
	uc.logger.Debug("added word", slog.String("word", word), slog.Int("definitions", len(entry.Definitions)))
	return card, nil
}

// RemoveWordUseCase drops a word and its review state from the word bank.
type RemoveWordUseCase struct {
	repo  Repository
	locks *wordLock
}

func NewRemoveWordUseCase(repo Repository) *RemoveWordUseCase {
	return &RemoveWordUseCase{repo: repo, locks: locksFor(repo)}
}

// Remove returns ErrWordNotFound when the word is not tracked.
// It waits for an in-flight review of the same word so the review cannot re-create the card.
func (uc *RemoveWordUseCase) Remove(ctx context.Context, word string) error {
	word = review.NormalizeWord(word)
	unlock := uc.locks.lock(word)
	defer unlock()

	card, err := uc.repo.GetReviewCard(ctx, word)
	if err != nil {
		return fmt.Errorf("repo.GetReviewCard(%s) > %w", word, err)
	}
	if card == nil {
		return fmt.Errorf("%w: %s", ErrWordNotFound, word)
	}
	if err := uc.repo.DeleteReviewCard(ctx, word); err != nil {
		return fmt.Errorf("repo.DeleteReviewCard(%s) > %w", word, err)
	}
	return nil
}
