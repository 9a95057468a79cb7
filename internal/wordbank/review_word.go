package wordbank

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/at-ishikawa/wordbank/internal/review"
)

// ReviewWordUseCase applies one rating to the card of a word.
type ReviewWordUseCase struct {
	repo      Repository
	scheduler *review.Scheduler
	locks     *wordLock
	logger    *slog.Logger
}

// NewReviewWordUseCase creates a ReviewWordUseCase. A nil logger falls back to slog.Default().
func NewReviewWordUseCase(repo Repository, scheduler *review.Scheduler, logger *slog.Logger) *ReviewWordUseCase {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewWordUseCase{
		repo:      repo,
		scheduler: scheduler,
		locks:     locksFor(repo),
		logger:    logger.With(slog.String("component", "review_word")),
	}
}

// Review rates word at the scheduler's current time.
func (uc *ReviewWordUseCase) Review(ctx context.Context, word string, rating review.ReviewRating) (review.ReviewCard, error) {
	return uc.ReviewAt(ctx, word, rating, uc.scheduler.Now())
}

// ReviewAt loads the card of word, schedules it with rating at now and saves the result.
// It returns ErrWordNotFound when the word is not in the word bank. Store errors are
// returned as they are; the review is not retried.
func (uc *ReviewWordUseCase) ReviewAt(ctx context.Context, word string, rating review.ReviewRating, now time.Time) (review.ReviewCard, error) {
	if !rating.IsValid() {
		return review.ReviewCard{}, fmt.Errorf("%w: %d", review.ErrInvalidRating, int(rating))
	}
	word = review.NormalizeWord(word)

	unlock := uc.locks.lock(word)
	defer unlock()

	card, err := uc.repo.GetReviewCard(ctx, word)
	if err != nil {
		return review.ReviewCard{}, fmt.Errorf("repo.GetReviewCard(%s) > %w", word, err)
	}
	if card == nil {
		uc.logger.Warn("review requested for a word outside the word bank", slog.String("word", word))
		return review.ReviewCard{}, fmt.Errorf("%w: %s", ErrWordNotFound, word)
	}

	next := card.WithMetadata(uc.scheduler.Schedule(card.Metadata, rating, now))
	if err := uc.repo.SaveReviewCard(ctx, next); err != nil {
		return review.ReviewCard{}, fmt.Errorf("repo.SaveReviewCard(%s) > %w", word, err)
	}

	uc.logger.Debug("reviewed word",
		slog.String("word", word),
		slog.String("rating", rating.String()),
		slog.String("state", next.Metadata.State.String()),
		slog.Int("scheduled_days", next.Metadata.ScheduledDays),
		slog.Time("due_at", next.Metadata.DueAt),
	)
	return next, nil
}
