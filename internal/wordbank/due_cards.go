package wordbank

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/wordbank/internal/review"
)

// GetDueReviewCardsUseCase lists the cards to review, earliest due first.
type GetDueReviewCardsUseCase struct {
	repo  Repository
	clock func() time.Time
}

// NewGetDueReviewCardsUseCase creates a GetDueReviewCardsUseCase reading the current time from clock.
func NewGetDueReviewCardsUseCase(repo Repository, clock func() time.Time) *GetDueReviewCardsUseCase {
	if clock == nil {
		clock = time.Now
	}
	return &GetDueReviewCardsUseCase{
		repo:  repo,
		clock: clock,
	}
}

// DueCards returns the cards due now. A positive limit truncates the queue.
func (uc *GetDueReviewCardsUseCase) DueCards(ctx context.Context, limit int) ([]review.ReviewCard, error) {
	return uc.DueCardsAt(ctx, uc.clock().UTC(), limit)
}

// DueCardsAt returns the cards with DueAt <= now sorted by DueAt, ties by word.
func (uc *GetDueReviewCardsUseCase) DueCardsAt(ctx context.Context, now time.Time, limit int) ([]review.ReviewCard, error) {
	cards, err := uc.repo.GetDueReviewCards(ctx, now)
	if err != nil {
		return nil, fmt.Errorf("repo.GetDueReviewCards() > %w", err)
	}

	sort.SliceStable(cards, func(i, j int) bool {
		di, dj := cards[i].Metadata.DueAt, cards[j].Metadata.DueAt
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return cards[i].Word.Text < cards[j].Word.Text
	})

	if limit > 0 && len(cards) > limit {
		cards = cards[:limit]
	}
	return cards, nil
}
