// Package wordbank holds the learner's word bank: the store contract for review cards and
// the use cases that add words, review them and list the ones that are due.
package wordbank

import (
	"context"
	"errors"
	"time"

	"github.com/at-ishikawa/wordbank/internal/review"
)

var (
	ErrWordNotFound      = errors.New("wordbank: word not found")
	ErrWordAlreadyExists = errors.New("wordbank: word already exists")
)

//go:generate mockgen -source=repository.go -destination=../mocks/wordbank/mock_repository.go -package=mock_wordbank

// Repository stores one review card per word.
type Repository interface {
	// GetReviewCard returns nil without an error when the word is not tracked.
	GetReviewCard(ctx context.Context, word string) (*review.ReviewCard, error)
	// SaveReviewCard inserts or replaces the whole card.
	SaveReviewCard(ctx context.Context, card review.ReviewCard) error
	// GetDueReviewCards returns the cards with DueAt <= now in no particular order.
	GetDueReviewCards(ctx context.Context, now time.Time) ([]review.ReviewCard, error)
	FindAll(ctx context.Context) ([]review.ReviewCard, error)
	DeleteReviewCard(ctx context.Context, word string) error
}

// Lookuper fetches the dictionary content of a word.
type Lookuper interface {
	Lookup(ctx context.Context, word string) (review.Word, error)
}

var (
	_ Repository = (*DBRepository)(nil)
	_ Repository = (*YAMLRepository)(nil)
)
