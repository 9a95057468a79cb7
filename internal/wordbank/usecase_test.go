package wordbank

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	mock_wordbank "github.com/at-ishikawa/wordbank/internal/mocks/wordbank"
	"github.com/at-ishikawa/wordbank/internal/review"
)

func day(n int) time.Time {
	return time.Date(2025, 1, n, 0, 0, 0, 0, time.UTC)
}

func words(cards []review.ReviewCard) []string {
	result := make([]string, len(cards))
	for i, c := range cards {
		result[i] = c.Word.Text
	}
	return result
}

func TestGetDueReviewCardsUseCase_DueCardsAt(t *testing.T) {
	tests := []struct {
		name      string
		limit     int
		stored    []review.ReviewCard
		storeErr  error
		wantWords []string
		wantErr   bool
	}{
		{
			name: "sorted by due date",
			stored: []review.ReviewCard{
				newCard("day5", day(5)),
				newCard("day2", day(2)),
				newCard("day8", day(8)),
			},
			wantWords: []string{"day2", "day5", "day8"},
		},
		{
			name: "same due date ordered by word",
			stored: []review.ReviewCard{
				newCard("zeal", day(3)),
				newCard("apt", day(3)),
				newCard("early", day(1)),
			},
			wantWords: []string{"early", "apt", "zeal"},
		},
		{
			name:  "limit truncates the queue",
			limit: 2,
			stored: []review.ReviewCard{
				newCard("c", day(3)),
				newCard("a", day(1)),
				newCard("b", day(2)),
			},
			wantWords: []string{"a", "b"},
		},
		{
			name:      "nothing due",
			stored:    nil,
			wantWords: []string{},
		},
		{
			name:     "store error",
			storeErr: errors.New("connection refused"),
			wantErr:  true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_wordbank.NewMockRepository(ctrl)
			repo.EXPECT().GetDueReviewCards(gomock.Any(), day(10)).Return(tt.stored, tt.storeErr)

			uc := NewGetDueReviewCardsUseCase(repo, nil)
			got, err := uc.DueCardsAt(context.Background(), day(10), tt.limit)
			if tt.wantErr {
				assert.ErrorIs(t, err, tt.storeErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantWords, words(got))
		})
	}
}

func TestGetDueReviewCardsUseCase_DueCards_UsesClock(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_wordbank.NewMockRepository(ctrl)
	repo.EXPECT().GetDueReviewCards(gomock.Any(), day(10)).Return(nil, nil)

	uc := NewGetDueReviewCardsUseCase(repo, func() time.Time { return day(10) })
	got, err := uc.DueCards(context.Background(), 0)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestAddWordUseCase_Add(t *testing.T) {
	tests := []struct {
		name      string
		word      string
		setupMock func(repo *mock_wordbank.MockRepository, lookuper *mock_wordbank.MockLookuper)
		wantErr   error
	}{
		{
			name: "new word is looked up and saved as due now",
			word: " Ubiquitous ",
			setupMock: func(repo *mock_wordbank.MockRepository, lookuper *mock_wordbank.MockLookuper) {
				repo.EXPECT().GetReviewCard(gomock.Any(), "ubiquitous").Return(nil, nil)
				lookuper.EXPECT().Lookup(gomock.Any(), "ubiquitous").Return(review.Word{
					Text:        "ubiquitous",
					Definitions: []review.Definition{{PartOfSpeech: "adjective", Meaning: "present everywhere"}},
				}, nil)
				repo.EXPECT().SaveReviewCard(gomock.Any(), review.ReviewCard{
					Word: review.Word{
						Text:        "ubiquitous",
						Definitions: []review.Definition{{PartOfSpeech: "adjective", Meaning: "present everywhere"}},
					},
					Metadata: review.NewReviewMetadata(testNow, review.DefaultSchedulerConfig()),
				}).Return(nil)
			},
		},
		{
			name: "already tracked",
			word: "ubiquitous",
			setupMock: func(repo *mock_wordbank.MockRepository, lookuper *mock_wordbank.MockLookuper) {
				card := newCard("ubiquitous", testNow)
				repo.EXPECT().GetReviewCard(gomock.Any(), "ubiquitous").Return(&card, nil)
			},
			wantErr: ErrWordAlreadyExists,
		},
		{
			name: "dictionary failure",
			word: "ubiquitous",
			setupMock: func(repo *mock_wordbank.MockRepository, lookuper *mock_wordbank.MockLookuper) {
				repo.EXPECT().GetReviewCard(gomock.Any(), "ubiquitous").Return(nil, nil)
				lookuper.EXPECT().Lookup(gomock.Any(), "ubiquitous").Return(review.Word{}, errStore)
			},
			wantErr: errStore,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			repo := mock_wordbank.NewMockRepository(ctrl)
			lookuper := mock_wordbank.NewMockLookuper(ctrl)
			tt.setupMock(repo, lookuper)

			uc := NewAddWordUseCase(repo, lookuper, newTestScheduler(), nil)
			got, err := uc.Add(context.Background(), tt.word)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "ubiquitous", got.Word.Text)
			assert.Equal(t, review.StateNew, got.Metadata.State)
			assert.True(t, got.Metadata.IsDue(testNow))
		})
	}
}

func TestAddWordUseCase_AddAll(t *testing.T) {
	existing := newCard("known", testNow)
	repo := newMemoryRepository(existing)

	ctrl := gomock.NewController(t)
	lookuper := mock_wordbank.NewMockLookuper(ctrl)
	for _, w := range []string{"alpha", "beta", "gamma"} {
		lookuper.EXPECT().Lookup(gomock.Any(), w).Return(review.Word{Text: w}, nil)
	}

	uc := NewAddWordUseCase(repo, lookuper, newTestScheduler(), nil)
	got, err := uc.AddAll(context.Background(), []string{"alpha", "Beta", "known", "alpha", "", "gamma"})
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta", "gamma"}, words(got))

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Len(t, all, 4)
}

func TestAddWordUseCase_AddAll_LookupFailureSavesNothing(t *testing.T) {
	repo := newMemoryRepository()

	ctrl := gomock.NewController(t)
	lookuper := mock_wordbank.NewMockLookuper(ctrl)
	lookuper.EXPECT().Lookup(gomock.Any(), "alpha").Return(review.Word{Text: "alpha"}, nil).AnyTimes()
	lookuper.EXPECT().Lookup(gomock.Any(), "beta").Return(review.Word{}, errStore).AnyTimes()

	uc := NewAddWordUseCase(repo, lookuper, newTestScheduler(), nil)
	_, err := uc.AddAll(context.Background(), []string{"alpha", "beta"})
	assert.ErrorIs(t, err, errStore)

	all, err := repo.FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, all)
}

func TestRemoveWordUseCase_Remove(t *testing.T) {
	t.Run("removes a tracked word", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_wordbank.NewMockRepository(ctrl)
		card := newCard("obsolete", testNow)
		repo.EXPECT().GetReviewCard(gomock.Any(), "obsolete").Return(&card, nil)
		repo.EXPECT().DeleteReviewCard(gomock.Any(), "obsolete").Return(nil)

		assert.NoError(t, NewRemoveWordUseCase(repo).Remove(context.Background(), "Obsolete"))
	})

	t.Run("unknown word", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_wordbank.NewMockRepository(ctrl)
		repo.EXPECT().GetReviewCard(gomock.Any(), "obsolete").Return(nil, nil)

		err := NewRemoveWordUseCase(repo).Remove(context.Background(), "obsolete")
		assert.ErrorIs(t, err, ErrWordNotFound)
	})
}

func TestWordLock(t *testing.T) {
	locks := newWordLock()

	unlockA := locks.lock("a")
	unlockB := locks.lock("b")
	assert.Equal(t, 2, locks.size())

	acquired := make(chan struct{})
	go func() {
		unlock := locks.lock("a")
		close(acquired)
		unlock()
	}()

	select {
	case <-acquired:
		t.Fatal("second lock of the same word must wait")
	case <-time.After(20 * time.Millisecond):
	}

	unlockA()
	<-acquired
	unlockB()
	assert.Eventually(t, func() bool { return locks.size() == 0 }, time.Second, time.Millisecond)
}
