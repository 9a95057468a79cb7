package wordbank

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/at-ishikawa/wordbank/internal/review"
)

var reviewCardColumnNames = []string{
	"word", "word_json", "due_at", "last_reviewed_at", "stability", "difficulty",
	"reps", "lapses", "state", "scheduled_days", "elapsed_days",
}

func newMockDB(t *testing.T, driverName string) (*sqlx.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return sqlx.NewDb(db, driverName), mock
}

func TestDBRepository_GetReviewCard(t *testing.T) {
	dueAt := time.Date(2025, 3, 4, 9, 0, 0, 0, time.UTC)
	reviewedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		setupMock func(mock sqlmock.Sqlmock)
		want      *review.ReviewCard
		wantErr   bool
	}{
		{
			name: "found",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(reviewCardColumnNames).AddRow(
					"candid", []byte(`{"text":"candid","definitions":[{"part_of_speech":"adjective","meaning":"truthful and straightforward"}]}`),
					dueAt, reviewedAt, 3.0, 4.5, 2, 0, "review", 3, 1,
				)
				mock.ExpectQuery("SELECT .+ FROM review_cards WHERE word = \\?").
					WithArgs("candid").
					WillReturnRows(rows)
			},
			want: &review.ReviewCard{
				Word: review.Word{
					Text:        "candid",
					Definitions: []review.Definition{{PartOfSpeech: "adjective", Meaning: "truthful and straightforward"}},
				},
				Metadata: review.ReviewMetadata{
					DueAt:          dueAt,
					LastReviewedAt: &reviewedAt,
					Stability:      3.0,
					Difficulty:     4.5,
					Reps:           2,
					State:          review.StateReview,
					ScheduledDays:  3,
					ElapsedDays:    1,
				},
			},
		},
		{
			name: "not found",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM review_cards WHERE word = \\?").
					WithArgs("candid").
					WillReturnRows(sqlmock.NewRows(reviewCardColumnNames))
			},
			want: nil,
		},
		{
			name: "unknown state",
			setupMock: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(reviewCardColumnNames).AddRow(
					"candid", nil, dueAt, nil, 0.3, 5.0, 0, 0, "graduated", 0, 0,
				)
				mock.ExpectQuery("SELECT .+ FROM review_cards WHERE word = \\?").
					WithArgs("candid").
					WillReturnRows(rows)
			},
			wantErr: true,
		},
		{
			name: "query error",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT .+ FROM review_cards WHERE word = \\?").
					WithArgs("candid").
					WillReturnError(errors.New("connection reset"))
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t, "mysql")
			tt.setupMock(mock)

			got, err := NewDBRepository(db).GetReviewCard(context.Background(), "candid")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_SaveReviewCard(t *testing.T) {
	reviewedAt := time.Date(2025, 3, 1, 9, 0, 0, 0, time.UTC)
	card := review.ReviewCard{
		Word: review.Word{Text: "candid"},
		Metadata: review.ReviewMetadata{
			DueAt:          reviewedAt.AddDate(0, 0, 3),
			LastReviewedAt: &reviewedAt,
			Stability:      3.0,
			Difficulty:     4.5,
			Reps:           2,
			State:          review.StateReview,
			ScheduledDays:  3,
			ElapsedDays:    1,
		},
	}

	tests := []struct {
		name       string
		driverName string
		wantQuery  string
	}{
		{
			name:       "mysql",
			driverName: "mysql",
			wantQuery:  "INSERT INTO review_cards (" + reviewCardColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ON DUPLICATE KEY UPDATE word_json = VALUES(word_json), due_at = VALUES(due_at)",
		},
		{
			name:       "sqlite",
			driverName: "sqlite",
			wantQuery:  "INSERT INTO review_cards (" + reviewCardColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?) ON CONFLICT(word) DO UPDATE SET word_json = excluded.word_json, due_at = excluded.due_at",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMockDB(t, tt.driverName)
			mock.ExpectExec(regexp.QuoteMeta(tt.wantQuery)).
				WithArgs("candid", sqlmock.AnyArg(), card.Metadata.DueAt, reviewedAt, 3.0, 4.5, 2, 0, "review", 3, 1).
				WillReturnResult(sqlmock.NewResult(0, 1))

			err := NewDBRepository(db).SaveReviewCard(context.Background(), card)
			require.NoError(t, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestDBRepository_SaveReviewCard_NeverReviewed(t *testing.T) {
	db, mock := newMockDB(t, "sqlite")
	card := review.ReviewCard{
		Word:     review.Word{Text: "fresh"},
		Metadata: review.NewReviewMetadata(testNow, review.DefaultSchedulerConfig()),
	}
	mock.ExpectExec("INSERT INTO review_cards").
		WithArgs("fresh", sqlmock.AnyArg(), testNow, nil, 0.3, 5.0, 0, 0, "new", 0, 0).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, NewDBRepository(db).SaveReviewCard(context.Background(), card))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_GetDueReviewCards(t *testing.T) {
	db, mock := newMockDB(t, "mysql")
	jst := time.FixedZone("JST", 9*60*60)
	now := time.Date(2025, 3, 10, 18, 0, 0, 0, jst)

	rows := sqlmock.NewRows(reviewCardColumnNames).
		AddRow("aloof", nil, day(2), nil, 0.3, 5.0, 0, 0, "new", 0, 0).
		AddRow("brisk", nil, day(5), day(4), 1.0, 5.2, 1, 0, "learning", 1, 0)
	mock.ExpectQuery("SELECT .+ FROM review_cards WHERE due_at <= \\? ORDER BY due_at").
		WithArgs(now.UTC()).
		WillReturnRows(rows)

	got, err := NewDBRepository(db).GetDueReviewCards(context.Background(), now)
	require.NoError(t, err)
	assert.Equal(t, []string{"aloof", "brisk"}, words(got))
	assert.Nil(t, got[0].Metadata.LastReviewedAt)
	assert.Equal(t, review.StateLearning, got[1].Metadata.State)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_FindAll(t *testing.T) {
	db, mock := newMockDB(t, "sqlite")
	mock.ExpectQuery("SELECT .+ FROM review_cards ORDER BY word").
		WillReturnError(errors.New("no such table: review_cards"))

	_, err := NewDBRepository(db).FindAll(context.Background())
	assert.ErrorContains(t, err, "no such table")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDBRepository_DeleteReviewCard(t *testing.T) {
	db, mock := newMockDB(t, "mysql")
	mock.ExpectExec("DELETE FROM review_cards WHERE word = \\?").
		WithArgs("candid").
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, NewDBRepository(db).DeleteReviewCard(context.Background(), "candid"))
	assert.NoError(t, mock.ExpectationsWereMet())
}
