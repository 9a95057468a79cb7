package wordbank

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/at-ishikawa/wordbank/internal/review"
)

const reviewCardColumns = "word, word_json, due_at, last_reviewed_at, stability, difficulty, reps, lapses, state, scheduled_days, elapsed_days"

var upsertAssignments = []string{
	"word_json", "due_at", "last_reviewed_at", "stability", "difficulty",
	"reps", "lapses", "state", "scheduled_days", "elapsed_days",
}

// reviewCardRow is the review_cards table layout.
type reviewCardRow struct {
	Word           string       `db:"word"`
	WordJSON       []byte       `db:"word_json"`
	DueAt          time.Time    `db:"due_at"`
	LastReviewedAt sql.NullTime `db:"last_reviewed_at"`
	Stability      float64      `db:"stability"`
	Difficulty     float64      `db:"difficulty"`
	Reps           int          `db:"reps"`
	Lapses         int          `db:"lapses"`
	State          string       `db:"state"`
	ScheduledDays  int          `db:"scheduled_days"`
	ElapsedDays    int          `db:"elapsed_days"`
}

func newReviewCardRow(card review.ReviewCard) (reviewCardRow, error) {
	wordJSON, err := json.Marshal(card.Word)
	if err != nil {
		return reviewCardRow{}, fmt.Errorf("json.Marshal(word) > %w", err)
	}
	m := card.Metadata
	row := reviewCardRow{
		Word:          card.Word.Text,
		WordJSON:      wordJSON,
		DueAt:         m.DueAt.UTC(),
		Stability:     m.Stability,
		Difficulty:    m.Difficulty,
		Reps:          m.Reps,
		Lapses:        m.Lapses,
		State:         m.State.String(),
		ScheduledDays: m.ScheduledDays,
		ElapsedDays:   m.ElapsedDays,
	}
	if m.LastReviewedAt != nil {
		row.LastReviewedAt = sql.NullTime{Time: m.LastReviewedAt.UTC(), Valid: true}
	}
	return row, nil
}

func (row reviewCardRow) toReviewCard() (review.ReviewCard, error) {
	var word review.Word
	if len(row.WordJSON) > 0 {
		if err := json.Unmarshal(row.WordJSON, &word); err != nil {
			return review.ReviewCard{}, fmt.Errorf("json.Unmarshal(word_json of %s) > %w", row.Word, err)
		}
	}
	word.Text = row.Word

	state, err := review.ParseState(row.State)
	if err != nil {
		return review.ReviewCard{}, fmt.Errorf("review.ParseState(%s) > %w", row.Word, err)
	}

	metadata := review.ReviewMetadata{
		DueAt:         row.DueAt.UTC(),
		Stability:     row.Stability,
		Difficulty:    row.Difficulty,
		Reps:          row.Reps,
		Lapses:        row.Lapses,
		State:         state,
		ScheduledDays: row.ScheduledDays,
		ElapsedDays:   row.ElapsedDays,
	}
	if row.LastReviewedAt.Valid {
		t := row.LastReviewedAt.Time.UTC()
		metadata.LastReviewedAt = &t
	}
	return review.ReviewCard{Word: word, Metadata: metadata}, nil
}

// DBRepository implements Repository on MySQL or SQLite.
type DBRepository struct {
	db *sqlx.DB
}

// NewDBRepository creates a new DBRepository.
func NewDBRepository(db *sqlx.DB) *DBRepository {
	return &DBRepository{db: db}
}

// GetReviewCard returns the card of word, or nil if not found.
func (r *DBRepository) GetReviewCard(ctx context.Context, word string) (*review.ReviewCard, error) {
	var row reviewCardRow
	err := r.db.GetContext(ctx, &row,
		"SELECT "+reviewCardColumns+" FROM review_cards WHERE word = ?", word)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("db.GetContext(review_card) > %w", err)
	}
	card, err := row.toReviewCard()
	if err != nil {
		return nil, err
	}
	return &card, nil
}

// SaveReviewCard inserts the card or replaces every column of an existing one.
func (r *DBRepository) SaveReviewCard(ctx context.Context, card review.ReviewCard) error {
	row, err := newReviewCardRow(card)
	if err != nil {
		return err
	}
	if _, err := r.db.ExecContext(ctx, r.upsertQuery(),
		row.Word, row.WordJSON, row.DueAt, row.LastReviewedAt, row.Stability, row.Difficulty,
		row.Reps, row.Lapses, row.State, row.ScheduledDays, row.ElapsedDays,
	); err != nil {
		return fmt.Errorf("db.ExecContext(upsert review_card) > %w", err)
	}
	return nil
}

// GetDueReviewCards returns the cards with due_at <= now.
func (r *DBRepository) GetDueReviewCards(ctx context.Context, now time.Time) ([]review.ReviewCard, error) {
	var rows []reviewCardRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT "+reviewCardColumns+" FROM review_cards WHERE due_at <= ? ORDER BY due_at", now.UTC()); err != nil {
		return nil, fmt.Errorf("db.SelectContext(due review_cards) > %w", err)
	}
	return toReviewCards(rows)
}

// FindAll returns every card ordered by word.
func (r *DBRepository) FindAll(ctx context.Context) ([]review.ReviewCard, error) {
	var rows []reviewCardRow
	if err := r.db.SelectContext(ctx, &rows,
		"SELECT "+reviewCardColumns+" FROM review_cards ORDER BY word"); err != nil {
		return nil, fmt.Errorf("db.SelectContext(review_cards) > %w", err)
	}
	return toReviewCards(rows)
}

// DeleteReviewCard removes the card of word. Deleting a missing word is not an error.
func (r *DBRepository) DeleteReviewCard(ctx context.Context, word string) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM review_cards WHERE word = ?", word); err != nil {
		return fmt.Errorf("db.ExecContext(delete review_card) > %w", err)
	}
	return nil
}

func (r *DBRepository) upsertQuery() string {
	insert := "INSERT INTO review_cards (" + reviewCardColumns + ") VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)"

	assignments := make([]string, len(upsertAssignments))
	if r.db.DriverName() == "mysql" {
		for i, col := range upsertAssignments {
			assignments[i] = fmt.Sprintf("%s = VALUES(%s)", col, col)
		}
		return insert + " ON DUPLICATE KEY UPDATE " + strings.Join(assignments, ", ")
	}
	for i, col := range upsertAssignments {
		assignments[i] = fmt.Sprintf("%s = excluded.%s", col, col)
	}
	return insert + " ON CONFLICT(word) DO UPDATE SET " + strings.Join(assignments, ", ") + ", updated_at = CURRENT_TIMESTAMP"
}

func toReviewCards(rows []reviewCardRow) ([]review.ReviewCard, error) {
	cards := make([]review.ReviewCard, 0, len(rows))
	for _, row := range rows {
		card, err := row.toReviewCard()
		if err != nil {
			return nil, err
		}
		cards = append(cards, card)
	}
	return cards, nil
}
