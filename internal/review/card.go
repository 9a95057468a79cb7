package review

import (
	"strings"
	"time"
)

// ReviewMetadata is the scheduling state of one word. Values are never mutated in place:
// Scheduler.Schedule returns a new value which replaces the stored one.
type ReviewMetadata struct {
	DueAt          time.Time   `yaml:"due_at" json:"due_at"`
	LastReviewedAt *time.Time  `yaml:"last_reviewed_at,omitempty" json:"last_reviewed_at,omitempty"`
	Stability      float64     `yaml:"stability" json:"stability"`
	Difficulty     float64     `yaml:"difficulty" json:"difficulty"`
	Reps           int         `yaml:"reps" json:"reps"`
	Lapses         int         `yaml:"lapses" json:"lapses"`
	State          ReviewState `yaml:"state" json:"state"`
	ScheduledDays  int         `yaml:"scheduled_days" json:"scheduled_days"`
	ElapsedDays    int         `yaml:"elapsed_days" json:"elapsed_days"`
}

// NewReviewMetadata returns the metadata of a word that was just added to the word bank.
// It is due immediately.
func NewReviewMetadata(now time.Time, cfg SchedulerConfig) ReviewMetadata {
	return ReviewMetadata{
		DueAt:      now.UTC(),
		Stability:  cfg.InitialStability,
		Difficulty: clamp(cfg.InitialDifficulty, MinDifficulty, MaxDifficulty),
		State:      StateNew,
	}
}

// IsDue reports whether the card should be surfaced at now.
func (m ReviewMetadata) IsDue(now time.Time) bool {
	return !m.DueAt.After(now)
}

// Definition is one sense of a dictionary entry.
type Definition struct {
	PartOfSpeech string   `yaml:"part_of_speech,omitempty" json:"part_of_speech,omitempty"`
	Meaning      string   `yaml:"meaning" json:"meaning"`
	Examples     []string `yaml:"examples,omitempty" json:"examples,omitempty"`
	Synonyms     []string `yaml:"synonyms,omitempty" json:"synonyms,omitempty"`
}

// Word is the dictionary content a card is built from. Scheduling only looks at Text.
type Word struct {
	Text          string       `yaml:"text" json:"text"`
	Pronunciation string       `yaml:"pronunciation,omitempty" json:"pronunciation,omitempty"`
	Definitions   []Definition `yaml:"definitions,omitempty" json:"definitions,omitempty"`
}

// NormalizeWord returns the key a word is stored under.
func NormalizeWord(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

// ReviewCard pairs a word with its scheduling state.
type ReviewCard struct {
	Word     Word           `yaml:"word" json:"word"`
	Metadata ReviewMetadata `yaml:"metadata" json:"metadata"`
}

// WithMetadata returns a copy of the card carrying m.
func (c ReviewCard) WithMetadata(m ReviewMetadata) ReviewCard {
	c.Metadata = m
	return c
}
