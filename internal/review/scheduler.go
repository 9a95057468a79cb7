// Package review implements the spaced-repetition model of the word bank: the scheduling
// state of a word, the learner's ratings, and the scheduler that turns one into the next.
package review

import (
	"math"
	"time"
)

const day = 24 * time.Hour

// Scheduler computes the next ReviewMetadata of a card. It keeps no state between calls
// and is safe for concurrent use.
type Scheduler struct {
	config SchedulerConfig
	clock  func() time.Time
}

// SchedulerOption customises a Scheduler.
type SchedulerOption func(*Scheduler)

// WithClock replaces the clock returned by Scheduler.Now.
func WithClock(clock func() time.Time) SchedulerOption {
	return func(s *Scheduler) {
		s.clock = clock
	}
}

// NewScheduler returns a scheduler using cfg. Use DefaultSchedulerConfig for the defaults.
func NewScheduler(cfg SchedulerConfig, opts ...SchedulerOption) *Scheduler {
	s := &Scheduler{
		config: cfg,
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Config returns the coefficients of the scheduler.
func (s *Scheduler) Config() SchedulerConfig {
	return s.config
}

// Now returns the current time of the scheduler's clock, in UTC.
func (s *Scheduler) Now() time.Time {
	return s.clock().UTC()
}

// Schedule applies rating to metadata at now and returns the resulting metadata.
// rating must be valid.
func (s *Scheduler) Schedule(metadata ReviewMetadata, rating ReviewRating, now time.Time) ReviewMetadata {
	now = now.UTC()
	cfg := s.config

	elapsedDays := 0
	if metadata.LastReviewedAt != nil {
		elapsedDays = calendarDaysBetween(*metadata.LastReviewedAt, now)
	}

	difficulty := clamp(metadata.Difficulty+cfg.difficultyDelta(rating), MinDifficulty, MaxDifficulty)
	stability := math.Max(cfg.MinStability, metadata.Stability*cfg.stabilityFactor(rating))

	// Only the interval is capped; stability keeps growing.
	scheduledDays := int(math.Min(math.Round(stability), float64(cfg.MaxIntervalDays)))
	if scheduledDays < cfg.MinIntervalDays {
		scheduledDays = cfg.MinIntervalDays
	}

	state := StateReview
	if metadata.Reps == 0 || rating == Again {
		state = StateLearning
	}

	lapses := metadata.Lapses
	if rating == Again {
		lapses++
	}

	reviewedAt := now
	return ReviewMetadata{
		DueAt:          now.AddDate(0, 0, scheduledDays),
		LastReviewedAt: &reviewedAt,
		Stability:      stability,
		Difficulty:     difficulty,
		Reps:           metadata.Reps + 1,
		Lapses:         lapses,
		State:          state,
		ScheduledDays:  scheduledDays,
		ElapsedDays:    elapsedDays,
	}
}

// Preview returns what each rating would produce for metadata at now.
func (s *Scheduler) Preview(metadata ReviewMetadata, now time.Time) map[ReviewRating]ReviewMetadata {
	result := make(map[ReviewRating]ReviewMetadata, len(AllRatings))
	for _, rating := range AllRatings {
		result[rating] = s.Schedule(metadata, rating, now)
	}
	return result
}

// calendarDaysBetween counts UTC date boundaries from -> to, never negative.
func calendarDaysBetween(from, to time.Time) int {
	days := int(truncateToDate(to).Sub(truncateToDate(from)) / day)
	if days < 0 {
		return 0
	}
	return days
}

func truncateToDate(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(hi, math.Max(lo, v))
}
