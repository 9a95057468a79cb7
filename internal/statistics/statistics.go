// Package statistics summarises the state of the word bank.
package statistics

import (
	"fmt"
	"sort"
	"time"

	"github.com/at-ishikawa/wordbank/internal/review"
)

const upcomingWindow = 7 * 24 * time.Hour

// PeriodStatistics counts the cards whose latest review falls in a month.
type PeriodStatistics struct {
	Period   string `json:"period"` // "2025-01"
	Reviewed int    `json:"reviewed"`
	Lapsed   int    `json:"lapsed"` // reviewed cards that have lapsed at least once
}

// Statistics is a snapshot of the word bank at a point in time.
type Statistics struct {
	Total         int                `json:"total"`
	ByState       map[string]int     `json:"by_state"`
	DueNow        int                `json:"due_now"`
	DueWithinWeek int                `json:"due_within_week"`
	TotalReps     int                `json:"total_reps"`
	TotalLapses   int                `json:"total_lapses"`
	RetentionRate float64            `json:"retention_rate"`
	AvgDifficulty float64            `json:"average_difficulty"`
	AvgStability  float64            `json:"average_stability"`
	Periods       []PeriodStatistics `json:"periods"`
	NextDueAt     *time.Time         `json:"next_due_at,omitempty"`
	NextDueWord   string             `json:"next_due_word,omitempty"`
}

// Calculate computes the statistics of cards at now.
// RetentionRate is the share of reviews that were not lapses; it is 0 before the first review.
func Calculate(cards []review.ReviewCard, now time.Time) Statistics {
	result := Statistics{
		Total: len(cards),
		ByState: map[string]int{
			review.StateNew.String():      0,
			review.StateLearning.String(): 0,
			review.StateReview.String():   0,
		},
		Periods: []PeriodStatistics{},
	}
	if len(cards) == 0 {
		return result
	}

	periods := make(map[string]*PeriodStatistics)
	var difficultySum, stabilitySum float64
	for _, card := range cards {
		m := card.Metadata
		result.ByState[m.State.String()]++
		result.TotalReps += m.Reps
		result.TotalLapses += m.Lapses
		difficultySum += m.Difficulty
		stabilitySum += m.Stability

		switch {
		case m.IsDue(now):
			result.DueNow++
		case !m.DueAt.After(now.Add(upcomingWindow)):
			result.DueWithinWeek++
		}

		if !m.IsDue(now) && (result.NextDueAt == nil || m.DueAt.Before(*result.NextDueAt) ||
			(m.DueAt.Equal(*result.NextDueAt) && card.Word.Text < result.NextDueWord)) {
			dueAt := m.DueAt
			result.NextDueAt = &dueAt
			result.NextDueWord = card.Word.Text
		}

		if m.LastReviewedAt == nil {
			continue
		}
		reviewedAt := m.LastReviewedAt.UTC()
		period := fmt.Sprintf("%d-%02d", reviewedAt.Year(), int(reviewedAt.Month()))
		p, ok := periods[period]
		if !ok {
			p = &PeriodStatistics{Period: period}
			periods[period] = p
		}
		p.Reviewed++
		if m.Lapses > 0 {
			p.Lapsed++
		}
	}

	result.AvgDifficulty = difficultySum / float64(len(cards))
	result.AvgStability = stabilitySum / float64(len(cards))
	if result.TotalReps > 0 {
		result.RetentionRate = 1 - float64(result.TotalLapses)/float64(result.TotalReps)
	}

	for _, p := range periods {
		result.Periods = append(result.Periods, *p)
	}
	sort.Slice(result.Periods, func(i, j int) bool {
		return result.Periods[i].Period < result.Periods[j].Period
	})
	return result
}
