package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"

	"github.com/at-ishikawa/wordbank/internal/review"
	"github.com/at-ishikawa/wordbank/internal/wordbank"
)

var errQuit = errors.New("quit")

// SessionSummary counts the ratings given during a session.
type SessionSummary struct {
	Reviewed int
	Skipped  int
	Ratings  map[review.ReviewRating]int
}

// ReviewSession walks the learner through the due words, one card at a time.
type ReviewSession struct {
	dueCards     *wordbank.GetDueReviewCardsUseCase
	reviewWord   *wordbank.ReviewWordUseCase
	scheduler    *review.Scheduler
	limit        int
	stdinReader  *bufio.Reader
	stdoutWriter *sessionOutput
	bold         *color.Color
	italic       *color.Color
	logger       *slog.Logger
}

func NewReviewSession(
	dueCards *wordbank.GetDueReviewCardsUseCase,
	reviewWord *wordbank.ReviewWordUseCase,
	scheduler *review.Scheduler,
	limit int,
	input io.Reader,
	output io.Writer,
	logger *slog.Logger,
) *ReviewSession {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReviewSession{
		dueCards:     dueCards,
		reviewWord:   reviewWord,
		scheduler:    scheduler,
		limit:        limit,
		stdinReader:  bufio.NewReader(input),
		stdoutWriter: &sessionOutput{w: output},
		bold:         color.New(color.Bold),
		italic:       color.New(color.Italic),
		logger:       logger.With(slog.String("component", "review_session")),
	}
}

// Run reviews the due cards until they run out or the learner quits. The summary is nil
// when ctx is cancelled first. A cancelled session stays silent and stops reviewing even
// while its reader is still blocked on input.
func (s *ReviewSession) Run(ctx context.Context) (*SessionSummary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	cards, err := s.dueCards.DueCards(ctx, s.limit)
	if err != nil {
		return nil, fmt.Errorf("dueCards.DueCards() > %w", err)
	}
	if len(cards) == 0 {
		fmt.Fprintln(s.stdoutWriter, "No words are due for review.")
		return newSessionSummary(), nil
	}
	fmt.Fprintf(s.stdoutWriter, "%d word(s) to review. Type q to quit.\n\n", len(cards))

	type result struct {
		summary *SessionSummary
		err     error
	}
	// The summary belongs to the worker until it is handed over on done.
	done := make(chan result, 1)
	go func() {
		defer close(done)
		summary := newSessionSummary()
		for i, card := range cards {
			if ctx.Err() != nil {
				return
			}
			if err := s.reviewCard(ctx, i+1, len(cards), card, summary); err != nil {
				if errors.Is(err, errQuit) {
					break
				}
				done <- result{err: err}
				return
			}
		}
		done <- result{summary: summary}
	}()

	var r result
	select {
	case <-ctx.Done():
	case r = <-done:
	}
	if ctx.Err() != nil {
		s.stdoutWriter.stop("\nReceived interrupt signal, exiting...")
		return nil, nil
	}
	if r.err != nil {
		return nil, r.err
	}
	s.printSummary(r.summary)
	return r.summary, nil
}

func newSessionSummary() *SessionSummary {
	return &SessionSummary{Ratings: make(map[review.ReviewRating]int, len(review.AllRatings))}
}

func (s *ReviewSession) reviewCard(ctx context.Context, index, total int, card review.ReviewCard, summary *SessionSummary) error {
	word := card.Word.Text
	fmt.Fprintf(s.stdoutWriter, "[%d/%d] ", index, total)
	s.bold.Fprint(s.stdoutWriter, word)
	fmt.Fprintf(s.stdoutWriter, " (%s, reviewed %d time(s))\n", card.Metadata.State, card.Metadata.Reps)

	fmt.Fprint(s.stdoutWriter, "Press Enter to show the meaning: ")
	answer, err := s.readLine(ctx)
	if err != nil {
		return err
	}
	if isQuit(answer) {
		return errQuit
	}
	s.printWord(card.Word)

	now := s.scheduler.Now()
	preview := s.scheduler.Preview(card.Metadata, now)
	for {
		fmt.Fprint(s.stdoutWriter, "How well did you remember?")
		for _, r := range review.AllRatings {
			fmt.Fprintf(s.stdoutWriter, " [%d] %s (%dd)", int(r), r, preview[r].ScheduledDays)
		}
		fmt.Fprint(s.stdoutWriter, ": ")

		answer, err := s.readLine(ctx)
		if err != nil {
			return err
		}
		if isQuit(answer) {
			return errQuit
		}
		rating, err := review.ParseRating(answer)
		if err != nil {
			fmt.Fprintf(s.stdoutWriter, "%q is not a rating. Enter 1-4, again, hard, good or easy.\n", answer)
			continue
		}

		updated, err := s.reviewWord.Review(ctx, word, rating)
		if errors.Is(err, wordbank.ErrWordNotFound) {
			s.logger.Warn("word was removed during the session", slog.String("word", word))
			summary.Skipped++
			fmt.Fprintln(s.stdoutWriter)
			return nil
		}
		if err != nil {
			return fmt.Errorf("reviewWord.Review(%s) > %w", word, err)
		}

		summary.Reviewed++
		summary.Ratings[rating]++
		s.printNextReview(rating, updated.Metadata)
		return nil
	}
}

func (s *ReviewSession) printWord(word review.Word) {
	if word.Pronunciation != "" {
		fmt.Fprintf(s.stdoutWriter, "  /%s/\n", word.Pronunciation)
	}
	if len(word.Definitions) == 0 {
		fmt.Fprintln(s.stdoutWriter, "  (no definitions)")
	}
	for _, d := range word.Definitions {
		fmt.Fprint(s.stdoutWriter, "  - ")
		if d.PartOfSpeech != "" {
			s.italic.Fprint(s.stdoutWriter, d.PartOfSpeech)
			fmt.Fprint(s.stdoutWriter, " ")
		}
		fmt.Fprintln(s.stdoutWriter, d.Meaning)
		for _, example := range d.Examples {
			fmt.Fprintf(s.stdoutWriter, "      e.g. %s\n", example)
		}
		if len(d.Synonyms) > 0 {
			fmt.Fprintf(s.stdoutWriter, "      synonyms: %s\n", strings.Join(d.Synonyms, ", "))
		}
	}
}

func (s *ReviewSession) printNextReview(rating review.ReviewRating, metadata review.ReviewMetadata) {
	c := color.New(color.FgGreen)
	if rating == review.Again {
		c = color.New(color.FgRed)
	} else if rating == review.Hard {
		c = color.New(color.FgYellow)
	}
	c.Fprintf(s.stdoutWriter, "Next review on %s", metadata.DueAt.Format(time.DateOnly))
	fmt.Fprintf(s.stdoutWriter, " (in %d day(s))\n\n", metadata.ScheduledDays)
}

func (s *ReviewSession) printSummary(summary *SessionSummary) {
	fmt.Fprintf(s.stdoutWriter, "Reviewed %d word(s):", summary.Reviewed)
	for _, r := range review.AllRatings {
		fmt.Fprintf(s.stdoutWriter, " %s=%d", r, summary.Ratings[r])
	}
	fmt.Fprintln(s.stdoutWriter)
}

// readLine returns errQuit at the end of the input, and ctx.Err() when the session was
// cancelled while it waited.
func (s *ReviewSession) readLine(ctx context.Context) (string, error) {
	line, err := s.stdinReader.ReadString('\n')
	if ctxErr := ctx.Err(); ctxErr != nil {
		return "", ctxErr
	}
	if err != nil {
		if errors.Is(err, io.EOF) {
			if strings.TrimSpace(line) == "" {
				return "", errQuit
			}
			return strings.TrimSpace(line), nil
		}
		return "", fmt.Errorf("stdinReader.ReadString() > %w", err)
	}
	return strings.TrimSpace(line), nil
}

func isQuit(answer string) bool {
	answer = strings.ToLower(answer)
	return answer == "q" || answer == "quit"
}

// sessionOutput drops every write after stop, so a cancelled session cannot print
// once Run has returned.
type sessionOutput struct {
	mu      sync.Mutex
	w       io.Writer
	stopped bool
}

func (o *sessionOutput) Write(p []byte) (int, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.stopped {
		return len(p), nil
	}
	return o.w.Write(p)
}

func (o *sessionOutput) stop(message string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if !o.stopped {
		fmt.Fprintln(o.w, message)
	}
	o.stopped = true
}
