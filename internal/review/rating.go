package review

import (
	"encoding"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// ReviewRating is the learner's feedback after recalling a word.
type ReviewRating int

const (
	Again ReviewRating = iota + 1 // forgot the word
	Hard                          // recalled with significant effort
	Good                          // recalled after a hesitation
	Easy                          // recalled effortlessly
)

var (
	ratingNames = [...]string{Again: "again", Hard: "hard", Good: "good", Easy: "easy"}

	// AllRatings lists every rating in ascending order of ease.
	AllRatings = []ReviewRating{Again, Hard, Good, Easy}
)

var (
	_ fmt.Stringer             = ReviewRating(0)
	_ encoding.TextMarshaler   = ReviewRating(0)
	_ encoding.TextUnmarshaler = (*ReviewRating)(nil)
	_ pflag.Value              = (*ReviewRating)(nil)
)

// ParseRating parses either a rating name ("again", "Good", ...) or its number ("1".."4").
func ParseRating(s string) (ReviewRating, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, r := range AllRatings {
		if s == ratingNames[r] || s == fmt.Sprint(int(r)) {
			return r, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidRating, s)
}

// IsValid reports whether r is one of Again, Hard, Good or Easy.
func (r ReviewRating) IsValid() bool {
	return r >= Again && r <= Easy
}

func (r ReviewRating) String() string {
	if r.IsValid() {
		return ratingNames[r]
	}
	return fmt.Sprintf("ReviewRating(%d)", int(r))
}

// MarshalText implements encoding.TextMarshaler.
func (r ReviewRating) MarshalText() ([]byte, error) {
	if !r.IsValid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidRating, int(r))
	}
	return []byte(ratingNames[r]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *ReviewRating) UnmarshalText(text []byte) error {
	v, err := ParseRating(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// Set implements pflag.Value so a rating can be passed as a command-line flag.
func (r *ReviewRating) Set(val string) error {
	return r.UnmarshalText([]byte(val))
}

// Type implements pflag.Value.
func (r *ReviewRating) Type() string {
	return "rating"
}
