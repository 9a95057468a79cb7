package review

import (
	"encoding"
	"fmt"
)

// ReviewState is the lifecycle stage of a word in the word bank.
type ReviewState int

const (
	StateNew ReviewState = iota
	StateLearning
	StateReview
)

var (
	stateNames  = [...]string{StateNew: "new", StateLearning: "learning", StateReview: "review"}
	stateByName = map[string]ReviewState{
		"new":      StateNew,
		"learning": StateLearning,
		"review":   StateReview,
	}
)

var (
	_ fmt.Stringer             = ReviewState(0)
	_ encoding.TextMarshaler   = ReviewState(0)
	_ encoding.TextUnmarshaler = (*ReviewState)(nil)
)

func (s ReviewState) isValid() bool {
	return s >= StateNew && s <= StateReview
}

func (s ReviewState) String() string {
	if s.isValid() {
		return stateNames[s]
	}
	return fmt.Sprintf("ReviewState(%d)", int(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s ReviewState) MarshalText() ([]byte, error) {
	if !s.isValid() {
		return nil, fmt.Errorf("review: invalid state: %d", int(s))
	}
	return []byte(stateNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *ReviewState) UnmarshalText(text []byte) error {
	v, ok := stateByName[string(text)]
	if !ok {
		return fmt.Errorf("review: invalid state: %q", text)
	}
	*s = v
	return nil
}

// ParseState converts the stored text form back into a ReviewState.
func ParseState(s string) (ReviewState, error) {
	var state ReviewState
	if err := state.UnmarshalText([]byte(s)); err != nil {
		return 0, err
	}
	return state, nil
}
