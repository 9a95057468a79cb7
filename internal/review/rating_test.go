package review

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseRating(t *testing.T) {
	tests := []struct {
		input   string
		want    ReviewRating
		wantErr bool
	}{
		{input: "again", want: Again},
		{input: "Hard", want: Hard},
		{input: " good ", want: Good},
		{input: "EASY", want: Easy},
		{input: "1", want: Again},
		{input: "4", want: Easy},
		{input: "0", wantErr: true},
		{input: "5", wantErr: true},
		{input: "perfect", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseRating(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRating)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestReviewRating_String(t *testing.T) {
	assert.Equal(t, "again", Again.String())
	assert.Equal(t, "easy", Easy.String())
	assert.Equal(t, "ReviewRating(7)", ReviewRating(7).String())
}

func TestReviewRating_Text(t *testing.T) {
	type payload struct {
		Rating ReviewRating `json:"rating" yaml:"rating"`
	}

	b, err := json.Marshal(payload{Rating: Hard})
	require.NoError(t, err)
	assert.JSONEq(t, `{"rating":"hard"}`, string(b))

	var decoded payload
	require.NoError(t, json.Unmarshal([]byte(`{"rating":"good"}`), &decoded))
	assert.Equal(t, Good, decoded.Rating)

	assert.Error(t, json.Unmarshal([]byte(`{"rating":"meh"}`), &decoded))

	_, err = json.Marshal(payload{Rating: ReviewRating(0)})
	assert.Error(t, err)

	var fromYAML payload
	require.NoError(t, yaml.Unmarshal([]byte("rating: easy\n"), &fromYAML))
	assert.Equal(t, Easy, fromYAML.Rating)
}

func TestReviewRating_PflagValue(t *testing.T) {
	var r ReviewRating
	require.NoError(t, r.Set("hard"))
	assert.Equal(t, Hard, r)
	assert.Equal(t, "rating", r.Type())
	assert.Error(t, r.Set("unknown"))
}

func TestReviewState_Text(t *testing.T) {
	for _, state := range []ReviewState{StateNew, StateLearning, StateReview} {
		text, err := state.MarshalText()
		require.NoError(t, err)

		got, err := ParseState(string(text))
		require.NoError(t, err)
		assert.Equal(t, state, got)
	}

	_, err := ParseState("relearning")
	assert.Error(t, err)
	assert.Equal(t, "ReviewState(9)", ReviewState(9).String())
}

func TestSchedulerConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*SchedulerConfig)
		wantErr bool
	}{
		{
			name:   "defaults",
			modify: func(*SchedulerConfig) {},
		},
		{
			name:    "zero interval floor",
			modify:  func(c *SchedulerConfig) { c.MinIntervalDays = 0 },
			wantErr: true,
		},
		{
			name:    "negative stability floor",
			modify:  func(c *SchedulerConfig) { c.MinStability = -1 },
			wantErr: true,
		},
		{
			name:    "zero growth factor",
			modify:  func(c *SchedulerConfig) { c.GoodIntervalFactor = 0 },
			wantErr: true,
		},
		{
			name:    "lapse penalty that grows stability",
			modify:  func(c *SchedulerConfig) { c.LapsePenalty = 1.2 },
			wantErr: true,
		},
		{
			name:    "initial difficulty out of range",
			modify:  func(c *SchedulerConfig) { c.InitialDifficulty = 11 },
			wantErr: true,
		},
		{
			name:    "max interval below min interval",
			modify:  func(c *SchedulerConfig) { c.MinIntervalDays = 10; c.MaxIntervalDays = 5 },
			wantErr: true,
		},
		{
			name:    "max interval beyond a hundred years",
			modify:  func(c *SchedulerConfig) { c.MaxIntervalDays = DefaultMaxIntervalDays + 1 },
			wantErr: true,
		},
		{
			name:   "negative difficulty deltas are allowed",
			modify: func(c *SchedulerConfig) { c.HardDifficultyDelta = -0.5 },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultSchedulerConfig()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidConfig)
				return
			}
			assert.NoError(t, err)
		})
	}
}
