package review

import "fmt"

const (
	MinDifficulty = 1.0
	MaxDifficulty = 10.0

	// DefaultMaxIntervalDays caps an interval at about a hundred years.
	DefaultMaxIntervalDays = 36500
)

// SchedulerConfig holds the coefficients of the scheduler. The zero value is not usable;
// start from DefaultSchedulerConfig and override fields.
type SchedulerConfig struct {
	MinIntervalDays int     `mapstructure:"min_interval_days" yaml:"min_interval_days" validate:"gte=1"`
	MaxIntervalDays int     `mapstructure:"max_interval_days" yaml:"max_interval_days" validate:"gtefield=MinIntervalDays,lte=36500"`
	MinStability    float64 `mapstructure:"min_stability" yaml:"min_stability" validate:"gt=0"`

	HardIntervalFactor float64 `mapstructure:"hard_interval_factor" yaml:"hard_interval_factor" validate:"gt=0"`
	GoodIntervalFactor float64 `mapstructure:"good_interval_factor" yaml:"good_interval_factor" validate:"gt=0"`
	EasyIntervalFactor float64 `mapstructure:"easy_interval_factor" yaml:"easy_interval_factor" validate:"gt=0"`
	LapsePenalty       float64 `mapstructure:"lapse_penalty" yaml:"lapse_penalty" validate:"gt=0,lt=1"`

	HardDifficultyDelta  float64 `mapstructure:"hard_difficulty_delta" yaml:"hard_difficulty_delta"`
	GoodDifficultyDelta  float64 `mapstructure:"good_difficulty_delta" yaml:"good_difficulty_delta"`
	EasyDifficultyDelta  float64 `mapstructure:"easy_difficulty_delta" yaml:"easy_difficulty_delta"`
	LapseDifficultyDelta float64 `mapstructure:"lapse_difficulty_delta" yaml:"lapse_difficulty_delta"`

	// Starting values for a word that has just been added.
	InitialStability  float64 `mapstructure:"initial_stability" yaml:"initial_stability" validate:"gt=0"`
	InitialDifficulty float64 `mapstructure:"initial_difficulty" yaml:"initial_difficulty" validate:"gte=1,lte=10"`
}

// DefaultSchedulerConfig returns the coefficients used when nothing is configured.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		MinIntervalDays:      1,
		MaxIntervalDays:      DefaultMaxIntervalDays,
		MinStability:         0.3,
		HardIntervalFactor:   1.4,
		GoodIntervalFactor:   2.0,
		EasyIntervalFactor:   2.8,
		LapsePenalty:         0.6,
		HardDifficultyDelta:  0.2,
		GoodDifficultyDelta:  -0.1,
		EasyDifficultyDelta:  -0.4,
		LapseDifficultyDelta: 0.6,
		InitialStability:     0.3,
		InitialDifficulty:    5.0,
	}
}

// Validate checks the floors and factors. Difficulty deltas may take any sign.
func (c SchedulerConfig) Validate() error {
	switch {
	case c.MinIntervalDays < 1:
		return fmt.Errorf("%w: min interval days %d must be at least 1", ErrInvalidConfig, c.MinIntervalDays)
	case c.MaxIntervalDays < c.MinIntervalDays || c.MaxIntervalDays > DefaultMaxIntervalDays:
		return fmt.Errorf("%w: max interval days %d out of range [%d, %d]", ErrInvalidConfig, c.MaxIntervalDays, c.MinIntervalDays, DefaultMaxIntervalDays)
	case c.MinStability <= 0:
		return fmt.Errorf("%w: min stability %f must be positive", ErrInvalidConfig, c.MinStability)
	case c.HardIntervalFactor <= 0, c.GoodIntervalFactor <= 0, c.EasyIntervalFactor <= 0:
		return fmt.Errorf("%w: interval factors must be positive", ErrInvalidConfig)
	case c.LapsePenalty <= 0 || c.LapsePenalty >= 1:
		return fmt.Errorf("%w: lapse penalty %f out of range (0, 1)", ErrInvalidConfig, c.LapsePenalty)
	case c.InitialStability <= 0:
		return fmt.Errorf("%w: initial stability %f must be positive", ErrInvalidConfig, c.InitialStability)
	case c.InitialDifficulty < MinDifficulty || c.InitialDifficulty > MaxDifficulty:
		return fmt.Errorf("%w: initial difficulty %f out of range [%.0f, %.0f]", ErrInvalidConfig, c.InitialDifficulty, MinDifficulty, MaxDifficulty)
	}
	return nil
}

func (c SchedulerConfig) stabilityFactor(rating ReviewRating) float64 {
	switch rating {
	case Again:
		return c.LapsePenalty
	case Hard:
		return c.HardIntervalFactor
	case Good:
		return c.GoodIntervalFactor
	case Easy:
		return c.EasyIntervalFactor
	}
	panic(fmt.Sprintf("review: invalid rating %d", int(rating)))
}

func (c SchedulerConfig) difficultyDelta(rating ReviewRating) float64 {
	switch rating {
	case Again:
		return c.LapseDifficultyDelta
	case Hard:
		return c.HardDifficultyDelta
	case Good:
		return c.GoodDifficultyDelta
	case Easy:
		return c.EasyDifficultyDelta
	}
	panic(fmt.Sprintf("review: invalid rating %d", int(rating)))
}
