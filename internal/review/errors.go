package review

import "errors"

var (
	ErrInvalidRating = errors.New("review: invalid rating")
	ErrInvalidConfig = errors.New("review: invalid scheduler config")
)
