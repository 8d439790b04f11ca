package domain

import (
	"errors"
	"strings"
)

// Difficulty is the self-reported difficulty of a piece of coursework.
type Difficulty int

const (
	DifficultyUnknown Difficulty = iota
	DifficultyEasy
	DifficultyMedium
	DifficultyHard
)

var ErrInvalidDifficulty = errors.New("invalid difficulty value")

var difficultyNames = map[Difficulty]string{
	DifficultyUnknown: "",
	DifficultyEasy:    "easy",
	DifficultyMedium:  "medium",
	DifficultyHard:    "hard",
}

// ParseDifficulty creates a Difficulty from a string. An empty string yields DifficultyUnknown.
func ParseDifficulty(s string) (Difficulty, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	for d, name := range difficultyNames {
		if name == key {
			return d, nil
		}
	}
	return DifficultyUnknown, ErrInvalidDifficulty
}

func (d Difficulty) String() string {
	if name, ok := difficultyNames[d]; ok {
		return name
	}
	return "unknown"
}

// IsKnown reports whether a difficulty was supplied.
func (d Difficulty) IsKnown() bool {
	return d >= DifficultyEasy && d <= DifficultyHard
}

// Level maps the difficulty onto the 0..2 scale used by the effort estimator.
// Unknown difficulty is treated as medium.
func (d Difficulty) Level() int {
	switch d {
	case DifficultyEasy:
		return 0
	case DifficultyHard:
		return 2
	default:
		return 1
	}
}
