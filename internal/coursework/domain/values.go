package domain

import (
	"math"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// Difficulty is the self-assessed difficulty of a record.
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
)

// ParseDifficulty normalizes s. An empty string yields medium.
func ParseDifficulty(s string) (Difficulty, error) {
	switch d := Difficulty(strings.ToLower(strings.TrimSpace(s))); d {
	case "":
		return DifficultyMedium, nil
	case DifficultyEasy, DifficultyMedium, DifficultyHard:
		return d, nil
	default:
		return "", ErrInvalidDifficulty
	}
}

// Priority is the user-assigned priority of a record.
type Priority string

const (
	PriorityUrgent Priority = "urgent"
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// ParsePriority normalizes s. An empty string yields medium.
func ParsePriority(s string) (Priority, error) {
	switch p := Priority(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PriorityMedium, nil
	case PriorityUrgent, PriorityHigh, PriorityMedium, PriorityLow:
		return p, nil
	default:
		return "", ErrInvalidPriority
	}
}

// Status tracks whether an assignment still needs work.
type Status string

const (
	StatusPending   Status = "pending"
	StatusCompleted Status = "completed"
)

// ParseStatus normalizes s. An empty string yields pending.
func ParseStatus(s string) (Status, error) {
	switch st := Status(strings.ToLower(strings.TrimSpace(s))); st {
	case "":
		return StatusPending, nil
	case StatusPending, StatusCompleted:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

// NormalizeDate validates an optional YYYY-MM-DD date.
func NormalizeDate(s string) (string, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return "", nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return "", ErrInvalidDate
	}
	return t.Format(dateLayout), nil
}

// ParseDate returns the calendar date of a normalized date string.
func ParseDate(s string) (time.Time, bool) {
	t, err := time.Parse(dateLayout, s)
	return t, err == nil
}

func validateName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", ErrNameRequired
	}
	return name, nil
}

func validateHours(h float64) error {
	if h < 0 || math.IsNaN(h) || math.IsInf(h, 0) {
		return ErrNegativeHours
	}
	return nil
}

func validateScore(score *float64) error {
	if score == nil {
		return nil
	}
	if *score < 0 || *score > 100 || math.IsNaN(*score) {
		return ErrInvalidPastScore
	}
	return nil
}

func copyFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
