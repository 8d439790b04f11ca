package domain

import (
	"errors"
	"strings"
)

// Priority orders items for allocation. Lower values are more urgent.
type Priority int

const (
	// PriorityUnset means no rule or record has assigned a priority yet.
	PriorityUnset Priority = iota
	PriorityUrgent
	PriorityHigh
	PriorityMedium
	PriorityLow
)

var ErrInvalidPriority = errors.New("invalid priority value")

var priorityNames = map[Priority]string{
	PriorityUnset:  "",
	PriorityUrgent: "urgent",
	PriorityHigh:   "high",
	PriorityMedium: "medium",
	PriorityLow:    "low",
}

var priorityValues = map[string]Priority{
	"":       PriorityUnset,
	"urgent": PriorityUrgent,
	"high":   PriorityHigh,
	"medium": PriorityMedium,
	"low":    PriorityLow,
}

// ParsePriority creates a Priority from a string. An empty string yields PriorityUnset.
func ParsePriority(s string) (Priority, error) {
	p, ok := priorityValues[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return PriorityUnset, ErrInvalidPriority
	}
	return p, nil
}

// String returns the string representation of the priority.
func (p Priority) String() string {
	if name, ok := priorityNames[p]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the priority is a known value.
func (p Priority) IsValid() bool {
	_, ok := priorityNames[p]
	return ok
}

// IsSet reports whether a priority has been assigned.
func (p Priority) IsSet() bool {
	return p != PriorityUnset
}

// Rank returns the sort position (0 = urgent). Unset sorts as medium.
func (p Priority) Rank() int {
	switch p {
	case PriorityUrgent:
		return 0
	case PriorityHigh:
		return 1
	case PriorityLow:
		return 3
	default:
		return 2
	}
}

// MoreUrgentThan reports whether p sorts strictly before other.
func (p Priority) MoreUrgentThan(other Priority) bool {
	return p.Rank() < other.Rank()
}

// RaiseTo returns floor when p is less urgent than floor, otherwise p.
func (p Priority) RaiseTo(floor Priority) Priority {
	if floor.MoreUrgentThan(p) {
		return floor
	}
	return p
}
