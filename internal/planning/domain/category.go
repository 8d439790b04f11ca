package domain

import (
	"errors"
	"strings"
)

// Category identifies the kind of source record an item was built from.
type Category int

const (
	CategoryAssignment Category = iota + 1
	CategoryExam
	CategorySubject
)

var ErrInvalidCategory = errors.New("invalid category value")

var categoryNames = map[Category]string{
	CategoryAssignment: "assignment",
	CategoryExam:       "exam",
	CategorySubject:    "subject",
}

// ParseCategory creates a Category from a string.
func ParseCategory(s string) (Category, error) {
	for c, name := range categoryNames {
		if strings.EqualFold(strings.TrimSpace(s), name) {
			return c, nil
		}
	}
	return 0, ErrInvalidCategory
}

func (c Category) String() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return "unknown"
}

// IsValid returns true if the category is a known value.
func (c Category) IsValid() bool {
	_, ok := categoryNames[c]
	return ok
}
