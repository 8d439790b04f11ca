package domain

import (
	"fmt"
	"math"
	"strings"
)

// AssignmentRecord is the planning view of a stored assignment.
type AssignmentRecord struct {
	ID             string
	Name           string
	SubjectName    string
	DueDate        string
	EstimatedHours float64
	Difficulty     string
	Priority       string
}

// ExamRecord is the planning view of a stored exam.
type ExamRecord struct {
	ID               string
	Name             string
	SubjectName      string
	ExamDate         string
	RecommendedHours float64
	Difficulty       string
	Priority         string
	PastScore        *float64
	Chapters         int
}

// SubjectRecord is the planning view of a stored subject.
type SubjectRecord struct {
	ID               string
	Name             string
	Difficulty       string
	ExamDate         string
	PastScore        *float64
	Chapters         int
	HasAssignment    bool
	HasExam          bool
	LastWeekHours    *float64
	RecommendedHours float64
	Priority         string
}

// FromAssignment converts an assignment record into a schedulable item.
func FromAssignment(r AssignmentRecord) (SchedulableItem, error) {
	base, err := newItem(r.ID, r.Name, CategoryAssignment, r.EstimatedHours, r.Priority, r.Difficulty)
	if err != nil {
		return SchedulableItem{}, err
	}
	base.SubjectName = r.SubjectName
	base.Deadline = NewDeadline(r.DueDate)
	return base, nil
}

// FromExam converts an exam record into a schedulable item.
func FromExam(r ExamRecord) (SchedulableItem, error) {
	base, err := newItem(r.ID, r.Name, CategoryExam, r.RecommendedHours, r.Priority, r.Difficulty)
	if err != nil {
		return SchedulableItem{}, err
	}
	base.SubjectName = r.SubjectName
	base.Deadline = NewDeadline(r.ExamDate)
	base.Signals.Chapters = r.Chapters
	if r.PastScore != nil {
		base.Signals.PastScore = *r.PastScore
		base.Signals.HasPastScore = true
	}
	return base, nil
}

// FromSubject converts a subject record into a schedulable item.
func FromSubject(r SubjectRecord) (SchedulableItem, error) {
	base, err := newItem(r.ID, r.Name, CategorySubject, r.RecommendedHours, r.Priority, r.Difficulty)
	if err != nil {
		return SchedulableItem{}, err
	}
	base.SubjectName = r.Name
	base.Deadline = NewDeadline(r.ExamDate)
	base.Signals.Chapters = r.Chapters
	base.Signals.HasAssignment = r.HasAssignment
	base.Signals.HasExam = r.HasExam
	if r.PastScore != nil {
		base.Signals.PastScore = *r.PastScore
		base.Signals.HasPastScore = true
	}
	if r.LastWeekHours != nil {
		base.Signals.PriorHours = *r.LastWeekHours
		base.Signals.HasPriorHours = true
	}
	return base, nil
}

func newItem(id, name string, category Category, hours float64, priority, difficulty string) (SchedulableItem, error) {
	if strings.TrimSpace(id) == "" {
		return SchedulableItem{}, fmt.Errorf("%w: %s %q has no id", ErrMalformedRecord, category, name)
	}
	if hours < 0 || math.IsNaN(hours) || math.IsInf(hours, 0) {
		return SchedulableItem{}, fmt.Errorf("%w: %s %s has invalid hours %v", ErrMalformedRecord, category, id, hours)
	}
	p, err := ParsePriority(priority)
	if err != nil {
		return SchedulableItem{}, fmt.Errorf("%w: %s %s: %v", ErrMalformedRecord, category, id, err)
	}
	d, err := ParseDifficulty(difficulty)
	if err != nil {
		return SchedulableItem{}, fmt.Errorf("%w: %s %s: %v", ErrMalformedRecord, category, id, err)
	}
	return SchedulableItem{
		ID:       id,
		Name:     name,
		Category: category,
		Hours:    hours,
		Priority: p,
		Signals:  Signals{Difficulty: d},
	}, nil
}
