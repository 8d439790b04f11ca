package domain

import (
	"sort"
	"strings"
	"time"
)

// Signals are the optional per-item facts the rules engine reacts to.
// A zero value means nothing is known beyond hours and deadline.
type Signals struct {
	Difficulty    Difficulty
	PastScore     float64
	HasPastScore  bool
	Chapters      int
	PriorHours    float64
	HasPriorHours bool
	HasAssignment bool
	HasExam       bool
}

// SchedulableItem is the unit of work the planner allocates time to.
type SchedulableItem struct {
	ID          string
	Name        string
	SubjectName string
	Category    Category
	Hours       float64
	Priority    Priority
	Deadline    Deadline
	Signals     Signals
}

// DaysUntilDeadline is the item's deadline distance as seen from today.
func (i SchedulableItem) DaysUntilDeadline(today time.Time) int {
	return i.Deadline.DaysUntil(today)
}

// SchedulableOn reports whether the item may receive time on date.
// Only a parsed deadline that is already behind date excludes it.
func (i SchedulableItem) SchedulableOn(date time.Time) bool {
	return !i.Deadline.PassedBy(date)
}

// CloneItems returns a copy of items so a stage can adjust them without aliasing the caller's slice.
func CloneItems(items []SchedulableItem) []SchedulableItem {
	out := make([]SchedulableItem, len(items))
	copy(out, items)
	return out
}

// TotalHours sums the hours of all items.
func TotalHours(items []SchedulableItem) float64 {
	var total float64
	for _, item := range items {
		total += item.Hours
	}
	return total
}

// SortByUrgency orders items by priority rank, then by days until deadline.
// The sort is stable so equal items keep their input order.
func SortByUrgency(items []SchedulableItem, today time.Time) {
	sort.SliceStable(items, func(a, b int) bool {
		ra, rb := items[a].Priority.Rank(), items[b].Priority.Rank()
		if ra != rb {
			return ra < rb
		}
		return items[a].DaysUntilDeadline(today) < items[b].DaysUntilDeadline(today)
	})
}

// LinkPendingWork flags assignment and exam items whose subject has both kinds of work pending.
func LinkPendingWork(items []SchedulableItem) []SchedulableItem {
	type pending struct{ assignment, exam bool }
	bySubject := make(map[string]pending)
	for _, item := range items {
		key := subjectKey(item.SubjectName)
		if key == "" {
			continue
		}
		p := bySubject[key]
		switch item.Category {
		case CategoryAssignment:
			p.assignment = true
		case CategoryExam:
			p.exam = true
		}
		bySubject[key] = p
	}

	out := CloneItems(items)
	for idx := range out {
		if out[idx].Category == CategorySubject {
			continue
		}
		p, ok := bySubject[subjectKey(out[idx].SubjectName)]
		if !ok {
			continue
		}
		out[idx].Signals.HasAssignment = p.assignment
		out[idx].Signals.HasExam = p.exam
	}
	return out
}

func subjectKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
