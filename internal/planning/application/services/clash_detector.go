package services

import (
	"fmt"
	"sort"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

// ExamClashBuffer inflates the hours of exams that share a date.
const ExamClashBuffer = 1.2

// LargeAssignmentHours is the size above which the biggest of several
// same-day assignments is made urgent.
const LargeAssignmentHours = 5.0

// ClashDetector finds deadline collisions and rearranges priorities around them.
type ClashDetector struct{}

// NewClashDetector creates a clash detector.
func NewClashDetector() *ClashDetector {
	return &ClashDetector{}
}

// FindClashes compares every assignment and exam pair with a parsed deadline.
// Each unordered pair within ClashWindowDays produces one Clash. The result
// does not depend on input order.
func (d *ClashDetector) FindClashes(items []domain.SchedulableItem) []domain.Clash {
	candidates := make([]domain.SchedulableItem, 0, len(items))
	for _, item := range items {
		if !clashable(item) {
			continue
		}
		candidates = append(candidates, item)
	}

	var clashes []domain.Clash
	for i := 0; i < len(candidates); i++ {
		for j := i + 1; j < len(candidates); j++ {
			if clash, ok := pairClash(candidates[i], candidates[j]); ok {
				clashes = append(clashes, clash)
			}
		}
	}

	sort.Slice(clashes, func(a, b int) bool {
		return clashLess(clashes[a], clashes[b])
	})
	return clashes
}

// ResolveClashes raises priorities and pads hours for colliding items.
// The input slice is not modified.
func (d *ClashDetector) ResolveClashes(items []domain.SchedulableItem) ([]domain.SchedulableItem, []string) {
	out := domain.CloneItems(items)
	var log []string

	for _, group := range sameDateGroups(out, domain.CategoryExam) {
		if len(group.indexes) < 2 {
			continue
		}
		log = append(log, fmt.Sprintf(
			"Clash detected: %d exams on %s. Rearranging study slots to spread preparation across available dates.",
			len(group.indexes), domain.FormatDate(group.date)))
		for _, idx := range group.indexes {
			out[idx].Priority = out[idx].Priority.RaiseTo(domain.PriorityHigh)
			out[idx].Hours *= ExamClashBuffer
		}
	}

	for _, group := range sameDateGroups(out, domain.CategoryAssignment) {
		if len(group.indexes) < 2 {
			continue
		}
		log = append(log, fmt.Sprintf(
			"Clash detected: %d assignments due on %s. Rearranging study slots to ensure all assignments are completed on time.",
			len(group.indexes), domain.FormatDate(group.date)))
		ordered := append([]int(nil), group.indexes...)
		sort.SliceStable(ordered, func(a, b int) bool {
			return out[ordered[a]].Hours > out[ordered[b]].Hours
		})
		for rank, idx := range ordered {
			if rank == 0 && out[idx].Hours > LargeAssignmentHours {
				out[idx].Priority = domain.PriorityUrgent
				continue
			}
			out[idx].Priority = out[idx].Priority.RaiseTo(domain.PriorityHigh)
		}
	}

	for a := range out {
		if out[a].Category != domain.CategoryAssignment || !out[a].Deadline.IsParsed() {
			continue
		}
		for e := range out {
			if out[e].Category != domain.CategoryExam || !out[e].Deadline.IsParsed() {
				continue
			}
			days := deadlineGap(out[a], out[e])
			if days > domain.ClashWindowDays {
				continue
			}
			log = append(log, fmt.Sprintf(
				"Conflict: Assignment '%s' and exam '%s' within %d day(s). Rearranging to prioritize assignment completion.",
				out[a].Name, out[e].Name, days))
			out[a].Priority = domain.PriorityUrgent
			out[e].Priority = out[e].Priority.RaiseTo(domain.PriorityHigh)
		}
	}

	return out, log
}

type dateGroup struct {
	date    time.Time
	indexes []int
}

// sameDateGroups buckets items of one category by parsed deadline, in date order.
func sameDateGroups(items []domain.SchedulableItem, category domain.Category) []dateGroup {
	byDate := make(map[time.Time]*dateGroup)
	var groups []*dateGroup
	for idx, item := range items {
		if item.Category != category {
			continue
		}
		date, ok := item.Deadline.Date()
		if !ok {
			continue
		}
		g, exists := byDate[date]
		if !exists {
			g = &dateGroup{date: date}
			byDate[date] = g
			groups = append(groups, g)
		}
		g.indexes = append(g.indexes, idx)
	}

	sort.SliceStable(groups, func(a, b int) bool {
		return groups[a].date.Before(groups[b].date)
	})
	out := make([]dateGroup, len(groups))
	for i, g := range groups {
		out[i] = *g
	}
	return out
}

func clashable(item domain.SchedulableItem) bool {
	if item.Category != domain.CategoryAssignment && item.Category != domain.CategoryExam {
		return false
	}
	return item.Deadline.IsParsed()
}

func deadlineGap(a, b domain.SchedulableItem) int {
	da, _ := a.Deadline.Date()
	db, _ := b.Deadline.Date()
	days := domain.DaysBetween(da, db)
	if days < 0 {
		return -days
	}
	return days
}

func pairClash(a, b domain.SchedulableItem) (domain.Clash, bool) {
	days := deadlineGap(a, b)
	if days > domain.ClashWindowDays {
		return domain.Clash{}, false
	}

	clash := domain.Clash{
		Scope:     domain.ClashSameCategory,
		Severity:  domain.ClashWarning,
		DaysApart: days,
	}
	if days == 0 {
		clash.Severity = domain.ClashConflict
	}

	switch {
	case a.Category != b.Category:
		clash.Scope = domain.ClashCrossCategory
		if a.Category == domain.CategoryExam {
			a, b = b, a
		}
	case itemLess(b, a):
		a, b = b, a
	}
	clash.First, clash.Second = a, b
	return clash, true
}

// itemLess orders items by deadline, then id, then name.
func itemLess(a, b domain.SchedulableItem) bool {
	da, _ := a.Deadline.Date()
	db, _ := b.Deadline.Date()
	if !da.Equal(db) {
		return da.Before(db)
	}
	if a.ID != b.ID {
		return a.ID < b.ID
	}
	return a.Name < b.Name
}

func clashLess(a, b domain.Clash) bool {
	if a.First.ID != b.First.ID || a.First.Name != b.First.Name || !sameDeadline(a.First, b.First) {
		return itemLess(a.First, b.First)
	}
	return itemLess(a.Second, b.Second)
}

func sameDeadline(a, b domain.SchedulableItem) bool {
	da, _ := a.Deadline.Date()
	db, _ := b.Deadline.Date()
	return da.Equal(db)
}
