package domain

import (
	"sort"
	"time"

	"github.com/google/uuid"
)

// TimeSlot is one hour-wide allocation of an item on a day.
type TimeSlot struct {
	TimeLabel   string
	ItemID      string
	ItemName    string
	Category    Category
	SubjectName string
	Priority    Priority
	Hours       float64
}

// DayPlan holds the ordered slots for one calendar date.
type DayPlan struct {
	Date      time.Time
	DayName   string
	TimeSlots []TimeSlot
}

// HoursUsed sums the hours allocated on the day.
func (d DayPlan) HoursUsed() float64 {
	var total float64
	for _, slot := range d.TimeSlots {
		total += slot.Hours
	}
	return total
}

// Plan is the output of one scheduling run.
type Plan struct {
	Days                []DayPlan
	RulesTriggered      []string
	TotalHoursNeeded    float64
	TotalAvailableHours float64
	// CompressionFactor is 1 when demand fit into the available hours.
	CompressionFactor float64
}

// SlotCount returns the number of allocated slots across all days.
func (p Plan) SlotCount() int {
	n := 0
	for _, day := range p.Days {
		n += len(day.TimeSlots)
	}
	return n
}

// AllocatedHours sums allocated hours per item id.
func (p Plan) AllocatedHours() map[string]float64 {
	out := make(map[string]float64)
	for _, day := range p.Days {
		for _, slot := range day.TimeSlots {
			out[slot.ItemID] += slot.Hours
		}
	}
	return out
}

// Compressed reports whether item hours were scaled down to fit.
func (p Plan) Compressed() bool {
	return p.CompressionFactor > 0 && p.CompressionFactor < 1
}

// PlanSlot is the stored form of a single time slot.
type PlanSlot struct {
	ID          uuid.UUID
	ItemID      string
	ItemType    Category
	ItemName    string
	SubjectName string
	Day         string
	Date        time.Time
	TimeSlot    string
	Hours       float64
	Priority    Priority
	CreatedAt   time.Time
}

// Category is the stored category label. It always equals the item type.
func (s PlanSlot) Category() string {
	return s.ItemType.String()
}

// Flatten turns the plan into slot records ready for storage, in day and slot order.
func (p Plan) Flatten(createdAt time.Time) []PlanSlot {
	slots := make([]PlanSlot, 0, p.SlotCount())
	for _, day := range p.Days {
		for _, ts := range day.TimeSlots {
			slots = append(slots, PlanSlot{
				ID:          uuid.New(),
				ItemID:      ts.ItemID,
				ItemType:    ts.Category,
				ItemName:    ts.ItemName,
				SubjectName: ts.SubjectName,
				Day:         day.DayName,
				Date:        day.Date,
				TimeSlot:    ts.TimeLabel,
				Hours:       ts.Hours,
				Priority:    ts.Priority,
				CreatedAt:   createdAt,
			})
		}
	}
	return slots
}

// PlannedDay is the presentation grouping of stored slots for one date.
type PlannedDay struct {
	Date       time.Time
	DayName    string
	Slots      []PlanSlot
	TotalHours float64
}

// GroupByDate groups stored slots by date in calendar order, keeping slot order within a day.
func GroupByDate(slots []PlanSlot) []PlannedDay {
	sorted := make([]PlanSlot, len(slots))
	copy(sorted, slots)
	sort.SliceStable(sorted, func(a, b int) bool {
		if !sorted[a].Date.Equal(sorted[b].Date) {
			return sorted[a].Date.Before(sorted[b].Date)
		}
		return sorted[a].TimeSlot < sorted[b].TimeSlot
	})

	var days []PlannedDay
	for _, slot := range sorted {
		if n := len(days); n == 0 || !days[n-1].Date.Equal(slot.Date) {
			name := slot.Day
			if name == "" {
				name = DayName(slot.Date)
			}
			days = append(days, PlannedDay{Date: slot.Date, DayName: name})
		}
		last := &days[len(days)-1]
		last.Slots = append(last.Slots, slot)
		last.TotalHours += slot.Hours
	}
	return days
}
