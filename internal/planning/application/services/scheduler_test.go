package services

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tolerance = 1e-9

func newTestScheduler() *Scheduler {
	return NewScheduler(DefaultSchedulerConfig(), newTestRulesEngine(), NewClashDetector(), nil)
}

func TestScheduler_GeneratePlan_Validation(t *testing.T) {
	scheduler := newTestScheduler()
	input := PlanInput{Assignments: []domain.AssignmentRecord{{ID: "a1", Name: "Essay", EstimatedHours: 2}}}

	tests := []struct {
		name string
		req  PlanRequest
		want error
	}{
		{"start after end", PlanRequest{HoursPerDay: 4, StartDate: "2024-01-05", EndDate: "2024-01-03"}, domain.ErrStartAfterEnd},
		{"zero hours", PlanRequest{HoursPerDay: 0, StartDate: "2024-01-01", EndDate: "2024-01-03"}, domain.ErrInvalidHoursPerDay},
		{"negative hours", PlanRequest{HoursPerDay: -2, StartDate: "2024-01-01", EndDate: "2024-01-03"}, domain.ErrInvalidHoursPerDay},
		{"more than a day", PlanRequest{HoursPerDay: 30, StartDate: "2024-01-01", EndDate: "2024-01-03"}, domain.ErrTooManyHoursPerDay},
		{"huge hours", PlanRequest{HoursPerDay: 1e19, StartDate: "2024-05-01", EndDate: "2024-05-01"}, domain.ErrTooManyHoursPerDay},
		{"infinite hours", PlanRequest{HoursPerDay: math.Inf(1), StartDate: "2024-05-01", EndDate: "2024-05-01"}, domain.ErrTooManyHoursPerDay},
		{"missing start", PlanRequest{HoursPerDay: 4, EndDate: "2024-01-03"}, domain.ErrMissingDates},
		{"malformed date", PlanRequest{HoursPerDay: 4, StartDate: "01/01/2024", EndDate: "2024-01-03"}, domain.ErrInvalidDate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			plan, err := scheduler.GeneratePlan(input, tt.req)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.want)
			assert.True(t, domain.IsValidationError(err))
			assert.Empty(t, plan.Days)
		})
	}
}

func TestScheduler_GeneratePlan_LabelsStayWithinDay(t *testing.T) {
	scheduler := newTestScheduler()
	var input PlanInput
	for i := range 20 {
		input.Assignments = append(input.Assignments, domain.AssignmentRecord{
			ID:             fmt.Sprintf("a%d", i),
			Name:           fmt.Sprintf("Task %d", i),
			EstimatedHours: 8,
			DueDate:        fmt.Sprintf("2024-06-%02d", i+1),
			Priority:       "high",
		})
	}

	plan, err := scheduler.GeneratePlan(input, PlanRequest{HoursPerDay: 20, StartDate: "2024-05-01", EndDate: "2024-05-01"})
	require.NoError(t, err)
	require.Len(t, plan.Days, 1)

	slots := plan.Days[0].TimeSlots
	require.Len(t, slots, 20)
	assert.Equal(t, "04:00-05:00", slots[0].TimeLabel)
	assert.Equal(t, "23:00-24:00", slots[len(slots)-1].TimeLabel)
}

func TestScheduler_GeneratePlan_EmptyInput(t *testing.T) {
	scheduler := newTestScheduler()

	plan, err := scheduler.GeneratePlan(PlanInput{}, PlanRequest{HoursPerDay: 3, StartDate: "2024-05-01", EndDate: "2024-05-07"})
	require.NoError(t, err)

	require.Len(t, plan.Days, 7)
	for _, day := range plan.Days {
		assert.Empty(t, day.TimeSlots)
	}
	assert.Equal(t, 0.0, plan.TotalHoursNeeded)
	assert.Equal(t, 21.0, plan.TotalAvailableHours)
	assert.Equal(t, 1.0, plan.CompressionFactor)
}

func TestScheduler_GeneratePlan_SkipsMalformedRecords(t *testing.T) {
	scheduler := newTestScheduler()
	input := PlanInput{
		Assignments: []domain.AssignmentRecord{
			{ID: "", Name: "No id", EstimatedHours: 2},
			{ID: "ok", Name: "Valid", EstimatedHours: 2, DueDate: "2024-05-20", Priority: "medium"},
		},
		Exams: []domain.ExamRecord{{ID: "bad", Name: "Bad", RecommendedHours: -1}},
	}

	plan, err := scheduler.GeneratePlan(input, PlanRequest{HoursPerDay: 2, StartDate: "2024-05-01", EndDate: "2024-05-03"})
	require.NoError(t, err)

	allocated := plan.AllocatedHours()
	assert.Len(t, allocated, 1)
	assert.InDelta(t, 2.0, allocated["ok"], tolerance)
}

func TestScheduler_Compression(t *testing.T) {
	scheduler := newTestScheduler()
	var records []domain.AssignmentRecord
	for i := 0; i < 6; i++ {
		records = append(records, domain.AssignmentRecord{
			ID:             fmt.Sprintf("a%d", i),
			Name:           fmt.Sprintf("Assignment %d", i),
			EstimatedHours: 8,
			DueDate:        fmt.Sprintf("2024-05-%02d", 12+2*i),
			Priority:       "medium",
		})
	}
	records = append(records, domain.AssignmentRecord{ID: "a6", Name: "Assignment 6", EstimatedHours: 2, DueDate: "2024-05-24", Priority: "medium"})

	plan, err := scheduler.GeneratePlan(PlanInput{Assignments: records}, PlanRequest{HoursPerDay: 4, StartDate: "2024-05-01", EndDate: "2024-05-05"})
	require.NoError(t, err)

	assert.Equal(t, 50.0, plan.TotalHoursNeeded)
	assert.Equal(t, 20.0, plan.TotalAvailableHours)
	assert.InDelta(t, 0.4, plan.CompressionFactor, tolerance)
	assert.True(t, plan.Compressed())
	assert.Contains(t, plan.RulesTriggered, "Schedule compressed to 40% of requested hours due to insufficient time")

	for id, hours := range plan.AllocatedHours() {
		limit := 8 * 0.4
		if id == "a6" {
			limit = 2 * 0.4
		}
		assert.LessOrEqual(t, hours, limit+tolerance, id)
	}
	for _, day := range plan.Days {
		assert.LessOrEqual(t, day.HoursUsed(), 4.0+tolerance)
	}
}

func TestCompress_IsUniformAndIdempotent(t *testing.T) {
	items := []domain.SchedulableItem{{ID: "a", Hours: 10}, {ID: "b", Hours: 30}, {ID: "c", Hours: 10}}
	factor := CompressionFactor(domain.TotalHours(items), 20)
	require.InDelta(t, 0.4, factor, tolerance)

	compressed := Compress(items, factor)
	for i := range items {
		assert.InDelta(t, factor, compressed[i].Hours/items[i].Hours, tolerance)
	}
	assert.Equal(t, 1.0, CompressionFactor(domain.TotalHours(compressed), 20))
	assert.Equal(t, 10.0, items[0].Hours, "input must not be modified")
}

func TestScheduler_DeadlineGating(t *testing.T) {
	scheduler := newTestScheduler()
	input := PlanInput{Assignments: []domain.AssignmentRecord{
		{ID: "due", Name: "Due soon", EstimatedHours: 6, DueDate: "2024-05-02", Priority: "medium"},
		{ID: "open", Name: "No date", EstimatedHours: 6, DueDate: "whenever", Priority: "low"},
	}}

	plan, err := scheduler.GeneratePlan(input, PlanRequest{HoursPerDay: 2, StartDate: "2024-05-01", EndDate: "2024-05-05"})
	require.NoError(t, err)

	deadline, _ := domain.ParseDate("2024-05-02")
	openDays := 0
	for _, day := range plan.Days {
		for _, slot := range day.TimeSlots {
			if slot.ItemID == "due" {
				assert.False(t, day.Date.After(deadline), "allocated after deadline on %s", domain.FormatDate(day.Date))
			}
			if slot.ItemID == "open" {
				openDays++
			}
		}
	}
	assert.InDelta(t, 2.0, plan.AllocatedHours()["due"], tolerance)
	assert.Equal(t, 5, openDays, "unparsable deadline stays schedulable every day")
}

func TestScheduler_SlotsFollowPriority(t *testing.T) {
	scheduler := newTestScheduler()
	input := PlanInput{
		Assignments: []domain.AssignmentRecord{{ID: "later", Name: "Later", EstimatedHours: 3, DueDate: "2024-05-20", Priority: "medium"}},
		Exams:       []domain.ExamRecord{{ID: "soon", Name: "Soon", RecommendedHours: 3, ExamDate: "2024-05-03", Priority: "low"}},
	}

	plan, err := scheduler.GeneratePlan(input, PlanRequest{HoursPerDay: 2.5, StartDate: "2024-05-01", EndDate: "2024-05-01"})
	require.NoError(t, err)

	require.Len(t, plan.Days, 1)
	day := plan.Days[0]
	assert.Equal(t, "Wednesday", day.DayName)
	require.Len(t, day.TimeSlots, 2)
	assert.Equal(t, "09:00-10:00", day.TimeSlots[0].TimeLabel)
	assert.Equal(t, "soon", day.TimeSlots[0].ItemID)
	assert.Equal(t, domain.PriorityUrgent, day.TimeSlots[0].Priority)
	assert.Equal(t, "10:00-11:00", day.TimeSlots[1].TimeLabel)
	assert.Equal(t, "later", day.TimeSlots[1].ItemID)
}

func TestScheduler_Invariants(t *testing.T) {
	scheduler := newTestScheduler()
	var assignments []domain.AssignmentRecord
	var exams []domain.ExamRecord
	for i := 0; i < 5; i++ {
		assignments = append(assignments, domain.AssignmentRecord{
			ID:             fmt.Sprintf("a%d", i),
			Name:           fmt.Sprintf("A%d", i),
			EstimatedHours: float64(1 + i),
			DueDate:        fmt.Sprintf("2024-05-%02d", 3+3*i),
			Priority:       "medium",
		})
		exams = append(exams, domain.ExamRecord{
			ID:               fmt.Sprintf("e%d", i),
			Name:             fmt.Sprintf("E%d", i),
			RecommendedHours: 2.5,
			ExamDate:         fmt.Sprintf("2024-05-%02d", 4+3*i),
			Priority:         "medium",
		})
	}
	hoursPerDay := 3.5

	plan, err := scheduler.GeneratePlan(PlanInput{Assignments: assignments, Exams: exams}, PlanRequest{HoursPerDay: hoursPerDay, StartDate: "2024-05-01", EndDate: "2024-05-21"})
	require.NoError(t, err)

	adjusted, _ := scheduler.rules.ApplyRules(scheduler.Normalize(PlanInput{Assignments: assignments, Exams: exams}))
	adjusted, _ = scheduler.clashes.ResolveClashes(adjusted)
	limits := make(map[string]float64)
	deadlines := make(map[string]domain.Deadline)
	for _, item := range adjusted {
		limits[item.ID] = item.Hours * plan.CompressionFactor
		deadlines[item.ID] = item.Deadline
	}

	for id, hours := range plan.AllocatedHours() {
		assert.LessOrEqual(t, hours, limits[id]+tolerance, id)
	}
	for _, day := range plan.Days {
		assert.LessOrEqual(t, day.HoursUsed(), hoursPerDay+tolerance)
		for _, slot := range day.TimeSlots {
			assert.Greater(t, slot.Hours, 0.0)
			assert.LessOrEqual(t, slot.Hours, 1.0)
			assert.False(t, deadlines[slot.ItemID].PassedBy(day.Date), "%s allocated after its deadline", slot.ItemID)
			assert.True(t, strings.HasSuffix(slot.TimeLabel, ":00"))
		}
	}
}
