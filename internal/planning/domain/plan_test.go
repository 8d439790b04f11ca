package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func samplePlan(t *testing.T) Plan {
	return Plan{
		Days: []DayPlan{
			{
				Date:    mustDate(t, "2024-05-01"),
				DayName: "Wednesday",
				TimeSlots: []TimeSlot{
					{TimeLabel: "09:00-10:00", ItemID: "a1", ItemName: "Essay", Category: CategoryAssignment, Hours: 1},
					{TimeLabel: "10:00-11:00", ItemID: "e1", ItemName: "Calculus", Category: CategoryExam, Hours: 0.5},
				},
			},
			{Date: mustDate(t, "2024-05-02"), DayName: "Thursday"},
			{
				Date:      mustDate(t, "2024-05-03"),
				DayName:   "Friday",
				TimeSlots: []TimeSlot{{TimeLabel: "09:00-10:00", ItemID: "a1", ItemName: "Essay", Category: CategoryAssignment, Hours: 1}},
			},
		},
		CompressionFactor: 1,
	}
}

func TestPlan_Totals(t *testing.T) {
	plan := samplePlan(t)

	assert.Equal(t, 3, plan.SlotCount())
	assert.Equal(t, map[string]float64{"a1": 2, "e1": 0.5}, plan.AllocatedHours())
	assert.Equal(t, 1.5, plan.Days[0].HoursUsed())
	assert.False(t, plan.Compressed())
}

func TestPlan_Flatten(t *testing.T) {
	created := time.Date(2024, 4, 30, 12, 0, 0, 0, time.UTC)
	slots := samplePlan(t).Flatten(created)

	require.Len(t, slots, 3)
	assert.Equal(t, "assignment", slots[0].Category())
	assert.Equal(t, "Wednesday", slots[0].Day)
	assert.Equal(t, "10:00-11:00", slots[1].TimeSlot)
	assert.Equal(t, "2024-05-03", FormatDate(slots[2].Date))
	assert.Equal(t, created, slots[2].CreatedAt)
	assert.NotEqual(t, slots[0].ID, slots[2].ID)
}

func TestGroupByDate(t *testing.T) {
	slots := samplePlan(t).Flatten(time.Now())
	slots[0], slots[2] = slots[2], slots[0]

	days := GroupByDate(slots)

	require.Len(t, days, 2)
	assert.Equal(t, "2024-05-01", FormatDate(days[0].Date))
	assert.Len(t, days[0].Slots, 2)
	assert.Equal(t, "09:00-10:00", days[0].Slots[0].TimeSlot)
	assert.Equal(t, 1.5, days[0].TotalHours)
	assert.Equal(t, "Friday", days[1].DayName)
}
