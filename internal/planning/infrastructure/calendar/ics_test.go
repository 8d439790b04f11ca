package calendar

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-webdav/caldav"
	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSlot(label string, hours float64) domain.PlanSlot {
	return domain.PlanSlot{
		ID:          uuid.New(),
		ItemID:      "42",
		ItemType:    domain.CategoryExam,
		ItemName:    "Calculus Final",
		SubjectName: "Math",
		Day:         "Wednesday",
		Date:        time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
		TimeSlot:    label,
		Hours:       hours,
		Priority:    domain.PriorityHigh,
	}
}

func TestSlotTimes(t *testing.T) {
	start, end, err := SlotTimes(testSlot("10:00-11:00", 0.5), time.UTC)

	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), start)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 30, 0, 0, time.UTC), end)

	_, _, err = SlotTimes(testSlot("morning", 1), time.UTC)
	assert.Error(t, err)
}

func TestICSEncoder_Encode(t *testing.T) {
	enc := NewICSEncoder(time.UTC)
	enc.now = func() time.Time { return time.Date(2024, 4, 30, 0, 0, 0, 0, time.UTC) }
	slots := []domain.PlanSlot{testSlot("09:00-10:00", 1), testSlot("10:00-11:00", 1)}

	var buf bytes.Buffer
	require.NoError(t, enc.Encode(&buf, slots))

	out := buf.String()
	assert.Equal(t, 2, strings.Count(out, "BEGIN:VEVENT"))
	assert.Contains(t, out, "SUMMARY:Calculus Final (Math)")
	assert.Contains(t, out, "DTSTART:20240501T090000Z")
	assert.Contains(t, out, PropItem+":exam:42")

	cal, err := ical.NewDecoder(strings.NewReader(out)).Decode()
	require.NoError(t, err)
	events := cal.Events()
	require.Len(t, events, 2)
	assert.True(t, IsPlannerEvent(events[0].Component))
}

func TestICSEncoder_EmptyPlan(t *testing.T) {
	cal, err := NewICSEncoder(time.UTC).Calendar(nil)

	require.NoError(t, err)
	assert.Empty(t, cal.Children)
}

func TestPlannerObject(t *testing.T) {
	cal, err := NewICSEncoder(time.UTC).SlotCalendar(testSlot("09:00-10:00", 1))
	require.NoError(t, err)
	assert.True(t, plannerObject(&caldav.CalendarObject{Data: cal}))

	foreign := ical.NewCalendar()
	foreign.Children = append(foreign.Children, ical.NewEvent().Component)
	assert.False(t, plannerObject(&caldav.CalendarObject{Data: foreign}))
	assert.False(t, plannerObject(nil))
}

func TestNewCalDAVSyncer_Defaults(t *testing.T) {
	s := NewCalDAVSyncer("https://caldav.example.com", "user", "pass", nil, nil)

	assert.NotNil(t, s.encoder)
	assert.NotNil(t, s.logger)
	assert.Same(t, s, s.WithCalendarPath("/calendars/user/study/"))
	assert.Equal(t, "/calendars/user/study/", s.calendarPath)
}
