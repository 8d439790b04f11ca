// Package calendar renders stored plan slots as iCalendar events and pushes
// them to CalDAV servers.
package calendar

import (
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

// PropItem carries the planned item id on every exported event.
const PropItem = "X-STUDYPLANNER-ITEM"

const productID = "-//Study Planner//Plan Export//EN"

// ICSEncoder writes plan slots as one VCALENDAR with a VEVENT per slot.
type ICSEncoder struct {
	loc *time.Location
	now func() time.Time
}

// NewICSEncoder creates an encoder that interprets slot labels in loc.
// A nil loc means the local zone.
func NewICSEncoder(loc *time.Location) *ICSEncoder {
	if loc == nil {
		loc = time.Local
	}
	return &ICSEncoder{loc: loc, now: time.Now}
}

// Encode writes the calendar for slots to w.
func (e *ICSEncoder) Encode(w io.Writer, slots []domain.PlanSlot) error {
	cal, err := e.Calendar(slots)
	if err != nil {
		return err
	}
	return ical.NewEncoder(w).Encode(cal)
}

// Calendar builds the calendar for slots.
func (e *ICSEncoder) Calendar(slots []domain.PlanSlot) (*ical.Calendar, error) {
	cal := newCalendar()
	stamp := e.now().UTC()
	for _, slot := range slots {
		event, err := e.event(slot, stamp)
		if err != nil {
			return nil, err
		}
		cal.Children = append(cal.Children, event.Component)
	}
	return cal, nil
}

// SlotCalendar builds a single-event calendar, the unit CalDAV stores per path.
func (e *ICSEncoder) SlotCalendar(slot domain.PlanSlot) (*ical.Calendar, error) {
	return e.Calendar([]domain.PlanSlot{slot})
}

func newCalendar() *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, productID)
	return cal
}

func (e *ICSEncoder) event(slot domain.PlanSlot, stamp time.Time) (*ical.Event, error) {
	start, end, err := SlotTimes(slot, e.loc)
	if err != nil {
		return nil, err
	}

	event := ical.NewEvent()
	event.Props.SetText(ical.PropUID, slot.ID.String())
	event.Props.SetDateTime(ical.PropDateTimeStamp, stamp)
	event.Props.SetDateTime(ical.PropDateTimeStart, start.UTC())
	event.Props.SetDateTime(ical.PropDateTimeEnd, end.UTC())
	event.Props.SetText(ical.PropSummary, summary(slot))
	event.Props.SetText(ical.PropDescription, description(slot))
	event.Props.SetText(ical.PropCategories, slot.Category())

	item := ical.NewProp(PropItem)
	item.Value = slot.ItemType.String() + ":" + slot.ItemID
	event.Props[PropItem] = []ical.Prop{*item}
	return event, nil
}

// SlotTimes resolves the wall-clock start and end of a slot. The start comes
// from the slot label and the end from the allocated hours.
func SlotTimes(slot domain.PlanSlot, loc *time.Location) (time.Time, time.Time, error) {
	startLabel, _, ok := strings.Cut(slot.TimeSlot, "-")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed time slot %q", slot.TimeSlot)
	}
	hh, mm, ok := strings.Cut(startLabel, ":")
	if !ok {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed time slot %q", slot.TimeSlot)
	}
	hour, err := strconv.Atoi(hh)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed time slot %q: %w", slot.TimeSlot, err)
	}
	minute, err := strconv.Atoi(mm)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("malformed time slot %q: %w", slot.TimeSlot, err)
	}

	y, m, d := slot.Date.Date()
	start := time.Date(y, m, d, hour, minute, 0, 0, loc)
	end := start.Add(time.Duration(math.Round(slot.Hours*60)) * time.Minute)
	return start, end, nil
}

func summary(slot domain.PlanSlot) string {
	if slot.SubjectName == "" {
		return slot.ItemName
	}
	return fmt.Sprintf("%s (%s)", slot.ItemName, slot.SubjectName)
}

func description(slot domain.PlanSlot) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Type: %s\n", slot.ItemType)
	if slot.Priority.IsSet() {
		fmt.Fprintf(&b, "Priority: %s\n", slot.Priority)
	}
	fmt.Fprintf(&b, "Hours: %g", slot.Hours)
	return b.String()
}

// IsPlannerEvent reports whether a VEVENT component was created by the planner.
func IsPlannerEvent(comp *ical.Component) bool {
	if comp == nil || comp.Name != ical.CompEvent {
		return false
	}
	return len(comp.Props[PropItem]) > 0
}
