package services

import (
	"fmt"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

// ClashDraft renders a clash as a notification.
func ClashDraft(c planningDomain.Clash) domain.Draft {
	a, b := c.First, c.Second
	da, db := a.Deadline.String(), b.Deadline.String()

	d := domain.Draft{Type: domain.TypeClash}
	switch {
	case c.Scope == planningDomain.ClashCrossCategory:
		d.ItemType = domain.ItemBoth
		d.ItemIDs = []string{
			planningDomain.SubjectKey(a.Category, a.ID),
			planningDomain.SubjectKey(b.Category, b.ID),
		}
		if c.SameDate() {
			d.Title = "Assignment-Exam Clash"
			d.Message = fmt.Sprintf("Assignment '%s' is due on the same day as exam '%s' (%s).", a.Name, b.Name, da)
		} else {
			d.Title = "Assignment-Exam Conflict"
			d.Message = fmt.Sprintf("Assignment '%s' (due %s) and exam '%s' (on %s) are within %d day(s) of each other.",
				a.Name, da, b.Name, db, c.DaysApart)
		}
	case a.Category == planningDomain.CategoryExam:
		d.ItemType = domain.ItemExam
		d.ItemIDs = c.ItemIDs()
		if c.SameDate() {
			d.Title = "Exam Clash Detected"
			d.Message = fmt.Sprintf("Exams '%s' and '%s' are both scheduled on %s. Plan your preparation early.", a.Name, b.Name, da)
		} else {
			d.Title = "Exam Clash Warning"
			d.Message = fmt.Sprintf("Exams '%s' (%s) and '%s' (%s) are within %d day(s) of each other.",
				a.Name, da, b.Name, db, c.DaysApart)
		}
	default:
		d.ItemType = domain.ItemAssignment
		d.ItemIDs = c.ItemIDs()
		if c.SameDate() {
			d.Title = "Assignment Clash Detected"
			d.Message = fmt.Sprintf("Assignments '%s' and '%s' are both due on %s. Consider spreading out your work.", a.Name, b.Name, da)
		} else {
			d.Title = "Assignment Clash Warning"
			d.Message = fmt.Sprintf("Assignments '%s' (%s) and '%s' (%s) are due within %d day(s) of each other.",
				a.Name, da, b.Name, db, c.DaysApart)
		}
	}
	return d
}
