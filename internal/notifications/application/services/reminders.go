package services

import (
	"fmt"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
)

const (
	// AssignmentReminderDays is how far ahead assignment reminders start.
	AssignmentReminderDays = 3
	// ExamReminderDays is how far ahead exam reminders start.
	ExamReminderDays = 7
	// UrgentExamDays marks exam reminders as urgent.
	UrgentExamDays = 3
)

// ReminderDrafts returns one reminder per assignment due within
// AssignmentReminderDays and per exam within ExamReminderDays of today.
// Items without a valid date are ignored.
func ReminderDrafts(assignments []planningDomain.AssignmentRecord, exams []planningDomain.ExamRecord, today time.Time) []domain.Draft {
	var drafts []domain.Draft

	for _, a := range assignments {
		days, ok := daysUntil(a.DueDate, today)
		if !ok || days < 0 || days > AssignmentReminderDays {
			continue
		}
		drafts = append(drafts, domain.Draft{
			Type:     domain.TypeReminder,
			Title:    "Assignment Due Soon",
			Message:  fmt.Sprintf("Assignment '%s' is due in %d day(s) (%s)", a.Name, days, a.DueDate),
			ItemType: domain.ItemAssignment,
			ItemIDs:  []string{a.ID},
		})
	}

	for _, e := range exams {
		days, ok := daysUntil(e.ExamDate, today)
		if !ok || days < 0 || days > ExamReminderDays {
			continue
		}
		title := "Upcoming Exam"
		msg := fmt.Sprintf("Exam '%s' is in %d day(s) (%s)", e.Name, days, e.ExamDate)
		if days <= UrgentExamDays {
			title = "Urgent Exam"
			msg = "URGENT: " + msg
		}
		drafts = append(drafts, domain.Draft{
			Type:     domain.TypeReminder,
			Title:    title,
			Message:  msg,
			ItemType: domain.ItemExam,
			ItemIDs:  []string{e.ID},
		})
	}
	return drafts
}

func daysUntil(date string, today time.Time) (int, bool) {
	d, ok := planningDomain.NewDeadline(date).Date()
	if !ok {
		return 0, false
	}
	return planningDomain.DaysBetween(today, d), true
}
