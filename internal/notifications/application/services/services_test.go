package services

import (
	"testing"
	"time"

	"github.com/felixgeelhaar/studyplanner/internal/notifications/domain"
	planningServices "github.com/felixgeelhaar/studyplanner/internal/planning/application/services"
	planningDomain "github.com/felixgeelhaar/studyplanner/internal/planning/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testToday = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

func assignment(t *testing.T, id, name, due string) planningDomain.SchedulableItem {
	t.Helper()
	item, err := planningDomain.FromAssignment(planningDomain.AssignmentRecord{ID: id, Name: name, DueDate: due, EstimatedHours: 2})
	require.NoError(t, err)
	return item
}

func exam(t *testing.T, id, name, date string) planningDomain.SchedulableItem {
	t.Helper()
	item, err := planningDomain.FromExam(planningDomain.ExamRecord{ID: id, Name: name, ExamDate: date, RecommendedHours: 3})
	require.NoError(t, err)
	return item
}

func onlyClash(t *testing.T, items ...planningDomain.SchedulableItem) planningDomain.Clash {
	t.Helper()
	clashes := planningServices.NewClashDetector().FindClashes(items)
	require.Len(t, clashes, 1)
	return clashes[0]
}

func TestClashDraft_Assignments(t *testing.T) {
	d := ClashDraft(onlyClash(t, assignment(t, "a1", "Essay", "2024-05-10"), assignment(t, "a2", "Lab", "2024-05-10")))
	assert.Equal(t, domain.TypeClash, d.Type)
	assert.Equal(t, "Assignment Clash Detected", d.Title)
	assert.Equal(t, "Assignments 'Essay' and 'Lab' are both due on 2024-05-10. Consider spreading out your work.", d.Message)
	assert.Equal(t, domain.ItemAssignment, d.ItemType)
	assert.ElementsMatch(t, []string{"a1", "a2"}, d.ItemIDs)

	d = ClashDraft(onlyClash(t, assignment(t, "a1", "Essay", "2024-05-10"), assignment(t, "a2", "Lab", "2024-05-11")))
	assert.Equal(t, "Assignment Clash Warning", d.Title)
	assert.Contains(t, d.Message, "are due within 1 day(s) of each other.")
}

func TestClashDraft_Exams(t *testing.T) {
	d := ClashDraft(onlyClash(t, exam(t, "e1", "Calculus", "2024-05-20"), exam(t, "e2", "Physics", "2024-05-20")))
	assert.Equal(t, "Exam Clash Detected", d.Title)
	assert.Equal(t, "Exams 'Calculus' and 'Physics' are both scheduled on 2024-05-20. Plan your preparation early.", d.Message)
	assert.Equal(t, domain.ItemExam, d.ItemType)

	d = ClashDraft(onlyClash(t, exam(t, "e1", "Calculus", "2024-05-20"), exam(t, "e2", "Physics", "2024-05-21")))
	assert.Equal(t, "Exam Clash Warning", d.Title)
}

func TestClashDraft_CrossCategory(t *testing.T) {
	d := ClashDraft(onlyClash(t, exam(t, "e1", "Calculus", "2024-05-20"), assignment(t, "a1", "Essay", "2024-05-20")))
	assert.Equal(t, "Assignment-Exam Clash", d.Title)
	assert.Equal(t, "Assignment 'Essay' is due on the same day as exam 'Calculus' (2024-05-20).", d.Message)
	assert.Equal(t, domain.ItemBoth, d.ItemType)
	assert.Equal(t, []string{"assignment:a1", "exam:e1"}, d.ItemIDs)

	d = ClashDraft(onlyClash(t, exam(t, "e1", "Calculus", "2024-05-21"), assignment(t, "a1", "Essay", "2024-05-20")))
	assert.Equal(t, "Assignment-Exam Conflict", d.Title)
	assert.Equal(t, "Assignment 'Essay' (due 2024-05-20) and exam 'Calculus' (on 2024-05-21) are within 1 day(s) of each other.", d.Message)
}

func TestReminderDrafts(t *testing.T) {
	assignments := []planningDomain.AssignmentRecord{
		{ID: "a1", Name: "Essay", DueDate: "2024-05-03"},
		{ID: "a2", Name: "Project", DueDate: "2024-05-05"},
		{ID: "a3", Name: "Overdue", DueDate: "2024-04-30"},
		{ID: "a4", Name: "Someday"},
	}
	exams := []planningDomain.ExamRecord{
		{ID: "e1", Name: "Calculus", ExamDate: "2024-05-04"},
		{ID: "e2", Name: "Physics", ExamDate: "2024-05-08"},
		{ID: "e3", Name: "Chemistry", ExamDate: "2024-05-09"},
	}

	drafts := ReminderDrafts(assignments, exams, testToday)
	require.Len(t, drafts, 3)
	assert.Equal(t, "Assignment 'Essay' is due in 2 day(s) (2024-05-03)", drafts[0].Message)
	assert.Equal(t, []string{"a1"}, drafts[0].ItemIDs)
	assert.Equal(t, "URGENT: Exam 'Calculus' is in 3 day(s) (2024-05-04)", drafts[1].Message)
	assert.Equal(t, "Exam 'Physics' is in 7 day(s) (2024-05-08)", drafts[2].Message)
	for _, d := range drafts {
		assert.Equal(t, domain.TypeReminder, d.Type)
	}
}
