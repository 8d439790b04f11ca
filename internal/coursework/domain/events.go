package domain

import (
	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
)

const (
	AggregateAssignment = "Assignment"
	AggregateExam       = "Exam"
	AggregateSubject    = "Subject"

	RoutingKeyAssignmentCreated   = "coursework.assignment.created"
	RoutingKeyAssignmentUpdated   = "coursework.assignment.updated"
	RoutingKeyAssignmentCompleted = "coursework.assignment.completed"
	RoutingKeyAssignmentDeleted   = "coursework.assignment.deleted"
	RoutingKeyExamCreated         = "coursework.exam.created"
	RoutingKeyExamUpdated         = "coursework.exam.updated"
	RoutingKeyExamDeleted         = "coursework.exam.deleted"
	RoutingKeySubjectCreated      = "coursework.subject.created"
	RoutingKeySubjectDeleted      = "coursework.subject.deleted"
)

// AssignmentChanged carries the assignment state after a change.
type AssignmentChanged struct {
	sharedDomain.BaseEvent
	AssignmentID string  `json:"assignment_id"`
	Name         string  `json:"name"`
	SubjectName  string  `json:"subject_name"`
	DueDate      string  `json:"due_date,omitempty"`
	Hours        float64 `json:"estimated_hours"`
	Status       string  `json:"status"`
}

func newAssignmentEvent(routingKey string, a *Assignment) *AssignmentChanged {
	return &AssignmentChanged{
		BaseEvent:    sharedDomain.NewBaseEvent(a.ID(), AggregateAssignment, routingKey),
		AssignmentID: a.ID().String(),
		Name:         a.name,
		SubjectName:  a.subjectName,
		DueDate:      a.dueDate,
		Hours:        a.estimatedHours,
		Status:       string(a.status),
	}
}

// ExamChanged carries the exam state after a change.
type ExamChanged struct {
	sharedDomain.BaseEvent
	ExamID      string  `json:"exam_id"`
	Name        string  `json:"name"`
	SubjectName string  `json:"subject_name"`
	ExamDate    string  `json:"exam_date,omitempty"`
	Hours       float64 `json:"recommended_hours"`
}

func newExamEvent(routingKey string, e *Exam) *ExamChanged {
	return &ExamChanged{
		BaseEvent:   sharedDomain.NewBaseEvent(e.ID(), AggregateExam, routingKey),
		ExamID:      e.ID().String(),
		Name:        e.name,
		SubjectName: e.subjectName,
		ExamDate:    e.examDate,
		Hours:       e.recommendedHours,
	}
}

// SubjectChanged carries the subject state after a change.
type SubjectChanged struct {
	sharedDomain.BaseEvent
	SubjectID string  `json:"subject_id"`
	Name      string  `json:"name"`
	ExamDate  string  `json:"exam_date,omitempty"`
	Hours     float64 `json:"recommended_hours"`
	Priority  string  `json:"priority"`
}

func newSubjectEvent(routingKey string, s *Subject) *SubjectChanged {
	return &SubjectChanged{
		BaseEvent: sharedDomain.NewBaseEvent(s.ID(), AggregateSubject, routingKey),
		SubjectID: s.ID().String(),
		Name:      s.details.Name,
		ExamDate:  s.details.ExamDate,
		Hours:     s.details.RecommendedHours,
		Priority:  string(s.priority),
	}
}
