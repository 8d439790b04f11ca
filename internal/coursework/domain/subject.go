package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
	"github.com/google/uuid"
)

// HighPriorityWindowDays is how close an exam must be for a new subject to start at high priority.
const HighPriorityWindowDays = 7

// SubjectDetails are the fields of a subject.
type SubjectDetails struct {
	Name             string
	Difficulty       string
	ExamDate         string
	PastScore        *float64
	Chapters         int
	HasAssignment    bool
	HasExam          bool
	LastWeekHours    *float64
	RecommendedHours float64
	Priority         string
}

// Subject is a course studied towards an optional exam.
type Subject struct {
	sharedDomain.BaseAggregateRoot
	details    SubjectDetails
	difficulty Difficulty
	priority   Priority
}

// NewSubject validates details and records a SubjectCreated event. Without an
// explicit priority, the priority is high when the exam is at most a week after today.
func NewSubject(details SubjectDetails, today time.Time) (*Subject, error) {
	name, err := validateName(details.Name)
	if err != nil {
		return nil, err
	}
	if err := validateHours(details.RecommendedHours); err != nil {
		return nil, err
	}
	if details.LastWeekHours != nil {
		if err := validateHours(*details.LastWeekHours); err != nil {
			return nil, err
		}
	}
	if err := validateScore(details.PastScore); err != nil {
		return nil, err
	}
	if details.Chapters < 0 {
		return nil, ErrNegativeChapters
	}
	examDate, err := NormalizeDate(details.ExamDate)
	if err != nil {
		return nil, err
	}
	difficulty, err := ParseDifficulty(details.Difficulty)
	if err != nil {
		return nil, err
	}

	priority := InitialSubjectPriority(examDate, today)
	if details.Priority != "" {
		if priority, err = ParsePriority(details.Priority); err != nil {
			return nil, err
		}
	}

	details.Name = name
	details.ExamDate = examDate
	details.PastScore = copyFloat(details.PastScore)
	details.LastWeekHours = copyFloat(details.LastWeekHours)
	s := &Subject{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		details:           details,
		difficulty:        difficulty,
		priority:          priority,
	}
	s.syncDetails()
	s.AddDomainEvent(newSubjectEvent(RoutingKeySubjectCreated, s))
	return s, nil
}

// InitialSubjectPriority derives the starting priority from the exam date.
func InitialSubjectPriority(examDate string, today time.Time) Priority {
	date, ok := ParseDate(examDate)
	if !ok {
		return PriorityMedium
	}
	y, m, d := today.Date()
	days := int(date.Sub(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)).Hours() / 24)
	if days <= HighPriorityWindowDays {
		return PriorityHigh
	}
	return PriorityMedium
}

// RehydrateSubject restores a subject loaded from storage.
func RehydrateSubject(id uuid.UUID, details SubjectDetails, createdAt, updatedAt time.Time) *Subject {
	difficulty, _ := ParseDifficulty(details.Difficulty)
	priority, _ := ParsePriority(details.Priority)
	s := &Subject{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		details:    details,
		difficulty: difficulty,
		priority:   priority,
	}
	s.syncDetails()
	return s
}

func (s *Subject) syncDetails() {
	s.details.Difficulty = string(s.difficulty)
	s.details.Priority = string(s.priority)
}

// MarkDeleted records the deletion event.
func (s *Subject) MarkDeleted() {
	s.AddDomainEvent(newSubjectEvent(RoutingKeySubjectDeleted, s))
}

func (s *Subject) Name() string              { return s.details.Name }
func (s *Subject) Difficulty() Difficulty    { return s.difficulty }
func (s *Subject) ExamDate() string          { return s.details.ExamDate }
func (s *Subject) PastScore() *float64       { return copyFloat(s.details.PastScore) }
func (s *Subject) Chapters() int             { return s.details.Chapters }
func (s *Subject) HasAssignment() bool       { return s.details.HasAssignment }
func (s *Subject) HasExam() bool             { return s.details.HasExam }
func (s *Subject) LastWeekHours() *float64   { return copyFloat(s.details.LastWeekHours) }
func (s *Subject) RecommendedHours() float64 { return s.details.RecommendedHours }
func (s *Subject) Priority() Priority        { return s.priority }

// Details returns a copy of the subject fields.
func (s *Subject) Details() SubjectDetails {
	d := s.details
	d.PastScore = copyFloat(d.PastScore)
	d.LastWeekHours = copyFloat(d.LastWeekHours)
	return d
}
