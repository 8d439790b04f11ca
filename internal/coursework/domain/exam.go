package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
	"github.com/google/uuid"
)

// DefaultExamHours is used when an exam is created without a recommendation.
const DefaultExamHours = 3

// ExamDetails are the editable fields of an exam.
type ExamDetails struct {
	Name             string
	SubjectName      string
	ExamDate         string
	Difficulty       string
	PastScore        *float64
	Chapters         int
	RecommendedHours float64
	Priority         string
}

// Exam is a scheduled test the student prepares for.
type Exam struct {
	sharedDomain.BaseAggregateRoot
	name             string
	subjectName      string
	examDate         string
	difficulty       Difficulty
	pastScore        *float64
	chapters         int
	recommendedHours float64
	priority         Priority
}

// NewExam validates details and records an ExamCreated event.
func NewExam(details ExamDetails) (*Exam, error) {
	e := &Exam{BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot()}
	if err := e.apply(details); err != nil {
		return nil, err
	}
	e.AddDomainEvent(newExamEvent(RoutingKeyExamCreated, e))
	return e, nil
}

// RehydrateExam restores an exam loaded from storage.
func RehydrateExam(id uuid.UUID, details ExamDetails, createdAt, updatedAt time.Time) *Exam {
	difficulty, _ := ParseDifficulty(details.Difficulty)
	priority, _ := ParsePriority(details.Priority)
	return &Exam{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		name:             details.Name,
		subjectName:      details.SubjectName,
		examDate:         details.ExamDate,
		difficulty:       difficulty,
		pastScore:        copyFloat(details.PastScore),
		chapters:         details.Chapters,
		recommendedHours: details.RecommendedHours,
		priority:         priority,
	}
}

func (e *Exam) apply(d ExamDetails) error {
	name, err := validateName(d.Name)
	if err != nil {
		return err
	}
	if err := validateHours(d.RecommendedHours); err != nil {
		return err
	}
	if err := validateScore(d.PastScore); err != nil {
		return err
	}
	if d.Chapters < 0 {
		return ErrNegativeChapters
	}
	date, err := NormalizeDate(d.ExamDate)
	if err != nil {
		return err
	}
	difficulty, err := ParseDifficulty(d.Difficulty)
	if err != nil {
		return err
	}
	priority, err := ParsePriority(d.Priority)
	if err != nil {
		return err
	}

	e.name = name
	e.subjectName = d.SubjectName
	e.examDate = date
	e.difficulty = difficulty
	e.pastScore = copyFloat(d.PastScore)
	e.chapters = d.Chapters
	e.recommendedHours = d.RecommendedHours
	e.priority = priority
	return nil
}

// Update replaces the editable fields.
func (e *Exam) Update(details ExamDetails) error {
	if err := e.apply(details); err != nil {
		return err
	}
	e.Touch()
	e.AddDomainEvent(newExamEvent(RoutingKeyExamUpdated, e))
	return nil
}

// MarkDeleted records the deletion event.
func (e *Exam) MarkDeleted() {
	e.AddDomainEvent(newExamEvent(RoutingKeyExamDeleted, e))
}

func (e *Exam) Name() string              { return e.name }
func (e *Exam) SubjectName() string       { return e.subjectName }
func (e *Exam) ExamDate() string          { return e.examDate }
func (e *Exam) Difficulty() Difficulty    { return e.difficulty }
func (e *Exam) PastScore() *float64       { return copyFloat(e.pastScore) }
func (e *Exam) Chapters() int             { return e.chapters }
func (e *Exam) RecommendedHours() float64 { return e.recommendedHours }
func (e *Exam) Priority() Priority        { return e.priority }

// Details returns the editable fields.
func (e *Exam) Details() ExamDetails {
	return ExamDetails{
		Name:             e.name,
		SubjectName:      e.subjectName,
		ExamDate:         e.examDate,
		Difficulty:       string(e.difficulty),
		PastScore:        copyFloat(e.pastScore),
		Chapters:         e.chapters,
		RecommendedHours: e.recommendedHours,
		Priority:         string(e.priority),
	}
}
