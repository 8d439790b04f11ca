package domain

import (
	"time"

	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
	"github.com/google/uuid"
)

// DefaultAssignmentHours is used when an assignment is created without an estimate.
const DefaultAssignmentHours = 2

// AssignmentDetails are the editable fields of an assignment.
type AssignmentDetails struct {
	Name           string
	SubjectName    string
	DueDate        string
	EstimatedHours float64
	Difficulty     string
	Priority       string
}

// Assignment is a piece of coursework with a due date.
type Assignment struct {
	sharedDomain.BaseAggregateRoot
	name           string
	subjectName    string
	dueDate        string
	estimatedHours float64
	difficulty     Difficulty
	priority       Priority
	status         Status
}

// NewAssignment validates details and records an AssignmentCreated event.
func NewAssignment(details AssignmentDetails) (*Assignment, error) {
	a := &Assignment{
		BaseAggregateRoot: sharedDomain.NewBaseAggregateRoot(),
		status:            StatusPending,
	}
	if err := a.apply(details); err != nil {
		return nil, err
	}
	a.AddDomainEvent(newAssignmentEvent(RoutingKeyAssignmentCreated, a))
	return a, nil
}

// RehydrateAssignment restores an assignment loaded from storage.
func RehydrateAssignment(id uuid.UUID, details AssignmentDetails, status Status, createdAt, updatedAt time.Time) *Assignment {
	difficulty, _ := ParseDifficulty(details.Difficulty)
	priority, _ := ParsePriority(details.Priority)
	return &Assignment{
		BaseAggregateRoot: sharedDomain.RehydrateBaseAggregateRoot(
			sharedDomain.RehydrateBaseEntity(id, createdAt, updatedAt)),
		name:           details.Name,
		subjectName:    details.SubjectName,
		dueDate:        details.DueDate,
		estimatedHours: details.EstimatedHours,
		difficulty:     difficulty,
		priority:       priority,
		status:         status,
	}
}

func (a *Assignment) apply(d AssignmentDetails) error {
	name, err := validateName(d.Name)
	if err != nil {
		return err
	}
	if err := validateHours(d.EstimatedHours); err != nil {
		return err
	}
	due, err := NormalizeDate(d.DueDate)
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

	a.name = name
	a.subjectName = d.SubjectName
	a.dueDate = due
	a.estimatedHours = d.EstimatedHours
	a.difficulty = difficulty
	a.priority = priority
	return nil
}

// Update replaces the editable fields.
func (a *Assignment) Update(details AssignmentDetails) error {
	if err := a.apply(details); err != nil {
		return err
	}
	a.Touch()
	a.AddDomainEvent(newAssignmentEvent(RoutingKeyAssignmentUpdated, a))
	return nil
}

// Complete marks the assignment as done, removing it from future plans.
func (a *Assignment) Complete() error {
	if a.status == StatusCompleted {
		return ErrAlreadyCompleted
	}
	a.status = StatusCompleted
	a.Touch()
	a.AddDomainEvent(newAssignmentEvent(RoutingKeyAssignmentCompleted, a))
	return nil
}

// MarkDeleted records the deletion event. The repository removes the row.
func (a *Assignment) MarkDeleted() {
	a.AddDomainEvent(newAssignmentEvent(RoutingKeyAssignmentDeleted, a))
}

func (a *Assignment) Name() string            { return a.name }
func (a *Assignment) SubjectName() string     { return a.subjectName }
func (a *Assignment) DueDate() string         { return a.dueDate }
func (a *Assignment) EstimatedHours() float64 { return a.estimatedHours }
func (a *Assignment) Difficulty() Difficulty  { return a.difficulty }
func (a *Assignment) Priority() Priority      { return a.priority }
func (a *Assignment) Status() Status          { return a.status }
func (a *Assignment) IsPending() bool         { return a.status == StatusPending }

// Details returns the editable fields.
func (a *Assignment) Details() AssignmentDetails {
	return AssignmentDetails{
		Name:           a.name,
		SubjectName:    a.subjectName,
		DueDate:        a.dueDate,
		EstimatedHours: a.estimatedHours,
		Difficulty:     string(a.difficulty),
		Priority:       string(a.priority),
	}
}
