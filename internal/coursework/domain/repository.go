package domain

import (
	"context"

	sharedDomain "github.com/felixgeelhaar/studyplanner/internal/shared/domain"
)

// AssignmentRepository persists assignments.
type AssignmentRepository interface {
	sharedDomain.Repository[*Assignment]
	// FindAll returns assignments ordered by due date, undated last.
	FindAll(ctx context.Context) ([]*Assignment, error)
	FindPending(ctx context.Context) ([]*Assignment, error)
	DeleteAll(ctx context.Context) (int, error)
}

// ExamRepository persists exams.
type ExamRepository interface {
	sharedDomain.Repository[*Exam]
	// FindAll returns exams ordered by exam date, undated last.
	FindAll(ctx context.Context) ([]*Exam, error)
	DeleteAll(ctx context.Context) (int, error)
}

// SubjectRepository persists subjects.
type SubjectRepository interface {
	sharedDomain.Repository[*Subject]
	// FindAll returns subjects ordered by name.
	FindAll(ctx context.Context) ([]*Subject, error)
	DeleteAll(ctx context.Context) (int, error)
}
